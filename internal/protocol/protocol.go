package protocol

type Parser interface {
	Parse(b []byte) (state RequestState, extra []byte, err error)
}

// RequestState represents the state of the packet's parsing
//
//go:generate stringer -type=RequestState -output=requeststate_string.go
type RequestState uint8

const (
	// Pending means the packet is incomplete yet, and more data must be fed
	Pending RequestState = iota + 1
	// RequestCompleted signals a fully decoded Forward Request
	RequestCompleted
	// ForeignPacket is reported when the packet is well-formed but carries any
	// other type than Forward Request. The decision on what to do with it is up
	// to the caller
	ForeignPacket
	Error
)

type Server interface {
	Serve()
}

// Suit is a parser driven by a connection-serving loop. Usually both belong to
// a same protocol
type Suit interface {
	Server
	Parser
}
