package ajp

// Magic opens every packet travelling from the proxy to the server.
const Magic uint16 = 0x1234

// PacketType is the prefix code of an AJP13 packet sent by the proxy.
type PacketType uint8

const (
	// ForwardRequest carries a complete HTTP-like request to be served.
	ForwardRequest PacketType = 2
	// Shutdown asks the backend to stop serving.
	Shutdown PacketType = 7
	// CPong replies to CPing. It never arrives from the proxy, the constant
	// exists so callers routing packets can name it.
	CPong PacketType = 9
	// CPing probes whether the backend is still responsive.
	CPing PacketType = 10
)

func (p PacketType) String() string {
	switch p {
	case ForwardRequest:
		return "forward-request"
	case Shutdown:
		return "shutdown"
	case CPong:
		return "cpong"
	case CPing:
		return "cping"
	default:
		return "unknown"
	}
}
