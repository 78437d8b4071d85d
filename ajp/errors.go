package ajp

import "errors"

// ProtocolError signals that the peer broke the AJP13 framing rules. Once
// any of these is returned, byte alignment of the stream cannot be trusted
// anymore, so the connection must be dropped
type ProtocolError struct {
	Message string
}

func NewError(message string) error {
	return ProtocolError{
		Message: message,
	}
}

func (p ProtocolError) Error() string {
	return p.Message
}

var (
	ErrBadMagic         = NewError("bad packet magic")
	ErrUnknownMethod    = NewError("method code out of range")
	ErrUnknownHeader    = NewError("unknown coded header name")
	ErrUnknownAttribute = NewError("unknown attribute code")
	ErrURIDecoding      = NewError("invalid urlencoded sequence")
	ErrFieldsTooLarge   = NewError("request fields exceed the space limit")
	ErrTooManyHeaders   = NewError("too many headers")
	ErrBadContentLength = NewError("malformed content length")
	ErrHijacked         = NewError("the connection is already hijacked")
)

// These signal connection lifecycle events rather than protocol failures
var (
	ErrCloseConnection  = errors.New("actively closing the connection")
	ErrGracefulShutdown = errors.New("graceful shutdown")
	ErrShutdown         = errors.New("shutdown")
)
