package ajp13

import (
	"fmt"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/internal/construct"
	"github.com/cobalt-web/cobalt/internal/protocol"
	"github.com/cobalt-web/cobalt/router"
	"github.com/cobalt-web/cobalt/settings"
	"github.com/cobalt-web/cobalt/transport"
	"github.com/indigo-web/utils/buffer"
)

type Suit struct {
	*Parser
	router router.Router
	client transport.Client
}

func New(
	s settings.Settings,
	r router.Router,
	request *ajp.Request,
	client transport.Client,
	strings *buffer.Buffer,
) *Suit {
	return &Suit{
		Parser: NewParser(s, request, strings),
		router: r,
		client: client,
	}
}

// Initialize is the same constructor as just New, but consumes fewer arguments.
func Initialize(s settings.Settings, r router.Router, client transport.Client, request *ajp.Request) *Suit {
	return New(s, r, request, client, construct.Strings(s))
}

func (s *Suit) ServeOnce() bool {
	return s.serve(true)
}

func (s *Suit) Serve() {
	s.serve(false)

	if !s.Parser.request.Hijacked() {
		_ = s.client.Close()
	}
}

func (s *Suit) serve(once bool) (ok bool) {
	req := s.Parser.request
	client := s.client

	for {
		data, err := client.Read()
		if err != nil {
			// the peer is gone or the deadline is exceeded. Either way, just
			// notify the user and quit
			s.router.OnError(req, ajp.ErrCloseConnection)
			return false
		}

		state, extra, err := s.Parse(data)
		switch state {
		case protocol.Pending:
		case protocol.RequestCompleted:
			client.Pushback(extra)

			if err = s.router.OnRequest(req); err != nil {
				s.router.OnError(req, err)
				return false
			}

			if req.Hijacked() {
				// in case the connection was hijacked, we must not intrude after, so fail fast
				return false
			}

			if req.ContentLength > 0 {
				// body packets following the request aren't consumed, so the
				// stream is misaligned from now on
				s.router.OnError(req, ajp.ErrCloseConnection)
				return false
			}

			req.Reset()
		case protocol.ForeignPacket:
			// the packet is well-formed, just none of our business. The caller
			// interested in those should drive the Parser manually instead
			s.router.OnError(req, ajp.ErrCloseConnection)
			return false
		case protocol.Error:
			s.router.OnError(req, err)
			return false
		default:
			panic(fmt.Sprintf("BUG: got unexpected parser state"))
		}

		if once {
			return true
		}
	}
}
