// Package simple provides a plain one-handler router, which fits the purpose
// of the whole server better than any routing table would: every Forward
// Request lands in the same place, and the handler is free to dispatch on
// whatever request fields it likes
package simple

import (
	"errors"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/router"
)

type (
	Handler      func(*ajp.Request) error
	ErrorHandler func(*ajp.Request, error)
)

type simple struct {
	handler    Handler
	errHandler ErrorHandler
}

// NewRouter constructs a router calling the handler on every request. The
// error handler may be nil, in which case errors are silently swallowed
func NewRouter(handler Handler, errHandler ErrorHandler) router.Router {
	return simple{
		handler:    handler,
		errHandler: errHandler,
	}
}

func (s simple) OnStart() error {
	if s.handler == nil {
		return errors.New("simple router: no handler attached")
	}

	return nil
}

func (s simple) OnRequest(request *ajp.Request) error {
	return s.handler(request)
}

func (s simple) OnError(request *ajp.Request, err error) {
	if s.errHandler != nil {
		s.errHandler(request, err)
	}
}
