package router

import "github.com/cobalt-web/cobalt/ajp"

type Router interface {
	// OnStart is called once, before any of the servers starts accepting
	OnStart() error
	// OnRequest is called for every decoded Forward Request. Returning a
	// non-nil error reports it to OnError and drops the connection
	OnRequest(request *ajp.Request) error
	// OnError is notified about decoding failures and dropped connections.
	// There is nothing to be done about them, so it has no return value
	OnError(request *ajp.Request, err error)
}
