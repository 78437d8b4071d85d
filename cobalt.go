package cobalt

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync/atomic"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/internal/address"
	"github.com/cobalt-web/cobalt/internal/construct"
	"github.com/cobalt-web/cobalt/internal/protocol/ajp13"
	"github.com/cobalt-web/cobalt/internal/server/tcp"
	"github.com/cobalt-web/cobalt/router"
	"github.com/cobalt-web/cobalt/settings"
)

type ListenerConstructor func(network, addr string) (net.Listener, error)

// App serves AJP13 connections from one or more listeners, pushing every
// decoded Forward Request through a router
type App struct {
	addr      address.Address
	hooks     hooks
	listeners []Listener
	settings  settings.Settings
	errCh     chan error
}

// New returns a new App instance.
func New(addr string) *App {
	appAddr, err := address.Parse(addr)
	if err != nil {
		panic(fmt.Errorf("cobalt: listen: bad addr: %v", err))
	}

	return &App{
		addr:     appAddr,
		settings: settings.Default(),
		// a single slot, so a server failing after an external Stop
		// does not block on the send forever
		errCh: make(chan error, 1),
	}
}

// Tune replaces default settings.
func (a *App) Tune(s settings.Settings) *App {
	a.settings = settings.Fill(s)
	return a
}

// NotifyOnStart calls the callback at the moment, when all the servers are started. However,
// it isn't strongly guaranteed that they'll be able to accept new connections immediately
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the servers are down. It's guaranteed,
// that at the moment as the callback is called, the server isn't able to accept any new connections
// and all the clients are already disconnected
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listen adds a new listener
func (a *App) Listen(port uint16, optionalConstructor ...ListenerConstructor) *App {
	constructor := optional(optionalConstructor, net.Listen)
	if constructor == nil {
		constructor = net.Listen
	}

	a.listeners = append(a.listeners, Listener{
		Port:        port,
		Constructor: constructor,
	})

	return a
}

// TLS adds a listener wrapping the AJP link into TLS. Proxies don't speak it
// natively, so the other end is usually a tunnel rather than the proxy itself
func (a *App) TLS(port uint16, constructor ListenerConstructor) *App {
	return a.Listen(port, constructor)
}

// TLSWithCert is TLS over a certificate loaded from the given files
func (a *App) TLSWithCert(port uint16, cert, key string) *App {
	return a.TLS(port, tlsListener(cert, key))
}

// AutoTLS obtains the certificate through ACME, or generates a self-signed
// one when the app is bound to localhost
func (a *App) AutoTLS(port uint16, domains ...string) *App {
	if a.addr.IsLocalhost() {
		cert, key, err := generateSelfSignedCert()
		if err != nil {
			log.Printf("WARNING: AutoTLS(...): can't generate self-signed certificate: %s. Disabling TLS", err)

			return a
		}

		return a.TLSWithCert(port, cert, key)
	}

	return a.TLS(port, autoTLSListener(domains...))
}

// Serve starts the application with the primary listener on the addr it was
// constructed with
func (a *App) Serve(r router.Router) error {
	if r == nil {
		return errors.New("cobalt: serve: nil router")
	}

	if err := r.OnStart(); err != nil {
		return err
	}

	a.Listen(a.addr.Port, net.Listen)
	servers, err := a.getServers(a.addr, r)
	if err != nil {
		return err
	}

	return a.run(servers)
}

func (a *App) getServers(addr address.Address, r router.Router) ([]*tcp.Server, error) {
	servers := make([]*tcp.Server, len(a.listeners))

	for i, listener := range a.listeners {
		sock, err := listener.Constructor("tcp", addr.SetPort(listener.Port).String())
		if err != nil {
			return nil, err
		}

		servers[i] = tcp.NewServer(sock, a.newTCPCallback(r))
	}

	return servers, nil
}

func (a *App) run(servers []*tcp.Server) error {
	var failSilently atomic.Bool

	for _, server := range servers {
		go func(server *tcp.Server) {
			err := server.Start()

			if failSilently.Swap(true) {
				return
			}

			a.errCh <- err
		}(server)
	}

	callIfNotNil(a.hooks.OnStart)
	err := <-a.errCh
	if err == ajp.ErrGracefulShutdown {
		// stop listening to new clients and process till the end all the old ones
		tcp.PauseAll(servers)
	}

	tcp.StopAll(servers)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// GracefulStop stops accepting new connections, but keeps serving old ones.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will be still working
func (a *App) GracefulStop() {
	a.errCh <- ajp.ErrGracefulShutdown
}

// Stop stops the whole application immediately.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will still be working
func (a *App) Stop() {
	a.errCh <- ajp.ErrShutdown
}

func (a *App) newTCPCallback(r router.Router) tcp.OnConn {
	return func(conn net.Conn) {
		client := construct.Client(a.settings.TCP, conn)
		request := construct.Request(a.settings, client)
		ajp13.Initialize(a.settings, r, client, request).Serve()
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

type Listener struct {
	Port        uint16
	Constructor ListenerConstructor
}

func optional[T any](optionals []T, otherwise T) T {
	if len(optionals) == 0 {
		return otherwise
	}

	return optionals[0]
}
