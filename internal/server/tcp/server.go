package tcp

import (
	"net"
	"sync"

	"github.com/cobalt-web/cobalt/ajp"
)

type OnConn func(net.Conn)

type Server struct {
	sock     net.Listener
	onConn   OnConn
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	shutdown bool
}

func NewServer(sock net.Listener, onConn OnConn) *Server {
	return &Server{
		sock:   sock,
		onConn: onConn,
		conns:  map[net.Conn]struct{}{},
	}
}

// Start accepts connections until the listener is closed, serving each in its
// own goroutine. It returns ajp.ErrShutdown after Stop or Pause, and whatever
// the listener failed with otherwise, in both cases waiting for all the
// connections to be served till the end first
func (s *Server) Start() error {
	wg := new(sync.WaitGroup)

	for {
		conn, err := s.sock.Accept()
		if err != nil {
			wg.Wait()

			if s.shutdown {
				return ajp.ErrShutdown
			}

			return err
		}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		wg.Add(1)
		go s.connHandler(wg, conn)
	}
}

func (s *Server) stopListener() error {
	s.shutdown = true

	return s.sock.Close()
}

// Pause stops the listener, leaving all the connections free to end their
// lives peacefully
func (s *Server) Pause() error {
	return s.stopListener()
}

// Stop shuts the listener and ALL the connections down
func (s *Server) Stop() error {
	if err := s.stopListener(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.conns {
		_ = conn.Close()
	}

	return nil
}

func (s *Server) connHandler(wg *sync.WaitGroup, conn net.Conn) {
	s.onConn(conn)
	wg.Done()

	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func PauseAll(servers []*Server) {
	for _, server := range servers {
		_ = server.Pause()
	}
}

func StopAll(servers []*Server) {
	for _, server := range servers {
		_ = server.Stop()
	}
}
