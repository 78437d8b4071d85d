package cobalt

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/ajp/method"
	"github.com/cobalt-web/cobalt/kv"
	"github.com/cobalt-web/cobalt/router"
	"github.com/cobalt-web/cobalt/router/simple"
	"github.com/stretchr/testify/require"
)

const addr = "localhost:16009"

func u16(value int) []byte {
	return []byte{byte(value >> 8), byte(value)}
}

func str(s string) []byte {
	encoded := u16(len(s))
	encoded = append(encoded, s...)

	return append(encoded, 0)
}

func codedHeader(code int, value string) []byte {
	return append(u16(0xa000|code), str(value)...)
}

func attribute(code byte, value string) []byte {
	return append([]byte{code}, str(value)...)
}

func packetize(payload []byte) []byte {
	packet := u16(int(ajp.Magic))
	packet = append(packet, u16(len(payload))...)

	return append(packet, payload...)
}

func forwardRequest(path string, numHeaders int, headers, attributes []byte) []byte {
	var payload []byte
	payload = append(payload, byte(ajp.ForwardRequest))
	payload = append(payload, byte(method.GET))
	payload = append(payload, str("HTTP/1.1")...)
	payload = append(payload, str(path)...)
	payload = append(payload, str("127.0.0.1")...)
	payload = append(payload, str("localhost")...)
	payload = append(payload, str("example.com")...)
	payload = append(payload, u16(8009)...)
	payload = append(payload, 0)
	payload = append(payload, u16(numHeaders)...)
	payload = append(payload, headers...)
	payload = append(payload, attributes...)
	payload = append(payload, 0xff)

	return packetize(payload)
}

func getRouter(t *testing.T, served chan<- string) router.Router {
	return simple.NewRouter(func(request *ajp.Request) error {
		switch request.Path {
		case "/ping":
			require.Equal(t, method.GET, request.Method)
			require.Equal(t, "HTTP/1.1", request.Proto)
			require.Equal(t, "127.0.0.1", request.RemoteAddr)
			require.Equal(t, "example.com", request.ServerName)
			require.Equal(t, 8009, request.ServerPort)
			require.False(t, request.Secure)
			value, found := request.Headers.Get("User-Agent")
			require.True(t, found)
			require.Equal(t, "cobalt-test", value)
		case "/query":
			require.Equal(t, "a=1&b=2", request.Query.Raw)
			require.Equal(t, []kv.Pair{
				{Key: "a", Value: "1"},
				{Key: "b", Value: "2"},
			}, request.Query.Params.Expose())
		case "/hijack":
			conn, err := request.Hijack()
			require.NoError(t, err)
			_, err = conn.Write([]byte("ok"))
			require.NoError(t, err)
			require.NoError(t, conn.Close())
		default:
			require.Fail(t, "nobody expected the path", request.Path)
		}

		served <- request.Path

		return nil
	}, func(request *ajp.Request, err error) {
		// clients disconnecting mid-test end up here. Nothing to assert
	})
}

func dial(t *testing.T) net.Conn {
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)

	return conn
}

func waitServed(t *testing.T, served <-chan string, want string) {
	select {
	case path := <-served:
		require.Equal(t, want, path)
	case <-time.After(5 * time.Second):
		require.Fail(t, "no request was served in time")
	}
}

func TestApp(t *testing.T) {
	// everything runs against a single app instance, as starting a fresh
	// one per case takes noticeable time

	served := make(chan string, 8)
	app := New(addr)
	started := make(chan struct{})
	app.NotifyOnStart(func() {
		close(started)
	})

	shutdown := make(chan error)

	go func() {
		shutdown <- app.Serve(getRouter(t, served))
	}()

	defer func() {
		app.Stop()

		select {
		case err := <-shutdown:
			require.Equal(t, ajp.ErrShutdown, err)
		case <-time.After(5 * time.Second):
			require.Fail(t, "the server takes too long to shut down")
		}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		require.Fail(t, "the server takes too long to start")
	}

	t.Run("sniffs a request", func(t *testing.T) {
		conn := dial(t)
		defer conn.Close()

		packet := forwardRequest("/ping", 1, codedHeader(14, "cobalt-test"), nil)
		_, err := conn.Write(packet)
		require.NoError(t, err)
		waitServed(t, served, "/ping")
	})

	t.Run("two packets in a single write", func(t *testing.T) {
		conn := dial(t)
		defer conn.Close()

		packet := forwardRequest("/ping", 1, codedHeader(14, "cobalt-test"), nil)
		_, err := conn.Write(append(packet, packet...))
		require.NoError(t, err)
		waitServed(t, served, "/ping")
		waitServed(t, served, "/ping")
	})

	t.Run("query string", func(t *testing.T) {
		conn := dial(t)
		defer conn.Close()

		packet := forwardRequest("/query", 0, nil, attribute(5, "a=1&b=2"))
		_, err := conn.Write(packet)
		require.NoError(t, err)
		waitServed(t, served, "/query")
	})

	t.Run("hijacked connection", func(t *testing.T) {
		conn := dial(t)
		defer conn.Close()

		_, err := conn.Write(forwardRequest("/hijack", 0, nil, nil))
		require.NoError(t, err)

		reply, err := io.ReadAll(conn)
		require.NoError(t, err)
		require.Equal(t, "ok", string(reply))
		waitServed(t, served, "/hijack")
	})

	t.Run("foreign packet drops the connection", func(t *testing.T) {
		conn := dial(t)
		defer conn.Close()

		_, err := conn.Write(packetize([]byte{byte(ajp.CPing)}))
		require.NoError(t, err)

		reply, err := io.ReadAll(conn)
		require.NoError(t, err)
		require.Empty(t, reply)
	})

	t.Run("garbage drops the connection", func(t *testing.T) {
		conn := dial(t)
		defer conn.Close()

		_, err := conn.Write([]byte{0x99, 0x99})
		require.NoError(t, err)

		reply, err := io.ReadAll(conn)
		require.NoError(t, err)
		require.Empty(t, reply)
	})
}

func TestGracefulStop(t *testing.T) {
	app := New("localhost:16010")
	started := make(chan struct{})
	stopped := false
	app.NotifyOnStart(func() {
		close(started)
	})
	app.NotifyOnStop(func() {
		stopped = true
	})

	shutdown := make(chan error)

	go func() {
		shutdown <- app.Serve(simple.NewRouter(func(*ajp.Request) error {
			return nil
		}, nil))
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		require.Fail(t, "the server takes too long to start")
	}

	app.GracefulStop()

	select {
	case err := <-shutdown:
		require.Equal(t, ajp.ErrGracefulShutdown, err)
		require.True(t, stopped)
	case <-time.After(5 * time.Second):
		require.Fail(t, "the server takes too long to stop")
	}
}
