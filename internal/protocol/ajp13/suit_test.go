package ajp13

import (
	"errors"
	"slices"
	"testing"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/internal/construct"
	"github.com/cobalt-web/cobalt/router"
	"github.com/cobalt-web/cobalt/router/simple"
	"github.com/cobalt-web/cobalt/settings"
	"github.com/cobalt-web/cobalt/transport/dummy"
	"github.com/stretchr/testify/require"
)

func getSuit(r router.Router, client *dummy.Client) *Suit {
	s := settings.Default()

	return Initialize(s, r, client, construct.Request(s, client))
}

func TestSuit(t *testing.T) {
	t.Run("pipelined requests", func(t *testing.T) {
		var served int
		r := simple.NewRouter(func(request *ajp.Request) error {
			served++
			require.Equal(t, "/index", request.Path)
			return nil
		}, func(request *ajp.Request, err error) {
			require.Equal(t, ajp.ErrCloseConnection, err)
		})
		packet := sampleRequest("/index", 0, nil, nil)
		client := dummy.NewClient(slices.Concat(packet, packet)).Once()
		getSuit(r, client).Serve()
		require.Equal(t, 2, served)
		require.True(t, client.Closed())
	})

	t.Run("serve once", func(t *testing.T) {
		var served int
		r := simple.NewRouter(func(*ajp.Request) error {
			served++
			return nil
		}, nil)
		packet := sampleRequest("/split", 0, nil, nil)
		client := dummy.NewClient(packet[:7], packet[7:]).Once()
		suit := getSuit(r, client)
		require.True(t, suit.ServeOnce())
		require.Zero(t, served)
		require.True(t, suit.ServeOnce())
		require.Equal(t, 1, served)
	})

	t.Run("handler error", func(t *testing.T) {
		boom := errors.New("boom")
		var errs []error
		r := simple.NewRouter(func(*ajp.Request) error {
			return boom
		}, func(request *ajp.Request, err error) {
			errs = append(errs, err)
		})
		client := dummy.NewClient(sampleRequest("/", 0, nil, nil)).Once()
		getSuit(r, client).Serve()
		require.Equal(t, []error{boom}, errs)
		require.True(t, client.Closed())
	})

	t.Run("hijack leaves the connection open", func(t *testing.T) {
		r := simple.NewRouter(func(request *ajp.Request) error {
			_, err := request.Hijack()
			return err
		}, nil)
		client := dummy.NewClient(sampleRequest("/", 0, nil, nil)).Once()
		getSuit(r, client).Serve()
		require.False(t, client.Closed())
	})

	t.Run("foreign packet", func(t *testing.T) {
		var served int
		var errs []error
		r := simple.NewRouter(func(*ajp.Request) error {
			served++
			return nil
		}, func(request *ajp.Request, err error) {
			errs = append(errs, err)
		})
		client := dummy.NewClient(packetize([]byte{10})).Once()
		getSuit(r, client).Serve()
		require.Zero(t, served)
		require.Equal(t, []error{ajp.ErrCloseConnection}, errs)
		require.True(t, client.Closed())
	})

	t.Run("announced body drops the connection", func(t *testing.T) {
		var served int
		var errs []error
		r := simple.NewRouter(func(*ajp.Request) error {
			served++
			return nil
		}, func(request *ajp.Request, err error) {
			errs = append(errs, err)
		})
		client := dummy.NewClient(sampleRequest("/upload", 1, codedHeader(8, "5"), nil)).Once()
		getSuit(r, client).Serve()
		require.Equal(t, 1, served)
		require.Equal(t, []error{ajp.ErrCloseConnection}, errs)
		require.True(t, client.Closed())
	})

	t.Run("broken packet", func(t *testing.T) {
		var errs []error
		r := simple.NewRouter(func(*ajp.Request) error {
			return nil
		}, func(request *ajp.Request, err error) {
			errs = append(errs, err)
		})
		client := dummy.NewClient([]byte{0x99, 0x99}).Once()
		getSuit(r, client).Serve()
		require.Equal(t, []error{ajp.ErrBadMagic}, errs)
		require.True(t, client.Closed())
	})
}

func BenchmarkSuit(b *testing.B) {
	packet := sampleRequest("/index", 3, genHeaders(3), nil)
	r := simple.NewRouter(func(*ajp.Request) error {
		return nil
	}, nil)
	client := dummy.NewClient(packet).Journaling(false)
	suit := getSuit(r, client)
	b.SetBytes(int64(len(packet)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		suit.ServeOnce()
	}
}
