package dummy

import (
	"io"
	"net"

	"github.com/cobalt-web/cobalt/transport"
)

var _ transport.Client = new(Client)

// Client returns the same data as it was initialised with on every read,
// unless set to shoot once. It also tracks all the written data, making it
// thereby a universal mock suitable for most of the tests.
type Client struct {
	closed     bool
	once       bool
	journaling bool
	pointer    int
	tmp        []byte
	written    []byte
	data       [][]byte
}

func NewClient(data ...[]byte) *Client {
	return &Client{
		data:       data,
		pointer:    0,
		journaling: true,
	}
}

// NewNopClient returns a client, which always reports EOF on reads and
// swallows everything written into it.
func NewNopClient() *Client {
	return NewClient().Once()
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if len(c.tmp) > 0 {
		data, c.tmp = c.tmp, nil

		return data, nil
	}

	if c.pointer >= len(c.data) {
		if c.once {
			c.closed = true
			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Pushback(takeback []byte) {
	c.tmp = takeback
}

func (c *Client) Write(p []byte) (int, error) {
	if c.journaling {
		c.written = append(c.written, p...)
	}

	return len(p), nil
}

func (c *Client) Conn() net.Conn {
	return new(Conn).Nop()
}

func (*Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Once makes the client play the data just one time instead of looping it
// endlessly.
func (c *Client) Once() *Client {
	c.once = true
	return c
}

func (c *Client) Journaling(flag bool) *Client {
	c.journaling = flag
	return c
}

// Closed tells whether the client was closed or ran out of data to play.
func (c *Client) Closed() bool {
	return c.closed
}

// Written returns everything the client was asked to write so far.
func (c *Client) Written() string {
	if !c.journaling {
		panic("dummy client: cannot access written data: journaling is disabled!")
	}

	return string(c.written)
}
