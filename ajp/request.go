package ajp

import (
	"net"

	"github.com/cobalt-web/cobalt/ajp/method"
	"github.com/cobalt-web/cobalt/kv"
	"github.com/cobalt-web/cobalt/transport"
)

type (
	Headers    = *kv.Storage
	Header     = kv.Pair
	Params     = *kv.Storage
	Attributes = *kv.Storage
)

// Query holds the request query string in both its forms.
type Query struct {
	// Raw is the query string exactly as the proxy passed it over.
	Raw string
	// Params are the decoded parameters in their order of appearance.
	Params Params
}

// Request represents a single Forward Request relayed by the proxy on
// behalf of an end client.
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Proto is the protocol token exactly as the end client sent it, e.g. HTTP/1.1.
	Proto string
	// URI is the raw, still encoded request target.
	URI string
	// Path is the decoded request path.
	Path string
	// RelativePath initially mirrors Path and is free to be rewritten by routing.
	RelativePath string
	Query        Query
	// Headers holds non-normalized header pairs, even though lookup is
	// case-insensitive.
	Headers Headers
	// Attributes are the optional per-request attributes appended by the proxy,
	// well-known and custom ones alike. The query string never appears here,
	// it is represented via Query instead.
	Attributes Attributes
	// ContentLength obtains the value from Content-Length header. It holds the
	// value of 0 if the header isn't presented.
	ContentLength int
	// RemoteAddr is the address of the end client as the proxy saw it.
	RemoteAddr string
	// RemoteHost is the hostname of the end client. Proxies that don't resolve
	// it repeat the address here.
	RemoteHost string
	// ServerName is the server name the proxy matched the request against.
	ServerName string
	// ServerPort is the port the end client connected to.
	ServerPort int
	// Secure tells whether the proxy terminated TLS for this request.
	Secure bool
	// Proxy holds the address of the proxy's end of the AJP connection. Please
	// note that this is generally not a good parameter to identify a user, use
	// RemoteAddr for that.
	Proxy net.Addr

	client   transport.Client
	hijacked bool
}

func NewRequest(client transport.Client, headers, params, attributes *kv.Storage) *Request {
	return &Request{
		Method:     method.Unknown,
		Query:      Query{Params: params},
		Headers:    headers,
		Attributes: attributes,
		Proxy:      client.Remote(),
		client:     client,
	}
}

// Hijack gives away the raw connection to the proxy. After the handler exits,
// the connection is left alone, so it becomes the handler's responsibility to
// close it. The connection can be hijacked at most once
func (r *Request) Hijack() (transport.Client, error) {
	if r.hijacked {
		return nil, ErrHijacked
	}

	r.hijacked = true

	return r.client, nil
}

// Hijacked tells whether the connection was hijacked or not
func (r *Request) Hijacked() bool {
	return r.hijacked
}

// Reset the request back to the blank state, keeping the allocations of the
// underlying storages
func (r *Request) Reset() {
	r.Method = method.Unknown
	r.Proto = ""
	r.URI = ""
	r.Path = ""
	r.RelativePath = ""
	r.Query.Raw = ""
	r.Query.Params.Clear()
	r.Headers.Clear()
	r.Attributes.Clear()
	r.ContentLength = 0
	r.RemoteAddr = ""
	r.RemoteHost = ""
	r.ServerName = ""
	r.ServerPort = 0
	r.Secure = false
}
