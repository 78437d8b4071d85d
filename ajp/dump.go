package ajp

import "github.com/cobalt-web/cobalt/kv"

// Dump renders the decoded request in an HTTP/1.1-like textual form, the
// attribute block following the headers. The output is meant for logs and
// debugging, not for the wire.
func (r *Request) Dump() string {
	var buff []byte

	buff = append(buff, r.Method.String()...)
	buff = append(buff, ' ')
	buff = append(buff, r.Path...)

	if len(r.Query.Raw) > 0 {
		buff = append(buff, '?')
		buff = append(buff, r.Query.Raw...)
	}

	buff = append(buff, ' ')
	buff = append(buff, r.Proto...)
	buff = append(buff, '\r', '\n')

	for _, pair := range r.Headers.Expose() {
		buff = line(buff, pair)
	}

	buff = append(buff, '\r', '\n')

	for _, pair := range r.Attributes.Expose() {
		buff = line(buff, pair)
	}

	return string(buff)
}

func line(b []byte, pair kv.Pair) []byte {
	b = append(b, pair.Key...)
	b = append(b, ':', ' ')
	b = append(b, pair.Value...)

	return append(b, '\r', '\n')
}
