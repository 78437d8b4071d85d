package uridecode

import (
	"bytes"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/internal/hexconv"
)

// Decode normalizes the URI by translating escaped characters into their
// true form. If no escaping was met, src is returned as is, without touching
// buff.
func Decode(src, buff []byte) ([]byte, error) {
	for i := bytes.IndexByte(src, '%'); i != -1; i = bytes.IndexByte(src, '%') {
		if i >= len(src)-2 {
			return nil, ajp.ErrURIDecoding
		}

		hi, lo := hexconv.Parse(src[i+1]), hexconv.Parse(src[i+2])
		if hi == 0 || lo == 0 {
			return nil, ajp.ErrURIDecoding
		}

		buff = append(buff, src[:i]...)
		buff = append(buff, (hi-1)<<4|(lo-1))
		src = src[i+3:]
	}

	if len(buff) == 0 {
		return src, nil
	}

	return append(buff, src...), nil
}

// DecodeQuery appends the decoded form of a single query string component
// to buff and returns the grown buff, so that consecutive components may
// share one allocation. It differs from Decode in that a plus sign stands
// for a space, as the form encoding demands.
func DecodeQuery(src, buff []byte) ([]byte, error) {
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '%':
			if i >= len(src)-2 {
				return nil, ajp.ErrURIDecoding
			}

			hi, lo := hexconv.Parse(src[i+1]), hexconv.Parse(src[i+2])
			if hi == 0 || lo == 0 {
				return nil, ajp.ErrURIDecoding
			}

			buff = append(buff, (hi-1)<<4|(lo-1))
			i += 2
		case '+':
			buff = append(buff, ' ')
		default:
			buff = append(buff, c)
		}
	}

	return buff, nil
}
