package qparams

import (
	"github.com/cobalt-web/cobalt/internal/uridecode"
	"github.com/cobalt-web/cobalt/kv"
	"github.com/indigo-web/utils/uf"
)

// Parse splits a raw query string into ordered key-value pairs, storing them
// into the passed storage. Segments are separated by ampersands, a key from
// a value by the first equals sign. A segment carrying no equals sign at all
// is a flag parameter, stored with an empty value. Empty segments are
// skipped. Both keys and values are decoded, and an empty key is legal.
//
// Decoded components are appended to buff, which is returned back grown.
// Strings in the storage point into it, so the buffer must outlive them.
func Parse(data, buff []byte, into *kv.Storage) ([]byte, error) {
	var (
		key string
		err error
	)

parseKey:
	if len(data) == 0 {
		return buff, nil
	}

	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '=':
			start := len(buff)
			buff, err = uridecode.DecodeQuery(data[:i], buff)
			if err != nil {
				return buff, err
			}

			key = uf.B2S(buff[start:])
			data = data[i+1:]
			goto parseValue
		case '&':
			if i > 0 {
				start := len(buff)
				buff, err = uridecode.DecodeQuery(data[:i], buff)
				if err != nil {
					return buff, err
				}

				into.Add(uf.B2S(buff[start:]), "")
			}

			data = data[i+1:]
			goto parseKey
		}
	}

	{
		start := len(buff)
		buff, err = uridecode.DecodeQuery(data, buff)
		if err != nil {
			return buff, err
		}

		into.Add(uf.B2S(buff[start:]), "")
	}

	return buff, nil

parseValue:
	for i := 0; i < len(data); i++ {
		if data[i] == '&' {
			start := len(buff)
			buff, err = uridecode.DecodeQuery(data[:i], buff)
			if err != nil {
				return buff, err
			}

			into.Add(key, uf.B2S(buff[start:]))
			data = data[i+1:]
			goto parseKey
		}
	}

	start := len(buff)
	buff, err = uridecode.DecodeQuery(data, buff)
	if err != nil {
		return buff, err
	}

	into.Add(key, uf.B2S(buff[start:]))

	return buff, nil
}
