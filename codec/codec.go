// Package codec holds the content-coding transforms cached resources are
// produced through. Tokens follow the Accept-Encoding vocabulary, so they
// double as cache artifact suffixes
package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type Codec interface {
	// Token returns the Accept-Encoding name of the coding
	Token() string
	// NewWriter wraps w so that everything written comes out encoded on the
	// other side. The result must be closed to flush the tail
	NewWriter(w io.Writer) io.WriteCloser
}

type Gzip struct{}

func (Gzip) Token() string {
	return "gzip"
}

func (Gzip) NewWriter(w io.Writer) io.WriteCloser {
	writer, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		panic(fmt.Sprintf("BUG: codec: gzip: %v", err))
	}

	return writer
}

type Deflate struct{}

func (Deflate) Token() string {
	return "deflate"
}

func (Deflate) NewWriter(w io.Writer) io.WriteCloser {
	writer, err := flate.NewWriter(w, flate.BestCompression)
	if err != nil {
		panic(fmt.Sprintf("BUG: codec: deflate: %v", err))
	}

	return writer
}

type Zstd struct{}

func (Zstd) Token() string {
	return "zstd"
}

func (Zstd) NewWriter(w io.Writer) io.WriteCloser {
	writer, err := zstd.NewWriter(w)
	if err != nil {
		panic(fmt.Sprintf("BUG: codec: zstd: %v", err))
	}

	return writer
}

// Suite is a preference-ordered list of codings
type Suite []Codec

// Default prefers the strongest coding the modern proxies accept
func Default() Suite {
	return Suite{Zstd{}, Gzip{}, Deflate{}}
}

// Negotiate picks the first codec of the suite whose token is present among
// the comma-separated Accept-Encoding tokens. Quality values are ignored
func (s Suite) Negotiate(acceptEncoding string) (Codec, bool) {
	for _, c := range s {
		if acceptsToken(acceptEncoding, c.Token()) {
			return c, true
		}
	}

	return nil, false
}

func acceptsToken(header, token string) bool {
	for _, part := range strings.Split(header, ",") {
		name, _, _ := strings.Cut(part, ";")
		if strcomp.EqualFold(strings.TrimSpace(name), token) {
			return true
		}
	}

	return false
}
