package ajp

import (
	"testing"

	"github.com/cobalt-web/cobalt/ajp/method"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	request := newRequest()
	request.Method = method.GET
	request.Path = "/search"
	request.Query.Raw = "q=cobalt"
	request.Proto = "HTTP/1.1"
	request.Headers.Add("Host", "example.com").Add("Accept", "*/*")
	request.Attributes.Add(AttrSSLCipher, "ECDHE-RSA-AES128-GCM-SHA256")

	want := "GET /search?q=cobalt HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Accept: */*\r\n" +
		"\r\n" +
		"ssl_cipher: ECDHE-RSA-AES128-GCM-SHA256\r\n"

	require.Equal(t, want, request.Dump())
}
