package construct

import (
	"net"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/kv"
	"github.com/cobalt-web/cobalt/settings"
	"github.com/cobalt-web/cobalt/transport"
	"github.com/indigo-web/utils/buffer"
)

func Request(s settings.Settings, client transport.Client) *ajp.Request {
	headers := kv.NewPrealloc(int(s.Headers.Number.Default))
	params := kv.NewPrealloc(int(s.Query.Params.Default))
	attributes := kv.New()

	return ajp.NewRequest(client, headers, params, attributes)
}

func Client(s settings.TCP, conn net.Conn) transport.Client {
	readBuff := make([]byte, s.ReadBuffer.Default)

	return transport.NewClient(conn, s.ReadTimeout, readBuff)
}

// Strings allocates the arena all the string fields of a request are decoded
// into
func Strings(s settings.Settings) *buffer.Buffer {
	return buffer.New(int(s.Strings.Space.Default), int(s.Strings.Space.Maximal))
}
