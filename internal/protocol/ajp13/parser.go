package ajp13

import (
	"fmt"
	"strconv"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/ajp/method"
	"github.com/cobalt-web/cobalt/internal/protocol"
	"github.com/cobalt-web/cobalt/internal/qparams"
	"github.com/cobalt-web/cobalt/internal/uridecode"
	"github.com/cobalt-web/cobalt/settings"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const (
	// lenUnknown marks that the length word of the current string wasn't read yet
	lenUnknown = -1
	// nullString is a distinguished length word standing for an absent string.
	// It carries no body and no terminator
	nullString = 0xffff
	// codedHeader masks the high octet of packed well-known header names
	codedHeader = 0xa000
)

// Parser decodes Forward Request packets into an ajp.Request. It is resumable:
// feeding it an arbitrarily chunked byte stream produces the same request as
// feeding the whole packet at once. All the strings of a decoded request stay
// valid until the next call to Parse
type Parser struct {
	request          *ajp.Request
	strings          *buffer.Buffer
	queryBuff        []byte
	headerKey        string
	currentAttribute string
	state            parserState
	headerState      headerState
	attrState        attrState
	highByte         byte
	hasHigh          bool
	strLen           int
	numHeaders       int
	maxHeaders       int
	packetType       ajp.PacketType
	payloadLength    int
}

func NewParser(s settings.Settings, request *ajp.Request, strings *buffer.Buffer) *Parser {
	return &Parser{
		request:     request,
		strings:     strings,
		state:       eBegin,
		headerState: eHeaderName,
		attrState:   eAttrCode,
		strLen:      lenUnknown,
		maxHeaders:  int(s.Headers.Number.Maximal),
	}
}

func (p *Parser) Parse(data []byte) (state protocol.RequestState, extra []byte, err error) {
	request := p.request

	for {
		switch p.state {
		case eBegin:
			value, rest, done := p.read16(data)
			if !done {
				return protocol.Pending, nil, nil
			}

			if value != ajp.Magic {
				return protocol.Error, nil, ajp.ErrBadMagic
			}

			data = rest
			p.state = eDataSize
		case eDataSize:
			value, rest, done := p.read16(data)
			if !done {
				return protocol.Pending, nil, nil
			}

			data = rest
			p.payloadLength = int(value)
			p.state = ePrefixCode
		case ePrefixCode:
			if len(data) == 0 {
				return protocol.Pending, nil, nil
			}

			p.packetType = ajp.PacketType(data[0])
			data = data[1:]

			if p.packetType != ajp.ForwardRequest {
				p.reset()
				return protocol.ForeignPacket, data, nil
			}

			p.state = eMethod
		case eMethod:
			if len(data) == 0 {
				return protocol.Pending, nil, nil
			}

			m := method.FromCode(data[0])
			if m == method.Unknown {
				return protocol.Error, nil, ajp.ErrUnknownMethod
			}

			data = data[1:]
			request.Method = m
			p.state = eProtocol
		case eProtocol:
			s, rest, done, err := p.readString(data)
			if err != nil {
				return protocol.Error, nil, err
			}
			if !done {
				return protocol.Pending, nil, nil
			}

			data = rest
			request.Proto = s
			p.state = eRequestURI
		case eRequestURI:
			s, rest, done, err := p.readString(data)
			if err != nil {
				return protocol.Error, nil, err
			}
			if !done {
				return protocol.Pending, nil, nil
			}

			path, err := uridecode.Decode(uf.S2B(s), nil)
			if err != nil {
				return protocol.Error, nil, err
			}

			data = rest
			request.URI = s
			request.Path = uf.B2S(path)
			request.RelativePath = request.Path
			p.state = eRemoteAddr
		case eRemoteAddr:
			s, rest, done, err := p.readString(data)
			if err != nil {
				return protocol.Error, nil, err
			}
			if !done {
				return protocol.Pending, nil, nil
			}

			data = rest
			request.RemoteAddr = s
			p.state = eRemoteHost
		case eRemoteHost:
			s, rest, done, err := p.readString(data)
			if err != nil {
				return protocol.Error, nil, err
			}
			if !done {
				return protocol.Pending, nil, nil
			}

			data = rest
			request.RemoteHost = s
			p.state = eServerName
		case eServerName:
			s, rest, done, err := p.readString(data)
			if err != nil {
				return protocol.Error, nil, err
			}
			if !done {
				return protocol.Pending, nil, nil
			}

			data = rest
			request.ServerName = s
			p.state = eServerPort
		case eServerPort:
			value, rest, done := p.read16(data)
			if !done {
				return protocol.Pending, nil, nil
			}

			data = rest
			request.ServerPort = int(value)
			p.state = eIsSSL
		case eIsSSL:
			if len(data) == 0 {
				return protocol.Pending, nil, nil
			}

			request.Secure = data[0] != 0
			data = data[1:]
			p.state = eNumHeaders
		case eNumHeaders:
			value, rest, done := p.read16(data)
			if !done {
				return protocol.Pending, nil, nil
			}

			if int(value) > p.maxHeaders {
				return protocol.Error, nil, ajp.ErrTooManyHeaders
			}

			data = rest
			p.numHeaders = int(value)
			p.state = eHeaders
		case eHeaders:
			// the count of already stored headers doubles as the resumption
			// point, as a header reaches the storage only when complete
			if request.Headers.Len() == p.numHeaders {
				p.state = eAttributes
				continue
			}

			switch p.headerState {
			case eHeaderName:
				s, rest, done, err := p.readHeaderName(data)
				if err != nil {
					return protocol.Error, nil, err
				}
				if !done {
					return protocol.Pending, nil, nil
				}

				data = rest
				p.headerKey = s
				p.headerState = eHeaderValue
			case eHeaderValue:
				s, rest, done, err := p.readString(data)
				if err != nil {
					return protocol.Error, nil, err
				}
				if !done {
					return protocol.Pending, nil, nil
				}

				if strcomp.EqualFold(p.headerKey, "Content-Length") {
					length, err := parseContentLength(s)
					if err != nil {
						return protocol.Error, nil, err
					}

					request.ContentLength = length
				}

				data = rest
				request.Headers.Add(p.headerKey, s)
				p.headerState = eHeaderName
			default:
				panic(fmt.Sprintf("BUG: ajp13/parser: unexpected header state: %v", p.headerState))
			}
		case eAttributes:
			switch p.attrState {
			case eAttrCode:
				if len(data) == 0 {
					return protocol.Pending, nil, nil
				}

				code := data[0]
				data = data[1:]

				switch code {
				case 0xff:
					p.reset()
					return protocol.RequestCompleted, data, nil
				case 0x0a:
					p.attrState = eAttrCustomName
				default:
					name, ok := attributeName(code)
					if !ok {
						return protocol.Error, nil, ajp.ErrUnknownAttribute
					}

					p.currentAttribute = name
					p.attrState = eAttrValue
				}
			case eAttrCustomName:
				s, rest, done, err := p.readString(data)
				if err != nil {
					return protocol.Error, nil, err
				}
				if !done {
					return protocol.Pending, nil, nil
				}

				data = rest
				p.currentAttribute = s
				p.attrState = eAttrValue
			case eAttrValue:
				if p.currentAttribute == ajp.AttrSSLKeySize {
					// the only attribute whose value is an integer on the wire
					value, rest, done := p.read16(data)
					if !done {
						return protocol.Pending, nil, nil
					}

					data = rest
					request.Attributes.Add(p.currentAttribute, strconv.Itoa(int(value)))
					p.attrState = eAttrCode
					continue
				}

				s, rest, done, err := p.readString(data)
				if err != nil {
					return protocol.Error, nil, err
				}
				if !done {
					return protocol.Pending, nil, nil
				}

				data = rest

				if p.currentAttribute == ajp.AttrQueryString {
					request.Query.Raw = s

					p.queryBuff, err = qparams.Parse(uf.S2B(s), p.queryBuff, request.Query.Params)
					if err != nil {
						return protocol.Error, nil, err
					}
				} else {
					request.Attributes.Add(p.currentAttribute, s)
				}

				p.attrState = eAttrCode
			default:
				panic(fmt.Sprintf("BUG: ajp13/parser: unexpected attribute state: %v", p.attrState))
			}
		default:
			panic(fmt.Sprintf("BUG: ajp13/parser: unexpected state: %v", p.state))
		}
	}
}

// PacketType reports the type octet of the last packet whose decoding was
// completed, which happens on both RequestCompleted and ForeignPacket
func (p *Parser) PacketType() ajp.PacketType {
	return p.packetType
}

// PayloadLength reports the length word of the last completed packet. Note
// that the type octet counts towards it, so skipping a foreign packet takes
// consuming PayloadLength()-1 bytes past the extra returned by Parse
func (p *Parser) PayloadLength() int {
	return p.payloadLength
}

// read16 assembles a big-endian word, stashing the high octet if the boundary
// between the two falls onto a chunk seam
func (p *Parser) read16(data []byte) (value uint16, rest []byte, done bool) {
	if len(data) == 0 {
		return 0, data, false
	}

	if p.hasHigh {
		p.hasHigh = false
		return uint16(p.highByte)<<8 | uint16(data[0]), data[1:], true
	}

	if len(data) == 1 {
		p.highByte = data[0]
		p.hasHigh = true
		return 0, data[1:], false
	}

	return uint16(data[0])<<8 | uint16(data[1]), data[2:], true
}

// readString decodes a length-prefixed string followed by a NUL terminator.
// The accumulated part is kept between calls, so the string may be fed in any
// number of pieces. Null strings (length 0xffff) come out as empty ones
func (p *Parser) readString(data []byte) (s string, rest []byte, done bool, err error) {
	if p.strLen == lenUnknown {
		value, rest, done := p.read16(data)
		if !done {
			return "", rest, false, nil
		}

		if value == nullString {
			return "", rest, true, nil
		}

		data = rest
		p.strLen = int(value)
	}

	if take := p.strLen - p.strings.SegmentLength(); take > 0 {
		if take > len(data) {
			take = len(data)
		}

		if !p.strings.Append(data[:take]) {
			return "", nil, false, ajp.ErrFieldsTooLarge
		}

		data = data[take:]
	}

	if p.strings.SegmentLength() < p.strLen {
		return "", data, false, nil
	}

	if len(data) == 0 {
		// the terminator hasn't arrived yet
		return "", data, false, nil
	}

	p.strLen = lenUnknown

	return uf.B2S(p.strings.Finish()), data[1:], true, nil
}

// readHeaderName is readString, except the length word may instead be a coded
// name with 0xa0 in the high octet, in which case there is no body to follow
func (p *Parser) readHeaderName(data []byte) (s string, rest []byte, done bool, err error) {
	if p.strLen == lenUnknown {
		value, rest, done := p.read16(data)
		if !done {
			return "", rest, false, nil
		}

		if value&0xff00 == codedHeader {
			name, ok := headerName(byte(value))
			if !ok {
				return "", rest, false, ajp.ErrUnknownHeader
			}

			return name, rest, true, nil
		}

		if value == nullString {
			return "", rest, true, nil
		}

		data = rest
		p.strLen = int(value)
	}

	return p.readString(data)
}

func parseContentLength(value string) (length int, err error) {
	for _, char := range uf.S2B(value) {
		if char == ' ' {
			continue
		}

		if char < '0' || char > '9' {
			return 0, ajp.ErrBadContentLength
		}

		length = length*10 + int(char-'0')
	}

	return length, nil
}

func (p *Parser) reset() {
	p.state = eBegin
	p.headerState = eHeaderName
	p.attrState = eAttrCode
	p.hasHigh = false
	p.strLen = lenUnknown
	p.numHeaders = 0
	p.headerKey = ""
	p.currentAttribute = ""
	p.strings.Clear()
	p.queryBuff = p.queryBuff[:0]
}
