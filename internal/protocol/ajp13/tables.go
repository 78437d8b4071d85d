package ajp13

import "github.com/cobalt-web/cobalt/ajp"

// headerNames maps coded header name bytes, as carried in the low octet of an
// 0xA0-prefixed pair, onto the literal names they stand for.
var headerNames = [...]string{
	1:  "Accept",
	2:  "Accept-Charset",
	3:  "Accept-Encoding",
	4:  "Accept-Language",
	5:  "Authorization",
	6:  "Connection",
	7:  "Content-Type",
	8:  "Content-Length",
	9:  "Cookie",
	10: "Cookie2",
	11: "Host",
	12: "Pragma",
	13: "Referer",
	14: "User-Agent",
}

func headerName(code byte) (string, bool) {
	if code == 0 || int(code) >= len(headerNames) {
		return "", false
	}

	return headerNames[code], true
}

// attributeNames maps attribute code bytes onto canonical attribute names. The
// 0x0a entry is present for completeness only, as custom attributes carry their
// names literally and are recognized before the table is consulted.
var attributeNames = [...]string{
	1:  ajp.AttrContext,
	2:  ajp.AttrServletPath,
	3:  ajp.AttrRemoteUser,
	4:  ajp.AttrAuthType,
	5:  ajp.AttrQueryString,
	6:  ajp.AttrRoute,
	7:  ajp.AttrSSLCert,
	8:  ajp.AttrSSLCipher,
	9:  ajp.AttrSSLSession,
	10: ajp.AttrReqAttribute,
	11: ajp.AttrSSLKeySize,
	12: ajp.AttrSecret,
	13: ajp.AttrStoredMethod,
}

func attributeName(code byte) (string, bool) {
	if code == 0 || int(code) >= len(attributeNames) {
		return "", false
	}

	return attributeNames[code], true
}
