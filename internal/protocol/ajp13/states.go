package ajp13

type parserState uint8

const (
	eBegin parserState = iota + 1
	eDataSize
	ePrefixCode
	eMethod
	eProtocol
	eRequestURI
	eRemoteAddr
	eRemoteHost
	eServerName
	eServerPort
	eIsSSL
	eNumHeaders
	eHeaders
	eAttributes
)

type headerState uint8

const (
	eHeaderName headerState = iota + 1
	eHeaderValue
)

type attrState uint8

const (
	eAttrCode attrState = iota + 1
	eAttrCustomName
	eAttrValue
)
