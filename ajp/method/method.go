package method

// Method is an HTTP request method. Integer values correspond to the AJP13
// wire codes, so a code byte converts to a Method without any remapping.
type Method uint8

const (
	Unknown Method = iota
	OPTIONS
	GET
	HEAD
	POST
	PUT
	DELETE
	TRACE
	PROPFIND
	PROPPATCH
	MKCOL
	COPY
	MOVE
	LOCK
	UNLOCK
	ACL
	REPORT
	VERSIONCONTROL
	CHECKIN
	CHECKOUT
	UNCHECKOUT
	SEARCH
	MKWORKSPACE
	UPDATE
	LABEL
	MERGE
	BASELINECONTROL
	MKACTIVITY

	// Count is the greatest integer value of all the methods, which is by 1
	// less than the real number of entries as Unknown isn't counted
	Count = iota - 1
)

// List contains all the supported methods, sorted by their integer values.
// Unknown is not included, so in order to index the List, subtract 1 first.
var List = []Method{
	OPTIONS, GET, HEAD, POST, PUT, DELETE, TRACE, PROPFIND, PROPPATCH,
	MKCOL, COPY, MOVE, LOCK, UNLOCK, ACL, REPORT, VERSIONCONTROL, CHECKIN,
	CHECKOUT, UNCHECKOUT, SEARCH, MKWORKSPACE, UPDATE, LABEL, MERGE,
	BASELINECONTROL, MKACTIVITY,
}

var names = [...]string{
	Unknown:         "",
	OPTIONS:         "OPTIONS",
	GET:             "GET",
	HEAD:            "HEAD",
	POST:            "POST",
	PUT:             "PUT",
	DELETE:          "DELETE",
	TRACE:           "TRACE",
	PROPFIND:        "PROPFIND",
	PROPPATCH:       "PROPPATCH",
	MKCOL:           "MKCOL",
	COPY:            "COPY",
	MOVE:            "MOVE",
	LOCK:            "LOCK",
	UNLOCK:          "UNLOCK",
	ACL:             "ACL",
	REPORT:          "REPORT",
	VERSIONCONTROL:  "VERSION-CONTROL",
	CHECKIN:         "CHECKIN",
	CHECKOUT:        "CHECKOUT",
	UNCHECKOUT:      "UNCHECKOUT",
	SEARCH:          "SEARCH",
	MKWORKSPACE:     "MKWORKSPACE",
	UPDATE:          "UPDATE",
	LABEL:           "LABEL",
	MERGE:           "MERGE",
	BASELINECONTROL: "BASELINE-CONTROL",
	MKACTIVITY:      "MKACTIVITY",
}

func (m Method) String() string {
	if int(m) >= len(names) {
		return ""
	}

	return names[m]
}

// FromCode translates a wire code into a Method. Codes outside of [1, Count]
// result in Unknown.
func FromCode(code byte) Method {
	if code == 0 || code > Count {
		return Unknown
	}

	return Method(code)
}

// Parse recognizes a method by its textual name, e.g. a stored_method
// attribute value. Unknown is returned for unrecognized names.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		switch str {
		case "GET":
			return GET
		case "PUT":
			return PUT
		case "ACL":
			return ACL
		}
	case 4:
		switch str {
		case "POST":
			return POST
		case "HEAD":
			return HEAD
		case "COPY":
			return COPY
		case "MOVE":
			return MOVE
		case "LOCK":
			return LOCK
		}
	case 5:
		switch str {
		case "TRACE":
			return TRACE
		case "MKCOL":
			return MKCOL
		case "LABEL":
			return LABEL
		case "MERGE":
			return MERGE
		}
	case 6:
		switch str {
		case "DELETE":
			return DELETE
		case "UNLOCK":
			return UNLOCK
		case "REPORT":
			return REPORT
		case "SEARCH":
			return SEARCH
		case "UPDATE":
			return UPDATE
		}
	case 7:
		switch str {
		case "OPTIONS":
			return OPTIONS
		case "CHECKIN":
			return CHECKIN
		}
	case 8:
		switch str {
		case "PROPFIND":
			return PROPFIND
		case "CHECKOUT":
			return CHECKOUT
		}
	case 9:
		if str == "PROPPATCH" {
			return PROPPATCH
		}
	case 10:
		switch str {
		case "UNCHECKOUT":
			return UNCHECKOUT
		case "MKACTIVITY":
			return MKACTIVITY
		}
	case 11:
		if str == "MKWORKSPACE" {
			return MKWORKSPACE
		}
	case 15:
		if str == "VERSION-CONTROL" {
			return VERSIONCONTROL
		}
	case 16:
		if str == "BASELINE-CONTROL" {
			return BASELINECONTROL
		}
	}

	return Unknown
}
