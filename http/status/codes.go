package status

type (
	Code   uint16
	Status string
)

// HTTP status codes a request parser may want a server to respond with.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	SwitchingProtocols Code = 101 // RFC 9110, 15.2.2

	BadRequest                  Code = 400 // RFC 9110, 15.5.1
	RequestEntityTooLarge       Code = 413 // RFC 9110, 15.5.14
	RequestURITooLong           Code = 414 // RFC 9110, 15.5.15
	RequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5

	NotImplemented Code = 501 // RFC 9110, 15.6.2
)

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case SwitchingProtocols:
		return "Switching Protocols"
	case BadRequest:
		return "Bad Request"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case RequestURITooLong:
		return "Request URI Too Long"
	case RequestHeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	case NotImplemented:
		return "Not Implemented"
	default:
		return ""
	}
}
