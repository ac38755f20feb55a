package proto

import "strconv"

type Proto uint8

const (
	Unknown Proto = 0
	HTTP10  Proto = 1 << iota
	HTTP11
)

// MaxVersionDigits limits the number of digits in both major and minor versions.
const MaxVersionDigits = 3

// Version is a protocol version as it was met in the request line. It isn't
// restricted to known protocols, so HTTP/1.2 or HTTP/3.0 are valid versions.
type Version struct {
	Major, Minor uint16
}

// Packed returns the version as a single integer, major in higher 16 bits and minor
// in lower ones.
func (v Version) Packed() int {
	return int(v.Major)<<16 | int(v.Minor)
}

// Proto maps the version to a known protocol, returning Unknown for everything else.
func (v Version) Proto() Proto {
	if v.Major != 1 {
		return Unknown
	}

	switch v.Minor {
	case 0:
		return HTTP10
	case 1:
		return HTTP11
	default:
		return Unknown
	}
}

func (v Version) String() string {
	return "HTTP/" + strconv.Itoa(int(v.Major)) + "." + strconv.Itoa(int(v.Minor))
}
