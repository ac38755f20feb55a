package grammar

import (
	"github.com/indigo-web/reqstream/http/proto"
	"github.com/indigo-web/reqstream/internal/chars"
)

const scheme = "HTTP/"

type versionState uint8

// first len(scheme) states are positions in the scheme
const (
	eMajorFirst versionState = iota + versionState(len(scheme))
	eMajor
	eMinorFirst
	eMinor
)

// Version scans the protocol version of the request line: HTTP/<digits>.<digits>,
// terminated by either CR or LF. As the token is short, the scanner keeps the parsed
// value by itself instead of requiring it to be accumulated, so it's stateful.
type Version struct {
	state   versionState
	digits  int
	version proto.Version
}

func (v *Version) Scan(data []byte, from int) (end int, done bool, err error) {
	for i := from; i < len(data); i++ {
		c := data[i]

		switch v.state {
		case eMajorFirst, eMinorFirst:
			if !chars.IsDigit(c) {
				return i, false, ErrMalformedStartLine
			}

			v.push(c)
			v.state++
		case eMajor:
			switch {
			case c == '.':
				v.digits = 0
				v.state = eMinorFirst
			case chars.IsDigit(c):
				if !v.push(c) {
					return i, false, ErrMalformedStartLine
				}
			default:
				return i, false, ErrMalformedStartLine
			}
		case eMinor:
			switch {
			case c == '\r', c == '\n':
				return i, true, nil
			case chars.IsDigit(c):
				if !v.push(c) {
					return i, false, ErrMalformedStartLine
				}
			default:
				return i, false, ErrMalformedStartLine
			}
		default:
			if c != scheme[v.state] {
				return i, false, ErrMalformedStartLine
			}

			v.state++
		}
	}

	return len(data), false, nil
}

func (v *Version) push(c byte) (ok bool) {
	if v.digits++; v.digits > proto.MaxVersionDigits {
		return false
	}

	if v.state < eMinorFirst {
		v.version.Major = v.version.Major*10 + uint16(c-'0')
	} else {
		v.version.Minor = v.version.Minor*10 + uint16(c-'0')
	}

	return true
}

// Version returns the scanned version. It's complete only after Scan reported done.
func (v *Version) Version() proto.Version {
	return v.version
}

func (v *Version) Reset() {
	*v = Version{}
}
