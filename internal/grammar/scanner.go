// Package grammar recognizes token boundaries of the HTTP/1 request line and header
// lines. Scanners operate on borrowed data and never copy it: they report the offset
// at which the token ends, so the caller decides where its bytes go.
//
// Every scanner accepts the data and the cursor to start from. If the delimiter is
// found, its offset is returned with done=true. Otherwise, the token continues past
// the end of data and len(data) is returned. On a byte that can't belong to the token,
// its offset is returned alongside with an error.
package grammar

import (
	"github.com/indigo-web/reqstream/internal/chars"
)

// Method scans a request method, terminated by a single space.
func Method(data []byte, from int) (end int, done bool, err error) {
	for i := from; i < len(data); i++ {
		switch c := data[i]; {
		case c == ' ':
			return i, true, nil
		case !chars.IsMethod(c):
			return i, false, ErrMalformedStartLine
		}
	}

	return len(data), false, nil
}

// URL scans a request target, terminated by a single space.
func URL(data []byte, from int) (end int, done bool, err error) {
	for i := from; i < len(data); i++ {
		switch c := data[i]; {
		case c == ' ':
			return i, true, nil
		case !chars.IsURL(c):
			return i, false, ErrMalformedStartLine
		}
	}

	return len(data), false, nil
}

// Field scans a header field name, terminated by a colon.
func Field(data []byte, from int) (end int, done bool, err error) {
	for i := from; i < len(data); i++ {
		switch c := data[i]; {
		case c == ':':
			return i, true, nil
		case !chars.IsToken(c):
			return i, false, ErrMalformedHeaderLine
		}
	}

	return len(data), false, nil
}

// Value scans a header field value, terminated by either CR or LF. Leading whitespaces
// must be skipped by SkipWhitespace in advance, trailing ones are left to the caller.
func Value(data []byte, from int) (end int, done bool, err error) {
	for i := from; i < len(data); i++ {
		switch c := data[i]; {
		case c == '\r', c == '\n':
			return i, true, nil
		case !chars.IsValue(c):
			return i, false, ErrMalformedHeaderLine
		}
	}

	return len(data), false, nil
}

// SkipWhitespace returns the offset of the first non-whitespace character or len(data).
func SkipWhitespace(data []byte, from int) int {
	for i := from; i < len(data); i++ {
		if !chars.IsWhitespace(data[i]) {
			return i
		}
	}

	return len(data)
}
