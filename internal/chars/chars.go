// Package chars holds character classes of the HTTP/1 request grammar.
package chars

type class uint8

const (
	tchar class = 1 << iota
	methodChar
	urlChar
	valueChar
	digit
)

var table = func() (t [256]class) {
	for c := 0; c < 256; c++ {
		switch {
		case c >= 'A' && c <= 'Z':
			t[c] |= tchar | methodChar
		case c >= 'a' && c <= 'z':
			t[c] |= tchar
		case c >= '0' && c <= '9':
			t[c] |= tchar | digit
		}

		if c > 0x20 && c < 0x7f || c >= 0x80 {
			t[c] |= urlChar
		}

		if c >= 0x20 && c < 0x7f || c == '\t' || c >= 0x80 {
			t[c] |= valueChar
		}
	}

	for _, c := range "!#$%&'*+-.^_`|~" {
		t[c] |= tchar
	}

	t['-'] |= methodChar
	t['_'] |= methodChar

	return t
}()

// IsToken reports whether c is a tchar as defined in RFC 9110, 5.6.2.
func IsToken(c byte) bool {
	return table[c]&tchar != 0
}

// IsMethod reports whether c may appear in a request method. Methods are
// case-sensitive and all the registered ones are upper-case.
func IsMethod(c byte) bool {
	return table[c]&methodChar != 0
}

// IsURL reports whether c may appear in a request target: visible ASCII characters
// and obs-text, no whitespace nor controls.
func IsURL(c byte) bool {
	return table[c]&urlChar != 0
}

// IsValue reports whether c may appear in a header field value.
func IsValue(c byte) bool {
	return table[c]&valueChar != 0
}

func IsDigit(c byte) bool {
	return table[c]&digit != 0
}

// IsWhitespace reports whether c is an optional whitespace (SP or HTAB).
func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t'
}
