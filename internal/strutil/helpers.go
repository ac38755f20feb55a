package strutil

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// RStripWSBytes is RStripWS for byte slices.
func RStripWSBytes(b []byte) []byte {
	for i := len(b); i > 0; i-- {
		switch b[i-1] {
		case ' ', '\t':
		default:
			return b[:i]
		}
	}

	return b[:0]
}
