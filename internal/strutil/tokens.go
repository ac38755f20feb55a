package strutil

import (
	"iter"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Tokens walks over elements of a comma-separated list, as the one in Connection or
// Transfer-Encoding headers. Each element is stripped of surrounding whitespaces and
// parameters. Empty elements are skipped.
func Tokens(list string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(list) > 0 {
			var token string
			comma := strings.IndexByte(list, ',')
			if comma == -1 {
				token, list = list, ""
			} else {
				token, list = list[:comma], list[comma+1:]
			}

			if semicolon := strings.IndexByte(token, ';'); semicolon != -1 {
				token = token[:semicolon]
			}

			token = RStripWS(LStripWS(token))
			if len(token) == 0 {
				continue
			}

			if !yield(token) {
				return
			}
		}
	}
}

// ContainsToken reports whether the list has the token, case-insensitively.
func ContainsToken(list, token string) bool {
	for elem := range Tokens(list) {
		if strcomp.EqualFold(elem, token) {
			return true
		}
	}

	return false
}

// LastToken returns the last non-empty element of the list.
func LastToken(list string) (last string) {
	for elem := range Tokens(list) {
		last = elem
	}

	return last
}
