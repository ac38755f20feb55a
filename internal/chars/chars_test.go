package chars

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClasses(t *testing.T) {
	t.Run("token", func(t *testing.T) {
		for _, c := range []byte("Content-Length_x.1!#$%&'*+^`|~") {
			require.True(t, IsToken(c), "%q", c)
		}

		for _, c := range []byte(" \t:\r\n\"(),/;<=>?@[\\]{}\x00\x7f\x80") {
			require.False(t, IsToken(c), "%q", c)
		}
	})

	t.Run("method", func(t *testing.T) {
		for _, c := range []byte("GETPOSTM-SEARCH_X") {
			require.True(t, IsMethod(c), "%q", c)
		}

		for _, c := range []byte("get 1/\t") {
			require.False(t, IsMethod(c), "%q", c)
		}
	})

	t.Run("url", func(t *testing.T) {
		for _, c := range []byte("/path?a=b&c=%20#frag*\x80\xff") {
			require.True(t, IsURL(c), "%q", c)
		}

		for _, c := range []byte(" \t\r\n\x00\x1f\x7f") {
			require.False(t, IsURL(c), "%q", c)
		}
	})

	t.Run("value", func(t *testing.T) {
		for _, c := range []byte("text/html; q=0.9\t\x80") {
			require.True(t, IsValue(c), "%q", c)
		}

		for _, c := range []byte("\r\n\x00\x7f") {
			require.False(t, IsValue(c), "%q", c)
		}
	})

	t.Run("digit", func(t *testing.T) {
		for c := 0; c < 256; c++ {
			require.Equal(t, c >= '0' && c <= '9', IsDigit(byte(c)), "%q", c)
		}
	})
}
