package grammar

import (
	"errors"
	"testing"

	"github.com/indigo-web/reqstream/http/proto"
	"github.com/stretchr/testify/require"
)

type scanner func(data []byte, from int) (end int, done bool, err error)

func TestTokens(t *testing.T) {
	tcs := []struct {
		Name    string
		Scanner scanner
		Data    string
		From    int
		End     int
		Done    bool
		Err     error
	}{
		{"method", Method, "GET /", 0, 3, true, nil},
		{"method incomplete", Method, "OPTI", 0, 4, false, nil},
		{"method lower-case", Method, "get /", 0, 0, false, ErrMalformedStartLine},
		{"method tab", Method, "GET\t/", 0, 3, false, ErrMalformedStartLine},
		{"url", URL, "GET /hello?a=b HTTP/1.1", 4, 14, true, nil},
		{"url incomplete", URL, "/favi", 0, 5, false, nil},
		{"url control", URL, "/fa\x00vi ", 0, 3, false, ErrMalformedStartLine},
		{"url crlf", URL, "/\r\n", 0, 1, false, ErrMalformedStartLine},
		{"field", Field, "Host: localhost", 0, 4, true, nil},
		{"field incomplete", Field, "Content-Le", 0, 10, false, nil},
		{"field space", Field, "Host : localhost", 0, 4, false, ErrMalformedHeaderLine},
		{"field crlf", Field, "absdfkajl\r\n", 0, 9, false, ErrMalformedHeaderLine},
		{"value cr", Value, "text/html; q=0.9\r\n", 0, 16, true, nil},
		{"value lf", Value, "text/html\n", 0, 9, true, nil},
		{"value incomplete", Value, "gzip, def", 5, 9, false, nil},
		{"value control", Value, "gzip\x01", 0, 4, false, ErrMalformedHeaderLine},
	}

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			end, done, err := tc.Scanner([]byte(tc.Data), tc.From)
			require.Equal(t, tc.End, end)
			require.Equal(t, tc.Done, done)
			if tc.Err == nil {
				require.NoError(t, err)
			} else {
				require.True(t, errors.Is(err, tc.Err), err)
			}
		})
	}
}

func TestSkipWhitespace(t *testing.T) {
	require.Equal(t, 3, SkipWhitespace([]byte(" \t value"), 0))
	require.Equal(t, 2, SkipWhitespace([]byte("  "), 0))
	require.Equal(t, 2, SkipWhitespace([]byte("a b"), 1))
	require.Equal(t, 0, SkipWhitespace([]byte("a b"), 0))
}

func TestErrors(t *testing.T) {
	require.True(t, errors.Is(ErrMethodNotImplemented, ErrMalformedStartLine))
	require.False(t, errors.Is(ErrMethodNotImplemented, ErrMalformedHeaderLine))
}

func scanVersion(pieces ...string) (proto.Version, bool, error) {
	var v Version

	for _, piece := range pieces {
		end, done, err := v.Scan([]byte(piece), 0)
		if err != nil || done {
			if done && end != len(piece)-1 {
				panic("delimiter must be the last character of the last piece")
			}

			return v.Version(), done, err
		}
	}

	return v.Version(), false, nil
}

func TestVersion(t *testing.T) {
	t.Run("whole", func(t *testing.T) {
		v, done, err := scanVersion("HTTP/1.1\r")
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, proto.Version{Major: 1, Minor: 1}, v)
	})

	t.Run("bare lf", func(t *testing.T) {
		v, done, err := scanVersion("HTTP/1.0\n")
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, proto.Version{Major: 1, Minor: 0}, v)
	})

	t.Run("byte by byte", func(t *testing.T) {
		v, done, err := scanVersion("H", "T", "T", "P", "/", "1", "2", ".", "3", "4", "5", "\r")
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, proto.Version{Major: 12, Minor: 345}, v)
	})

	t.Run("incomplete", func(t *testing.T) {
		_, done, err := scanVersion("HTTP/1.")
		require.NoError(t, err)
		require.False(t, done)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, version := range []string{
			"http/1.1\r", "HTTP/.1\r", "HTTP/1.\r", "HTTP/1\r", "HTTP/1.1 \r",
			"HTTP/1234.1\r", "HTTP/1.1234\r", "HTTPS/1.1\r", "HTTP/a.b\r",
		} {
			_, _, err := scanVersion(version)
			require.ErrorIs(t, err, ErrMalformedStartLine, version)
		}
	})

	t.Run("reset", func(t *testing.T) {
		var v Version
		_, _, err := v.Scan([]byte("HTTP/2.0\r"), 0)
		require.NoError(t, err)
		v.Reset()
		_, done, err := v.Scan([]byte("HTTP/1.1\n"), 0)
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, proto.Version{Major: 1, Minor: 1}, v.Version())
	})
}
