package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/reqstream/config"
	"github.com/indigo-web/reqstream/http1"
	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func dumpString(t *testing.T, input string, pieceSize int) ([]map[string]any, error) {
	var out bytes.Buffer
	err := dump(strings.NewReader(input), &out, config.Default(), formatJSON, pieceSize, zaptest.NewLogger(t))

	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if len(line) == 0 {
			continue
		}

		event := make(map[string]any)
		require.NoError(t, json.Unmarshal([]byte(line), &event))
		events = append(events, event)
	}

	return events, err
}

func TestDump(t *testing.T) {
	const pipeline = "POST /form HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello" +
		"GET / HTTP/1.0\r\nHost: \"quoted\"\r\n\r\n"

	for _, pieceSize := range []int{1, 3, 4096} {
		events, err := dumpString(t, pipeline, pieceSize)
		require.NoError(t, err)

		var kinds, body []string
		for _, e := range events {
			kinds = append(kinds, e["event"].(string))
			if e["event"] == "BodyFragment" {
				body = append(body, e["body"].(string))
			}
		}

		require.Equal(t, "hello", strings.Join(body, ""))
		require.Equal(t, "MessageBegin", kinds[0])
		require.Equal(t, "MessageEnd", kinds[len(kinds)-1])
		require.Contains(t, events, map[string]any{"event": "Header", "key": "Host", "value": `"quoted"`})
		require.Contains(t, events, map[string]any{
			"event": "RequestLine", "method": "GET", "url": "/", "version": "HTTP/1.0",
			"packed_version": float64(1 << 16), "known_version": true,
		})
	}
}

func TestDump_Errors(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		events, err := dumpString(t, "GET / HTTP/1.1\r\n: oops\r\n\r\n", 8)
		require.ErrorIs(t, err, http1.ErrMalformedHeaderLine)
		require.Equal(t, "HeaderBegin", events[len(events)-1]["event"])
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := dumpString(t, "GET / HTTP/1.1\r\nHost: loc", 8)
		require.ErrorIs(t, err, http1.ErrUnexpectedEOF)
	})

	t.Run("unknown version", func(t *testing.T) {
		events, err := dumpString(t, "GET / HTTP/2.0\r\n\r\n", 4096)
		require.NoError(t, err)
		require.Contains(t, events, map[string]any{
			"event": "RequestLine", "method": "GET", "url": "/", "version": "HTTP/2.0",
			"packed_version": float64(2 << 16), "known_version": false,
		})
	})

	t.Run("upgrade", func(t *testing.T) {
		events, err := dumpString(t, "CONNECT example.com:443 HTTP/1.1\r\n\r\nbinary garbage", 4096)
		require.NoError(t, err)
		require.Equal(t, "RequestLine", events[len(events)-1]["event"])
	})
}

func TestDump_Raw(t *testing.T) {
	const input = "\r\nPOST /form HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n" +
		"GET / HTTP/1.0\r\nHost: localhost\r\n\r\n"
	const want = "POST /form HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello" +
		"GET / HTTP/1.0\r\nHost: localhost\r\n\r\n"

	for _, pieceSize := range []int{1, 5, 4096} {
		var out bytes.Buffer
		err := dump(strings.NewReader(input), &out, config.Default(), formatRaw, pieceSize, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.Equal(t, want, out.String())
	}
}

func TestDump_UnknownFormat(t *testing.T) {
	err := dump(strings.NewReader(""), io.Discard, config.Default(), "xml", 10, zaptest.NewLogger(t))
	require.Error(t, err)
}
