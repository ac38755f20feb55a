// Package httptest serializes parsed requests back into their wire form.
package httptest

import (
	"strconv"

	"github.com/indigo-web/reqstream/http1"
	"github.com/indigo-web/reqstream/kv"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Dump serializes every message completed in events. The framing gets normalized: bodies
// are always sent with Content-Length, so Transfer-Encoding and Content-Length headers of
// the parsed request are dropped. Events are expected to be owned (e.g. recorded by
// http1.Collector).
func Dump(events []http1.Event) (buff []byte) {
	var (
		line    http1.Event
		headers = kv.New()
		body    []byte
	)

	for _, e := range events {
		switch e.Kind {
		case http1.MessageBegin:
			headers.Clear()
			body = body[:0]
		case http1.Header:
			if isFraming(e.Key) {
				continue
			}

			headers.Add(uf.B2S(e.Key), uf.B2S(e.Value))
		case http1.RequestLine:
			line = e
		case http1.BodyFragment:
			body = append(body, e.Body...)
		case http1.MessageEnd:
			buff = request(buff, line, headers, body)
		}
	}

	return buff
}

func isFraming(key []byte) bool {
	return strcomp.EqualFold(uf.B2S(key), "Content-Length") ||
		strcomp.EqualFold(uf.B2S(key), "Transfer-Encoding")
}

func request(buff []byte, line http1.Event, headers *kv.Storage, body []byte) []byte {
	buff = append(buff, line.Method.String()...)
	buff = space(buff)
	buff = append(buff, line.URL...)
	buff = space(buff)
	buff = append(buff, line.Proto.String()...)
	buff = crlf(buff)

	for _, h := range headers.Expose() {
		buff = header(buff, h)
	}

	if len(body) > 0 {
		buff = append(buff, "Content-Length: "...)
		buff = strconv.AppendInt(buff, int64(len(body)), 10)
		buff = crlf(buff)
	}

	buff = crlf(buff)

	return append(buff, body...)
}

func space(b []byte) []byte {
	return append(b, ' ')
}

func crlf(b []byte) []byte {
	return append(b, '\r', '\n')
}

func header(b []byte, h kv.Pair) []byte {
	b = append(b, h.Key...)
	b = append(b, ':', ' ')
	b = append(b, h.Value...)
	return crlf(b)
}
