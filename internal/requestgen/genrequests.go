// Package requestgen builds raw requests for tests and benchmarks.
package requestgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/reqstream/kv"
)

// Headers returns n headers, the last one being Host.
func Headers(n int) []kv.Pair {
	hdrs := make([]kv.Pair, 0, n)

	for i := 0; i < n-1; i++ {
		hdrs = append(hdrs, kv.Pair{
			Key:   "some-random-header-name-nobody-cares-about" + strconv.Itoa(i),
			Value: strings.Repeat("b", 100),
		})
	}

	return append(hdrs, kv.Pair{Key: "Host", Value: "localhost"})
}

func HeadersBlock(hdrs []kv.Pair) (buff []byte) {
	for _, pair := range hdrs {
		buff = append(buff, pair.Key+": "+pair.Value+"\r\n"...)
	}

	return buff
}

// Generate returns a GET request without body.
func Generate(uri string, hdrs []kv.Pair) (request []byte) {
	return Request("GET", "/"+uri, hdrs, nil)
}

// Request returns a request with Content-Length set, if body isn't empty.
func Request(method, uri string, hdrs []kv.Pair, body []byte) (request []byte) {
	request = append(request, method+" "+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)
	if len(body) > 0 {
		request = append(request, "Content-Length: "+strconv.Itoa(len(body))+"\r\n"...)
	}

	request = append(request, '\r', '\n')

	return append(request, body...)
}

// Chunked returns a request with body in chunked transfer-encoding, split into chunks
// of at most chunkSize bytes.
func Chunked(method, uri string, hdrs []kv.Pair, body []byte, chunkSize int) (request []byte) {
	request = append(request, method+" "+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)
	request = append(request, "Transfer-Encoding: chunked\r\n\r\n"...)

	return append(request, ChunkedBody(body, chunkSize)...)
}

// ChunkedBody encodes the body, splitting it into chunks of at most chunkSize bytes.
func ChunkedBody(body []byte, chunkSize int) (encoded []byte) {
	for len(body) > 0 {
		n := min(chunkSize, len(body))
		encoded = strconv.AppendUint(encoded, uint64(n), 16)
		encoded = append(encoded, "\r\n"...)
		encoded = append(encoded, body[:n]...)
		encoded = append(encoded, "\r\n"...)
		body = body[n:]
	}

	return append(encoded, "0\r\n\r\n"...)
}
