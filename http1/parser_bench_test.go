package http1

import (
	"strconv"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/reqstream/internal/requestgen"
)

func nopSink(Event) error {
	return nil
}

func benchmarkRequest(b *testing.B, request []byte) {
	parser := NewParser(nil, SinkFunc(nopSink))
	b.SetBytes(int64(len(request)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = parser.Feed(request)
	}
}

func BenchmarkParser_GET(b *testing.B) {
	for _, n := range []int{5, 10, 50} {
		b.Run(strconv.Itoa(n)+" headers", func(b *testing.B) {
			benchmarkRequest(b, requestgen.Generate(strings.Repeat("a", 500), requestgen.Headers(n)))
		})
	}
}

func BenchmarkParser_POST(b *testing.B) {
	body := []byte(uniuri.NewLen(64 * 1024))

	b.Run("fixed length", func(b *testing.B) {
		benchmarkRequest(b, requestgen.Request("POST", "/", requestgen.Headers(10), body))
	})

	b.Run("chunked", func(b *testing.B) {
		benchmarkRequest(b, requestgen.Chunked("POST", "/", requestgen.Headers(10), body, 4096))
	})
}

func BenchmarkParser_Split(b *testing.B) {
	request := requestgen.Chunked("POST", "/", requestgen.Headers(10), []byte(uniuri.NewLen(4096)), 512)
	parts := splitIntoParts(request, 64)
	parser := NewParser(nil, SinkFunc(nopSink))
	b.SetBytes(int64(len(request)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, part := range parts {
			_, _ = parser.FeedAll(part)
		}
	}
}
