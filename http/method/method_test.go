package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for i := Unknown; i <= PATCH; i++ {
		b.Run(i.String(), func(b *testing.B) {
			m := i.String()
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	for method := GET; method <= PATCH; method++ {
		assert.Equal(t, method.String(), Parse(method.String()).String())
		assert.LessOrEqual(t, len(method.String()), MaxLength)
	}

	assert.Equal(t, Unknown, Parse("get"))
	assert.Equal(t, Unknown, Parse("PROPFIND"))
	assert.Equal(t, Unknown, Parse(""))
	assert.Equal(t, "UNKNOWN", Method(200).String())
}
