package config

type (
	URIBufferSize struct {
		Default, Maximal int
	}

	HeadersFieldSize struct {
		Default, Maximal int
	}
)

type (
	URI struct {
		// BufferSize controls the buffer storing the request target. Default is the initial
		// capacity, Maximal is the hard limit: a longer URL fails the whole message.
		BufferSize URIBufferSize
	}

	Headers struct {
		// FieldSize limits both header names and header values. They are accumulated in
		// separate buffers, so a single header may take up to 2*Maximal bytes. The same
		// limit applies to every trailer line of a chunked body.
		FieldSize HeadersFieldSize
	}

	Body struct {
		// MaxSize is the maximal declared (Content-Length) or observed (sum of chunk sizes)
		// length of a request body.
		MaxSize uint64
		// BufferPrealloc is the initial capacity of the buffer collecting a single chunk of
		// chunked bodies. Fixed-length bodies are never copied.
		BufferPrealloc int
	}

	Message struct {
		// AutoReset brings the parser back into its initial state right after a message
		// is completed, so pipelined and keep-alive requests can be fed without calling
		// Reset() in between. If disabled, feeding a completed parser is an error.
		AutoReset bool
	}
)

// Config holds the restrictions and pre-allocations of a parser instance.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI
	Headers Headers
	Body    Body
	Message Message
}

// Default returns default config.
func Default() *Config {
	return &Config{
		URI: URI{
			BufferSize: URIBufferSize{
				Default: 256,
				Maximal: 2 * 1024,
			},
		},
		Headers: Headers{
			FieldSize: HeadersFieldSize{
				Default: 64,
				Maximal: 4 * 1024,
			},
		},
		Body: Body{
			MaxSize:        1024 * 1024, // 1 megabyte
			BufferPrealloc: 4 * 1024,
		},
		Message: Message{
			AutoReset: true,
		},
	}
}

// Limits is a flat view of all the size ceilings of the config.
type Limits struct {
	MaxURLSize   int
	MaxFieldSize int
	MaxBodySize  uint64
}

// Limits returns current size ceilings.
func (c *Config) Limits() Limits {
	return Limits{
		MaxURLSize:   c.URI.BufferSize.Maximal,
		MaxFieldSize: c.Headers.FieldSize.Maximal,
		MaxBodySize:  c.Body.MaxSize,
	}
}

// SetLimits overrides the ceilings, keeping pre-allocations intact. Pre-allocations
// exceeding the new ceilings are lowered.
func (c *Config) SetLimits(l Limits) {
	c.URI.BufferSize.Maximal = l.MaxURLSize
	c.URI.BufferSize.Default = min(c.URI.BufferSize.Default, l.MaxURLSize)
	c.Headers.FieldSize.Maximal = l.MaxFieldSize
	c.Headers.FieldSize.Default = min(c.Headers.FieldSize.Default, l.MaxFieldSize)
	c.Body.MaxSize = l.MaxBodySize
}
