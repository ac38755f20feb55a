// Package chunked decodes request bodies in chunked transfer-encoding.
package chunked

import (
	"github.com/indigo-web/reqstream/internal/chars"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/hex"
)

// maxSizeDigits keeps the chunk size within uint64.
const maxSizeDigits = 16

// Decoder consumes the chunked body grammar:
//
//	chunk   = hex-size [ ";" extension ] CRLF data CRLF
//	body    = *chunk "0" [ ";" extension ] CRLF *( trailer-line CRLF ) CRLF
//
// Data of every chunk is reported exactly once, as a whole. Extensions and trailers are
// validated and discarded.
type Decoder struct {
	state    decoderState
	digits   int
	left     uint64
	total    uint64
	maxTotal uint64
	lineLen  int
	maxLine  int
	prealloc int
	chunk    *buffer.Buffer
}

// NewDecoder returns a decoder limiting the sum of all the chunk sizes by maxTotal and
// every trailer line by maxLine.
func NewDecoder(prealloc int, maxTotal uint64, maxLine int) *Decoder {
	return &Decoder{
		state:    eSize1Char,
		maxTotal: maxTotal,
		maxLine:  maxLine,
		prealloc: prealloc,
		chunk:    newChunkBuffer(prealloc, maxTotal),
	}
}

// SetLimits changes the limits. Must not be called in the middle of a body, as the
// partially collected chunk is lost.
func (d *Decoder) SetLimits(maxTotal uint64, maxLine int) {
	d.maxTotal = maxTotal
	d.maxLine = maxLine
	d.chunk = newChunkBuffer(d.prealloc, maxTotal)
}

func newChunkBuffer(prealloc int, maxTotal uint64) *buffer.Buffer {
	limit := clampInt(maxTotal)

	return buffer.New(min(prealloc, limit), limit)
}

// Decode processes the data until either a chunk is completed, the body is over or the
// data is exhausted. The number of consumed bytes is always returned, so the caller may
// call Decode again with the rest.
//
// Returned chunk is either a slice of data, if the chunk was met in it as a whole, or
// the internal buffer. In both cases, it's valid only until the next call.
func (d *Decoder) Decode(data []byte) (chunk []byte, n int, done bool, err error) {
	for i := 0; i < len(data); i++ {
		c := data[i]

		switch d.state {
		case eSize1Char:
			if !hex.Is(c) {
				return nil, i, false, ErrChunkSizeInvalid
			}

			d.left = uint64(hex.Un(c))
			d.digits = 1
			d.lineLen = 1
			d.state = eSize
		case eSize:
			switch {
			case hex.Is(c):
				if d.digits++; d.digits > maxSizeDigits {
					return nil, i, false, ErrChunkSizeInvalid
				}

				d.left = d.left<<4 | uint64(hex.Un(c))
			case c == '\r':
				d.state = eSizeLF
			case c == '\n':
				if err = d.sizeDone(); err != nil {
					return nil, i, false, err
				}
			case c == ';':
				d.state = eExtension
			case chars.IsWhitespace(c):
				d.state = eSizeWS
			default:
				return nil, i, false, ErrChunkSizeInvalid
			}
		case eSizeWS:
			switch {
			case chars.IsWhitespace(c):
			case c == ';':
				d.state = eExtension
			case c == '\r':
				d.state = eSizeLF
			case c == '\n':
				if err = d.sizeDone(); err != nil {
					return nil, i, false, err
				}
			default:
				return nil, i, false, ErrChunkSizeInvalid
			}
		case eExtension:
			switch {
			case c == '\r':
				d.state = eSizeLF
			case c == '\n':
				if err = d.sizeDone(); err != nil {
					return nil, i, false, err
				}
			case !chars.IsValue(c):
				return nil, i, false, ErrMalformedChunk
			default:
				if d.lineLen++; d.lineLen > d.maxLine {
					return nil, i, false, ErrTrailerTooLarge
				}
			}
		case eSizeLF:
			if c != '\n' {
				return nil, i, false, ErrMalformedChunk
			}

			if err = d.sizeDone(); err != nil {
				return nil, i, false, err
			}
		case eData:
			available := uint64(len(data) - i)
			if available >= d.left && d.chunk.SegmentLength() == 0 {
				// the whole chunk is right here, so no need to copy it
				end := i + int(d.left)
				d.state = eDataCR

				return data[i:end], end, false, nil
			}

			piece := data[i : i+int(min(available, d.left))]
			if !d.chunk.Append(piece) {
				return nil, i, false, ErrBodyTooLarge
			}

			d.left -= uint64(len(piece))
			if d.left > 0 {
				return nil, len(data), false, nil
			}

			d.state = eDataCR

			return d.chunk.Finish(), i + len(piece), false, nil
		case eDataCR:
			d.chunk.Clear()

			switch c {
			case '\r':
				d.state = eDataLF
			case '\n':
				d.state = eSize1Char
			default:
				return nil, i, false, ErrMalformedChunk
			}
		case eDataLF:
			if c != '\n' {
				return nil, i, false, ErrMalformedChunk
			}

			d.state = eSize1Char
		case eTrailer:
			switch c {
			case '\r':
				d.state = eTrailerLF
			case '\n':
				d.state = eDone
				return nil, i + 1, true, nil
			default:
				if !chars.IsValue(c) {
					return nil, i, false, ErrMalformedChunk
				}

				d.lineLen = 1
				d.state = eTrailerLine
			}
		case eTrailerLine:
			switch {
			case c == '\r':
				d.state = eTrailerLineLF
			case c == '\n':
				d.state = eTrailer
			case !chars.IsValue(c):
				return nil, i, false, ErrMalformedChunk
			default:
				if d.lineLen++; d.lineLen > d.maxLine {
					return nil, i, false, ErrTrailerTooLarge
				}
			}
		case eTrailerLineLF:
			if c != '\n' {
				return nil, i, false, ErrMalformedChunk
			}

			d.state = eTrailer
		case eTrailerLF:
			if c != '\n' {
				return nil, i, false, ErrMalformedChunk
			}

			d.state = eDone
			return nil, i + 1, true, nil
		case eDone:
			return nil, i, true, nil
		default:
			panic("unreachable code")
		}
	}

	return nil, len(data), d.state == eDone, nil
}

func (d *Decoder) sizeDone() error {
	if d.total > d.maxTotal || d.left > d.maxTotal-d.total {
		return ErrBodyTooLarge
	}

	d.total += d.left

	if d.left == 0 {
		d.state = eTrailer
	} else {
		d.state = eData
	}

	return nil
}

// Total returns the sum of sizes of all the chunks met so far.
func (d *Decoder) Total() uint64 {
	return d.total
}

// Reset prepares the decoder for the next body.
func (d *Decoder) Reset() {
	d.state = eSize1Char
	d.digits = 0
	d.left = 0
	d.total = 0
	d.lineLen = 0
	d.chunk.Clear()
}

func clampInt(n uint64) int {
	const maxInt = int(^uint(0) >> 1)

	if n > uint64(maxInt) {
		return maxInt
	}

	return int(n)
}
