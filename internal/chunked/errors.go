package chunked

import (
	"fmt"

	"github.com/indigo-web/reqstream/http/status"
)

var (
	ErrChunkSizeInvalid = status.NewError(status.BadRequest, "invalid chunk size")
	ErrMalformedChunk   = status.NewError(status.BadRequest, "malformed chunk framing")
	ErrTrailerTooLarge  = status.NewError(status.RequestHeaderFieldsTooLarge, "too large trailer line")

	ErrBodyTooLarge = fmt.Errorf(
		"%w (%w)", status.NewError(status.RequestEntityTooLarge, "chunked body exceeds the limit"), ErrChunkSizeInvalid,
	)
)
