package grammar

import (
	"fmt"

	"github.com/indigo-web/reqstream/http/status"
)

var (
	ErrMalformedStartLine  = status.NewError(status.BadRequest, "malformed request line")
	ErrMalformedHeaderLine = status.NewError(status.BadRequest, "malformed header line")

	ErrMethodNotImplemented = fmt.Errorf(
		"%w (%w)", status.NewError(status.NotImplemented, "request method is not supported"), ErrMalformedStartLine,
	)
)
