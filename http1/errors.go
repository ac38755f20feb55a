package http1

import (
	"errors"
	"fmt"

	"github.com/indigo-web/reqstream/http/status"
	"github.com/indigo-web/reqstream/internal/chunked"
	"github.com/indigo-web/reqstream/internal/grammar"
)

var (
	ErrMalformedStartLine   = grammar.ErrMalformedStartLine
	ErrMalformedHeaderLine  = grammar.ErrMalformedHeaderLine
	ErrMethodNotImplemented = grammar.ErrMethodNotImplemented
	ErrChunkSizeInvalid     = chunked.ErrChunkSizeInvalid
	ErrMalformedChunk       = chunked.ErrMalformedChunk

	ErrBadContentLength    = fmt.Errorf("%w: bad Content-Length", ErrMalformedHeaderLine)
	ErrUnsupportedEncoding = fmt.Errorf("%w: the final transfer coding is not chunked", ErrMalformedHeaderLine)
	ErrUnexpectedEOF       = status.NewError(status.BadRequest, "input ended in the middle of a message")

	ErrParserDead      = errors.New("parser has failed and must be reset")
	ErrMessageComplete = errors.New("message is complete, the parser must be reset")

	// ErrUpgradeRequested isn't a failure: the request asks to switch the protocol, so
	// everything after the consumed bytes belongs to the new one.
	ErrUpgradeRequested = errors.New("upgrade requested")
)

type Limit uint8

const (
	LimitURL Limit = iota + 1
	LimitField
	LimitValue
	LimitBody
)

func (l Limit) String() string {
	switch l {
	case LimitURL:
		return "url"
	case LimitField:
		return "field"
	case LimitValue:
		return "value"
	case LimitBody:
		return "body"
	default:
		return "unknown"
	}
}

// LimitError is returned when an accumulated token or a body exceeds its configured
// ceiling.
type LimitError struct {
	Which Limit
}

func (l *LimitError) Error() string {
	return l.Which.String() + " size limit exceeded"
}

// StatusCode returns the status code, suitable for this error.
func (l *LimitError) StatusCode() status.Code {
	switch l.Which {
	case LimitURL:
		return status.RequestURITooLong
	case LimitField, LimitValue:
		return status.RequestHeaderFieldsTooLarge
	default:
		return status.RequestEntityTooLarge
	}
}

// Is makes every LimitError match an empty one, so the family can be checked by
// errors.Is(err, new(LimitError)).
func (l *LimitError) Is(target error) bool {
	t, ok := target.(*LimitError)
	return ok && (t.Which == 0 || t.Which == l.Which)
}

var (
	errURLTooLong    error = &LimitError{Which: LimitURL}
	errFieldTooLarge error = &LimitError{Which: LimitField}
	errValueTooLarge error = &LimitError{Which: LimitValue}
	errBodyTooLarge  error = &LimitError{Which: LimitBody}
)

// SinkError is returned when the Sink aborts parsing.
type SinkError struct {
	Err error
}

func (s *SinkError) Error() string {
	return "aborted by sink: " + s.Err.Error()
}

func (s *SinkError) Unwrap() error {
	return s.Err
}

// IsFatal reports whether err leaves the parser requiring Reset(). Everything except
// nil and ErrUpgradeRequested is.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrUpgradeRequested)
}

// StatusCode returns the status code most suitable to respond with to the peer which
// sent a request causing the error.
func StatusCode(err error) status.Code {
	var limit *LimitError
	if errors.As(err, &limit) {
		return limit.StatusCode()
	}

	if errors.Is(err, ErrUpgradeRequested) {
		return status.SwitchingProtocols
	}

	return status.CodeOf(err)
}
