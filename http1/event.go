package http1

import (
	"strconv"

	"github.com/indigo-web/reqstream/http/method"
	"github.com/indigo-web/reqstream/http/proto"
)

type EventKind uint8

const (
	MessageBegin EventKind = iota + 1
	HeaderBegin
	Header
	RequestLine
	BodyFragment
	MessageEnd
)

func (k EventKind) String() string {
	switch k {
	case MessageBegin:
		return "MessageBegin"
	case HeaderBegin:
		return "HeaderBegin"
	case Header:
		return "Header"
	case RequestLine:
		return "RequestLine"
	case BodyFragment:
		return "BodyFragment"
	case MessageEnd:
		return "MessageEnd"
	default:
		return "EventKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Event is a single parse event. Only the fields related to the Kind are set:
//   - RequestLine: URL, Method and Proto;
//   - Header: Key and Value;
//   - BodyFragment: Body.
//
// All the byte slices are borrowed either from the parser's buffers or from the fed
// data, so they stay valid only during the Sink call. Copy them if they're needed later.
type Event struct {
	Kind   EventKind
	Method method.Method
	Proto  proto.Version
	URL    []byte
	Key    []byte
	Value  []byte
	Body   []byte
}

func (e Event) String() string {
	switch e.Kind {
	case RequestLine:
		return "RequestLine{" + e.Method.String() + " " + strconv.Quote(string(e.URL)) + " " + e.Proto.String() + "}"
	case Header:
		return "Header{" + strconv.Quote(string(e.Key)) + ": " + strconv.Quote(string(e.Value)) + "}"
	case BodyFragment:
		return "BodyFragment{" + strconv.Quote(string(e.Body)) + "}"
	default:
		return e.Kind.String()
	}
}

// Sink receives parse events. Returning a non-nil error aborts parsing: the error is
// wrapped into SinkError and returned from the Feed call, which delivered the event.
type Sink interface {
	OnEvent(Event) error
}

// SinkFunc is an adapter allowing plain functions to be used as a Sink.
type SinkFunc func(Event) error

func (f SinkFunc) OnEvent(e Event) error {
	return f(e)
}
