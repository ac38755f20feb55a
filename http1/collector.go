package http1

import (
	"bytes"
	"iter"

	"github.com/indigo-web/reqstream/kv"
)

// Collector is a Sink recording every event it receives. Unlike the parser, it owns
// the data: all the byte slices are copied.
type Collector struct {
	events  []Event
	headers kv.Storage
}

func NewCollector() *Collector {
	return new(Collector)
}

func (c *Collector) OnEvent(e Event) error {
	e.URL = bytes.Clone(e.URL)
	e.Key = bytes.Clone(e.Key)
	e.Value = bytes.Clone(e.Value)
	e.Body = bytes.Clone(e.Body)
	c.events = append(c.events, e)

	if e.Kind == Header {
		c.headers.Add(string(e.Key), string(e.Value))
	}

	return nil
}

// Events returns all the recorded events in order they were received.
func (c *Collector) Events() []Event {
	return c.events
}

// Kinds returns kinds of all the recorded events.
func (c *Collector) Kinds() []EventKind {
	kinds := make([]EventKind, len(c.events))
	for i, e := range c.events {
		kinds[i] = e.Kind
	}

	return kinds
}

// RequestLine returns the last recorded RequestLine event.
func (c *Collector) RequestLine() (e Event, found bool) {
	for i := len(c.events) - 1; i >= 0; i-- {
		if c.events[i].Kind == RequestLine {
			return c.events[i], true
		}
	}

	return e, false
}

// Headers iterates over recorded headers as key-value pairs.
func (c *Collector) Headers() iter.Seq2[string, string] {
	return c.headers.Pairs()
}

// Header returns the first recorded value of the header, case-insensitively.
func (c *Collector) Header(key string) (value string, found bool) {
	return c.headers.Get(key)
}

// HeaderValues iterates over all the recorded values of the header.
func (c *Collector) HeaderValues(key string) iter.Seq[string] {
	return c.headers.Values(key)
}

// Body returns all the recorded body fragments glued together.
func (c *Collector) Body() []byte {
	var body []byte
	for _, e := range c.events {
		if e.Kind == BodyFragment {
			body = append(body, e.Body...)
		}
	}

	return body
}

func (c *Collector) Reset() {
	c.events = c.events[:0]
	c.headers.Clear()
}
