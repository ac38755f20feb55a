package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/indigo-web/reqstream/config"
	"github.com/indigo-web/reqstream/http/proto"
	"github.com/indigo-web/reqstream/http/status"
	"github.com/indigo-web/reqstream/http1"
	"github.com/indigo-web/reqstream/internal/httptest"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// jsonSink writes every event as a single JSON object per line.
type jsonSink struct {
	stream *json.Stream
}

func newJSONSink(w io.Writer) *jsonSink {
	return &jsonSink{
		stream: json.ConfigDefault.BorrowStream(w),
	}
}

func (j *jsonSink) OnEvent(e http1.Event) error {
	s := j.stream
	s.WriteObjectStart()
	s.WriteObjectField("event")
	s.WriteString(e.Kind.String())

	switch e.Kind {
	case http1.RequestLine:
		s.WriteMore()
		s.WriteObjectField("method")
		s.WriteString(e.Method.String())
		s.WriteMore()
		s.WriteObjectField("url")
		s.WriteString(string(e.URL))
		s.WriteMore()
		s.WriteObjectField("version")
		s.WriteString(e.Proto.String())
		s.WriteMore()
		s.WriteObjectField("packed_version")
		s.WriteInt(e.Proto.Packed())
		s.WriteMore()
		s.WriteObjectField("known_version")
		s.WriteBool(e.Proto.Proto() != proto.Unknown)
	case http1.Header:
		s.WriteMore()
		s.WriteObjectField("key")
		s.WriteString(string(e.Key))
		s.WriteMore()
		s.WriteObjectField("value")
		s.WriteString(string(e.Value))
	case http1.BodyFragment:
		s.WriteMore()
		s.WriteObjectField("body")
		s.WriteString(string(e.Body))
	}

	s.WriteObjectEnd()
	s.WriteRaw("\n")

	return s.Flush()
}

func (j *jsonSink) Close() {
	json.ConfigDefault.ReturnStream(j.stream)
}

// rawSink writes every completed message back in its normalized wire form.
type rawSink struct {
	w         io.Writer
	collector *http1.Collector
}

func (r *rawSink) OnEvent(e http1.Event) error {
	_ = r.collector.OnEvent(e)
	if e.Kind != http1.MessageEnd {
		return nil
	}

	_, err := r.w.Write(httptest.Dump(r.collector.Events()))
	r.collector.Reset()

	return err
}

const (
	formatJSON = "json"
	formatRaw  = "raw"
)

func newSink(format string, w io.Writer) (sink http1.Sink, release func(), err error) {
	switch format {
	case formatJSON:
		j := newJSONSink(w)
		return j, j.Close, nil
	case formatRaw:
		return &rawSink{w: w, collector: http1.NewCollector()}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown output format: %q", format)
	}
}

// dump reads the requests from r in pieces of pieceSize bytes and writes them to w in
// the given format. Reaching an upgrade request stops the dump without an error, as the
// rest of the input isn't HTTP anymore.
func dump(r io.Reader, w io.Writer, cfg *config.Config, format string, pieceSize int, log *zap.Logger) error {
	sink, release, err := newSink(format, w)
	if err != nil {
		return err
	}

	defer release()

	parser := http1.NewParser(cfg, sink)
	buff := make([]byte, pieceSize)
	var offset int64

	for {
		n, err := r.Read(buff)
		if n > 0 {
			consumed, ferr := parser.FeedAll(buff[:n])
			offset += int64(consumed)

			switch {
			case errors.Is(ferr, http1.ErrUpgradeRequested):
				log.Info("upgrade requested, stopping",
					zap.Int64("offset", offset),
					zap.Int("left_in_piece", n-consumed),
				)

				return nil
			case ferr != nil:
				code := http1.StatusCode(ferr)
				log.Error("malformed request",
					zap.Int64("offset", offset),
					zap.Stringer("phase", parser.Phase()),
					zap.Int("status", int(code)),
					zap.String("status_text", string(status.Text(code))),
					zap.Error(ferr),
				)

				return ferr
			}

			log.Debug("fed piece", zap.Int("size", n), zap.Stringer("phase", parser.Phase()))
		}

		switch {
		case errors.Is(err, io.EOF):
			if _, ferr := parser.Feed(nil); ferr != nil {
				log.Error("input ended in the middle of a request",
					zap.Int64("offset", offset),
					zap.Stringer("phase", parser.Phase()),
				)

				return ferr
			}

			return nil
		case err != nil:
			return err
		}
	}
}
