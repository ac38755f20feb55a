package http1

import (
	"math"

	"github.com/indigo-web/reqstream/config"
	"github.com/indigo-web/reqstream/http/method"
	"github.com/indigo-web/reqstream/internal/chars"
	"github.com/indigo-web/reqstream/internal/chunked"
	"github.com/indigo-web/reqstream/internal/grammar"
	"github.com/indigo-web/reqstream/internal/strutil"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

type parserState uint8

const (
	eStart parserState = iota + 1
	eMethod
	eURL
	eVersion
	eVersionLF
	eHeaderLine
	eHeaderField
	eHeaderValueOWS
	eHeaderValue
	eHeaderValueLF
	eHeadersEndLF
	eBodyFixed
	eBodyChunked
	eComplete
	eUpgraded
	eDead
)

type headerState uint8

const (
	hNone headerState = iota
	hField
	hValue
)

// Parser is a stream-based HTTP/1.x requests parser. It is fed with pieces of data as
// they arrive and reports everything it recognized to the Sink synchronously, so the
// data is never buffered as a whole. Only the tokens split between pieces are
// accumulated, each in its own bounded buffer.
//
// A parser processes one message at a time. Once a message is complete, the parser
// either resets itself (config.Message.AutoReset) or refuses further data until Reset.
// Any error, except for ErrUpgradeRequested, is fatal: the parser refuses any data with
// ErrParserDead until it's reset.
//
// Parser is not safe for concurrent use.
type Parser struct {
	state       parserState
	headerState headerState
	sink        Sink
	autoReset   bool
	err         error

	methodBuff *buffer.Buffer
	url        *buffer.Buffer
	field      *buffer.Buffer
	value      *buffer.Buffer
	// valueWS holds the whitespace trailing the value collected so far. It joins the
	// value only if something else follows, otherwise it's stripped.
	valueWS    *buffer.Buffer
	wsOverflow bool
	version    grammar.Version
	method     method.Method

	limits        config.Limits
	nextLimits    config.Limits
	pendingLimits bool
	urlPrealloc   int
	fieldPrealloc int

	contentLength uint64
	bodyLeft      uint64
	chunked       bool
	upgrade       bool
	connUpgrade   bool
	decoder       *chunked.Decoder
}

// NewParser returns a parser reporting to the sink. Nil config stands for config.Default().
func NewParser(cfg *config.Config, sink Sink) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}

	if sink == nil {
		sink = SinkFunc(func(Event) error { return nil })
	}

	p := &Parser{
		state:         eStart,
		sink:          sink,
		autoReset:     cfg.Message.AutoReset,
		methodBuff:    buffer.New(method.MaxLength, method.MaxLength),
		limits:        cfg.Limits(),
		urlPrealloc:   cfg.URI.BufferSize.Default,
		fieldPrealloc: cfg.Headers.FieldSize.Default,
		decoder: chunked.NewDecoder(
			cfg.Body.BufferPrealloc, cfg.Body.MaxSize, cfg.Headers.FieldSize.Maximal,
		),
	}
	p.allocBuffers()

	return p
}

// allocBuffers (re)creates the accumulation buffers according to current limits.
func (p *Parser) allocBuffers() {
	l := p.limits
	p.url = buffer.New(min(p.urlPrealloc, l.MaxURLSize), l.MaxURLSize)
	p.field = buffer.New(min(p.fieldPrealloc, l.MaxFieldSize), l.MaxFieldSize)
	p.value = buffer.New(min(p.fieldPrealloc, l.MaxFieldSize), l.MaxFieldSize)
	p.valueWS = buffer.New(0, l.MaxFieldSize)
	p.wsOverflow = false
}

// Feed parses the data, reporting recognized events to the sink. Zero-length data means
// the end of the input: it's an error to end the input in the middle of a message.
//
// The number of consumed bytes may be less than len(data) only if the message was
// completed before the data was exhausted, or the upgrade was requested. In the former
// case, the rest belongs to the next message and must be fed again. In the latter, it
// belongs to the new protocol.
func (p *Parser) Feed(data []byte) (n int, err error) {
	switch p.state {
	case eDead:
		return 0, ErrParserDead
	case eUpgraded:
		return 0, ErrUpgradeRequested
	}

	if len(data) == 0 {
		return 0, p.eof()
	}

	if p.state == eComplete {
		return 0, p.die(ErrMessageComplete)
	}

	n, err = p.parse(data)
	if IsFatal(err) {
		p.die(err)
	}

	return n, err
}

// FeedAll feeds the data until it's exhausted, so it may contain several pipelined
// messages. It stops at the first error, including ErrUpgradeRequested.
func (p *Parser) FeedAll(data []byte) (n int, err error) {
	for {
		consumed, err := p.Feed(data[n:])
		n += consumed
		if err != nil || n == len(data) {
			return n, err
		}
	}
}

func (p *Parser) parse(data []byte) (int, error) {
	for i := 0; i < len(data); {
		switch p.state {
		case eStart:
			if c := data[i]; c == '\r' || c == '\n' {
				// empty lines preceding the request line are ignored (RFC 9112, 2.2)
				i++
				continue
			}

			if err := p.emit(Event{Kind: MessageBegin}); err != nil {
				return i, err
			}

			p.state = eMethod
		case eMethod:
			end, done, err := grammar.Method(data, i)
			if err != nil {
				return end, err
			}

			if !p.methodBuff.Append(data[i:end]) {
				return end, ErrMethodNotImplemented
			}

			if i = end; !done {
				continue
			}

			if p.methodBuff.SegmentLength() == 0 {
				return i, ErrMalformedStartLine
			}

			p.method = method.Parse(uf.B2S(p.methodBuff.Finish()))
			if p.method == method.Unknown {
				return i, ErrMethodNotImplemented
			}

			i++
			p.state = eURL
		case eURL:
			end, done, err := grammar.URL(data, i)
			if err != nil {
				return end, err
			}

			if !p.url.Append(data[i:end]) {
				return end, errURLTooLong
			}

			if i = end; !done {
				continue
			}

			if p.url.SegmentLength() == 0 {
				return i, ErrMalformedStartLine
			}

			i++
			p.state = eVersion
		case eVersion:
			end, done, err := p.version.Scan(data, i)
			if err != nil {
				return end, err
			}

			if i = end; !done {
				continue
			}

			if data[i] == '\r' {
				i++
				p.state = eVersionLF
				continue
			}

			i++
			if err = p.versionDone(); err != nil {
				return i, err
			}
		case eVersionLF:
			if data[i] != '\n' {
				return i, ErrMalformedStartLine
			}

			i++
			if err := p.versionDone(); err != nil {
				return i, err
			}
		case eHeaderLine:
			if err := p.flushHeader(); err != nil {
				return i, err
			}

			switch data[i] {
			case '\r':
				i++
				p.state = eHeadersEndLF
			case '\n':
				i++
				if done, err := p.headersDone(); done || err != nil {
					return i, err
				}
			default:
				p.headerState = hField
				p.state = eHeaderField
			}
		case eHeaderField:
			end, done, err := grammar.Field(data, i)
			if err != nil {
				return end, err
			}

			if !p.field.Append(data[i:end]) {
				return end, errFieldTooLarge
			}

			if i = end; !done {
				continue
			}

			if p.field.SegmentLength() == 0 {
				return i, ErrMalformedHeaderLine
			}

			i++
			p.headerState = hValue
			p.state = eHeaderValueOWS
		case eHeaderValueOWS:
			if i = grammar.SkipWhitespace(data, i); i < len(data) {
				p.state = eHeaderValue
			}
		case eHeaderValue:
			end, done, err := grammar.Value(data, i)
			if err != nil {
				return end, err
			}

			if err = p.appendValue(data[i:end]); err != nil {
				return end, err
			}

			if i = end; !done {
				continue
			}

			if data[i] == '\r' {
				p.state = eHeaderValueLF
			} else {
				p.state = eHeaderLine
			}

			i++
		case eHeaderValueLF:
			if data[i] != '\n' {
				return i, ErrMalformedHeaderLine
			}

			i++
			p.state = eHeaderLine
		case eHeadersEndLF:
			if data[i] != '\n' {
				return i, ErrMalformedHeaderLine
			}

			i++
			if done, err := p.headersDone(); done || err != nil {
				return i, err
			}
		case eBodyFixed:
			n := int(min(p.bodyLeft, uint64(len(data)-i)))
			fragment := data[i : i+n]
			i += n
			p.bodyLeft -= uint64(n)

			if err := p.emit(Event{Kind: BodyFragment, Body: fragment}); err != nil {
				return i, err
			}

			if p.bodyLeft == 0 {
				return i, p.complete()
			}
		case eBodyChunked:
			chunk, n, done, err := p.decoder.Decode(data[i:])
			i += n
			if err != nil {
				return i, err
			}

			if chunk != nil {
				if err = p.emit(Event{Kind: BodyFragment, Body: chunk}); err != nil {
					return i, err
				}
			}

			if done {
				return i, p.complete()
			}
		default:
			panic("unreachable code")
		}
	}

	return len(data), nil
}

func (p *Parser) versionDone() error {
	p.state = eHeaderLine
	p.headerState = hNone

	return p.emit(Event{Kind: HeaderBegin})
}

// flushHeader emits the header, whose value was read completely. Switching from the value
// back to a field or to the end of the headers section is the only signal of that.
func (p *Parser) flushHeader() error {
	if p.headerState != hValue {
		return nil
	}

	key, value := p.field.Finish(), p.value.Finish()
	if err := p.inspectHeader(key, value); err != nil {
		return err
	}

	if err := p.emit(Event{Kind: Header, Key: key, Value: value}); err != nil {
		return err
	}

	p.field.Clear()
	p.value.Clear()
	p.valueWS.Clear()
	p.wsOverflow = false
	p.headerState = hNone

	return nil
}

// appendValue accumulates a piece of the header value. Trailing whitespace is put aside
// until something else follows it, so the whitespace which is stripped in the end isn't
// counted against the limit.
func (p *Parser) appendValue(piece []byte) error {
	core := strutil.RStripWSBytes(piece)
	if len(core) > 0 {
		if p.wsOverflow || !p.value.Append(p.valueWS.Finish()) || !p.value.Append(core) {
			return errValueTooLarge
		}

		p.valueWS.Clear()
	}

	if !p.valueWS.Append(piece[len(core):]) {
		p.wsOverflow = true
	}

	return nil
}

// inspectHeader picks up headers affecting the way the body is read.
func (p *Parser) inspectHeader(key, value []byte) error {
	k := uf.B2S(key)

	switch len(key) {
	case len("Upgrade"):
		if strcomp.EqualFold(k, "Upgrade") {
			p.upgrade = len(value) > 0
		}
	case len("Connection"):
		if strcomp.EqualFold(k, "Connection") && strutil.ContainsToken(uf.B2S(value), "upgrade") {
			p.connUpgrade = true
		}
	case len("Content-Length"):
		if strcomp.EqualFold(k, "Content-Length") {
			return p.parseContentLength(value)
		}
	case len("Transfer-Encoding"):
		if strcomp.EqualFold(k, "Transfer-Encoding") {
			if !strcomp.EqualFold(strutil.LastToken(uf.B2S(value)), "chunked") {
				return ErrUnsupportedEncoding
			}

			p.chunked = true
		}
	}

	return nil
}

func (p *Parser) parseContentLength(value []byte) error {
	if len(value) == 0 {
		return ErrBadContentLength
	}

	var length uint64

	for _, c := range value {
		if !chars.IsDigit(c) {
			return ErrBadContentLength
		}

		if length > (math.MaxUint64-9)/10 {
			return errBodyTooLarge
		}

		if length = length*10 + uint64(c-'0'); length > p.limits.MaxBodySize {
			return errBodyTooLarge
		}
	}

	p.contentLength = length

	return nil
}

// headersDone chooses, how the body must be read. If there's no body, the message is
// completed right away and done is true.
func (p *Parser) headersDone() (done bool, err error) {
	err = p.emit(Event{
		Kind:   RequestLine,
		URL:    p.url.Finish(),
		Method: p.method,
		Proto:  p.version.Version(),
	})
	if err != nil {
		return false, err
	}

	switch {
	case p.method == method.CONNECT, p.upgrade && p.connUpgrade:
		p.state = eUpgraded
		return false, ErrUpgradeRequested
	case p.chunked:
		p.decoder.Reset()
		p.state = eBodyChunked
	case p.contentLength > 0:
		p.bodyLeft = p.contentLength
		p.state = eBodyFixed
	default:
		return true, p.complete()
	}

	return false, nil
}

func (p *Parser) complete() error {
	if err := p.emit(Event{Kind: MessageEnd}); err != nil {
		return err
	}

	if p.autoReset {
		p.Reset()
	} else {
		p.state = eComplete
	}

	return nil
}

func (p *Parser) emit(e Event) error {
	if err := p.sink.OnEvent(e); err != nil {
		return &SinkError{Err: err}
	}

	return nil
}

func (p *Parser) eof() error {
	switch p.state {
	case eStart, eComplete:
		return nil
	default:
		return p.die(ErrUnexpectedEOF)
	}
}

func (p *Parser) die(err error) error {
	p.state = eDead
	p.err = err

	return err
}

// Reset brings the parser into its initial state, so it's ready to parse a new message.
// Accumulated memory is kept for reuse.
func (p *Parser) Reset() {
	p.state = eStart
	p.headerState = hNone
	p.err = nil
	p.methodBuff.Clear()
	p.url.Clear()
	p.field.Clear()
	p.value.Clear()
	p.valueWS.Clear()
	p.wsOverflow = false
	p.version.Reset()
	p.method = method.Unknown
	p.contentLength = 0
	p.bodyLeft = 0
	p.chunked = false
	p.upgrade = false
	p.connUpgrade = false
	p.decoder.Reset()

	if p.pendingLimits {
		p.applyLimits()
	}
}

// Err returns the error which made the parser dead, if any.
func (p *Parser) Err() error {
	return p.err
}

// Limits returns the size limits, including ones set but not yet applied.
func (p *Parser) Limits() config.Limits {
	if p.pendingLimits {
		return p.nextLimits
	}

	return p.limits
}

// SetLimits changes size limits. Between messages they're applied right away. In the
// middle of a message, the current one is finished under the old limits and the new
// ones take effect starting from the next message.
func (p *Parser) SetLimits(l config.Limits) {
	p.nextLimits = l

	switch p.state {
	case eStart, eComplete, eDead, eUpgraded:
		p.applyLimits()
	default:
		p.pendingLimits = true
	}
}

func (p *Parser) applyLimits() {
	p.limits = p.nextLimits
	p.allocBuffers()
	p.decoder.SetLimits(p.limits.MaxBodySize, p.limits.MaxFieldSize)
	p.pendingLimits = false
}
