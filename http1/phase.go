package http1

type Phase uint8

const (
	PhaseStart Phase = iota + 1
	PhaseMethod
	PhaseURL
	PhaseVersion
	PhaseHeaderField
	PhaseHeaderValue
	PhaseBody
	PhaseComplete
	PhaseUpgraded
	PhaseDead
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMethod:
		return "method"
	case PhaseURL:
		return "url"
	case PhaseVersion:
		return "version"
	case PhaseHeaderField:
		return "header field"
	case PhaseHeaderValue:
		return "header value"
	case PhaseBody:
		return "body"
	case PhaseComplete:
		return "complete"
	case PhaseUpgraded:
		return "upgraded"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Phase returns which part of the message the parser expects next.
func (p *Parser) Phase() Phase {
	switch p.state {
	case eStart:
		return PhaseStart
	case eMethod:
		return PhaseMethod
	case eURL:
		return PhaseURL
	case eVersion, eVersionLF:
		return PhaseVersion
	case eHeaderLine, eHeaderField, eHeadersEndLF:
		return PhaseHeaderField
	case eHeaderValueOWS, eHeaderValue, eHeaderValueLF:
		return PhaseHeaderValue
	case eBodyFixed, eBodyChunked:
		return PhaseBody
	case eComplete:
		return PhaseComplete
	case eUpgraded:
		return PhaseUpgraded
	default:
		return PhaseDead
	}
}
