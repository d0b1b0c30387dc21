// Package probe implements the capability probe protocol: a query/response
// exchange that infers, at runtime, whether the connected terminal
// implements the text sizing extension.
//
// There is no "not supported" reply to wait for. Each query renders a
// sized single space and immediately asks for a cursor position report.
// A terminal that implements the extension renders the space and advances
// the cursor; one that does not swallows the whole OSC string, payload
// included, and the cursor stays put. The reported column is the only
// signal.
package probe

import (
	"slices"

	"github.com/hnimtadd/textsize/logger"
	"github.com/hnimtadd/textsize/terminal/ansi"
	"github.com/hnimtadd/textsize/terminal/sequences/csi"
	"github.com/hnimtadd/textsize/terminal/sequences/osc"
	dw "github.com/mattn/go-runewidth"
)

// Flip this to true when you want per-byte trace output while debugging
// reply streams.
const debug = false

// probePayload is the single space each capability query renders.
const probePayload = " "

// Capability identifies one independently probed feature.
type Capability uint8

const (
	// CapabilityExplicitWidth: the terminal honors w= explicit cell widths.
	CapabilityExplicitWidth Capability = iota
	// CapabilityScaledText: the terminal honors s= integer cell scales.
	CapabilityScaledText
)

func (c Capability) String() string {
	switch c {
	case CapabilityExplicitWidth:
		return "explicit-width"
	case CapabilityScaledText:
		return "scaled-text"
	}
	return "unknown"
}

// State of a single capability probe.
type State uint8

const (
	StateNotProbed State = iota
	StateProbeSent
	StateAwaitingReply
	StateResolved
)

// Result carries the two capability flags. The zero value is the
// fail-closed default: nothing supported.
type Result struct {
	ExplicitWidth bool
	ScaledText    bool
}

// WidthQuery builds the explicit-width capability query: a width-1 space
// followed by a cursor position request.
func WidthQuery() []byte {
	return append(osc.EncodeWidth(1, probePayload), csi.RequestCursorPosition...)
}

// ScaleQuery builds the scaled-text capability query: a scale-2 space
// followed by a cursor position request.
func ScaleQuery() []byte {
	return append(osc.EncodeScale(2, probePayload), csi.RequestCursorPosition...)
}

type pendingProbe struct {
	capability Capability
	state      State

	// The 1-based column the cursor sat in when the query was written.
	startCol int

	// Minimum column advance that counts as positive confirmation.
	minAdvance int

	supported bool
}

// Prober interprets the terminal's reply stream for a sequence of
// capability queries. Replies are matched to probes strictly in the order
// the queries were sent; the position report protocol carries no
// correlation ids.
//
// The caller owns the I/O: it writes the query bytes and feeds whatever it
// reads back into Feed. A probe whose reply never arrives stays
// unresolved and reports false.
type Prober struct {
	scanner csi.ReportScanner
	pending []*pendingProbe
	next    int

	logger logger.Logger
}

func NewProber(log logger.Logger) *Prober {
	return &Prober{logger: log}
}

// Track registers a query that is about to be written, in send order.
// startCol is the 1-based column the cursor sits in when the query bytes
// reach the terminal. It returns the query bytes to write.
func (p *Prober) Track(c Capability, startCol int) []byte {
	pr := &pendingProbe{
		capability: c,
		state:      StateProbeSent,
		startCol:   startCol,
	}
	var query []byte
	switch c {
	case CapabilityExplicitWidth:
		// An ignoring terminal swallows the payload, so any advance at
		// all means the space was rendered under the width directive.
		pr.minAdvance = 1
		query = WidthQuery()
	case CapabilityScaledText:
		// A scaled space must advance further than an unscaled one.
		pr.minAdvance = dw.StringWidth(probePayload) + 1
		query = ScaleQuery()
	}
	p.pending = append(p.pending, pr)
	return query
}

// Feed consumes reply bytes from the terminal, resolving pending probes
// as their position reports complete. Non-report bytes are skipped.
func (p *Prober) Feed(buf []byte) {
	if head := p.head(); head != nil {
		head.state = StateAwaitingReply
	}
	for c := range slices.Values(buf) {
		if debug {
			p.logger.Debug("probe reply byte", "byte", ansi.String(c))
		}
		report, ok := p.scanner.Next(c)
		if !ok {
			continue
		}
		p.resolve(report)
	}
}

func (p *Prober) resolve(report csi.PositionReport) {
	head := p.head()
	if head == nil {
		p.logger.Warn("position report with no pending probe",
			"report", report.String())
		return
	}
	p.next++
	if next := p.head(); next != nil {
		// the reply stream has reached the next probe in line
		next.state = StateAwaitingReply
	}

	advance := report.Col - head.startCol
	head.supported = advance >= head.minAdvance
	head.state = StateResolved
	p.logger.Debug("capability probe resolved",
		"capability", head.capability.String(),
		"advance", advance,
		"supported", head.supported)
}

func (p *Prober) head() *pendingProbe {
	if p.next >= len(p.pending) {
		return nil
	}
	return p.pending[p.next]
}

// Done reports whether every tracked probe has resolved.
func (p *Prober) Done() bool {
	return p.next >= len(p.pending)
}

// StateOf returns the probe state of a capability, StateNotProbed when no
// query for it was tracked.
func (p *Prober) StateOf(c Capability) State {
	for _, pr := range p.pending {
		if pr.capability == c {
			return pr.state
		}
	}
	return StateNotProbed
}

// Result collapses the probes into capability flags. Unresolved probes
// read as unsupported: assuming no support is always safe, assuming
// support without positive confirmation would corrupt the display.
func (p *Prober) Result() Result {
	var res Result
	for _, pr := range p.pending {
		if pr.state != StateResolved || !pr.supported {
			continue
		}
		switch pr.capability {
		case CapabilityExplicitWidth:
			res.ExplicitWidth = true
		case CapabilityScaledText:
			res.ScaledText = true
		}
	}
	return res
}
