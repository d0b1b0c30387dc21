// Package textsize ties the sized text encoder and the capability probe
// protocol to a real terminal: queries are written to the output sink,
// reply bytes are read back from the input side, and the resulting
// capability flags gate what WriteSized emits.
package textsize

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/hnimtadd/textsize/logger"
	"github.com/hnimtadd/textsize/terminal/ansi"
	"github.com/hnimtadd/textsize/terminal/probe"
	"github.com/hnimtadd/textsize/terminal/sequences/osc"
)

// DefaultProbeTimeout bounds how long Probe waits for the terminal's
// replies before resolving fail-closed.
const DefaultProbeTimeout = 500 * time.Millisecond

type Options struct {
	// Output is the terminal's write side (typically stdout).
	Output io.Writer

	// Input is the terminal's reply channel (typically stdin, in raw
	// mode). Only the probe reads from it.
	Input io.Reader

	ProbeTimeout time.Duration
	Logger       logger.Logger
}

// Session owns one terminal connection's sizing state: the capability
// flags resolved by the probe and a cache of rendered parameter blocks.
//
// Before Probe runs, the capabilities sit at the fail-closed default and
// WriteSized degrades everything to plain text.
type Session struct {
	out          io.Writer
	in           io.Reader
	probeTimeout time.Duration
	logger       logger.Logger

	mu     sync.Mutex
	caps   probe.Result
	blocks map[uint64]string
}

func NewSession(opts Options) *Session {
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Session{
		out:          opts.Output,
		in:           opts.Input,
		probeTimeout: timeout,
		logger:       log,
		blocks:       make(map[uint64]string),
	}
}

// Probe runs both capability probes against the connected terminal and
// stores the result on the session.
//
// Both queries are written up front, each preceded by CR so the cursor
// starts in column 1, and the replies are consumed strictly in send
// order. A terminal that never replies is not an error: the probe
// resolves to the fail-closed result when the timeout or ctx expires.
// Cancellation may leave one blocked read on Input outstanding.
func (s *Session) Probe(ctx context.Context) (probe.Result, error) {
	prober := probe.NewProber(s.logger)

	var query []byte
	for _, c := range []probe.Capability{
		probe.CapabilityExplicitWidth,
		probe.CapabilityScaledText,
	} {
		query = append(query, ansi.C0.CR)
		query = append(query, prober.Track(c, 1)...)
	}
	if _, err := s.out.Write(query); err != nil {
		return probe.Result{}, err
	}

	type chunk struct {
		buf []byte
		err error
	}
	done := make(chan struct{})
	defer close(done)
	replies := make(chan chunk)
	go func() {
		for {
			buf := make([]byte, 64)
			n, err := s.in.Read(buf)
			select {
			case replies <- chunk{buf: buf[:n], err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	timer := time.NewTimer(s.probeTimeout)
	defer timer.Stop()

	var readErr error
wait:
	for !prober.Done() {
		select {
		case <-ctx.Done():
			readErr = ctx.Err()
			break wait
		case <-timer.C:
			s.logger.Debug("capability probe timed out, assuming no support")
			break wait
		case r := <-replies:
			prober.Feed(r.buf)
			if r.err != nil {
				// EOF and friends resolve fail-closed.
				s.logger.Debug("probe reply channel closed", "err", r.err)
				break wait
			}
		}
	}

	// Erase whatever the probes rendered.
	if _, err := s.out.Write([]byte("\r" + ansi.CSI + "K")); err != nil {
		s.logger.Warn("failed to erase probe artifacts", "err", err)
	}

	result := prober.Result()
	s.mu.Lock()
	s.caps = result
	s.mu.Unlock()
	s.logger.Info("terminal sizing capabilities",
		"explicitWidth", result.ExplicitWidth,
		"scaledText", result.ScaledText)
	return result, readErr
}

// Capabilities returns the last probed result, the fail-closed default
// before any probe completed.
func (s *Session) Capabilities() probe.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caps
}

// WriteSized sanitizes text and renders it through the sizing extension,
// degrading to what the probed terminal supports. Fields the terminal
// cannot honor are dropped; with no probed support at all the payload is
// written plainly, since on such terminals even a parameterless sized
// sequence renders nothing.
func (s *Session) WriteSized(p osc.ParamSet, text string) (int, error) {
	text = osc.SanitizePayload(text)
	caps := s.Capabilities()
	if !caps.ExplicitWidth && !caps.ScaledText {
		return s.out.Write([]byte(text))
	}
	if !caps.ScaledText {
		p.Scale = 0
		p.Numerator = 0
		p.Denominator = 0
	}
	if !caps.ExplicitWidth {
		p.Width = 0
	}
	return s.out.Write(osc.Compose(s.block(p), text))
}

// Write passes raw bytes through to the output sink unchanged.
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// block returns the rendered parameter block for p, reusing the cached
// rendering when this parameter set was seen before.
func (s *Session) block(p osc.ParamSet) string {
	key := p.Hash()
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.blocks[key]; ok {
		return b
	}
	b := p.Block()
	s.blocks[key] = b
	return b
}
