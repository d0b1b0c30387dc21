// Package csi holds the one CSI exchange the probe protocol relies on:
// the cursor position report (DSR 6).
package csi

import (
	"fmt"

	"github.com/hnimtadd/textsize/terminal/ansi"
)

// RequestCursorPosition asks the terminal where the cursor is. Any
// ANSI-compatible terminal answers with ESC [ <row> ; <col> R.
const RequestCursorPosition = ansi.CSI + "6n"

// Parameters larger than this are not plausible cursor coordinates; the
// accumulator saturates instead of overflowing.
const maxReportParam = 1 << 15

// PositionReport is a decoded cursor position reply. Row and Col are
// 1-based, as reported by the terminal.
type PositionReport struct {
	Row int
	Col int
}

func (r PositionReport) String() string {
	return fmt.Sprintf("CPR %d;%d", r.Row, r.Col)
}

type scanState uint8

const (
	stateGround scanState = iota
	stateEscape
	stateParams
)

// ReportScanner incrementally recognizes cursor position reports in a
// reply stream. Bytes that are not part of a report, including other CSI
// replies, are skipped; the scanner resynchronizes on the next ESC.
//
// The zero value is ready to use. Not safe for concurrent use.
type ReportScanner struct {
	state   scanState
	row     int
	col     int
	seenSep bool
}

// Next consumes one reply byte. It returns a decoded report and true when
// c completes one.
func (s *ReportScanner) Next(c byte) (PositionReport, bool) {
	switch s.state {
	case stateGround:
		if c == ansi.C0.ESC {
			s.state = stateEscape
		}
	case stateEscape:
		switch c {
		case '[':
			s.state = stateParams
			s.row, s.col, s.seenSep = 0, 0, false
		case ansi.C0.ESC:
			// stay, a fresh escape restarts the sequence
		default:
			s.state = stateGround
		}
	case stateParams:
		switch {
		case c >= '0' && c <= '9':
			if s.seenSep {
				s.col = accumulate(s.col, c)
			} else {
				s.row = accumulate(s.row, c)
			}
		case c == ';' && !s.seenSep:
			s.seenSep = true
		case c == 'R' && s.seenSep:
			s.state = stateGround
			return PositionReport{Row: s.row, Col: s.col}, true
		case c == ansi.C0.ESC:
			s.state = stateEscape
		default:
			// some other CSI sequence, not a position report
			s.state = stateGround
		}
	}
	return PositionReport{}, false
}

func accumulate(v int, c byte) int {
	if v >= maxReportParam {
		return v
	}
	return v*10 + int(c-'0')
}
