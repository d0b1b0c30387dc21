// Package osc encodes the OSC 66 text sizing sequence: a span of payload
// text rendered by the terminal at a non-default cell scale, fractional
// scale, explicit cell width, or alignment.
//
// Wire shape:
//
//	ESC ] 66 [; field (: field)*] ; <text> ESC \
//
// The semicolon between the code and the parameter block is mandatory even
// when no field contributes, so the minimal sequence is ESC]66;;<text>ESC\.
// Terminals that do not implement the extension consume the whole sequence
// as an unknown OSC string and render nothing.
package osc

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/hnimtadd/textsize/terminal/ansi"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// SizedTextCode is the OSC code of the text sizing sequence.
const SizedTextCode = 66

// ErrPayloadContainsTerminator reports a payload that would close the
// sequence early. Only EncodeStrict checks for it.
var ErrPayloadContainsTerminator = errors.New("payload contains sequence-terminating bytes")

// Encode serializes a parameter set and payload into the canonical sized
// text sequence. It is pure and total: out-of-range parameters are clamped
// to the nearest bound, and identical inputs always yield identical bytes.
//
// The payload is emitted verbatim; the protocol has no escaping mechanism,
// so text containing ESC or the two-byte string terminator produces
// undefined wire output. Callers sanitize first (see SanitizePayload) or
// use EncodeStrict.
func Encode(p ParamSet, text string) []byte {
	return Compose(p.Block(), text)
}

// EncodeStrict is Encode with fail-fast validation: it rejects
// out-of-range parameters and terminator-carrying payloads instead of
// clamping or emitting corrupted output.
func EncodeStrict(p ParamSet, text string) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(text, "\x1b\x9c") {
		return nil, ErrPayloadContainsTerminator
	}
	return Encode(p, text), nil
}

// Compose assembles the final byte sequence from an already-rendered
// parameter block (see ParamSet.Block) and the payload text.
func Compose(block string, text string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(ansi.OSC) + 2 + 1 + len(block) + 1 + len(text) + len(ansi.ST))
	buf.WriteString(ansi.OSC)
	buf.WriteString(strconv.Itoa(SizedTextCode))
	buf.WriteByte(';')
	buf.WriteString(block)
	buf.WriteByte(';')
	buf.WriteString(text)
	buf.WriteString(ansi.ST)
	return buf.Bytes()
}

// EncodeScale sizes text at an integer cell scale.
func EncodeScale(scale uint8, text string) []byte {
	return Encode(ParamSet{Scale: scale}, text)
}

// EncodeWidth sizes text at an explicit cell width.
func EncodeWidth(width uint8, text string) []byte {
	return Encode(ParamSet{Width: width}, text)
}

// EncodeFraction sizes text at a fractional scale numerator/denominator.
func EncodeFraction(numerator, denominator uint8, text string) []byte {
	return Encode(ParamSet{Numerator: numerator, Denominator: denominator}, text)
}

// EncodeScaleWidth sizes text at an integer scale and explicit width.
func EncodeScaleWidth(scale, width uint8, text string) []byte {
	return Encode(ParamSet{Scale: scale, Width: width}, text)
}

// payloadStripper drops every rune that could terminate or corrupt the
// sequence: C0 controls (ESC included), DEL, and the C1 range containing
// the single-byte string terminator. Ill-formed bytes come out as the
// replacement character, which is harmless inside an OSC string.
var payloadStripper = runes.Remove(runes.Predicate(func(r rune) bool {
	return r < 0x20 || r == rune(ansi.C0.DEL) || (r >= 0x80 && r <= 0x9f)
}))

// SanitizePayload strips control bytes from text so it satisfies Encode's
// payload precondition.
func SanitizePayload(text string) string {
	clean, _, err := transform.String(payloadStripper, text)
	if err != nil {
		// runes.Remove never reports an error.
		return ""
	}
	return clean
}
