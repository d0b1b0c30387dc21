package osc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hnimtadd/textsize/terminal/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// Vertical alignment of a sized span inside its cell block. The constant
// values are the wire codes; top is the default and is never emitted.
type VerticalAlign uint8

const (
	VerticalAlignTop    VerticalAlign = 0
	VerticalAlignBottom VerticalAlign = 1
	VerticalAlignCenter VerticalAlign = 2
)

// Horizontal alignment of a sized span inside its cell block. The constant
// values are the wire codes; left is the default and is never emitted.
type HorizontalAlign uint8

const (
	HorizontalAlignLeft   HorizontalAlign = 0
	HorizontalAlignRight  HorizontalAlign = 1
	HorizontalAlignCenter HorizontalAlign = 2
)

// Valid parameter ranges of the sized text sequence.
const (
	ScaleMax    = 7
	WidthMax    = 7
	FractionMax = 15
)

var ErrParameterOutOfRange = errors.New("sized text parameter out of range")

// ParamSet is the full set of sizing parameters for one sized text span.
// The zero value is the all-default set: every field sits at its protocol
// default (Scale zero is treated as the default scale of one) and encodes
// to an empty parameter block.
//
// A ParamSet is a value consumed by a single encode call; it carries no
// state between calls.
type ParamSet struct {
	// Scale requests that the span occupy Scale x effective-width columns
	// by Scale rows. Valid range 1-7, default 1.
	Scale uint8

	// Width forces the cell width of the span. Valid range 0-7; zero lets
	// the terminal detect the width from the text's display width.
	Width uint8

	// Numerator and Denominator request a fractional scale. Both range
	// 0-15. The pair is active only when Numerator > 0 and Denominator >
	// Numerator; otherwise both are treated as absent regardless of their
	// literal values.
	Numerator   uint8
	Denominator uint8

	Vertical   VerticalAlign
	Horizontal HorizontalAlign
}

func (p ParamSet) String() string {
	return fmt.Sprintf("OSC %d %q", SizedTextCode, p.Block())
}

// normalize clamps every field to its valid range. Encode applies this so
// that it stays total; strict callers reject instead via Validate.
func (p ParamSet) normalize() ParamSet {
	p.Scale = utils.Clamp(p.Scale, 1, ScaleMax)
	p.Width = utils.Clamp(p.Width, 0, WidthMax)
	p.Numerator = utils.Clamp(p.Numerator, 0, FractionMax)
	p.Denominator = utils.Clamp(p.Denominator, 0, FractionMax)
	p.Vertical = utils.Clamp(p.Vertical, VerticalAlignTop, VerticalAlignCenter)
	p.Horizontal = utils.Clamp(p.Horizontal, HorizontalAlignLeft, HorizontalAlignCenter)
	return p
}

// Validate reports whether every field sits inside its valid range. A zero
// Scale passes: it reads as the unset default of one.
func (p ParamSet) Validate() error {
	switch {
	case p.Scale > ScaleMax:
		return fmt.Errorf("%w: scale %d not in 1-%d", ErrParameterOutOfRange, p.Scale, ScaleMax)
	case p.Width > WidthMax:
		return fmt.Errorf("%w: width %d not in 0-%d", ErrParameterOutOfRange, p.Width, WidthMax)
	case p.Numerator > FractionMax:
		return fmt.Errorf("%w: numerator %d not in 0-%d", ErrParameterOutOfRange, p.Numerator, FractionMax)
	case p.Denominator > FractionMax:
		return fmt.Errorf("%w: denominator %d not in 0-%d", ErrParameterOutOfRange, p.Denominator, FractionMax)
	case p.Vertical > VerticalAlignCenter:
		return fmt.Errorf("%w: vertical align %d", ErrParameterOutOfRange, p.Vertical)
	case p.Horizontal > HorizontalAlignCenter:
		return fmt.Errorf("%w: horizontal align %d", ErrParameterOutOfRange, p.Horizontal)
	}
	return nil
}

// fractionActive is the "contributes" predicate of the fractional pair.
// The pair is atomic: unless the ordering rule holds neither field is
// emitted, even when one of the two values is individually nonzero.
func (p ParamSet) fractionActive() bool {
	return p.Numerator > 0 && p.Denominator > p.Numerator
}

// IsDefault reports whether no field would contribute to the wire output.
func (p ParamSet) IsDefault() bool {
	return p.normalize().Block() == ""
}

// Block renders the canonical colon-joined parameter block, empty when all
// fields sit at their defaults. Field order is fixed: scale, width,
// fractional pair, vertical align, horizontal align. A field is rendered
// iff it differs from its default; emitting defaults would be accepted by
// a compliant terminal but this is the canonical minimal form.
func (p ParamSet) Block() string {
	p = p.normalize()
	fields := make([]string, 0, 5)
	if p.Scale > 1 {
		fields = append(fields, "s="+strconv.Itoa(int(p.Scale)))
	}
	if p.Width > 0 {
		fields = append(fields, "w="+strconv.Itoa(int(p.Width)))
	}
	if p.fractionActive() {
		fields = append(fields,
			"n="+strconv.Itoa(int(p.Numerator))+":d="+strconv.Itoa(int(p.Denominator)))
	}
	if p.Vertical != VerticalAlignTop {
		fields = append(fields, "v="+strconv.Itoa(int(p.Vertical)))
	}
	if p.Horizontal != HorizontalAlignLeft {
		fields = append(fields, "h="+strconv.Itoa(int(p.Horizontal)))
	}
	return strings.Join(fields, ":")
}

// Hash returns a stable hash of the parameter set so callers can key
// caches on distinct sets without comparing every field.
func (p ParamSet) Hash() uint64 {
	hashed, err := hashstructure.Hash(p, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash param set: %v", err))
	return hashed
}
