package osc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		params   ParamSet
		text     string
		expected string
	}{
		{
			name:     "all defaults: empty field block",
			params:   ParamSet{},
			text:     "hi",
			expected: "\x1b]66;;hi\x1b\\",
		},
		{
			name:     "explicit defaults: same empty block",
			params:   ParamSet{Scale: 1, Width: 0},
			text:     "hi",
			expected: "\x1b]66;;hi\x1b\\",
		},
		{
			name:     "scale only",
			params:   ParamSet{Scale: 2},
			text:     "Hello",
			expected: "\x1b]66;s=2;Hello\x1b\\",
		},
		{
			name:     "width only",
			params:   ParamSet{Width: 3},
			text:     "w",
			expected: "\x1b]66;w=3;w\x1b\\",
		},
		{
			name:     "fractional scale",
			params:   ParamSet{Numerator: 1, Denominator: 2},
			text:     "x",
			expected: "\x1b]66;n=1:d=2;x\x1b\\",
		},
		{
			name:     "inactive fraction: denominator not above numerator",
			params:   ParamSet{Numerator: 3, Denominator: 2},
			text:     "x",
			expected: "\x1b]66;;x\x1b\\",
		},
		{
			name:     "inactive fraction: zero numerator",
			params:   ParamSet{Denominator: 4},
			text:     "x",
			expected: "\x1b]66;;x\x1b\\",
		},
		{
			name:     "scale and width join with colon",
			params:   ParamSet{Scale: 2, Width: 2},
			text:     "🐈",
			expected: "\x1b]66;s=2:w=2;🐈\x1b\\",
		},
		{
			name:     "scale and horizontal center",
			params:   ParamSet{Scale: 2, Horizontal: HorizontalAlignCenter},
			text:     "CENTER",
			expected: "\x1b]66;s=2:h=2;CENTER\x1b\\",
		},
		{
			name:     "vertical bottom only",
			params:   ParamSet{Vertical: VerticalAlignBottom},
			text:     "b",
			expected: "\x1b]66;v=1;b\x1b\\",
		},
		{
			name: "every field contributes in fixed order",
			params: ParamSet{
				Scale:       3,
				Width:       2,
				Numerator:   1,
				Denominator: 2,
				Vertical:    VerticalAlignCenter,
				Horizontal:  HorizontalAlignRight,
			},
			text:     "all",
			expected: "\x1b]66;s=3:w=2:n=1:d=2:v=2:h=1;all\x1b\\",
		},
		{
			name:     "out-of-range scale clamps to the upper bound",
			params:   ParamSet{Scale: 9},
			text:     "c",
			expected: "\x1b]66;s=7;c\x1b\\",
		},
		{
			name:     "out-of-range width clamps to the upper bound",
			params:   ParamSet{Width: 12},
			text:     "c",
			expected: "\x1b]66;w=7;c\x1b\\",
		},
		{
			name:     "empty payload",
			params:   ParamSet{Scale: 2},
			text:     "",
			expected: "\x1b]66;s=2;\x1b\\",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, string(Encode(tc.params, tc.text)))
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	params := ParamSet{Scale: 2, Width: 1, Numerator: 1, Denominator: 4}
	first := Encode(params, "stable")
	for range 3 {
		assert.Equal(t, first, Encode(params, "stable"))
	}
}

func TestEncodeProjectionsMatchGeneralEncoder(t *testing.T) {
	assert.Equal(t,
		Encode(ParamSet{Scale: 3}, "a"),
		EncodeScale(3, "a"))
	assert.Equal(t,
		Encode(ParamSet{Width: 2}, "a"),
		EncodeWidth(2, "a"))
	assert.Equal(t,
		Encode(ParamSet{Numerator: 2, Denominator: 3}, "a"),
		EncodeFraction(2, 3, "a"))
	assert.Equal(t,
		Encode(ParamSet{Scale: 2, Width: 4}, "a"),
		EncodeScaleWidth(2, 4, "a"))
}

func TestEncodeStrict(t *testing.T) {
	t.Run("valid input matches Encode", func(t *testing.T) {
		params := ParamSet{Scale: 2, Horizontal: HorizontalAlignCenter}
		got, err := EncodeStrict(params, "ok")
		assert.NoError(t, err)
		assert.Equal(t, Encode(params, "ok"), got)
	})
	t.Run("out-of-range scale rejected", func(t *testing.T) {
		_, err := EncodeStrict(ParamSet{Scale: 8}, "x")
		assert.ErrorIs(t, err, ErrParameterOutOfRange)
	})
	t.Run("out-of-range denominator rejected", func(t *testing.T) {
		_, err := EncodeStrict(ParamSet{Numerator: 1, Denominator: 16}, "x")
		assert.ErrorIs(t, err, ErrParameterOutOfRange)
	})
	t.Run("escape byte in payload rejected", func(t *testing.T) {
		_, err := EncodeStrict(ParamSet{}, "a\x1b\\b")
		assert.ErrorIs(t, err, ErrPayloadContainsTerminator)
	})
	t.Run("C1 terminator in payload rejected", func(t *testing.T) {
		_, err := EncodeStrict(ParamSet{}, "a\x9cb")
		assert.ErrorIs(t, err, ErrPayloadContainsTerminator)
	})
}

func TestSanitizePayload(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"escape stripped", "a\x1bb", "ab"},
		{"newline and tab stripped", "a\nb\tc", "abc"},
		{"del stripped", "a\x7fb", "ab"},
		{"C1 terminator rune stripped", "a\u009cb", "ab"},
		{"plain text untouched", "héllo 🐈", "héllo 🐈"},
		{"full terminator stripped to backslash", "x\x1b\\y", "x\\y"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizePayload(tc.in))
		})
	}
}

func TestParamSetBlock(t *testing.T) {
	assert.Equal(t, "", ParamSet{}.Block())
	assert.Equal(t, "s=2", ParamSet{Scale: 2}.Block())
	assert.True(t, ParamSet{Scale: 1, Numerator: 3, Denominator: 2}.IsDefault())
	assert.False(t, ParamSet{Width: 1}.IsDefault())
}

func TestParamSetValidate(t *testing.T) {
	assert.NoError(t, ParamSet{}.Validate())
	assert.NoError(t, ParamSet{Scale: 7, Width: 7, Numerator: 15, Denominator: 15}.Validate())
	assert.ErrorIs(t, ParamSet{Width: 8}.Validate(), ErrParameterOutOfRange)
	assert.ErrorIs(t, ParamSet{Vertical: 3}.Validate(), ErrParameterOutOfRange)
	assert.ErrorIs(t, ParamSet{Horizontal: 5}.Validate(), ErrParameterOutOfRange)
}

func TestParamSetHash(t *testing.T) {
	a := ParamSet{Scale: 2, Width: 1}
	b := ParamSet{Scale: 2, Width: 1}
	c := ParamSet{Scale: 3, Width: 1}
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}
