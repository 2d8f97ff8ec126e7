package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/curve"
)

func TestParamFieldsSpec(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		expected := curve.DefaultSpec()
		expected.KindName = expected.Kind.String()

		s, err := fieldsFromSpec(curve.DefaultSpec()).spec()
		require.NoError(t, err)
		assert.Equal(t, expected, s)
	})

	t.Run("Power", func(t *testing.T) {
		f := fieldsFromSpec(curve.DefaultSpec())
		f.Kind = "Power"
		f.Exponent = " 3.5 "

		s, err := f.spec()
		require.NoError(t, err)
		assert.Equal(t, stepcurve.CurvePower, s.Kind)
		assert.InDelta(t, 3.5, s.PowerExponent, 1e-9)
	})

	t.Run("ExponentIgnoredForOtherKinds", func(t *testing.T) {
		f := fieldsFromSpec(curve.DefaultSpec())
		f.Kind = "Cosine"
		f.Exponent = "not a number"

		s, err := f.spec()
		require.NoError(t, err)
		assert.Equal(t, stepcurve.CurveCosine, s.Kind)
	})

	tests := []struct {
		name   string
		modify func(*paramFields)
	}{
		{"UnknownKind", func(f *paramFields) { f.Kind = "Zigzag" }},
		{"PointsNotNumber", func(f *paramFields) { f.Points = "ten" }},
		{"TooFewPoints", func(f *paramFields) { f.Points = "9" }},
		{"StartTooLarge", func(f *paramFields) { f.Start = "1001" }},
		{"InvertedRange", func(f *paramFields) { f.RangeStart, f.RangeEnd = "80", "20" }},
		{"ZeroLeadIn", func(f *paramFields) { f.LeadIn = "0" }},
		{"LeadOutTooLarge", func(f *paramFields) { f.LeadOut = "101" }},
		{"BadExponent", func(f *paramFields) { f.Kind, f.Exponent = "Power", "x" }},
		{"ExponentTooLarge", func(f *paramFields) { f.Kind, f.Exponent = "Power", "10.5" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fieldsFromSpec(curve.DefaultSpec())
			tt.modify(&f)

			_, err := f.spec()
			require.ErrorIs(t, err, stepcurve.ErrInvalidSpec)
		})
	}
}

func TestParamForm(t *testing.T) {
	test.NewTempApp(t)

	f := newParamForm(curve.DefaultSpec())
	assert.Equal(t, fieldsFromSpec(curve.DefaultSpec()), f.fields())
	assert.True(t, f.exponent.Disabled())

	f.kind.SetSelected("Power")
	assert.False(t, f.exponent.Disabled())

	f.kind.SetSelected("SCurve")
	assert.True(t, f.exponent.Disabled())
}
