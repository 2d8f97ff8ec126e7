package curve_test

import (
	"testing"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_EndpointsWithoutLeads(t *testing.T) {
	kinds := []stepcurve.CurveKind{
		stepcurve.CurveLinear,
		stepcurve.CurveSCurve,
		stepcurve.CurveCosine,
		stepcurve.CurveParabolic,
		stepcurve.CurvePower,
	}
	endpoints := []struct{ start, end int }{
		{93, 8},
		{8, 93},
		{1, 1000},
		{500, 500},
	}

	for _, kind := range kinds {
		for _, ep := range endpoints {
			t.Run(kind.String(), func(t *testing.T) {
				spec := curve.Spec{
					Kind:          kind,
					PointCount:    120,
					StartValue:    ep.start,
					EndValue:      ep.end,
					RangeStartPct: 0,
					RangeEndPct:   100,
					PowerExponent: 2.5,
				}

				seq, err := curve.Assemble(spec)
				require.NoError(t, err)
				require.Len(t, seq, 120)
				assert.Equal(t, ep.start, seq[0])
				assert.Equal(t, ep.end, seq[119])
			})
		}
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	for _, kind := range stepcurve.CurveKinds {
		t.Run(kind.String(), func(t *testing.T) {
			spec := curve.DefaultSpec()
			spec.Kind = kind
			spec.RangeStartPct = 15
			spec.RangeEndPct = 85

			first, err := curve.Assemble(spec)
			require.NoError(t, err)
			second, err := curve.Assemble(spec)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestAssemble_LinearScenario(t *testing.T) {
	spec := curve.Spec{
		Kind:          stepcurve.CurveLinear,
		PointCount:    98,
		StartValue:    93,
		EndValue:      8,
		RangeStartPct: 0,
		RangeEndPct:   100,
		LeadInSize:    10,
		LeadOutSize:   10,
	}

	seq, err := curve.Assemble(spec)
	require.NoError(t, err)
	require.Len(t, seq, 98)
	assert.Equal(t, 93, seq[0])
	assert.Equal(t, 8, seq[97])

	for i := 1; i < len(seq); i++ {
		assert.LessOrEqual(t, seq[i], seq[i-1], "sequence rises at index %d", i)
	}
}

func TestAssemble_PartialRange(t *testing.T) {
	spec := curve.Spec{
		Kind:          stepcurve.CurveSCurve,
		PointCount:    100,
		StartValue:    90,
		EndValue:      10,
		RangeStartPct: 20,
		RangeEndPct:   70,
		LeadInSize:    5,
		LeadOutSize:   5,
	}

	seq, err := curve.Assemble(spec)
	require.NoError(t, err)
	require.Len(t, seq, 100)

	for i := range 20 {
		assert.Equal(t, 90, seq[i], "prefix at %d", i)
	}
	for i := 70; i < 100; i++ {
		assert.Equal(t, 10, seq[i], "suffix at %d", i)
	}

	// effective range holds the truncated blended samples
	samples := curve.Blend(curve.Shape(stepcurve.CurveSCurve, 90, 10, 50, 0), 90, 10, 5, 5)
	for i, v := range samples {
		assert.Equal(t, int(v), seq[20+i], "effective index %d", i)
	}
}

func TestAssemble_LeadsClampedToThird(t *testing.T) {
	// 30 effective points allow at most 10 per lead; larger sizes must not change the result
	base := curve.Spec{
		Kind:          stepcurve.CurveCosine,
		PointCount:    100,
		StartValue:    80,
		EndValue:      12,
		RangeStartPct: 40,
		RangeEndPct:   70,
		LeadInSize:    10,
		LeadOutSize:   10,
	}
	big := base
	big.LeadInSize = 100
	big.LeadOutSize = 100

	expected, err := curve.Assemble(base)
	require.NoError(t, err)
	actual, err := curve.Assemble(big)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestAssemble_EmptyRange(t *testing.T) {
	spec := curve.DefaultSpec()
	spec.RangeStartPct = 50
	spec.RangeEndPct = 50

	seq, err := curve.Assemble(spec)
	require.NoError(t, err)
	require.Len(t, seq, 98)
	assert.Equal(t, 93, seq[48])
	assert.Equal(t, 8, seq[49])
}

func TestAssemble_OutsideEditingBand(t *testing.T) {
	spec := curve.DefaultSpec()
	spec.StartValue = 400
	spec.EndValue = 2

	seq, err := curve.Assemble(spec)
	require.NoError(t, err)
	assert.Equal(t, 400, seq[0])
	assert.Equal(t, 2, seq[len(seq)-1])
}

func TestAssemble_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*curve.Spec)
		expected error
	}{
		{"ZeroPoints", func(s *curve.Spec) { s.PointCount = 0 }, stepcurve.ErrEmptySequence},
		{"TooFewPoints", func(s *curve.Spec) { s.PointCount = 9 }, stepcurve.ErrInvalidSpec},
		{"TooManyPoints", func(s *curve.Spec) { s.PointCount = 501 }, stepcurve.ErrInvalidSpec},
		{"StartValueZero", func(s *curve.Spec) { s.StartValue = 0 }, stepcurve.ErrInvalidSpec},
		{"EndValueTooLarge", func(s *curve.Spec) { s.EndValue = 1001 }, stepcurve.ErrInvalidSpec},
		{"RangeOver100", func(s *curve.Spec) { s.RangeEndPct = 101 }, stepcurve.ErrInvalidSpec},
		{"InvertedRange", func(s *curve.Spec) { s.RangeStartPct, s.RangeEndPct = 80, 20 }, stepcurve.ErrInvalidSpec},
		{"NegativeLead", func(s *curve.Spec) { s.LeadInSize = -1 }, stepcurve.ErrInvalidSpec},
		{"PowerExponentTooSmall", func(s *curve.Spec) {
			s.Kind = stepcurve.CurvePower
			s.PowerExponent = 0.05
		}, stepcurve.ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := curve.DefaultSpec()
			tt.modify(&spec)

			seq, err := curve.Assemble(spec)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, seq)
		})
	}
}

func TestSpec_ExponentIgnoredForOtherKinds(t *testing.T) {
	spec := curve.DefaultSpec()
	spec.PowerExponent = 0
	assert.NoError(t, spec.Validate())
}

func TestSpec_ResolveKind(t *testing.T) {
	spec := curve.DefaultSpec()
	spec.KindName = "cosine"
	require.NoError(t, spec.ResolveKind())
	assert.Equal(t, stepcurve.CurveCosine, spec.Kind)

	spec = curve.DefaultSpec()
	require.NoError(t, spec.ResolveKind())
	assert.Equal(t, "Linear", spec.KindName)

	spec.KindName = "zigzag"
	assert.ErrorIs(t, spec.ResolveKind(), stepcurve.ErrInvalidSpec)
}
