package stepcurve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveKindNext(t *testing.T) {
	ck := CurveLinear
	seen := map[CurveKind]bool{}
	for range len(CurveKinds) {
		seen[ck] = true
		ck = ck.Next()
	}
	assert.Equal(t, CurveLinear, ck, "Next should wrap after Power")
	assert.Len(t, seen, len(CurveKinds))
}

func TestParseCurveKind(t *testing.T) {
	tests := []struct {
		in       string
		expected CurveKind
	}{
		{"linear", CurveLinear},
		{"Exponential", CurveExponential},
		{"s-curve", CurveSCurve},
		{"SCURVE", CurveSCurve},
		{"cosine", CurveCosine},
		{"parabolic", CurveParabolic},
		{"power", CurvePower},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ck, err := ParseCurveKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ck)
			assert.Equal(t, ck, mustParse(t, ck.String()), "String should round-trip")
		})
	}

	_, err := ParseCurveKind("sine")
	assert.True(t, errors.Is(err, ErrInvalidSpec))
}

func TestClampPulse(t *testing.T) {
	assert.Equal(t, MinPulse, ClampPulse(-3))
	assert.Equal(t, MinPulse, ClampPulse(5))
	assert.Equal(t, 50, ClampPulse(50))
	assert.Equal(t, MaxPulse, ClampPulse(99))
}

func mustParse(t *testing.T, name string) CurveKind {
	t.Helper()
	ck, err := ParseCurveKind(name)
	require.NoError(t, err)
	return ck
}
