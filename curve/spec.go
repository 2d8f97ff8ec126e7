package curve

import (
	"fmt"

	"github.com/calvinmclean/stepcurve"
)

// Spec is the immutable configuration for one generation
type Spec struct {
	Kind          stepcurve.CurveKind `toml:"-"`
	KindName      string              `toml:"kind"`
	PointCount    int                 `toml:"point_count"`
	StartValue    int                 `toml:"start_value"`
	EndValue      int                 `toml:"end_value"`
	RangeStartPct int                 `toml:"range_start_pct"`
	RangeEndPct   int                 `toml:"range_end_pct"`
	LeadInSize    int                 `toml:"lead_in_size"`
	LeadOutSize   int                 `toml:"lead_out_size"`
	PowerExponent float64             `toml:"power_exponent"`
}

// DefaultSpec returns the parameters the editor starts with
func DefaultSpec() Spec {
	return Spec{
		Kind:          stepcurve.CurveLinear,
		PointCount:    98,
		StartValue:    93,
		EndValue:      8,
		RangeStartPct: 0,
		RangeEndPct:   100,
		LeadInSize:    10,
		LeadOutSize:   10,
		PowerExponent: 2.0,
	}
}

// Validate checks every field against its documented range. A zero PointCount is reported as
// stepcurve.ErrEmptySequence, everything else wraps stepcurve.ErrInvalidSpec
func (s Spec) Validate() error {
	if s.PointCount == 0 {
		return stepcurve.ErrEmptySequence
	}

	checks := []struct {
		name     string
		value    int
		min, max int
	}{
		{"point count", s.PointCount, stepcurve.MinPoints, stepcurve.MaxPoints},
		{"start value", s.StartValue, 1, 1000},
		{"end value", s.EndValue, 1, 1000},
		{"range start", s.RangeStartPct, 0, 100},
		{"range end", s.RangeEndPct, 0, 100},
		{"lead-in size", s.LeadInSize, 0, 100},
		{"lead-out size", s.LeadOutSize, 0, 100},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return fmt.Errorf("%w: %s %d not in [%d, %d]", stepcurve.ErrInvalidSpec, c.name, c.value, c.min, c.max)
		}
	}

	if s.RangeStartPct > s.RangeEndPct {
		return fmt.Errorf("%w: range start %d%% is after range end %d%%", stepcurve.ErrInvalidSpec, s.RangeStartPct, s.RangeEndPct)
	}

	if s.Kind == stepcurve.CurvePower && (s.PowerExponent < 0.1 || s.PowerExponent > 10) {
		return fmt.Errorf("%w: power exponent %g not in [0.1, 10]", stepcurve.ErrInvalidSpec, s.PowerExponent)
	}

	return nil
}

// ResolveKind sets Kind from KindName when a name was decoded from a config file
func (s *Spec) ResolveKind() error {
	if s.KindName == "" {
		s.KindName = s.Kind.String()
		return nil
	}
	kind, err := stepcurve.ParseCurveKind(s.KindName)
	if err != nil {
		return err
	}
	s.Kind = kind
	return nil
}
