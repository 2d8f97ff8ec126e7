package stepcurve

import (
	"fmt"
	"strings"
)

const (
	// MinPulse and MaxPulse bound every value written by interactive editing
	MinPulse = 6
	MaxPulse = 98

	// MinPoints and MaxPoints bound the generated sequence length
	MinPoints = 10
	MaxPoints = 500
)

// CurveKind is the interior shape used when generating a ramp
type CurveKind int

const (
	CurveLinear CurveKind = iota
	CurveExponential
	CurveSCurve
	CurveCosine
	CurveParabolic
	CurvePower
)

// CurveKinds lists every kind in selector order
var CurveKinds = []CurveKind{
	CurveLinear,
	CurveExponential,
	CurveSCurve,
	CurveCosine,
	CurveParabolic,
	CurvePower,
}

func (ck CurveKind) String() string {
	switch ck {
	case CurveExponential:
		return "Exponential"
	case CurveSCurve:
		return "SCurve"
	case CurveCosine:
		return "Cosine"
	case CurveParabolic:
		return "Parabolic"
	case CurvePower:
		return "Power"
	default:
		fallthrough
	case CurveLinear:
		return "Linear"
	}
}

// Next goes to the next kind in the selector, wrapping back to Linear
func (ck CurveKind) Next() CurveKind {
	if ck >= CurvePower {
		return CurveLinear
	}
	return ck + 1
}

// ParseCurveKind matches a kind by name, ignoring case and separators like "s-curve"
func ParseCurveKind(name string) (CurveKind, error) {
	clean := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	for _, ck := range CurveKinds {
		if strings.ToLower(ck.String()) == clean {
			return ck, nil
		}
	}
	return CurveLinear, fmt.Errorf("%w: unknown curve kind %q", ErrInvalidSpec, name)
}

// CurveKindNames returns the display names in selector order
func CurveKindNames() []string {
	names := make([]string, 0, len(CurveKinds))
	for _, ck := range CurveKinds {
		names = append(names, ck.String())
	}
	return names
}

// Direction moves a selection along the sequence
type Direction int

const (
	DirectionPrev Direction = -1
	DirectionNext Direction = +1
)

func (d Direction) String() string {
	if d == DirectionPrev {
		return "prev"
	}
	return "next"
}

// ClampPulse limits v to [MinPulse, MaxPulse]
func ClampPulse(v int) int {
	return max(MinPulse, min(MaxPulse, v))
}
