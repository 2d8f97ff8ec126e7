package curve

import (
	"math"

	"github.com/calvinmclean/stepcurve"
)

// Shape samples count values of the given kind from start to end. Values are neither
// rounded nor clamped. exponent is only used by CurvePower
func Shape(kind stepcurve.CurveKind, start, end float64, count int, exponent float64) []float64 {
	if count <= 0 {
		return []float64{}
	}

	sample := sampler(kind, start, end, exponent)
	out := make([]float64, count)
	for i, t := range unitSamples(count) {
		out[i] = sample(t)
	}
	return out
}

// sampler returns the value of kind at normalized position t in [0, 1]
func sampler(kind stepcurve.CurveKind, start, end, exponent float64) func(t float64) float64 {
	switch kind {
	case stepcurve.CurveExponential:
		// log-space interpolation, floored at 1 so the logarithm is defined
		logStart := math.Log(math.Max(1, start))
		logEnd := math.Log(math.Max(1, end))
		return func(t float64) float64 {
			return math.Exp(logStart + (logEnd-logStart)*t)
		}
	case stepcurve.CurveSCurve:
		return func(t float64) float64 {
			return start + (end-start)*smoothstep(t)
		}
	case stepcurve.CurveCosine:
		return func(t float64) float64 {
			return start + (end-start)*(1-math.Cos(t*math.Pi))/2
		}
	case stepcurve.CurveParabolic:
		return func(t float64) float64 {
			return start + (end-start)*t*t
		}
	case stepcurve.CurvePower:
		if start >= end {
			return func(t float64) float64 {
				return start - (start-end)*math.Pow(t, exponent)
			}
		}
		return func(t float64) float64 {
			return start + (end-start)*math.Pow(t, exponent)
		}
	default:
		return func(t float64) float64 {
			return start + (end-start)*t
		}
	}
}

func smoothstep(t float64) float64 {
	return 3*t*t - 2*t*t*t
}

// unitSamples returns count values spread uniformly over [0, 1]. A single sample is 0, so a
// one-point shape holds its start value
func unitSamples(count int) []float64 {
	ts := make([]float64, count)
	if count == 1 {
		return ts
	}
	last := float64(count - 1)
	for i := range ts {
		ts[i] = float64(i) / last
	}
	ts[count-1] = 1
	return ts
}
