// Package metrics derives display values from a pulse-time sequence
package metrics

import "fmt"

const (
	// StepAngleDeg is the mechanical rotation per pulse
	StepAngleDeg = 1.8

	// PulseIntervalUs is the time charged per unit of pulse time when totalling a sequence
	PulseIntervalUs = 5
)

// AngularVelocity returns degrees per second for a pulse time in microseconds. A zero pulse
// time yields +Inf; callers that display it should guard against that
func AngularVelocity(pulseTimeUs int) float64 {
	return StepAngleDeg / (float64(pulseTimeUs) / 1000)
}

// TotalTraversalTime returns the time in microseconds to play the whole sequence
func TotalTraversalTime(seq []int) int {
	var sum int
	for _, v := range seq {
		sum += v
	}
	return sum * PulseIntervalUs
}

// FullCircleTimeMs returns the milliseconds one revolution takes at a constant pulse time
func FullCircleTimeMs(pulseTimeUs int) float64 {
	return (360 / StepAngleDeg) * float64(pulseTimeUs) / 1000
}

// AngularVelocities maps a whole sequence, leaving zero for non-positive pulse times
func AngularVelocities(seq []int) []float64 {
	out := make([]float64, len(seq))
	for i, v := range seq {
		if v > 0 {
			out[i] = AngularVelocity(v)
		}
	}
	return out
}

// PointInfo is the read-out shown for a selected point
type PointInfo struct {
	Index           int
	PulseTimeUs     int
	AngularVelocity float64
	FullCircleMs    float64
}

// Describe builds the read-out for the point at idx
func Describe(idx, pulseTimeUs int) PointInfo {
	info := PointInfo{
		Index:        idx,
		PulseTimeUs:  pulseTimeUs,
		FullCircleMs: FullCircleTimeMs(pulseTimeUs),
	}
	if pulseTimeUs > 0 {
		info.AngularVelocity = AngularVelocity(pulseTimeUs)
	}
	return info
}

func (p PointInfo) String() string {
	return fmt.Sprintf("point #%d | pulse time: %d µs | angular velocity: %.2f °/s | full circle: %.2f ms",
		p.Index, p.PulseTimeUs, p.AngularVelocity, p.FullCircleMs)
}

// RangeSummary is the total-time label with the effective range it was generated with
type RangeSummary struct {
	TotalUs  int
	StartIdx int
	EndIdx   int
	Full     bool
}

// Summarize totals seq and records the effective range [startIdx, endIdx)
func Summarize(seq []int, startIdx, endIdx int) RangeSummary {
	return RangeSummary{
		TotalUs:  TotalTraversalTime(seq),
		StartIdx: startIdx,
		EndIdx:   endIdx,
		Full:     startIdx <= 0 && endIdx >= len(seq),
	}
}

// TotalMs returns the traversal time in milliseconds
func (r RangeSummary) TotalMs() float64 {
	return float64(r.TotalUs) / 1000
}

func (r RangeSummary) String() string {
	if r.Full {
		return fmt.Sprintf("total time: %.2f ms | effective range: full", r.TotalMs())
	}
	return fmt.Sprintf("total time: %.2f ms | effective range: %d-%d (%d points)",
		r.TotalMs(), r.StartIdx, r.EndIdx, r.EndIdx-r.StartIdx)
}
