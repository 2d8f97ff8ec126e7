package device

import (
	"errors"
	"strconv"
	"time"
)

// DefaultStepUnit matches the pulse interval the host uses for its timing estimates
const DefaultStepUnit = 5 * time.Microsecond

var errEmptyRamp = errors.New("empty ramp")

// Ramp is a loaded pulse-time table. Each entry is the wait after one step, in step units
type Ramp []uint16

// NewRamp copies values into a Ramp
func NewRamp(values []uint16) (Ramp, error) {
	if len(values) == 0 {
		return nil, errEmptyRamp
	}
	for i, v := range values {
		if v == 0 {
			return nil, errors.New("ramp value " + strconv.Itoa(i) + " is zero")
		}
	}

	r := make(Ramp, len(values))
	copy(r, values)
	return r, nil
}

// Play calls step once per entry with its wait. reverse plays from the last entry to the first
func (r Ramp) Play(unit time.Duration, reverse bool, step func(time.Duration)) {
	if reverse {
		for i := len(r) - 1; i >= 0; i-- {
			step(time.Duration(r[i]) * unit)
		}
		return
	}
	for _, v := range r {
		step(time.Duration(v) * unit)
	}
}

// Duration is the total time to play the ramp
func (r Ramp) Duration(unit time.Duration) time.Duration {
	var total time.Duration
	for _, v := range r {
		total += time.Duration(v) * unit
	}
	return total
}

// String summarizes the ramp for the debug command
func (r Ramp) String() string {
	if len(r) == 0 {
		return "ramp: none"
	}
	return "ramp: " + strconv.Itoa(len(r)) + " points, " +
		strconv.Itoa(int(r[0])) + ".." + strconv.Itoa(int(r[len(r)-1]))
}
