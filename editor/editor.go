// Package editor holds the single-point editing state machine used while a user drags or nudges
// values of a generated ramp.
package editor

import (
	"fmt"
	"math"

	"github.com/calvinmclean/stepcurve"
)

// Change is the net edit of one point between selection and release
type Change struct {
	Index int
	From  int
	To    int
}

func (c Change) String() string {
	return fmt.Sprintf("point #%d changed from %d to %d", c.Index, c.From, c.To)
}

// Delta returns To - From
func (c Change) Delta() int {
	return c.To - c.From
}

// PointEditor edits one element at a time of a sequence it does not own. The sequence is
// mutated in place, so the owner sees every edit immediately
type PointEditor struct {
	seq []int
	sel Selection

	// OnChange is called after an element is written with a different value
	OnChange func(idx, value int)
}

// New creates an Idle editor over seq
func New(seq []int) *PointEditor {
	return &PointEditor{seq: seq}
}

// Load attaches a new sequence and clears the selection
func (e *PointEditor) Load(seq []int) {
	e.seq = seq
	e.Reset()
}

// Reset clears the selection and returns to Idle
func (e *PointEditor) Reset() {
	e.sel = Selection{}
}

// Len returns the length of the edited sequence
func (e *PointEditor) Len() int {
	return len(e.seq)
}

// State returns the current interaction state
func (e *PointEditor) State() State {
	return e.sel.state()
}

// Selection returns a copy of the current selection
func (e *PointEditor) Selection() Selection {
	return e.sel
}

// Value returns the current value of the selected point
func (e *PointEditor) Value() (int, error) {
	err := e.checkSelection()
	if err != nil {
		return 0, err
	}
	return e.seq[e.sel.Index], nil
}

// Select chooses idx, entering Dragging when drag is set and Selected otherwise
func (e *PointEditor) Select(idx int, drag bool) error {
	if len(e.seq) == 0 {
		return stepcurve.ErrEmptySequence
	}
	if idx < 0 || idx >= len(e.seq) {
		return fmt.Errorf("%w: index %d not in [0, %d)", stepcurve.ErrOutOfRange, idx, len(e.seq))
	}

	e.sel = Selection{
		Index:    idx,
		Active:   true,
		Dragging: drag,
		Initial:  e.seq[idx],
	}
	return nil
}

// MoveTo rounds raw, clamps it to the pulse band and writes it to the selected point
func (e *PointEditor) MoveTo(raw float64) (int, error) {
	err := e.checkSelection()
	if err != nil {
		return 0, err
	}
	err = checkValue(raw)
	if err != nil {
		return 0, err
	}

	v := math.Max(stepcurve.MinPulse, math.Min(stepcurve.MaxPulse, math.Round(raw)))
	e.set(e.sel.Index, int(v))
	return int(v), nil
}

// Nudge adjusts the selected point by delta. Steps of magnitude one or more are added
// directly (truncated to whole steps); smaller deltas are added and the result rounded, so a
// fine nudge only moves the point once it crosses half a step. The result is clamped to the pulse
// band and changed reports whether the stored value moved
func (e *PointEditor) Nudge(delta float64) (value int, changed bool, err error) {
	err = e.checkSelection()
	if err != nil {
		return 0, false, err
	}

	current := e.seq[e.sel.Index]
	var next int
	if math.Abs(delta) < 1 {
		next = int(math.Round(float64(current) + delta))
	} else {
		next = current + int(delta)
	}
	next = stepcurve.ClampPulse(next)

	if next == current {
		return current, false, nil
	}

	e.set(e.sel.Index, next)
	return next, true, nil
}

// ShiftSelection moves the selection one point in dir. It does not wrap: moved is false at
// either end of the sequence
func (e *PointEditor) ShiftSelection(dir stepcurve.Direction) (moved bool, err error) {
	err = e.checkSelection()
	if err != nil {
		return false, err
	}

	next := e.sel.Index + int(dir)
	if next < 0 || next >= len(e.seq) {
		return false, nil
	}

	e.sel.Index = next
	e.sel.Initial = e.seq[next]
	return true, nil
}

// Release ends a drag, keeping the point selected, and reports the net change since selection
func (e *PointEditor) Release() (Change, error) {
	err := e.checkSelection()
	if err != nil {
		return Change{}, err
	}

	e.sel.Dragging = false
	return Change{
		Index: e.sel.Index,
		From:  e.sel.Initial,
		To:    e.seq[e.sel.Index],
	}, nil
}

func (e *PointEditor) checkSelection() error {
	if len(e.seq) == 0 {
		return stepcurve.ErrEmptySequence
	}
	if !e.sel.Active {
		return stepcurve.ErrNoSelection
	}
	return nil
}

func checkValue(raw float64) error {
	if math.IsNaN(raw) {
		return fmt.Errorf("%w: value is NaN", stepcurve.ErrOutOfRange)
	}
	return nil
}

func (e *PointEditor) set(idx, value int) {
	if e.seq[idx] == value {
		return
	}
	e.seq[idx] = value
	if e.OnChange != nil {
		e.OnChange(idx, value)
	}
}
