package editor

import (
	"fmt"

	"github.com/calvinmclean/stepcurve"
)

// Event is an input already translated into sequence coordinates by the display surface
type Event interface {
	event()
}

// PointerDown selects Index, starts a drag and moves the point to Value
type PointerDown struct {
	Index int
	Value float64
}

// PointerDrag moves the dragged point to Value. It is ignored unless a drag is active
type PointerDrag struct {
	Value float64
}

// PointerUp ends a drag. It is ignored unless a drag is active
type PointerUp struct{}

// KeyNudge adjusts the selected point by Delta
type KeyNudge struct {
	Delta float64
}

// KeyShift moves the selection to the neighbouring point
type KeyShift struct {
	Direction stepcurve.Direction
}

// SetValue writes Value to the selected point without starting a drag
type SetValue struct {
	Value float64
}

func (PointerDown) event() {}
func (PointerDrag) event() {}
func (PointerUp) event()   {}
func (KeyNudge) event()    {}
func (KeyShift) event()    {}
func (SetValue) event()    {}

// Outcome describes what an event did
type Outcome struct {
	// Changed is true when a sequence element was written with a new value
	Changed   bool
	Selection Selection
	// Value is the selected point's value after the event, when there is a selection
	Value int
	// Release is set when a PointerUp ended a drag
	Release *Change
}

// Handle applies ev to the editor. Errors leave the selection and sequence untouched
func (e *PointEditor) Handle(ev Event) (Outcome, error) {
	var (
		changed bool
		release *Change
		err     error
	)

	switch ev := ev.(type) {
	case PointerDown:
		err = checkValue(ev.Value)
		if err != nil {
			return e.outcome(false, nil), err
		}
		err = e.Select(ev.Index, true)
		if err != nil {
			return e.outcome(false, nil), err
		}
		before := e.seq[ev.Index]
		var v int
		v, err = e.MoveTo(ev.Value)
		changed = err == nil && v != before
	case PointerDrag:
		if e.State() != StateDragging {
			return e.outcome(false, nil), nil
		}
		before := e.seq[e.sel.Index]
		var v int
		v, err = e.MoveTo(ev.Value)
		changed = err == nil && v != before
	case PointerUp:
		if e.State() != StateDragging {
			return e.outcome(false, nil), nil
		}
		var c Change
		c, err = e.Release()
		if err == nil {
			release = &c
		}
	case KeyNudge:
		_, changed, err = e.Nudge(ev.Delta)
	case KeyShift:
		_, err = e.ShiftSelection(ev.Direction)
	case SetValue:
		err = e.checkSelection()
		if err == nil {
			before := e.seq[e.sel.Index]
			var v int
			v, err = e.MoveTo(ev.Value)
			changed = err == nil && v != before
		}
	default:
		err = fmt.Errorf("unsupported event %T", ev)
	}

	return e.outcome(changed, release), err
}

func (e *PointEditor) outcome(changed bool, release *Change) Outcome {
	o := Outcome{
		Changed:   changed,
		Selection: e.sel,
		Release:   release,
	}
	if e.sel.Active && e.sel.Index < len(e.seq) {
		o.Value = e.seq[e.sel.Index]
	}
	return o
}
