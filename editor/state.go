package editor

// State is the interaction state of a PointEditor
type State int

const (
	StateIdle State = iota
	StateSelected
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateSelected:
		return "Selected"
	case StateDragging:
		return "Dragging"
	default:
		return "Idle"
	}
}

// Selection is a snapshot of the selected point. Index and Initial are only meaningful when
// Active is true, and Dragging is never true without Active
type Selection struct {
	Index    int
	Active   bool
	Dragging bool
	Initial  int
}

func (s Selection) state() State {
	switch {
	case s.Dragging:
		return StateDragging
	case s.Active:
		return StateSelected
	default:
		return StateIdle
	}
}
