// Package session owns the live sequence and its selection for one editing session
package session

import (
	"fmt"
	"log/slog"

	"github.com/calvinmclean/stepcurve/codec"
	"github.com/calvinmclean/stepcurve/curve"
	"github.com/calvinmclean/stepcurve/editor"
	"github.com/calvinmclean/stepcurve/metrics"
)

// Session is the single owner of the sequence. Generation and import replace it wholesale,
// events edit it one element at a time. It is not safe for concurrent use
type Session struct {
	seq    []int
	spec   curve.Spec
	editor *editor.PointEditor
	logger *slog.Logger

	// range of the last generation, whole sequence after an import
	startIdx, endIdx int

	listeners []func()
}

// New creates a session with an empty sequence
func New(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		spec:   curve.DefaultSpec(),
		editor: editor.New(nil),
		logger: logger,
	}
	s.editor.OnChange = func(idx, value int) {
		s.logger.Debug("point changed", "index", idx, "value", value)
		s.notify()
	}
	return s
}

// OnChange registers f to run whenever the sequence is replaced or an element changes
func (s *Session) OnChange(f func()) {
	s.listeners = append(s.listeners, f)
}

// Generate replaces the sequence with the one described by spec and clears the selection.
// On error the current sequence is kept
func (s *Session) Generate(spec curve.Spec) error {
	seq, err := curve.Assemble(spec)
	if err != nil {
		return fmt.Errorf("error generating curve: %w", err)
	}

	s.spec = spec
	s.startIdx, s.endIdx = curve.EffectiveRange(spec.PointCount, spec.RangeStartPct, spec.RangeEndPct)
	s.replace(seq)

	s.logger.Info("generated curve",
		"kind", spec.Kind.String(),
		"points", len(seq),
		"range_start", s.startIdx,
		"range_end", s.endIdx,
	)
	return nil
}

// Import replaces the sequence with the array literal in text and clears the selection.
// On error the current sequence is kept
func (s *Session) Import(text string) error {
	seq, err := codec.Parse(text)
	if err != nil {
		return fmt.Errorf("error importing array: %w", err)
	}

	s.startIdx, s.endIdx = 0, len(seq)
	s.replace(seq)

	s.logger.Info("imported array", "points", len(seq))
	return nil
}

// Export formats the current sequence as an array literal named name
func (s *Session) Export(name string) (string, error) {
	out, err := codec.Format(name, s.seq)
	if err != nil {
		return "", fmt.Errorf("error exporting array: %w", err)
	}
	return out, nil
}

// Handle applies an interaction event to the current sequence
func (s *Session) Handle(ev editor.Event) (editor.Outcome, error) {
	out, err := s.editor.Handle(ev)
	if err != nil {
		s.logger.Debug("event rejected", "event", fmt.Sprintf("%T", ev), "error", err)
		return out, err
	}
	if out.Release != nil {
		s.logger.Info("edit finished", "change", out.Release.String())
	}
	return out, nil
}

// Select chooses a point without starting a drag
func (s *Session) Select(idx int) error {
	return s.editor.Select(idx, false)
}

// Deselect clears the selection
func (s *Session) Deselect() {
	s.editor.Reset()
}

// Selection returns the current selection
func (s *Session) Selection() editor.Selection {
	return s.editor.Selection()
}

// Sequence returns a copy of the current sequence
func (s *Session) Sequence() []int {
	return append([]int(nil), s.seq...)
}

// Len returns the current sequence length
func (s *Session) Len() int {
	return len(s.seq)
}

// Spec returns the spec of the last successful generation
func (s *Session) Spec() curve.Spec {
	return s.spec
}

// EffectiveRange returns the [start, end) index range of the last generation
func (s *Session) EffectiveRange() (int, int) {
	return s.startIdx, s.endIdx
}

// Summary totals the current sequence
func (s *Session) Summary() metrics.RangeSummary {
	return metrics.Summarize(s.seq, s.startIdx, s.endIdx)
}

// PointInfo describes the selected point, reporting false when nothing is selected
func (s *Session) PointInfo() (metrics.PointInfo, bool) {
	v, err := s.editor.Value()
	if err != nil {
		return metrics.PointInfo{}, false
	}
	return metrics.Describe(s.editor.Selection().Index, v), true
}

func (s *Session) replace(seq []int) {
	s.seq = seq
	s.editor.Load(seq)
	s.notify()
}

func (s *Session) notify() {
	for _, f := range s.listeners {
		f()
	}
}
