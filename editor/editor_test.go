package editor_test

import (
	"math"
	"testing"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = stepcurve.ClampPulse(90 - i)
	}
	return seq
}

func TestSelectRelease(t *testing.T) {
	seq := ramp(98)
	e := editor.New(seq)
	assert.Equal(t, editor.StateIdle, e.State())

	require.NoError(t, e.Select(40, true))
	assert.Equal(t, editor.StateDragging, e.State())

	c, err := e.Release()
	require.NoError(t, err)

	sel := e.Selection()
	assert.Equal(t, 40, sel.Index)
	assert.True(t, sel.Active)
	assert.False(t, sel.Dragging)
	assert.Equal(t, editor.StateSelected, e.State())
	assert.Equal(t, editor.Change{Index: 40, From: 50, To: 50}, c)
}

func TestSelect_OutOfRange(t *testing.T) {
	seq := ramp(98)
	before := append([]int(nil), seq...)
	e := editor.New(seq)
	require.NoError(t, e.Select(3, false))

	for _, idx := range []int{150, 98, -1} {
		err := e.Select(idx, true)
		assert.ErrorIs(t, err, stepcurve.ErrOutOfRange)
	}

	assert.Equal(t, before, seq)
	assert.Equal(t, 3, e.Selection().Index, "failed select must keep the previous selection")
	assert.Equal(t, editor.StateSelected, e.State())
}

func TestEmptySequence(t *testing.T) {
	e := editor.New(nil)

	assert.ErrorIs(t, e.Select(0, false), stepcurve.ErrEmptySequence)

	_, err := e.MoveTo(50)
	assert.ErrorIs(t, err, stepcurve.ErrEmptySequence)

	_, _, err = e.Nudge(1)
	assert.ErrorIs(t, err, stepcurve.ErrEmptySequence)

	_, err = e.ShiftSelection(stepcurve.DirectionNext)
	assert.ErrorIs(t, err, stepcurve.ErrEmptySequence)

	_, err = e.Release()
	assert.ErrorIs(t, err, stepcurve.ErrEmptySequence)

	assert.Equal(t, editor.StateIdle, e.State())
}

func TestNoSelection(t *testing.T) {
	seq := ramp(20)
	before := append([]int(nil), seq...)
	e := editor.New(seq)

	_, err := e.MoveTo(50)
	assert.ErrorIs(t, err, stepcurve.ErrNoSelection)

	_, _, err = e.Nudge(-1)
	assert.ErrorIs(t, err, stepcurve.ErrNoSelection)

	_, err = e.ShiftSelection(stepcurve.DirectionPrev)
	assert.ErrorIs(t, err, stepcurve.ErrNoSelection)

	_, err = e.Release()
	assert.ErrorIs(t, err, stepcurve.ErrNoSelection)

	_, err = e.Value()
	assert.ErrorIs(t, err, stepcurve.ErrNoSelection)

	assert.Equal(t, before, seq)
}

func TestMoveTo_Clamps(t *testing.T) {
	tests := []struct {
		raw      float64
		expected int
	}{
		{50, 50},
		{50.4, 50},
		{50.6, 51},
		{5.6, 6},
		{-20, 6},
		{98.4, 98},
		{150, 98},
		{math.Inf(1), 98},
		{math.Inf(-1), 6},
	}

	for _, tt := range tests {
		seq := ramp(10)
		e := editor.New(seq)
		require.NoError(t, e.Select(2, true))

		v, err := e.MoveTo(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, v, "raw=%v", tt.raw)
		assert.Equal(t, tt.expected, seq[2], "raw=%v", tt.raw)
	}
}

func TestMoveTo_NaN(t *testing.T) {
	seq := ramp(10)
	e := editor.New(seq)
	require.NoError(t, e.Select(2, true))

	_, err := e.MoveTo(math.NaN())
	assert.ErrorIs(t, err, stepcurve.ErrOutOfRange)
	assert.Equal(t, 88, seq[2])
}

func TestNudge(t *testing.T) {
	tests := []struct {
		name            string
		start           int
		delta           float64
		expected        int
		expectedChanged bool
	}{
		{"StepUp", 50, 1, 51, true},
		{"StepDown", 50, -1, 49, true},
		{"FloorClamp", 6, -1, 6, false},
		{"CeilingClamp", 98, 1, 98, false},
		{"FineUpRoundsBack", 50, 0.1, 50, false},
		{"FineDownRoundsBack", 50, -0.1, 50, false},
		{"FineCrossesHalf", 50, 0.6, 51, true},
		{"BigStep", 50, 10, 60, true},
		{"BigStepTruncates", 50, 2.7, 52, true},
		{"OutOfBandStartClamped", 400, -1, 98, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := []int{10, tt.start, 10}
			e := editor.New(seq)
			require.NoError(t, e.Select(1, false))

			v, changed, err := e.Nudge(tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
			assert.Equal(t, tt.expectedChanged, changed)
			assert.Equal(t, tt.expected, seq[1])
		})
	}
}

func TestShiftSelection(t *testing.T) {
	seq := ramp(5)
	e := editor.New(seq)
	require.NoError(t, e.Select(3, true))

	moved, err := e.ShiftSelection(stepcurve.DirectionNext)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 4, e.Selection().Index)
	assert.Equal(t, seq[4], e.Selection().Initial)

	// last index: no wraparound, nothing changes
	before := append([]int(nil), seq...)
	moved, err = e.ShiftSelection(stepcurve.DirectionNext)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 4, e.Selection().Index)
	assert.Equal(t, before, seq)

	require.NoError(t, e.Select(0, false))
	moved, err = e.ShiftSelection(stepcurve.DirectionPrev)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 0, e.Selection().Index)
}

func TestReleaseReportsNetChange(t *testing.T) {
	seq := ramp(10)
	e := editor.New(seq)

	require.NoError(t, e.Select(5, true))
	_, err := e.MoveTo(70)
	require.NoError(t, err)
	_, err = e.MoveTo(72)
	require.NoError(t, err)

	c, err := e.Release()
	require.NoError(t, err)
	assert.Equal(t, editor.Change{Index: 5, From: 85, To: 72}, c)
	assert.Equal(t, -13, c.Delta())
	assert.Equal(t, "point #5 changed from 85 to 72", c.String())
}

func TestResetAndLoad(t *testing.T) {
	e := editor.New(ramp(10))
	require.NoError(t, e.Select(5, true))

	e.Reset()
	assert.Equal(t, editor.Selection{}, e.Selection())
	assert.Equal(t, editor.StateIdle, e.State())

	require.NoError(t, e.Select(9, false))
	e.Load(ramp(3))
	assert.Equal(t, editor.StateIdle, e.State())
	assert.Equal(t, 3, e.Len())
	assert.ErrorIs(t, e.Select(9, false), stepcurve.ErrOutOfRange)
}

func TestOnChange(t *testing.T) {
	seq := ramp(10)
	e := editor.New(seq)

	var calls [][2]int
	e.OnChange = func(idx, value int) {
		calls = append(calls, [2]int{idx, value})
	}

	require.NoError(t, e.Select(1, false))
	_, err := e.MoveTo(89) // unchanged value
	require.NoError(t, err)
	_, _, err = e.Nudge(1)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{1, 90}}, calls)
}

func TestClampLaw(t *testing.T) {
	seq := ramp(30)
	e := editor.New(seq)

	inputs := []float64{-1000, -3.3, 0, 5.49, 6, 42.5, 97.5, 98, 1e9}
	deltas := []float64{-100, -1, -0.1, 0.1, 0.5, 1, 100}

	for idx := range seq {
		require.NoError(t, e.Select(idx, true))
		for _, in := range inputs {
			_, err := e.MoveTo(in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, seq[idx], stepcurve.MinPulse)
			assert.LessOrEqual(t, seq[idx], stepcurve.MaxPulse)

			for _, d := range deltas {
				_, _, err := e.Nudge(d)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, seq[idx], stepcurve.MinPulse)
				assert.LessOrEqual(t, seq[idx], stepcurve.MaxPulse)
			}
		}
	}
}
