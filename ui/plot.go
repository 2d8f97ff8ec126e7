package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/editor"
	"github.com/calvinmclean/stepcurve/metrics"
	"github.com/calvinmclean/stepcurve/session"
)

var (
	bandColor     = color.NRGBA{R: 0x40, G: 0x80, B: 0xff, A: 0x30}
	velocityColor = color.NRGBA{R: 0xe0, G: 0x80, B: 0x20, A: 0xff}
	selectedColor = color.NRGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
)

// Plot draws the sequence and turns pointer and keyboard input into editor events
type Plot struct {
	widget.BaseWidget

	session *session.Session

	dragging bool
	hover    int

	// OnHover reports the point under the pointer, ok is false when the pointer leaves
	OnHover func(info metrics.PointInfo, ok bool)
	// OnEdit runs after every handled event so labels can follow the selection
	OnEdit  func(editor.Outcome)
	OnError func(error)
}

var (
	_ fyne.Tappable     = (*Plot)(nil)
	_ fyne.Draggable    = (*Plot)(nil)
	_ fyne.Focusable    = (*Plot)(nil)
	_ desktop.Hoverable = (*Plot)(nil)
)

func NewPlot(s *session.Session) *Plot {
	p := &Plot{session: s, hover: -1}
	p.ExtendBaseWidget(p)
	return p
}

func (p *Plot) geometry() plotGeometry {
	return newPlotGeometry(p.Size(), p.session.Sequence())
}

func (p *Plot) handle(ev editor.Event) {
	out, err := p.session.Handle(ev)
	if err != nil {
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}

	if p.OnEdit != nil {
		p.OnEdit(out)
	}
	p.Refresh()
}

func (p *Plot) Tapped(ev *fyne.PointEvent) {
	p.requestFocus()

	g := p.geometry()
	idx := g.indexAt(ev.Position.X)
	if idx < 0 {
		return
	}

	p.handle(editor.PointerDown{Index: idx, Value: g.valueAt(ev.Position.Y)})
	p.handle(editor.PointerUp{})
}

func (p *Plot) Dragged(ev *fyne.DragEvent) {
	g := p.geometry()
	if !p.dragging {
		idx := g.indexAt(ev.Position.X)
		if idx < 0 {
			return
		}
		p.dragging = true
		p.requestFocus()
		p.handle(editor.PointerDown{Index: idx, Value: g.valueAt(ev.Position.Y)})
		return
	}

	p.handle(editor.PointerDrag{Value: g.valueAt(ev.Position.Y)})
}

func (p *Plot) DragEnd() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.handle(editor.PointerUp{})
}

func (p *Plot) FocusGained()   {}
func (p *Plot) FocusLost()     {}
func (p *Plot) TypedRune(rune) {}

func (p *Plot) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyUp:
		p.handle(editor.KeyNudge{Delta: 1})
	case fyne.KeyDown:
		p.handle(editor.KeyNudge{Delta: -1})
	case fyne.KeyLeft:
		p.handle(editor.KeyShift{Direction: stepcurve.DirectionPrev})
	case fyne.KeyRight:
		p.handle(editor.KeyShift{Direction: stepcurve.DirectionNext})
	}
}

func (p *Plot) MouseIn(ev *desktop.MouseEvent) {
	p.MouseMoved(ev)
}

func (p *Plot) MouseMoved(ev *desktop.MouseEvent) {
	idx := p.geometry().indexAt(ev.Position.X)
	if idx == p.hover {
		return
	}
	p.hover = idx

	if p.OnHover == nil {
		return
	}
	seq := p.session.Sequence()
	if idx < 0 || idx >= len(seq) {
		p.OnHover(metrics.PointInfo{}, false)
		return
	}
	p.OnHover(metrics.Describe(idx, seq[idx]), true)
}

func (p *Plot) MouseOut() {
	p.hover = -1
	if p.OnHover != nil {
		p.OnHover(metrics.PointInfo{}, false)
	}
}

func (p *Plot) requestFocus() {
	if c := fyne.CurrentApp().Driver().CanvasForObject(p); c != nil {
		c.Focus(p)
	}
}

func (p *Plot) CreateRenderer() fyne.WidgetRenderer {
	r := &plotRenderer{
		plot:       p,
		background: canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		band:       canvas.NewRectangle(bandColor),
		selected:   canvas.NewCircle(color.Transparent),
		axisTop:    canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		axisRight:  canvas.NewText(fmt.Sprintf("%d°/s", velocityAxisMax), velocityColor),
	}
	r.selected.StrokeColor = selectedColor
	r.selected.StrokeWidth = 2
	r.axisTop.TextSize = theme.CaptionTextSize()
	r.axisRight.TextSize = theme.CaptionTextSize()
	r.Refresh()
	return r
}

type plotRenderer struct {
	plot *Plot

	background *canvas.Rectangle
	band       *canvas.Rectangle
	selected   *canvas.Circle
	axisTop    *canvas.Text
	axisRight  *canvas.Text

	values   []fyne.CanvasObject
	velocity []fyne.CanvasObject
}

func (r *plotRenderer) Layout(fyne.Size) {
	r.Refresh()
}

func (r *plotRenderer) MinSize() fyne.Size {
	return fyne.NewSize(4*plotMargin+200, 4*plotMargin+120)
}

// Refresh rebuilds the line segments from the current sequence
func (r *plotRenderer) Refresh() {
	size := r.plot.Size()
	seq := r.plot.session.Sequence()
	g := newPlotGeometry(size, seq)

	r.background.Move(fyne.NewPos(0, 0))
	r.background.Resize(size)

	r.values = polyline(len(seq), func(i int) fyne.Position {
		return g.point(i, float64(seq[i]))
	}, theme.Color(theme.ColorNamePrimary))

	velocities := metrics.AngularVelocities(seq)
	r.velocity = polyline(len(seq), func(i int) fyne.Position {
		return fyne.NewPos(g.x(i), g.velocityY(velocities[i]))
	}, velocityColor)

	start, end := r.plot.session.EffectiveRange()
	if len(seq) > 0 && end > start {
		x0, x1 := g.x(start), g.x(min(end, len(seq))-1)
		_, y, _, h := g.inner()
		r.band.Move(fyne.NewPos(x0, y))
		r.band.Resize(fyne.NewSize(max(x1-x0, 1), h))
		r.band.Show()
	} else {
		r.band.Hide()
	}

	sel := r.plot.session.Selection()
	if sel.Active && sel.Index < len(seq) {
		const radius = 5
		c := g.point(sel.Index, float64(seq[sel.Index]))
		r.selected.Move(c.Subtract(fyne.NewPos(radius, radius)))
		r.selected.Resize(fyne.NewSize(2*radius, 2*radius))
		r.selected.Show()
	} else {
		r.selected.Hide()
	}

	r.axisTop.Text = fmt.Sprintf("%.0f", g.valueMax)
	r.axisTop.Move(fyne.NewPos(2, plotMargin-r.axisTop.MinSize().Height))
	r.axisRight.Move(fyne.NewPos(size.Width-plotMargin-r.axisRight.MinSize().Width, plotMargin-r.axisRight.MinSize().Height))

	canvas.Refresh(r.plot)
}

func (r *plotRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background, r.band}
	objects = append(objects, r.velocity...)
	objects = append(objects, r.values...)
	return append(objects, r.selected, r.axisTop, r.axisRight)
}

func (r *plotRenderer) Destroy() {}

func polyline(n int, at func(int) fyne.Position, c color.Color) []fyne.CanvasObject {
	if n < 2 {
		return nil
	}

	lines := make([]fyne.CanvasObject, 0, n-1)
	prev := at(0)
	for i := 1; i < n; i++ {
		next := at(i)
		l := canvas.NewLine(c)
		l.StrokeWidth = 1.5
		l.Position1 = prev
		l.Position2 = next
		lines = append(lines, l)
		prev = next
	}
	return lines
}
