package ui

import (
	"math"

	"fyne.io/fyne/v2"

	"github.com/calvinmclean/stepcurve"
)

const (
	plotMargin = float32(32)

	// velocityAxisMax is the top of the angular velocity overlay in degrees per second
	velocityAxisMax = 330
)

// plotGeometry maps between sequence coordinates and widget pixels. Index runs left to right
// across the inner area, value runs bottom (0) to top (valueMax)
type plotGeometry struct {
	size     fyne.Size
	count    int
	valueMax float64
}

func newPlotGeometry(size fyne.Size, seq []int) plotGeometry {
	valueMax := float64(stepcurve.MaxPulse + 2)
	for _, v := range seq {
		valueMax = math.Max(valueMax, float64(v))
	}
	return plotGeometry{size: size, count: len(seq), valueMax: valueMax}
}

func (g plotGeometry) inner() (x, y, w, h float32) {
	w = max(g.size.Width-2*plotMargin, 1)
	h = max(g.size.Height-2*plotMargin, 1)
	return plotMargin, plotMargin, w, h
}

// x returns the horizontal pixel of idx
func (g plotGeometry) x(idx int) float32 {
	x, _, w, _ := g.inner()
	if g.count <= 1 {
		return x + w/2
	}
	return x + w*float32(idx)/float32(g.count-1)
}

// y returns the vertical pixel of value
func (g plotGeometry) y(value float64) float32 {
	_, y, _, h := g.inner()
	return y + h*float32(1-value/g.valueMax)
}

func (g plotGeometry) point(idx int, value float64) fyne.Position {
	return fyne.NewPos(g.x(idx), g.y(value))
}

// velocityY places an angular velocity on the overlay scale, pinning values above the top
func (g plotGeometry) velocityY(v float64) float32 {
	_, y, _, h := g.inner()
	v = math.Min(math.Max(v, 0), velocityAxisMax)
	return y + h*float32(1-v/velocityAxisMax)
}

// indexAt returns the nearest index to a horizontal pixel, or -1 for an empty sequence
func (g plotGeometry) indexAt(px float32) int {
	if g.count == 0 {
		return -1
	}
	if g.count == 1 {
		return 0
	}

	x, _, w, _ := g.inner()
	idx := int(math.Round(float64((px - x) / w * float32(g.count-1))))
	return min(max(idx, 0), g.count-1)
}

// valueAt converts a vertical pixel into an unclamped value
func (g plotGeometry) valueAt(py float32) float64 {
	_, y, _, h := g.inner()
	return g.valueMax * (1 - float64((py-y)/h))
}
