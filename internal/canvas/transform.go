package canvas

import (
	"math"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/topology"
)

// Fallback footprint for monitors whose resolution cannot be parsed.
const (
	FallbackWidth  = 1920
	FallbackHeight = 1080
)

// Params controls how the real layout is fitted into the canvas.
type Params struct {
	Padding       float64 // real-space padding around the layout bounding box
	MinWidth      float64 // minimum canvas width before OverallScale
	MinHeight     float64 // minimum canvas height before OverallScale
	OverallScale  float64 // uniform shrink applied to the whole canvas
	MaxZoom       float64 // upper bound on the real->canvas scale factor
	DragThreshold float64 // canvas units of movement before a press becomes a drag
}

// DefaultParams returns the pixel canvas used by graphical front ends.
func DefaultParams() Params {
	return Params{
		Padding:       40,
		MinWidth:      600,
		MinHeight:     400,
		OverallScale:  0.25,
		MaxZoom:       0.3 * 0.25,
		DragThreshold: 1,
	}
}

// Transform maps real layout coordinates onto the canvas.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// Box is a monitor's rectangle in canvas space.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the canvas point lies inside the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X < b.X+b.Width && p.Y >= b.Y && p.Y < b.Y+b.Height
}

// Dimensions returns the real footprint of a "WxH" resolution, falling back to
// FallbackWidth x FallbackHeight when it does not parse.
func Dimensions(resolution string) (int, int) {
	if w, h, ok := catalog.ParseResolution(resolution); ok {
		return w, h
	}
	return FallbackWidth, FallbackHeight
}

// Compute fits the monitors' bounding box into a padded canvas, preserving
// aspect ratio and centering the result. An empty set yields the minimum
// canvas with an identity scale.
func Compute(monitors []topology.Monitor, p Params) Transform {
	minWidth := p.MinWidth * p.OverallScale
	minHeight := p.MinHeight * p.OverallScale

	if len(monitors) == 0 {
		return Transform{Scale: 1, Width: minWidth, Height: minHeight}
	}

	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, m := range monitors {
		w, h := Dimensions(m.Resolution)
		minX = min(minX, m.X)
		maxX = max(maxX, m.X+w)
		minY = min(minY, m.Y)
		maxY = max(maxY, m.Y+h)
	}

	totalW := float64(maxX - minX)
	totalH := float64(maxY - minY)

	width := max((totalW+2*p.Padding)*p.OverallScale, minWidth)
	height := max((totalH+2*p.Padding)*p.OverallScale, minHeight)

	pad := 2 * p.Padding * p.OverallScale
	scale := min((width-pad)/totalW, (height-pad)/totalH, p.MaxZoom)
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = p.MaxZoom
	}

	return Transform{
		Scale:   scale,
		OffsetX: (width-totalW*scale)/2 - float64(minX)*scale,
		OffsetY: (height-totalH*scale)/2 - float64(minY)*scale,
		Width:   width,
		Height:  height,
	}
}

// Forward maps a real position to canvas coordinates.
func (t Transform) Forward(x, y int) Point {
	return Point{
		X: float64(x)*t.Scale + t.OffsetX,
		Y: float64(y)*t.Scale + t.OffsetY,
	}
}

// Inverse maps a canvas position back to the nearest real position.
func (t Transform) Inverse(p Point) (int, int) {
	x := math.Round((p.X - t.OffsetX) / t.Scale)
	y := math.Round((p.Y - t.OffsetY) / t.Scale)
	return int(x), int(y)
}

// BoxFor places a monitor on the canvas.
func (t Transform) BoxFor(m topology.Monitor) Box {
	w, h := Dimensions(m.Resolution)
	origin := t.Forward(m.X, m.Y)
	return Box{
		X:      origin.X,
		Y:      origin.Y,
		Width:  float64(w) * t.Scale,
		Height: float64(h) * t.Scale,
	}
}
