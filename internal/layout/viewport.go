package layout

import "math"

// ZoomLimits bounds free zoom and wheel-stepped zoom separately
type ZoomLimits struct {
	Min       float64
	Max       float64
	WheelMin  float64
	WheelMax  float64
	WheelStep float64
}

func DefaultZoomLimits() ZoomLimits {
	return ZoomLimits{Min: 0.1, Max: 10, WheelMin: 0.5, WheelMax: 1.0, WheelStep: 0.05}
}

// Viewport maps logical positions to render positions:
// render = logical*Zoom + Pan. It never changes logical positions.
type Viewport struct {
	Zoom   float64
	Pan    Position
	Limits ZoomLimits
}

func NewViewport(limits ZoomLimits) Viewport {
	return Viewport{Zoom: 1, Limits: limits}
}

func (v Viewport) ToRender(p Position) Position {
	return p.Scale(v.Zoom).Add(v.Pan)
}

func (v Viewport) ToLogical(r Position) Position {
	return r.Sub(v.Pan).Scale(1 / v.Zoom)
}

// LogicalDelta converts a render-space drag delta to logical units
func (v Viewport) LogicalDelta(dx, dy float64) Position {
	return Position{X: dx / v.Zoom, Y: dy / v.Zoom}
}

// SetZoom clamps z to the free zoom range and returns the applied value
func (v *Viewport) SetZoom(z float64) float64 {
	v.Zoom = clamp(z, v.Limits.Min, v.Limits.Max)
	return v.Zoom
}

// Step moves zoom one wheel notch in or out within the wheel range
func (v *Viewport) Step(in bool) float64 {
	delta := -v.Limits.WheelStep
	if in {
		delta = v.Limits.WheelStep
	}
	z := math.Round((v.Zoom+delta)*1000) / 1000
	v.Zoom = clamp(z, v.Limits.WheelMin, v.Limits.WheelMax)
	return v.Zoom
}

// ZoomAt scales by factor keeping the render position of anchor fixed
func (v *Viewport) ZoomAt(factor float64, anchor Position) float64 {
	logical := v.ToLogical(anchor)
	v.SetZoom(v.Zoom * factor)
	v.Pan = anchor.Sub(logical.Scale(v.Zoom))
	return v.Zoom
}

func (v *Viewport) PanBy(dx, dy float64) {
	v.Pan = v.Pan.Add(Position{X: dx, Y: dy})
}

func clamp(x, lo, hi float64) float64 {
	if hi > 0 && x > hi {
		x = hi
	}
	if lo > 0 && x < lo {
		x = lo
	}
	return x
}
