package graph

// Zoom bounds for the view transform.
const (
	MinZoom = 0.3
	MaxZoom = 3.0

	zoomInFactor  = 1.05
	zoomOutFactor = 0.95
)

// View is the pan/zoom mapping between world and screen space:
// screen = world*Zoom + Offset. Every renderer and hit-test goes through
// this one transform so rounding can never diverge between them.
type View struct {
	Zoom   float64
	Offset Vec
}

// NewView returns the identity view.
func NewView() *View { return &View{Zoom: 1} }

// ToScreen maps a world point to screen space.
func (v *View) ToScreen(w Vec) Vec {
	return Vec{X: w.X*v.Zoom + v.Offset.X, Y: w.Y*v.Zoom + v.Offset.Y}
}

// ToWorld maps a screen point back to world space.
func (v *View) ToWorld(s Vec) Vec {
	return Vec{X: (s.X - v.Offset.X) / v.Zoom, Y: (s.Y - v.Offset.Y) / v.Zoom}
}

// ZoomStep zooms one wheel notch anchored at the screen point.
func (v *View) ZoomStep(at Vec, in bool) {
	factor := zoomOutFactor
	if in {
		factor = zoomInFactor
	}
	v.ZoomTo(at, v.Zoom*factor)
}

// ZoomTo sets an absolute zoom anchored at the screen point: the world
// point under the cursor before the change stays under it afterwards.
func (v *View) ZoomTo(at Vec, zoom float64) {
	zoom = clamp(zoom, MinZoom, MaxZoom)
	w := v.ToWorld(at)
	v.Zoom = zoom
	v.Offset = Vec{X: at.X - w.X*zoom, Y: at.Y - w.Y*zoom}
}

// Pan shifts the view by a screen-space delta.
func (v *View) Pan(d Vec) {
	v.Offset.X += d.X
	v.Offset.Y += d.Y
}

// Reset restores the identity view.
func (v *View) Reset() {
	v.Zoom = 1
	v.Offset = Vec{}
}
