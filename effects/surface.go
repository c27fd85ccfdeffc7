package effects

import (
	"math"

	"github.com/ByteArena/box2d"
)

// Surface is the canvas geometry: logical size in CSS pixels and the
// device pixel ratio used for the backing store.
type Surface struct {
	Width  float64
	Height float64
	DPR    float64
}

// NewSurface returns a surface for a w x h viewport. A non positive dpr
// means 1 and sizes are floored at one pixel.
func NewSurface(w, h, dpr float64) Surface {
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	return Surface{
		Width:  math.Max(w, 1),
		Height: math.Max(h, 1),
		DPR:    dpr,
	}
}

// BackingSize is the pixel size of the canvas backing store.
func (s Surface) BackingSize() (int, int) {
	return int(math.Round(s.Width * s.DPR)), int(math.Round(s.Height * s.DPR))
}

// Transform returns the canvas setTransform arguments (a, b, c, d, e, f).
func (s Surface) Transform() [6]float64 {
	return [6]float64{s.DPR, 0, 0, s.DPR, 0, 0}
}

// MinDim is the smaller of width and height.
func (s Surface) MinDim() float64 {
	return math.Min(s.Width, s.Height)
}

// Center of the viewport.
func (s Surface) Center() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(s.Width/2, s.Height/2)
}
