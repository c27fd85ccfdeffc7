package effects

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// Pointer is the pointer position normalized to [-1,1] on both axes, with
// (0,0) at the viewport centre.
type Pointer struct {
	X, Y float64
}

// NormalizePointer maps client coordinates on a w x h viewport.
func NormalizePointer(clientX, clientY, w, h float64) Pointer {
	if w <= 0 || h <= 0 {
		return Pointer{}
	}
	return Pointer{
		X: clampUnit((clientX/w - 0.5) * 2),
		Y: clampUnit((clientY/h - 0.5) * 2),
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// Layer is a DOM element translated by the parallax.
type Layer struct {
	Name   string
	Factor float64
	X, Y   float64

	vx, vy float64 // spring velocity
}

// Transform is the CSS transform for the current offset.
func (l *Layer) Transform() string {
	return fmt.Sprintf("translate(%.2fpx, %.2fpx)", l.X, l.Y)
}

// Parallax eases each layer toward pointer * MaxShift * Factor. Steps are
// demand driven: Move asks for one, Step asks for the next until every
// layer settles.
type Parallax struct {
	cfg     ParallaxConfig
	pointer Pointer
	layers  []*Layer
	pending bool
	spring  harmonica.Spring
}

// NewParallax builds the controller and its layers.
func NewParallax(cfg ParallaxConfig) *Parallax {
	p := &Parallax{cfg: cfg}
	for _, lc := range cfg.Layers {
		p.layers = append(p.layers, &Layer{Name: lc.Name, Factor: lc.Factor})
	}
	if cfg.Smoothing == SmoothSpring {
		p.spring = harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping)
	}
	return p
}

// Move records the pointer. It returns true when the caller must schedule
// a Step, false while one is already pending.
func (p *Parallax) Move(pt Pointer) bool {
	p.pointer = Pointer{X: clampUnit(pt.X), Y: clampUnit(pt.Y)}
	if p.pending {
		return false
	}
	p.pending = true
	return true
}

// Pointer returns the last recorded pointer.
func (p *Parallax) Pointer() Pointer { return p.pointer }

// Pending reports whether a step is scheduled.
func (p *Parallax) Pending() bool { return p.pending }

// Step advances every layer once and reports whether another step is
// needed.
func (p *Parallax) Step() bool {
	moving := false
	for _, l := range p.layers {
		tx := p.pointer.X * p.cfg.MaxShift * l.Factor
		ty := p.pointer.Y * p.cfg.MaxShift * l.Factor
		if p.cfg.Smoothing == SmoothSpring {
			l.X, l.vx = p.spring.Update(l.X, l.vx, tx)
			l.Y, l.vy = p.spring.Update(l.Y, l.vy, ty)
			if math.Abs(l.vx) >= p.cfg.Epsilon || math.Abs(l.vy) >= p.cfg.Epsilon {
				moving = true
			}
		} else {
			l.X += (tx - l.X) * p.cfg.Lerp
			l.Y += (ty - l.Y) * p.cfg.Lerp
		}
		if math.Abs(tx-l.X) >= p.cfg.Epsilon || math.Abs(ty-l.Y) >= p.cfg.Epsilon {
			moving = true
		}
	}
	p.pending = moving
	return moving
}

// Layers returns the layers in configuration order.
func (p *Parallax) Layers() []*Layer { return p.layers }

// Layer finds a layer by name.
func (p *Parallax) Layer(name string) *Layer {
	for _, l := range p.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}
