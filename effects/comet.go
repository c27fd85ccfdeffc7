package effects

import (
	"math"

	"github.com/ByteArena/box2d"
)

// Comet is a particle moving on its trajectory until it expires and is
// replaced.
type Comet struct {
	Pos box2d.B2Vec2
	// Vel is used by the linear model, Orbit by the elliptical one.
	Vel   box2d.B2Vec2
	Orbit Orbit

	TailLen float64
	Life    float64
	MaxLife float64
	Trail   Trail
}

// Expired reports whether the comet outlived its budget.
func (c *Comet) Expired() bool {
	return c.Life >= c.MaxLife
}

// Progress is Life/MaxLife.
func (c *Comet) Progress() float64 {
	if c.MaxLife <= 0 {
		return 1
	}
	return c.Life / c.MaxLife
}

// Orbit is an ellipse around Center with semi axes A >= B, rotated by Rot
// radians. Theta is the current eccentric anomaly and Omega its rate.
type Orbit struct {
	Center box2d.B2Vec2
	A, B   float64
	Rot    float64
	Theta  float64
	Omega  float64
}

// At returns the point of the ellipse at angle theta.
func (o Orbit) At(theta float64) box2d.B2Vec2 {
	local := box2d.MakeB2Vec2(o.A*math.Cos(theta), o.B*math.Sin(theta))
	return box2d.B2Vec2Add(o.Center, box2d.B2RotVec2Mul(box2d.MakeB2RotFromAngle(o.Rot), local))
}

// Local maps a world point into the unrotated ellipse frame.
func (o Orbit) Local(p box2d.B2Vec2) box2d.B2Vec2 {
	d := box2d.B2Vec2Sub(p, o.Center)
	return box2d.B2RotVec2Mul(box2d.MakeB2RotFromAngle(-o.Rot), d)
}
