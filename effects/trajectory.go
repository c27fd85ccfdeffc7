package effects

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"github.com/ByteArena/box2d"
)

// Trajectory kinds.
const (
	KindLinear     = "linear"
	KindElliptical = "elliptical"
)

// Trajectory is a comet motion model, either Linear or Elliptical.
type Trajectory interface {
	Kind() string

	spawn(rnd *rand.Rand, s Surface) *Comet
	advance(c *Comet, dt float64)
	fade(c *Comet) float64
	outOfBounds(c *Comet, s Surface) bool
	draw(cv Canvas, c *Comet, pal Palette, op float64)
	validate() error
}

// Linear comets cross the viewport in a straight line.
type Linear struct {
	Speed    Range   `json:"speed"`     // px/s
	Tail     Range   `json:"tail"`      // fraction of the minor dimension
	Life     Range   `json:"life"`      // seconds
	FadeIn   float64 `json:"fade_in"`   // fraction of life
	FadeOut  float64 `json:"fade_out"`  // fraction of life
	SpawnPad float64 `json:"spawn_pad"` // px beyond the tail
	ExitPad  float64 `json:"exit_pad"`  // px beyond the tail
	Width    float64 `json:"width"`
}

// DefaultLinear returns the stock linear tuning.
func DefaultLinear() Linear {
	return Linear{
		Speed:    Range{18, 45},
		Tail:     Range{0.04, 0.10},
		Life:     Range{10, 22},
		FadeIn:   0.08,
		FadeOut:  0.10,
		SpawnPad: 20,
		ExitPad:  30,
		Width:    1.2,
	}
}

// Kind implements Trajectory.
func (Linear) Kind() string { return KindLinear }

func (l Linear) spawn(rnd *rand.Rand, s Surface) *Comet {
	angle := rnd.Float64() * 2 * math.Pi
	speed := l.Speed.Rand(rnd)
	vel := box2d.MakeB2Vec2(math.Cos(angle)*speed, math.Sin(angle)*speed)
	tail := l.Tail.Rand(rnd) * s.MinDim()
	pad := tail + l.SpawnPad

	// enter through the edge the dominant axis points away from
	var pos box2d.B2Vec2
	if math.Abs(vel.X) >= math.Abs(vel.Y) {
		pos.X = s.Width + pad
		if vel.X > 0 {
			pos.X = -pad
		}
		pos.Y = rnd.Float64() * s.Height
	} else {
		pos.X = rnd.Float64() * s.Width
		pos.Y = s.Height + pad
		if vel.Y > 0 {
			pos.Y = -pad
		}
	}
	return &Comet{
		Pos:     pos,
		Vel:     vel,
		TailLen: tail,
		MaxLife: l.Life.Rand(rnd),
	}
}

func (l Linear) advance(c *Comet, dt float64) {
	c.Pos = box2d.B2Vec2Add(c.Pos, box2d.B2Vec2MulScalar(dt, c.Vel))
}

func (l Linear) fade(c *Comet) float64 {
	prog := c.Progress()
	switch {
	case l.FadeIn > 0 && prog < l.FadeIn:
		return clamp01(prog / l.FadeIn)
	case l.FadeOut > 0 && prog > 1-l.FadeOut:
		return clamp01((1 - prog) / l.FadeOut)
	}
	return 1
}

func (l Linear) outOfBounds(c *Comet, s Surface) bool {
	pad := c.TailLen + l.ExitPad
	return c.Pos.X < -pad || c.Pos.X > s.Width+pad ||
		c.Pos.Y < -pad || c.Pos.Y > s.Height+pad
}

func (l Linear) draw(cv Canvas, c *Comet, pal Palette, op float64) {
	dir := c.Vel
	if dir.Normalize() == 0 {
		return
	}
	tail := box2d.B2Vec2Sub(c.Pos, box2d.B2Vec2MulScalar(c.TailLen, dir))
	cv.Streak(c.Pos.X, c.Pos.Y, tail.X, tail.Y, l.Width, []Stop{
		{0, pal.StreakHead.With(op * 0.80)},
		{0.35, pal.StreakMid.With(op * 0.35)},
		{1, pal.StreakTail.With(0)},
	})
}

func (l Linear) validate() error {
	if err := checkRanges("linear.speed", l.Speed, "linear.tail", l.Tail, "linear.life", l.Life); err != nil {
		return err
	}
	switch {
	case !(l.Speed.Min > 0):
		// a zero velocity has no heading to draw the streak along
		return fmt.Errorf("%w: linear.speed.min must be positive", ErrInvalidPreset)
	case !(l.Life.Min > 0):
		return fmt.Errorf("%w: linear.life.min must be positive", ErrInvalidPreset)
	case l.Tail.Min < 0:
		return fmt.Errorf("%w: linear.tail below zero", ErrInvalidPreset)
	case l.FadeIn < 0 || l.FadeOut < 0 || l.FadeIn+l.FadeOut > 1:
		return fmt.Errorf("%w: linear fade windows", ErrInvalidPreset)
	}
	return nil
}

// Elliptical comets orbit the viewport centre and keep a trail.
type Elliptical struct {
	Axis         Range   `json:"axis"`         // semi-major, fraction of the minor dimension
	Eccentricity Range   `json:"eccentricity"` // [0,1)
	Speed        Range   `json:"speed"`        // px/s along the major axis
	Tail         Range   `json:"tail"`         // fraction of the minor dimension
	Life         Range   `json:"life"`         // seconds
	FadeIn       float64 `json:"fade_in"`      // seconds
	FadeOut      float64 `json:"fade_out"`     // seconds
	Width        float64 `json:"width"`        // trail width at the head
	Alpha        float64 `json:"alpha"`        // trail alpha at the head
}

// DefaultElliptical returns the stock orbit tuning.
func DefaultElliptical() Elliptical {
	return Elliptical{
		Axis:         Range{0.20, 0.70},
		Eccentricity: Range{0, 0.25},
		Speed:        Range{25, 60},
		Tail:         Range{0.08, 0.18},
		Life:         Range{5, 15},
		FadeIn:       2,
		FadeOut:      2,
		Width:        1.6,
		Alpha:        0.85,
	}
}

// Kind implements Trajectory.
func (Elliptical) Kind() string { return KindElliptical }

func (e Elliptical) spawn(rnd *rand.Rand, s Surface) *Comet {
	a := e.Axis.Rand(rnd) * s.MinDim()
	ecc := e.Eccentricity.Rand(rnd)
	o := Orbit{
		Center: s.Center(),
		A:      a,
		B:      a * math.Sqrt(1-ecc*ecc),
		Rot:    rnd.Float64() * 2 * math.Pi,
		Theta:  rnd.Float64() * 2 * math.Pi,
		// wide orbits turn slower
		Omega: e.Speed.Rand(rnd) / a,
	}
	if rnd.Float64() < 0.5 {
		o.Omega = -o.Omega
	}
	return &Comet{
		Pos:     o.At(o.Theta),
		Orbit:   o,
		TailLen: e.Tail.Rand(rnd) * s.MinDim(),
		MaxLife: e.Life.Rand(rnd),
	}
}

func (e Elliptical) advance(c *Comet, dt float64) {
	c.Orbit.Theta = math.Mod(c.Orbit.Theta+c.Orbit.Omega*dt, 2*math.Pi)
	c.Pos = c.Orbit.At(c.Orbit.Theta)
	c.Trail.Push(c.Pos)
	c.Trail.Trim(c.TailLen)
}

func (e Elliptical) fade(c *Comet) float64 {
	op := 1.0
	if e.FadeIn > 0 {
		op = math.Min(op, c.Life/e.FadeIn)
	}
	if e.FadeOut > 0 {
		op = math.Min(op, (c.MaxLife-c.Life)/e.FadeOut)
	}
	return clamp01(op)
}

// Orbits are bounded, only age retires them.
func (e Elliptical) outOfBounds(*Comet, Surface) bool { return false }

func (e Elliptical) draw(cv Canvas, c *Comet, pal Palette, op float64) {
	pts := c.Trail.Points()
	n := len(pts)
	if n < 2 {
		return
	}
	for j := 0; j < n-1; j++ {
		// u is taken at the segment's tail end: 0 for the oldest segment,
		// (n-2)/(n-1) next to the head
		u := float64(j) / float64(n-1)
		col := RGBA{
			Color: pal.TrailTail.BlendRgb(pal.TrailHead.Color, u),
			A:     op * e.Alpha * u,
		}
		cv.StrokeLine(pts[j].X, pts[j].Y, pts[j+1].X, pts[j+1].Y, e.Width*u, col)
	}
}

func (e Elliptical) validate() error {
	if err := checkRanges(
		"elliptical.axis", e.Axis,
		"elliptical.eccentricity", e.Eccentricity,
		"elliptical.speed", e.Speed,
		"elliptical.tail", e.Tail,
		"elliptical.life", e.Life,
	); err != nil {
		return err
	}
	switch {
	case !(e.Axis.Min > 0):
		return fmt.Errorf("%w: elliptical.axis.min must be positive", ErrInvalidPreset)
	case e.Eccentricity.Min < 0 || e.Eccentricity.Max >= 1:
		return fmt.Errorf("%w: elliptical.eccentricity outside [0,1)", ErrInvalidPreset)
	case !(e.Speed.Min > 0):
		return fmt.Errorf("%w: elliptical.speed.min must be positive", ErrInvalidPreset)
	case !(e.Life.Min > 0):
		return fmt.Errorf("%w: elliptical.life.min must be positive", ErrInvalidPreset)
	case e.Tail.Min < 0 || e.FadeIn < 0 || e.FadeOut < 0:
		return fmt.Errorf("%w: elliptical tail or fade below zero", ErrInvalidPreset)
	}
	return nil
}

// TrajectorySpec wraps a Trajectory for JSON as {"kind": ..., "params": ...}.
type TrajectorySpec struct {
	Trajectory
}

func (s TrajectorySpec) validate() error {
	if s.Trajectory == nil {
		return fmt.Errorf("%w: missing comet trajectory", ErrInvalidPreset)
	}
	return s.Trajectory.validate()
}

// MarshalJSON implements json.Marshaler.
func (s TrajectorySpec) MarshalJSON() ([]byte, error) {
	if s.Trajectory == nil {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Kind   string     `json:"kind"`
		Params Trajectory `json:"params"`
	}{s.Kind(), s.Trajectory})
}

// UnmarshalJSON implements json.Unmarshaler. Params are applied on top of
// the current trajectory when the kind is unchanged, on top of the kind's
// defaults otherwise.
func (s *TrajectorySpec) UnmarshalJSON(raw []byte) error {
	v := struct {
		Kind   string          `json:"kind"`
		Params json.RawMessage `json:"params"`
	}{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v.Kind == "" && s.Trajectory != nil {
		v.Kind = s.Kind()
	}
	switch v.Kind {
	case KindLinear:
		p := DefaultLinear()
		if cur, ok := s.Trajectory.(Linear); ok {
			p = cur
		}
		if err := decodeParams(v.Params, &p); err != nil {
			return err
		}
		s.Trajectory = p
	case KindElliptical:
		p := DefaultElliptical()
		if cur, ok := s.Trajectory.(Elliptical); ok {
			p = cur
		}
		if err := decodeParams(v.Params, &p); err != nil {
			return err
		}
		s.Trajectory = p
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTrajectory, v.Kind)
	}
	return nil
}

func decodeParams(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
