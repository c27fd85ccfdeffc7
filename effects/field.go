// Package effects simulates and paints a starfield backdrop with comets,
// plus the pointer driven parallax of the grid layers behind it.
package effects

import (
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Field owns the stars and comets of one canvas. It is not safe for
// concurrent use; the host drives it from its frame callback.
type Field struct {
	preset  Preset
	traj    Trajectory
	rnd     *rand.Rand
	log     *slog.Logger
	surface Surface

	stars  []Star
	comets []*Comet

	elapsed float64 // seconds of simulated time
	lastTs  float64
	started bool
}

// Option configures a Field.
type Option func(*Field)

// WithRand sets the random source, for reproducible fields.
func WithRand(r *rand.Rand) Option {
	return func(f *Field) { f.rnd = r }
}

// WithLogger overrides the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Field) { f.log = l }
}

// NewField validates p and returns an empty field. Populations are created
// by the first Resize.
func NewField(p Preset, opts ...Option) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		preset: p,
		traj:   p.Comets.Trajectory.Trajectory,
	}
	for _, o := range opts {
		o(f)
	}
	if f.rnd == nil {
		f.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f.logger().Info("field created",
		"preset", p.Name,
		"trajectory", f.traj.Kind(),
		"stars", p.Stars.Count,
		"comets", p.Comets.Count,
	)
	return f, nil
}

func (f *Field) logger() *slog.Logger {
	if f.log != nil {
		return f.log
	}
	return Logger()
}

// Resize recomputes the surface and regenerates both populations from
// scratch.
func (f *Field) Resize(w, h, dpr float64) {
	f.surface = NewSurface(w, h, dpr)
	f.stars = GenerateStars(f.rnd, f.preset.Stars.Count, f.surface, f.preset.Stars)
	f.comets = make([]*Comet, f.preset.Comets.Count)
	for i := range f.comets {
		c := f.traj.spawn(f.rnd, f.surface)
		// stagger so the population does not fade in and out in lockstep
		c.Life = f.rnd.Float64() * c.MaxLife
		f.comets[i] = c
	}
	bw, bh := f.surface.BackingSize()
	f.logger().Debug("field resized",
		"width", f.surface.Width,
		"height", f.surface.Height,
		"dpr", f.surface.DPR,
		"backing", [2]int{bw, bh},
	)
}

// Tick converts a frame timestamp in milliseconds into a step clamped to
// MaxStep, runs Update and returns the step. The first tick steps zero.
func (f *Field) Tick(ts float64) float64 {
	if !f.started {
		f.started = true
		f.lastTs = ts
	}
	dt := (ts - f.lastTs) / 1000
	f.lastTs = ts
	dt = math.Max(0, math.Min(dt, f.preset.MaxStep))
	f.Update(dt)
	return dt
}

// Update advances the simulation by dt seconds. Comets that expire or
// leave their bounds are replaced within the same call.
func (f *Field) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	f.elapsed += dt
	for i, c := range f.comets {
		c.Life += dt
		f.traj.advance(c, dt)

		reason := ""
		switch {
		case c.Expired():
			reason = "expired"
		case f.traj.outOfBounds(c, f.surface):
			reason = "out of bounds"
		default:
			continue
		}
		f.comets[i] = f.traj.spawn(f.rnd, f.surface)
		f.logger().Debug("comet respawned", "index", i, "reason", reason, "life", c.Life)
	}
}

// Render paints the current state.
func (f *Field) Render(cv Canvas) {
	cv.Clear()
	pal := f.preset.Palette
	for _, s := range f.stars {
		cv.FillCircle(s.X, s.Y, s.Radius, pal.Star.With(s.Alpha(f.elapsed)))
	}
	for _, c := range f.comets {
		op := f.traj.fade(c)
		if op <= 0 {
			continue
		}
		f.traj.draw(cv, c, pal, op)
		if r := f.preset.Comets.GlowRadius; r > 0 {
			cv.Glow(c.Pos.X, c.Pos.Y, r, pal.GlowInner.With(op), pal.GlowOuter.With(0))
		}
	}
}

// Frame is Tick followed by Render.
func (f *Field) Frame(ts float64, cv Canvas) {
	f.Tick(ts)
	f.Render(cv)
}

// Preset returns the field tuning.
func (f *Field) Preset() Preset { return f.preset }

// Surface returns the current geometry.
func (f *Field) Surface() Surface { return f.surface }

// Stars returns the star set.
func (f *Field) Stars() []Star { return f.stars }

// Comets returns the live comets. The slice is fixed size, entries are
// swapped when comets are replaced.
func (f *Field) Comets() []*Comet { return f.comets }

// Elapsed is the simulated time in seconds.
func (f *Field) Elapsed() float64 { return f.elapsed }
