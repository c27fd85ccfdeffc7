package effects

import (
	"math"
	"math/rand"
)

// Star is a fixed point that twinkles at its own frequency and phase.
type Star struct {
	X, Y   float64
	Radius float64
	Base   float64 // peak alpha
	Freq   float64 // Hz
	Phase  float64 // radians
}

// Alpha at time t seconds, always within [0, Base].
func (s Star) Alpha(t float64) float64 {
	return s.Base * (0.5 + 0.5*math.Sin(2*math.Pi*s.Freq*t+s.Phase))
}

// GenerateStars scatters n stars uniformly over the surface.
func GenerateStars(rnd *rand.Rand, n int, s Surface, cfg StarConfig) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:      rnd.Float64() * s.Width,
			Y:      rnd.Float64() * s.Height,
			Radius: cfg.Radius.Rand(rnd),
			Base:   cfg.Base.Rand(rnd),
			Freq:   cfg.Freq.Rand(rnd),
			Phase:  rnd.Float64() * 2 * math.Pi,
		}
	}
	return stars
}
