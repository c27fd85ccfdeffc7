package effects

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
)

// Preset names.
const (
	PresetDrift = "drift"
	PresetOrbit = "orbit"

	DefaultPresetName = PresetDrift
)

// Smoothing modes for the parallax layers.
const (
	SmoothLerp   = "lerp"
	SmoothSpring = "spring"
)

var (
	// ErrInvalidPreset is wrapped by every preset validation error.
	ErrInvalidPreset = errors.New("invalid preset")
	// ErrUnknownPreset is returned for a name with no built-in preset.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrUnknownTrajectory is returned when decoding an unknown kind.
	ErrUnknownTrajectory = errors.New("unknown trajectory")
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Rand returns a value in [Min, Max).
func (r Range) Rand(rnd *rand.Rand) float64 {
	return r.Min + rnd.Float64()*(r.Max-r.Min)
}

func (r Range) check(name string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return fmt.Errorf("%w: %s range [%g, %g]", ErrInvalidPreset, name, r.Min, r.Max)
	}
	return nil
}

// checkRanges takes name, Range pairs.
func checkRanges(pairs ...interface{}) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := pairs[i+1].(Range).check(pairs[i].(string)); err != nil {
			return err
		}
	}
	return nil
}

// Preset is the full tuning of a field and its parallax grid.
type Preset struct {
	Name     string         `json:"name"`
	Stars    StarConfig     `json:"stars"`
	Comets   CometConfig    `json:"comets"`
	Parallax ParallaxConfig `json:"parallax"`
	Palette  Palette        `json:"palette"`
	// MaxStep caps the simulation step in seconds.
	MaxStep float64 `json:"max_step"`
}

// StarConfig tunes the star population.
type StarConfig struct {
	Count  int   `json:"count"`
	Radius Range `json:"radius"`
	Base   Range `json:"base"`
	Freq   Range `json:"freq"`
}

// CometConfig tunes the comet population.
type CometConfig struct {
	Count      int            `json:"count"`
	GlowRadius float64        `json:"glow_radius"`
	Trajectory TrajectorySpec `json:"trajectory"`
}

// ParallaxConfig tunes the grid layers.
type ParallaxConfig struct {
	MaxShift  float64       `json:"max_shift"`
	Lerp      float64       `json:"lerp"`
	Epsilon   float64       `json:"epsilon"`
	Smoothing string        `json:"smoothing"`
	Layers    []LayerConfig `json:"layers"`

	// spring smoothing only
	Frequency float64 `json:"frequency"`
	Damping   float64 `json:"damping"`
	FPS       int     `json:"fps"`
}

// LayerConfig names a DOM layer and its share of MaxShift.
type LayerConfig struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// Palette holds every colour the field paints with.
type Palette struct {
	Star       Hex `json:"star"`
	TrailHead  Hex `json:"trail_head"`
	TrailTail  Hex `json:"trail_tail"`
	GlowInner  Hex `json:"glow_inner"`
	GlowOuter  Hex `json:"glow_outer"`
	StreakHead Hex `json:"streak_head"`
	StreakMid  Hex `json:"streak_mid"`
	StreakTail Hex `json:"streak_tail"`
}

func defaultParallax() ParallaxConfig {
	return ParallaxConfig{
		MaxShift:  14,
		Lerp:      0.06,
		Epsilon:   0.05,
		Smoothing: SmoothLerp,
		Layers: []LayerConfig{
			{Name: "grid-fine", Factor: 1},
			{Name: "grid-coarse", Factor: 0.4},
		},
		Frequency: 6,
		Damping:   1,
		FPS:       60,
	}
}

func defaultPalette() Palette {
	return Palette{
		Star:       MustHex("#fff5dc"),
		TrailHead:  MustHex("#fff8e8"),
		TrailTail:  MustHex("#e8a020"),
		GlowInner:  MustHex("#fff0b4"),
		GlowOuter:  MustHex("#e8a020"),
		StreakHead: MustHex("#ffe6a0"),
		StreakMid:  MustHex("#e8a020"),
		StreakTail: MustHex("#b4640a"),
	}
}

func defaultStars() StarConfig {
	return StarConfig{
		Count:  300,
		Radius: Range{0.2, 1.1},
		Base:   Range{0.08, 0.53},
		Freq:   Range{0.2, 0.8},
	}
}

// DriftPreset is the straight line comet tuning.
func DriftPreset() Preset {
	return Preset{
		Name:  PresetDrift,
		Stars: defaultStars(),
		Comets: CometConfig{
			Count:      7,
			GlowRadius: 3.5,
			Trajectory: TrajectorySpec{DefaultLinear()},
		},
		Parallax: defaultParallax(),
		Palette:  defaultPalette(),
		MaxStep:  0.05,
	}
}

// OrbitPreset is the elliptical comet tuning with retained trails.
func OrbitPreset() Preset {
	p := DriftPreset()
	p.Name = PresetOrbit
	p.Stars.Base = Range{0.06, 0.45}
	p.Comets.GlowRadius = 3
	p.Comets.Trajectory = TrajectorySpec{DefaultElliptical()}
	return p
}

var builtins = map[string]func() Preset{
	PresetDrift: DriftPreset,
	PresetOrbit: OrbitPreset,
}

// PresetNames lists the built-in presets in order.
func PresetNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns a fresh copy of a built-in preset.
func LookupPreset(name string) (Preset, error) {
	fn, ok := builtins[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

// LoadPreset decodes a JSON document of overrides. The optional "base" key
// names the built-in the overrides apply to, DefaultPresetName otherwise.
func LoadPreset(r io.Reader) (Preset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Preset{}, err
	}
	head := struct {
		Base string `json:"base"`
	}{}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Preset{}, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if head.Base == "" {
		head.Base = DefaultPresetName
	}
	p, err := LookupPreset(head.Base)
	if err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		if errors.Is(err, ErrInvalidPreset) || errors.Is(err, ErrUnknownTrajectory) {
			return Preset{}, err
		}
		return Preset{}, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Validate reports the first bad setting.
func (p Preset) Validate() error {
	if p.Stars.Count < 0 || p.Comets.Count < 0 {
		return fmt.Errorf("%w: negative population", ErrInvalidPreset)
	}
	if err := checkRanges(
		"stars.radius", p.Stars.Radius,
		"stars.base", p.Stars.Base,
		"stars.freq", p.Stars.Freq,
	); err != nil {
		return err
	}
	if p.Stars.Base.Min < 0 || p.Stars.Base.Max > 1 {
		return fmt.Errorf("%w: stars.base outside [0,1]", ErrInvalidPreset)
	}
	if p.Stars.Radius.Min < 0 {
		return fmt.Errorf("%w: stars.radius below zero", ErrInvalidPreset)
	}
	if !(p.MaxStep > 0) {
		return fmt.Errorf("%w: max_step must be positive", ErrInvalidPreset)
	}
	if p.Comets.GlowRadius < 0 {
		return fmt.Errorf("%w: comets.glow_radius below zero", ErrInvalidPreset)
	}
	if p.Comets.Trajectory.Trajectory == nil {
		return fmt.Errorf("%w: missing comet trajectory", ErrInvalidPreset)
	}
	if err := p.Comets.Trajectory.validate(); err != nil {
		return err
	}
	return p.Parallax.validate()
}

func (c ParallaxConfig) validate() error {
	switch {
	case c.MaxShift < 0:
		return fmt.Errorf("%w: parallax.max_shift below zero", ErrInvalidPreset)
	case !(c.Epsilon > 0):
		return fmt.Errorf("%w: parallax.epsilon must be positive", ErrInvalidPreset)
	}
	switch c.Smoothing {
	case SmoothLerp, "":
		if !(c.Lerp > 0 && c.Lerp <= 1) {
			return fmt.Errorf("%w: parallax.lerp outside (0,1]", ErrInvalidPreset)
		}
	case SmoothSpring:
		if !(c.Frequency > 0) || c.Damping < 0 || c.FPS <= 0 {
			return fmt.Errorf("%w: parallax spring settings", ErrInvalidPreset)
		}
	default:
		return fmt.Errorf("%w: parallax.smoothing %q", ErrInvalidPreset, c.Smoothing)
	}
	for _, l := range c.Layers {
		if l.Name == "" || l.Factor < 0 || l.Factor > 1 {
			return fmt.Errorf("%w: parallax layer %q factor %g", ErrInvalidPreset, l.Name, l.Factor)
		}
	}
	return nil
}
