package effects

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Hex is a colour that encodes to JSON as "#rrggbb".
type Hex struct {
	colorful.Color
}

// MustHex parses s or panics, for built-in palettes.
func MustHex(s string) Hex {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return Hex{c}
}

// With returns the colour at alpha a.
func (h Hex) With(a float64) RGBA {
	return RGBA{Color: h.Color, A: a}
}

// MarshalJSON implements json.Marshaler.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Color.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hex) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("%w: colour %q", ErrInvalidPreset, s)
	}
	h.Color = c
	return nil
}

// RGBA is a colour with straight (non premultiplied) alpha in [0,1].
type RGBA struct {
	colorful.Color
	A float64
}

// FromNRGBA converts an 8 bit colour.
func FromNRGBA(c color.NRGBA) RGBA {
	return RGBA{
		Color: colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		},
		A: float64(c.A) / 255,
	}
}

// CSS renders the colour as a canvas style string.
func (c RGBA) CSS() string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", r, g, b, clamp01(c.A))
}

// NRGBA returns the 8 bit version.
func (c RGBA) NRGBA() color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// Blend interpolates colour and alpha, t=0 is c, t=1 is o.
func (c RGBA) Blend(o RGBA, t float64) RGBA {
	return RGBA{
		Color: c.Color.BlendRgb(o.Color, t),
		A:     c.A + (o.A-c.A)*t,
	}
}

// Stop is a gradient colour stop.
type Stop struct {
	Offset float64
	Color  RGBA
}

// SampleStops returns the gradient colour at t. Stops must be sorted by
// offset; t outside the stops clamps to the end colours.
func SampleStops(stops []Stop, t float64) RGBA {
	if len(stops) == 0 {
		return RGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return a.Color.Blend(b.Color, (t-a.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
