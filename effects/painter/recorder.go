package painter

import (
	"encoding/json"
	"io"
	"math"

	"github.com/stdiopt/gowasm-backdrop/effects"
)

// Recorder is an effects.Canvas that keeps the draw calls as ops instead
// of drawing them. Coordinates are rounded to 1/100 px.
type Recorder struct {
	ops []Message
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Ops returns the recorded messages.
func (r *Recorder) Ops() []Message { return r.ops }

// Truncate drops everything recorded so far.
func (r *Recorder) Truncate() { r.ops = r.ops[:0] }

// WriteTo writes one JSON message per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	enc := json.NewEncoder(cw)
	for _, m := range r.ops {
		if err := enc.Encode(m); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

func (r *Recorder) add(op interface{}) {
	r.ops = append(r.ops, Message{Payload: op})
}

// Reset implements effects.Canvas.
func (r *Recorder) Reset(s effects.Surface) {
	r.add(ResetOP{Width: s.Width, Height: s.Height, DPR: s.DPR})
}

// Clear implements effects.Canvas.
func (r *Recorder) Clear() {
	r.add(ClearOP{})
}

// FillCircle implements effects.Canvas.
func (r *Recorder) FillCircle(x, y, rad float64, c effects.RGBA) {
	r.add(CircleOP{Color: c.NRGBA(), X: round2(x), Y: round2(y), R: round2(rad)})
}

// StrokeLine implements effects.Canvas.
func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c effects.RGBA) {
	r.add(LineOP{
		Color: c.NRGBA(),
		Width: round2(width),
		X1:    round2(x0),
		Y1:    round2(y0),
		X2:    round2(x1),
		Y2:    round2(y1),
	})
}

// Streak implements effects.Canvas.
func (r *Recorder) Streak(x0, y0, x1, y1, width float64, stops []effects.Stop) {
	r.add(streakOP(round2(x0), round2(y0), round2(x1), round2(y1), round2(width), stops))
}

// Glow implements effects.Canvas.
func (r *Recorder) Glow(x, y, rad float64, inner, outer effects.RGBA) {
	r.add(GlowOP{X: round2(x), Y: round2(y), R: round2(rad), Inner: inner.NRGBA(), Outer: outer.NRGBA()})
}

// Text records a label op.
func (r *Recorder) Text(op TextOP) {
	r.add(op)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
