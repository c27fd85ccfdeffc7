// Package painter rasterizes effects frames without a browser, using
// draw2d, and records or replays them as JSON draw ops.
package painter

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/stdiopt/gowasm-backdrop/effects"
)

// ErrNotInitialized is returned when drawing before the first reset.
var ErrNotInitialized = errors.New("painter: not initialized")

const (
	glowRings      = 8
	streakSegments = 16
)

// BufPainter draws into an in-memory RGBA image. It implements
// effects.Canvas.
type BufPainter struct {
	image    *image.RGBA
	ctx      *draw2dimg.GraphicContext
	font     *truetype.Font
	fontData draw2d.FontData
	surface  effects.Surface

	// Background fills the image on Clear, transparent when nil.
	Background color.Color
	OnReset    func(ResetOP)
}

// New loads the label font. Call Reset before drawing.
func New() (*BufPainter, error) {
	font, fd, err := loadDefaultFont()
	if err != nil {
		return nil, err
	}
	return &BufPainter{font: font, fontData: fd}, nil
}

// HandleRaw decodes and applies a single JSON message.
func (p *BufPainter) HandleRaw(msg []byte) error {
	m := Message{}
	err := json.Unmarshal(msg, &m)
	if err != nil {
		return err
	}
	return p.HandleOP(m.Payload)
}

// Replay applies a stream of JSON messages, as written by Recorder.
func (p *BufPainter) Replay(r io.Reader) error {
	dec := json.NewDecoder(r)
	for {
		m := Message{}
		err := dec.Decode(&m)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.HandleOP(m.Payload); err != nil {
			return err
		}
	}
}

// HandleOP applies one op.
func (p *BufPainter) HandleOP(op interface{}) error {
	if o, ok := op.(ResetOP); ok {
		p.Init(o)
		return nil
	}
	if p.ctx == nil {
		return ErrNotInitialized
	}
	switch o := op.(type) {
	case ClearOP:
		p.Clear()
	case CircleOP:
		p.circle(o)
	case LineOP:
		p.line(o)
	case StreakOP:
		p.streak(o)
	case GlowOP:
		p.glow(o)
	case TextOP:
		p.Text(o)
	default:
		return ErrUnknownOP
	}
	return nil
}

// Image returns the backing image, nil before the first reset.
func (p *BufPainter) Image() *image.RGBA {
	return p.image
}

func (p *BufPainter) Width() int {
	if p.image == nil {
		return 0
	}
	return p.image.Bounds().Max.X
}

func (p *BufPainter) Height() int {
	if p.image == nil {
		return 0
	}
	return p.image.Bounds().Max.Y
}

// SavePNG writes the current image.
func (p *BufPainter) SavePNG(path string) error {
	if p.image == nil {
		return ErrNotInitialized
	}
	return draw2dimg.SaveToPngFile(path, p.image)
}

// Init allocates the backing image for op and scales the context by its
// pixel ratio.
func (p *BufPainter) Init(op ResetOP) {
	p.surface = effects.NewSurface(op.Width, op.Height, op.DPR)
	w, h := p.surface.BackingSize()
	p.image = image.NewRGBA(image.Rect(0, 0, w, h))

	fontCache := FontCache{}
	fontCache.Store(p.fontData, p.font)

	p.ctx = draw2dimg.NewGraphicContext(p.image)
	p.ctx.FontCache = fontCache
	p.ctx.SetMatrixTransform(draw2d.NewScaleMatrix(p.surface.DPR, p.surface.DPR))
	p.ctx.SetLineCap(draw2d.RoundCap)
	p.Clear()

	if p.OnReset != nil {
		p.OnReset(op)
	}
}

// Reset implements effects.Canvas.
func (p *BufPainter) Reset(s effects.Surface) {
	p.Init(ResetOP{Width: s.Width, Height: s.Height, DPR: s.DPR})
}

// Clear implements effects.Canvas.
func (p *BufPainter) Clear() {
	if p.image == nil {
		return
	}
	bg := image.Image(image.Transparent)
	if p.Background != nil {
		bg = image.NewUniform(p.Background)
	}
	draw.Draw(p.image, p.image.Bounds(), bg, image.Point{}, draw.Src)
}

// FillCircle implements effects.Canvas.
func (p *BufPainter) FillCircle(x, y, r float64, c effects.RGBA) {
	p.circle(CircleOP{Color: c.NRGBA(), X: x, Y: y, R: r})
}

// StrokeLine implements effects.Canvas.
func (p *BufPainter) StrokeLine(x0, y0, x1, y1, width float64, c effects.RGBA) {
	p.line(LineOP{Color: c.NRGBA(), Width: width, X1: x0, Y1: y0, X2: x1, Y2: y1})
}

// Streak implements effects.Canvas.
func (p *BufPainter) Streak(x0, y0, x1, y1, width float64, stops []effects.Stop) {
	p.streak(streakOP(x0, y0, x1, y1, width, stops))
}

// Glow implements effects.Canvas.
func (p *BufPainter) Glow(x, y, r float64, inner, outer effects.RGBA) {
	p.glow(GlowOP{X: x, Y: y, R: r, Inner: inner.NRGBA(), Outer: outer.NRGBA()})
}

// Text draws a label with the default font.
func (p *BufPainter) Text(op TextOP) {
	c := p.ctx
	if c == nil {
		return
	}
	c.SetFillColor(op.Color)
	c.SetFont(p.font)
	c.SetFontSize(op.Size)
	c.FillStringAt(op.Text, op.X, op.Y)
}

func (p *BufPainter) circle(op CircleOP) {
	c := p.ctx
	if c == nil || op.Color.A == 0 || op.R <= 0 {
		return
	}
	c.SetFillColor(op.Color)
	c.BeginPath()
	draw2dkit.Circle(c, op.X, op.Y, op.R)
	c.Fill()
}

func (p *BufPainter) line(op LineOP) {
	c := p.ctx
	if c == nil || op.Color.A == 0 || op.Width <= 0 {
		return
	}
	c.SetStrokeColor(op.Color)
	c.SetLineWidth(op.Width)
	c.BeginPath()
	c.MoveTo(op.X1, op.Y1)
	c.LineTo(op.X2, op.Y2)
	c.Stroke()
}

// streak approximates the linear gradient with short solid segments
// sampled at their midpoints.
func (p *BufPainter) streak(op StreakOP) {
	stops := make([]effects.Stop, len(op.Stops))
	for i, s := range op.Stops {
		stops[i] = effects.Stop{Offset: s.Offset, Color: effects.FromNRGBA(s.Color)}
	}
	dx, dy := op.X2-op.X1, op.Y2-op.Y1
	for i := 0; i < streakSegments; i++ {
		t0 := float64(i) / streakSegments
		t1 := float64(i+1) / streakSegments
		col := effects.SampleStops(stops, (t0+t1)/2)
		p.line(LineOP{
			Color: col.NRGBA(),
			Width: op.Width,
			X1:    op.X1 + dx*t0,
			Y1:    op.Y1 + dy*t0,
			X2:    op.X1 + dx*t1,
			Y2:    op.Y1 + dy*t1,
		})
	}
}

// glow approximates the radial gradient with concentric discs, outermost
// first, whose alphas compose to roughly the gradient value at each ring.
func (p *BufPainter) glow(op GlowOP) {
	if op.R <= 0 {
		return
	}
	inner := effects.FromNRGBA(op.Inner)
	outer := effects.FromNRGBA(op.Outer)
	for i := glowRings; i >= 1; i-- {
		t := float64(i) / glowRings
		col := inner.Blend(outer, t)
		col.A = 1 - math.Pow(1-col.A, 1.0/glowRings)
		p.circle(CircleOP{Color: col.NRGBA(), X: op.X, Y: op.Y, R: op.R * t})
	}
}

func streakOP(x0, y0, x1, y1, width float64, stops []effects.Stop) StreakOP {
	op := StreakOP{Width: width, X1: x0, Y1: y0, X2: x1, Y2: y1}
	for _, s := range stops {
		op.Stops = append(op.Stops, StopOP{Offset: s.Offset, Color: s.Color.NRGBA()})
	}
	return op
}
