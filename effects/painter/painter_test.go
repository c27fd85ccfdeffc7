package painter

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stdiopt/gowasm-backdrop/effects"
)

var black = color.NRGBA{A: 255}

func newPainter(t *testing.T) *BufPainter {
	t.Helper()
	p, err := New()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestHandleBeforeInit(t *testing.T) {
	p := newPainter(t)
	if err := p.HandleOP(ClearOP{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
	if err := p.SavePNG(filepath.Join(t.TempDir(), "x.png")); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SavePNG err = %v, want ErrNotInitialized", err)
	}
	if p.Width() != 0 || p.Height() != 0 {
		t.Errorf("size before init = %dx%d", p.Width(), p.Height())
	}
}

func TestHandleRawUnknownOP(t *testing.T) {
	p := newPainter(t)
	if err := p.HandleRaw([]byte(`{"OP":99,"Payload":{}}`)); !errors.Is(err, ErrUnknownOP) {
		t.Errorf("err = %v, want ErrUnknownOP", err)
	}
	p.Reset(effects.NewSurface(4, 4, 1))
	if err := p.HandleOP("circle"); !errors.Is(err, ErrUnknownOP) {
		t.Errorf("err = %v, want ErrUnknownOP", err)
	}
}

func TestResetScalesByDPR(t *testing.T) {
	p := newPainter(t)
	p.Background = black
	var got ResetOP
	p.OnReset = func(op ResetOP) { got = op }
	p.Reset(effects.NewSurface(20, 20, 2))
	if p.Width() != 40 || p.Height() != 40 {
		t.Fatalf("backing = %dx%d, want 40x40", p.Width(), p.Height())
	}
	if got.DPR != 2 {
		t.Errorf("OnReset got %+v", got)
	}

	p.FillCircle(10, 10, 4, effects.MustHex("#ffffff").With(1))
	img := p.Image()
	if c := img.RGBAAt(20, 20); c.R < 250 || c.G < 250 || c.B < 250 {
		t.Errorf("centre pixel = %v, want white", c)
	}
	if c := img.RGBAAt(10, 10); c != (color.RGBA{A: 255}) {
		t.Errorf("pixel outside circle = %v, want background", c)
	}
}

func TestClearTransparent(t *testing.T) {
	p := newPainter(t)
	p.Reset(effects.NewSurface(8, 8, 1))
	p.FillCircle(4, 4, 3, effects.MustHex("#ff0000").With(1))
	p.Clear()
	for _, b := range p.Image().Pix {
		if b != 0 {
			t.Fatal("image not cleared to transparent")
		}
	}
}

func TestZeroAlphaDrawsNothing(t *testing.T) {
	p := newPainter(t)
	p.Reset(effects.NewSurface(16, 16, 1))
	p.FillCircle(8, 8, 5, effects.MustHex("#ffffff").With(0))
	p.StrokeLine(0, 0, 16, 16, 2, effects.MustHex("#ffffff").With(0))
	for _, b := range p.Image().Pix {
		if b != 0 {
			t.Fatal("transparent shapes changed the image")
		}
	}
}

func TestStreakAndGlowLightPixels(t *testing.T) {
	p := newPainter(t)
	p.Background = black
	p.Reset(effects.NewSurface(40, 20, 1))
	p.Streak(30, 10, 5, 10, 2, []effects.Stop{
		{Offset: 0, Color: effects.MustHex("#ffe6a0").With(0.8)},
		{Offset: 0.35, Color: effects.MustHex("#e8a020").With(0.35)},
		{Offset: 1, Color: effects.MustHex("#b4640a").With(0)},
	})
	img := p.Image()
	head, tail := img.RGBAAt(29, 10), img.RGBAAt(6, 10)
	if head.R <= tail.R {
		t.Errorf("streak head %v not brighter than tail %v", head, tail)
	}

	p.Clear()
	p.Glow(20, 10, 6, effects.MustHex("#fff0b4").With(1), effects.MustHex("#e8a020").With(0))
	centre, rim := img.RGBAAt(20, 10), img.RGBAAt(25, 10)
	if centre.R == 0 || centre.R <= rim.R {
		t.Errorf("glow centre %v not brighter than rim %v", centre, rim)
	}
}

func TestTextDrawsPixels(t *testing.T) {
	p := newPainter(t)
	p.Reset(effects.NewSurface(120, 30, 1))
	p.Text(TextOP{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, Size: 12, X: 4, Y: 20, Text: "comet"})
	lit := 0
	for i := 3; i < len(p.Image().Pix); i += 4 {
		if p.Image().Pix[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("text drew no pixels")
	}
}

func drawScene(cv effects.Canvas) {
	cv.Reset(effects.NewSurface(64, 48, 2))
	cv.Clear()
	cv.FillCircle(10, 12, 1.5, effects.MustHex("#fff5dc").With(0.5))
	cv.FillCircle(40.5, 30, 1, effects.MustHex("#fff5dc").With(0.25))
	cv.StrokeLine(2, 40, 20, 30, 1.5, effects.MustHex("#e8a020").With(0.75))
	cv.Streak(60, 5, 30, 20, 2, []effects.Stop{
		{Offset: 0, Color: effects.MustHex("#ffe6a0").With(0.8)},
		{Offset: 1, Color: effects.MustHex("#b4640a").With(0)},
	})
	cv.Glow(32, 24, 3.5, effects.MustHex("#fff0b4").With(1), effects.MustHex("#e8a020").With(0))
}

func TestReplayMatchesDirectDrawing(t *testing.T) {
	direct := newPainter(t)
	drawScene(direct)

	rec := NewRecorder()
	drawScene(rec)
	var buf bytes.Buffer
	if _, err := rec.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	replayed := newPainter(t)
	if err := replayed.Replay(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(direct.Image().Pix, replayed.Image().Pix) {
		t.Error("replayed frame differs from the directly drawn one")
	}
}

func TestSavePNG(t *testing.T) {
	p := newPainter(t)
	p.Background = black
	p.Reset(effects.NewSurface(30, 10, 1.5))
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := p.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 45 || cfg.Height != 15 {
		t.Errorf("png = %dx%d, want 45x15", cfg.Width, cfg.Height)
	}
}

func TestFontCacheFallsBack(t *testing.T) {
	font, fd, err := loadDefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	fc := FontCache{}
	fc.Store(fd, font)
	fd.Name = "missing"
	got, err := fc.Load(fd)
	if err != nil || got != font {
		t.Errorf("Load(missing) = %v, %v", got, err)
	}
}
