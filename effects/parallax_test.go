package effects

import (
	"math"
	"testing"
)

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		want       Pointer
	}{
		{"top left", 0, 0, 1000, 800, Pointer{-1, -1}},
		{"centre", 500, 400, 1000, 800, Pointer{0, 0}},
		{"bottom right", 1000, 800, 1000, 800, Pointer{1, 1}},
		{"outside clamps", 1500, -100, 1000, 800, Pointer{1, -1}},
		{"empty viewport", 10, 10, 0, 0, Pointer{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePointer(tt.x, tt.y, tt.w, tt.h); got != tt.want {
				t.Errorf("NormalizePointer = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// settle steps until the controller goes idle and returns the step count.
func settle(t *testing.T, p *Parallax, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		if !p.Step() {
			return i
		}
	}
	t.Fatalf("parallax still moving after %d steps", limit)
	return 0
}

func TestParallaxTopLeftPointer(t *testing.T) {
	cfg := defaultParallax()
	p := NewParallax(cfg)
	if !p.Move(NormalizePointer(0, 0, 1000, 800)) {
		t.Fatal("first Move did not request a step")
	}
	settle(t, p, 1000)

	for _, tt := range []struct {
		name string
		want float64
	}{
		{"grid-fine", -14},
		{"grid-coarse", -14 * 0.4},
	} {
		l := p.Layer(tt.name)
		if l == nil {
			t.Fatalf("layer %s missing", tt.name)
		}
		if math.Abs(l.X-tt.want) >= cfg.Epsilon || math.Abs(l.Y-tt.want) >= cfg.Epsilon {
			t.Errorf("%s at (%v,%v), want about %v", tt.name, l.X, l.Y, tt.want)
		}
		if l.X >= 0 || l.Y >= 0 {
			t.Errorf("%s moved the wrong way: (%v,%v)", tt.name, l.X, l.Y)
		}
	}
	if p.Pending() {
		t.Error("settled controller still pending")
	}
}

func TestParallaxSchedulesOneStep(t *testing.T) {
	p := NewParallax(defaultParallax())
	if !p.Move(Pointer{0.5, 0.5}) {
		t.Fatal("first Move should schedule")
	}
	for i := 0; i < 10; i++ {
		if p.Move(Pointer{0.5 + float64(i)/100, 0.5}) {
			t.Fatal("Move scheduled while a step was pending")
		}
	}
	settle(t, p, 1000)
	if !p.Move(Pointer{0.5, 0.5}) {
		t.Error("Move after settling should schedule again")
	}
}

func TestParallaxIdleWithoutMovement(t *testing.T) {
	p := NewParallax(defaultParallax())
	p.Move(Pointer{})
	if p.Step() {
		t.Error("centred pointer on resting layers should settle at once")
	}
}

func TestParallaxSteadyStateBounded(t *testing.T) {
	cfg := defaultParallax()
	var targets []Pointer
	for x := -1.0; x <= 1; x += 0.25 {
		for y := -1.0; y <= 1; y += 0.5 {
			targets = append(targets, Pointer{x, y})
		}
	}
	targets = append(targets, Pointer{3, -7})

	p := NewParallax(cfg)
	for _, pt := range targets {
		p.Move(pt)
		for i := 0; i < 2000 && p.Step(); i++ {
			for _, l := range p.Layers() {
				limit := cfg.MaxShift*l.Factor + 1e-9
				if math.Abs(l.X) > limit || math.Abs(l.Y) > limit {
					t.Fatalf("pointer %+v: %s at (%v,%v) beyond %v", pt, l.Name, l.X, l.Y, limit)
				}
			}
		}
		if p.Pending() {
			t.Fatalf("pointer %+v never settled", pt)
		}
	}
}

func TestParallaxSpringSettles(t *testing.T) {
	cfg := defaultParallax()
	cfg.Smoothing = SmoothSpring
	p := NewParallax(cfg)
	p.Move(Pointer{1, 1})
	settle(t, p, 2000)
	fine := p.Layer("grid-fine")
	if math.Abs(fine.X-14) >= cfg.Epsilon || math.Abs(fine.Y-14) >= cfg.Epsilon {
		t.Errorf("fine layer at (%v,%v), want about 14", fine.X, fine.Y)
	}
}

func TestLayerTransform(t *testing.T) {
	l := &Layer{X: -14, Y: 3.14159}
	if got, want := l.Transform(), "translate(-14.00px, 3.14px)"; got != want {
		t.Errorf("Transform = %q, want %q", got, want)
	}
}
