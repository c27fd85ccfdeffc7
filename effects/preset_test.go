package effects

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLookupPreset(t *testing.T) {
	if got, want := PresetNames(), []string{"drift", "orbit"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PresetNames = %v, want %v", got, want)
	}
	for _, name := range PresetNames() {
		p, err := LookupPreset(name)
		if err != nil {
			t.Fatalf("LookupPreset(%q): %v", name, err)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("built-in %q invalid: %v", name, err)
		}
	}
	if _, err := LookupPreset("nebula"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestLookupPresetReturnsCopies(t *testing.T) {
	a, _ := LookupPreset(PresetDrift)
	a.Parallax.Layers[0].Factor = 0
	b, _ := LookupPreset(PresetDrift)
	if b.Parallax.Layers[0].Factor != 1 {
		t.Error("mutating a looked up preset changed the built-in")
	}
}

func TestLoadPresetOverrides(t *testing.T) {
	doc := `{
		"base": "orbit",
		"stars": {"count": 50},
		"comets": {"trajectory": {"params": {"eccentricity": {"min": 0, "max": 0.1}}}},
		"palette": {"star": "#ffffff"}
	}`
	p, err := LoadPreset(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := OrbitPreset()
	if p.Name != want.Name {
		t.Errorf("name = %q, want %q", p.Name, want.Name)
	}
	if p.Stars.Count != 50 {
		t.Errorf("stars.count = %d, want 50", p.Stars.Count)
	}
	if p.Stars.Base != want.Stars.Base || p.Comets.Count != 7 {
		t.Error("untouched settings did not keep the base values")
	}
	e, ok := p.Comets.Trajectory.Trajectory.(Elliptical)
	if !ok {
		t.Fatalf("trajectory = %T, want Elliptical", p.Comets.Trajectory.Trajectory)
	}
	wantE := DefaultElliptical()
	wantE.Eccentricity = Range{0, 0.1}
	if e != wantE {
		t.Errorf("elliptical = %+v, want %+v", e, wantE)
	}
	if got := p.Palette.Star.Hex(); got != "#ffffff" {
		t.Errorf("palette.star = %s", got)
	}
	if p.Palette.TrailHead != want.Palette.TrailHead {
		t.Error("palette.trail_head changed")
	}
}

func TestLoadPresetSwitchesKind(t *testing.T) {
	doc := `{"base": "orbit", "comets": {"trajectory": {"kind": "linear", "params": {"width": 2}}}}`
	p, err := LoadPreset(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultLinear()
	want.Width = 2
	if got := p.Comets.Trajectory.Trajectory; got != Trajectory(want) {
		t.Errorf("trajectory = %+v, want %+v", got, want)
	}
}

func TestLoadPresetDefaultsToDrift(t *testing.T) {
	p, err := LoadPreset(strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, DriftPreset()) {
		t.Errorf("empty document = %+v, want the drift preset", p)
	}
}

func TestLoadPresetRoundTrip(t *testing.T) {
	raw, err := json.Marshal(OrbitPreset())
	if err != nil {
		t.Fatal(err)
	}
	p, err := LoadPreset(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, OrbitPreset()) {
		t.Errorf("round trip = %+v, want %+v", p, OrbitPreset())
	}
}

func TestLoadPresetErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"syntax", `{"stars":`, ErrInvalidPreset},
		{"unknown base", `{"base": "nebula"}`, ErrUnknownPreset},
		{"unknown kind", `{"comets": {"trajectory": {"kind": "spiral"}}}`, ErrUnknownTrajectory},
		{"bad colour", `{"palette": {"star": "gold"}}`, ErrInvalidPreset},
		{"wrong type", `{"stars": {"count": "many"}}`, ErrInvalidPreset},
		{"linear speed", `{"comets": {"trajectory": {"params": {"speed": {"min": 0, "max": 10}}}}}`, ErrInvalidPreset},
		{"eccentricity", `{"base": "orbit", "comets": {"trajectory": {"params": {"eccentricity": {"min": 0, "max": 1}}}}}`, ErrInvalidPreset},
		{"inverted range", `{"stars": {"radius": {"min": 2, "max": 1}}}`, ErrInvalidPreset},
		{"lerp", `{"parallax": {"lerp": 0}}`, ErrInvalidPreset},
		{"smoothing", `{"parallax": {"smoothing": "cubic"}}`, ErrInvalidPreset},
		{"layer factor", `{"parallax": {"layers": [{"name": "grid-fine", "factor": 2}]}}`, ErrInvalidPreset},
		{"max step", `{"max_step": 0}`, ErrInvalidPreset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPreset(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSpringPresetValidates(t *testing.T) {
	p := DriftPreset()
	p.Parallax.Smoothing = SmoothSpring
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	p.Parallax.FPS = 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("err = %v, want ErrInvalidPreset", err)
	}
}
