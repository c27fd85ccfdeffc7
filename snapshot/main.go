// Command snapshot runs a starfield preset headlessly with synthetic frame
// timestamps and saves the last frame as a PNG and/or a JSON op trace.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/stdiopt/gowasm-backdrop/effects"
	"github.com/stdiopt/gowasm-backdrop/effects/painter"
)

var background = color.NRGBA{R: 5, G: 7, B: 13, A: 255}

type options struct {
	preset  string
	config  string
	width   float64
	height  float64
	dpr     float64
	frames  int
	fps     float64
	seed    int64
	out     string
	trace   string
	replay  string
	label   bool
	verbose bool
}

func main() {
	var o options
	flag.StringVar(&o.preset, "preset", effects.DefaultPresetName, "built-in preset: "+strings.Join(effects.PresetNames(), ", "))
	flag.StringVar(&o.config, "config", "", "JSON preset overrides, takes precedence over -preset")
	flag.Float64Var(&o.width, "width", 1280, "viewport width")
	flag.Float64Var(&o.height, "height", 720, "viewport height")
	flag.Float64Var(&o.dpr, "dpr", 1, "device pixel ratio")
	flag.IntVar(&o.frames, "frames", 180, "frames to simulate")
	flag.Float64Var(&o.fps, "fps", 60, "synthetic frame rate")
	flag.Int64Var(&o.seed, "seed", 0, "random seed, 0 for time based")
	flag.StringVar(&o.out, "out", "starfield.png", "PNG output, empty to skip")
	flag.StringVar(&o.trace, "trace", "", "JSON lines op trace output")
	flag.StringVar(&o.replay, "replay", "", "render a JSON lines op trace to -out instead of simulating")
	flag.BoolVar(&o.label, "label", true, "stamp preset name and time on the PNG")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	effects.SetLogger(log)

	runFn := run
	if o.replay != "" {
		runFn = replay
	}
	if err := runFn(o, log); err != nil {
		log.Error("snapshot failed", "err", err)
		os.Exit(1)
	}
}

func run(o options, log *slog.Logger) error {
	p, err := loadPreset(o)
	if err != nil {
		return err
	}
	if o.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %g", o.fps)
	}
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	field, err := effects.NewField(p, effects.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return err
	}
	field.Resize(o.width, o.height, o.dpr)

	step := 1000 / o.fps
	for i := 0; i < o.frames; i++ {
		field.Tick(float64(i) * step)
	}
	log.Info("simulated", "preset", p.Name, "frames", o.frames, "elapsed", field.Elapsed(), "seed", seed)

	if o.out != "" {
		bp, err := painter.New()
		if err != nil {
			return err
		}
		bp.Background = background
		bp.Reset(field.Surface())
		field.Render(bp)
		if o.label {
			bp.Text(painter.TextOP{
				Color: color.NRGBA{R: 232, G: 160, B: 32, A: 200},
				Size:  10,
				X:     12,
				Y:     22,
				Text:  fmt.Sprintf("%s  t=%.2fs", p.Name, field.Elapsed()),
			})
		}
		if err := bp.SavePNG(o.out); err != nil {
			return err
		}
		log.Info("wrote png", "path", o.out, "width", bp.Width(), "height", bp.Height())
	}

	if o.trace != "" {
		rec := painter.NewRecorder()
		rec.Reset(field.Surface())
		field.Render(rec)
		f, err := os.Create(o.trace)
		if err != nil {
			return err
		}
		n, err := rec.WriteTo(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		log.Info("wrote trace", "path", o.trace, "ops", len(rec.Ops()), "bytes", n)
	}
	return nil
}

// replay rasterizes a trace written by -trace.
func replay(o options, log *slog.Logger) error {
	if o.out == "" {
		return fmt.Errorf("-replay needs -out")
	}
	f, err := os.Open(o.replay)
	if err != nil {
		return err
	}
	defer f.Close()

	bp, err := painter.New()
	if err != nil {
		return err
	}
	bp.Background = background
	if err := bp.Replay(f); err != nil {
		return fmt.Errorf("replay %s: %w", o.replay, err)
	}
	if err := bp.SavePNG(o.out); err != nil {
		return err
	}
	log.Info("replayed trace", "path", o.replay, "out", o.out, "width", bp.Width(), "height", bp.Height())
	return nil
}

func loadPreset(o options) (effects.Preset, error) {
	if o.config == "" {
		return effects.LookupPreset(o.preset)
	}
	f, err := os.Open(o.config)
	if err != nil {
		return effects.Preset{}, err
	}
	defer f.Close()
	return effects.LoadPreset(f)
}
