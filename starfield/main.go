//go:build js && wasm

// Starfield backdrop: parallax grid layers plus the comet canvas.
// compile: GOOS=js GOARCH=wasm go build -o main.wasm ./starfield
package main

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
	"syscall/js"

	"github.com/stdiopt/gowasm-backdrop/effects"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	effects.SetLogger(slog.Default())

	c := &fxClient{done: make(chan struct{})}

	initFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		c.Start()
		return nil
	})
	js.Global().Set("initEffects", initFn)

	doc := js.Global().Get("document")
	if doc.Get("readyState").String() == "loading" {
		doc.Call("addEventListener", "DOMContentLoaded", initFn)
	} else {
		c.Start()
	}

	// callbacks must outlive main; the page owns the lifetime
	<-c.done
}

type fxClient struct {
	done    chan struct{}
	started bool

	win      js.Value
	doc      js.Value
	canvasEl js.Value
	layers   map[string]js.Value

	canvas   *jsCanvas
	field    *effects.Field
	parallax *effects.Parallax

	gridFrame   js.Func
	renderFrame js.Func
}

// Start binds the DOM and starts the render loop. Later calls are no-ops.
func (c *fxClient) Start() {
	if c.started {
		return
	}
	c.started = true

	c.win = js.Global()
	c.doc = c.win.Get("document")

	p, err := c.loadPreset()
	if err != nil {
		slog.Error("preset", "err", err)
		p = effects.DriftPreset()
	}
	c.field, err = effects.NewField(p)
	if err != nil {
		slog.Error("field", "err", err)
		return
	}
	c.parallax = effects.NewParallax(p.Parallax)

	c.initCanvas()
	c.initGrid()
	c.initFrameUpdate()
	c.initEvents()
}

// loadPreset reads, in order: an inline JSON override in
// <script id="effects-preset" type="application/json">, ?preset= in the URL
// and data-preset on <body>.
func (c *fxClient) loadPreset() (effects.Preset, error) {
	if el := c.doc.Call("getElementById", "effects-preset"); el.Truthy() {
		return effects.LoadPreset(strings.NewReader(el.Get("textContent").String()))
	}
	name := ""
	q, err := url.ParseQuery(strings.TrimPrefix(c.win.Get("location").Get("search").String(), "?"))
	if err == nil {
		name = q.Get("preset")
	}
	if ds := c.doc.Get("body").Get("dataset").Get("preset"); name == "" && ds.Truthy() {
		name = ds.String()
	}
	if name == "" {
		name = effects.DefaultPresetName
	}
	return effects.LookupPreset(name)
}

func (c *fxClient) viewport() (w, h, dpr float64) {
	dpr = 1
	if v := c.win.Get("devicePixelRatio"); v.Truthy() {
		dpr = v.Float()
	}
	return c.win.Get("innerWidth").Float(), c.win.Get("innerHeight").Float(), dpr
}

func (c *fxClient) initCanvas() {
	c.canvasEl = c.doc.Call("getElementById", "starfield")
	c.canvas = newJSCanvas(c.canvasEl)
	c.resize()
}

func (c *fxClient) resize() {
	c.field.Resize(c.viewport())
	c.canvas.Reset(c.field.Surface())
}

func (c *fxClient) initGrid() {
	c.layers = map[string]js.Value{}
	for _, l := range c.parallax.Layers() {
		el := c.doc.Call("getElementById", l.Name)
		if !el.Truthy() {
			slog.Warn("parallax layer missing", "id", l.Name)
			continue
		}
		c.layers[l.Name] = el
	}

	c.gridFrame = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		again := c.parallax.Step()
		for _, l := range c.parallax.Layers() {
			if el, ok := c.layers[l.Name]; ok {
				el.Get("style").Set("transform", l.Transform())
			}
		}
		if again {
			c.win.Call("requestAnimationFrame", c.gridFrame)
		}
		return nil
	})
}

func (c *fxClient) initFrameUpdate() {
	c.renderFrame = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		c.field.Frame(args[0].Float(), c.canvas)
		c.win.Call("requestAnimationFrame", c.renderFrame)
		return nil
	})
	c.win.Call("requestAnimationFrame", c.renderFrame)
}

func (c *fxClient) initEvents() {
	mouseMoveEvt := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		e := args[0]
		w, h, _ := c.viewport()
		pt := effects.NormalizePointer(e.Get("clientX").Float(), e.Get("clientY").Float(), w, h)
		if c.parallax.Move(pt) {
			c.win.Call("requestAnimationFrame", c.gridFrame)
		}
		return nil
	})
	resizeEvt := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		c.resize()
		return nil
	})

	c.doc.Call("addEventListener", "mousemove", mouseMoveEvt)
	c.win.Call("addEventListener", "resize", resizeEvt)
}
