//go:build js && wasm

package main

import (
	"fmt"
	"math"
	"syscall/js"

	"github.com/stdiopt/gowasm-backdrop/effects"
)

// jsCanvas is effects.Canvas over a CanvasRenderingContext2D.
type jsCanvas struct {
	el  js.Value
	ctx js.Value
	s   effects.Surface
}

func newJSCanvas(el js.Value) *jsCanvas {
	return &jsCanvas{el: el, ctx: el.Call("getContext", "2d")}
}

func (c *jsCanvas) Reset(s effects.Surface) {
	c.s = s
	w, h := s.BackingSize()
	c.el.Set("width", w)
	c.el.Set("height", h)
	style := c.el.Get("style")
	style.Set("width", fmt.Sprintf("%gpx", s.Width))
	style.Set("height", fmt.Sprintf("%gpx", s.Height))

	t := s.Transform()
	c.ctx.Call("setTransform", t[0], t[1], t[2], t[3], t[4], t[5])
	c.ctx.Set("lineCap", "round")
}

func (c *jsCanvas) Clear() {
	c.ctx.Call("clearRect", 0, 0, c.s.Width, c.s.Height)
}

func (c *jsCanvas) FillCircle(x, y, r float64, col effects.RGBA) {
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Set("fillStyle", col.CSS())
	c.ctx.Call("fill")
}

func (c *jsCanvas) StrokeLine(x0, y0, x1, y1, width float64, col effects.RGBA) {
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", x0, y0)
	c.ctx.Call("lineTo", x1, y1)
	c.ctx.Set("strokeStyle", col.CSS())
	c.ctx.Set("lineWidth", width)
	c.ctx.Call("stroke")
}

func (c *jsCanvas) Streak(x0, y0, x1, y1, width float64, stops []effects.Stop) {
	grad := c.ctx.Call("createLinearGradient", x0, y0, x1, y1)
	for _, s := range stops {
		grad.Call("addColorStop", s.Offset, s.Color.CSS())
	}
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", x0, y0)
	c.ctx.Call("lineTo", x1, y1)
	c.ctx.Set("strokeStyle", grad)
	c.ctx.Set("lineWidth", width)
	c.ctx.Call("stroke")
}

func (c *jsCanvas) Glow(x, y, r float64, inner, outer effects.RGBA) {
	grad := c.ctx.Call("createRadialGradient", x, y, 0, x, y, r)
	grad.Call("addColorStop", 0, inner.CSS())
	grad.Call("addColorStop", 1, outer.CSS())
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Set("fillStyle", grad)
	c.ctx.Call("fill")
}
