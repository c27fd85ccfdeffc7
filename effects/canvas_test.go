package effects

import "github.com/ByteArena/box2d"

// tallyCanvas counts draw calls and keeps the last arguments of interest.
type tallyCanvas struct {
	resets, clears int
	circles        []RGBA
	lines          []tallyLine
	streaks        int
	glows          []RGBA
}

type tallyLine struct {
	width float64
	color RGBA
}

func (c *tallyCanvas) Reset(Surface) { c.resets++ }
func (c *tallyCanvas) Clear()        { c.clears++ }

func (c *tallyCanvas) FillCircle(x, y, r float64, col RGBA) {
	c.circles = append(c.circles, col)
}

func (c *tallyCanvas) StrokeLine(x0, y0, x1, y1, width float64, col RGBA) {
	c.lines = append(c.lines, tallyLine{width, col})
}

func (c *tallyCanvas) Streak(x0, y0, x1, y1, width float64, stops []Stop) {
	c.streaks++
}

func (c *tallyCanvas) Glow(x, y, r float64, inner, outer RGBA) {
	c.glows = append(c.glows, inner)
}

func vec(x, y float64) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(x, y)
}
