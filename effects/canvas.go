package effects

// Canvas is a 2D drawing target in logical (CSS pixel) coordinates.
// Implementations: the browser 2d context, painter.BufPainter and
// painter.Recorder.
type Canvas interface {
	// Reset resizes the backing store and installs the DPR transform.
	Reset(s Surface)
	Clear()
	FillCircle(x, y, r float64, c RGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c RGBA)
	// Streak strokes a line filled with a linear gradient running from
	// (x0,y0) at offset 0 to (x1,y1) at offset 1.
	Streak(x0, y0, x1, y1, width float64, stops []Stop)
	// Glow fills a circle with a radial gradient, inner at the centre
	// and outer at radius r.
	Glow(x, y, r float64, inner, outer RGBA)
}
