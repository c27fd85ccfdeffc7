package effects

import "github.com/ByteArena/box2d"

// Trail holds recent comet positions, oldest first. Its size is bounded
// by path length, see Trim.
type Trail struct {
	points []box2d.B2Vec2
}

// Push appends the newest position. A point equal to the current head is
// dropped, zero length segments never count toward the trim budget.
func (t *Trail) Push(p box2d.B2Vec2) {
	if n := len(t.points); n > 0 && t.points[n-1] == p {
		return
	}
	t.points = append(t.points, p)
}

// Trim walks back from the newest point summing segment lengths and drops
// every point that would take the path past maxLen.
func (t *Trail) Trim(maxLen float64) {
	n := len(t.points)
	if n < 2 {
		return
	}
	keep := 0
	total := 0.0
	for i := n - 1; i > 0; i-- {
		d := box2d.B2Vec2Distance(t.points[i], t.points[i-1])
		if total+d > maxLen {
			keep = i
			break
		}
		total += d
	}
	if keep == 0 {
		return
	}
	t.points = append(t.points[:0], t.points[keep:]...)
}

// Length is the total path length.
func (t *Trail) Length() float64 {
	total := 0.0
	for i := 1; i < len(t.points); i++ {
		total += box2d.B2Vec2Distance(t.points[i], t.points[i-1])
	}
	return total
}

// Len returns the number of points.
func (t *Trail) Len() int { return len(t.points) }

// Points returns the positions, oldest first. The slice is only valid
// until the next Push or Trim.
func (t *Trail) Points() []box2d.B2Vec2 { return t.points }

// Reset empties the trail.
func (t *Trail) Reset() { t.points = t.points[:0] }
