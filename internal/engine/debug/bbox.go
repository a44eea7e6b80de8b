// Package debug provides viewer overlays and captures.
package debug

// BoxLineVertices is the number of vertices BoxLines returns.
const BoxLineVertices = 24

// BoxLines returns the 12 edges of the box lo..hi as line-list vertices,
// three floats each.
func BoxLines(lo, hi [3]float32) []float32 {
	corner := func(i int) [3]float32 {
		c := lo
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[axis] = hi[axis]
			}
		}
		return c
	}

	out := make([]float32, 0, BoxLineVertices*3)
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			// Each edge is emitted once, from the corner without the bit.
			if i&(1<<axis) != 0 {
				continue
			}
			a, b := corner(i), corner(i|1<<axis)
			out = append(out, a[:]...)
			out = append(out, b[:]...)
		}
	}
	return out
}
