package cube3d

import "math"

// Layer returns the cubies whose current coordinate along axis lies
// within DefaultTolerance of coordinate. Positions are read from the
// scene graph, so the result reflects every turn made so far.
// An empty result means no layer exists at that coordinate.
func (c *Cube) Layer(axis Axis, coordinate float64) []*Cubie {
	return c.layer(axis, coordinate, DefaultTolerance)
}

func (c *Cube) layer(axis Axis, coordinate, tolerance float64) []*Cubie {
	var out []*Cubie
	for _, cb := range c.cubies {
		if math.Abs(cb.Coord(axis)-coordinate) < tolerance {
			out = append(out, cb)
		}
	}
	return out
}

// LayerCoordinates returns the three valid layer coordinates on any axis.
func (c *Cube) LayerCoordinates() [3]float64 {
	off := c.Offset()
	return [3]float64{-off, 0, off}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < DefaultTolerance
}
