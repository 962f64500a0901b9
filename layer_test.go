package cube3d

import (
	"testing"
)

func TestLayerHasNineCubiesAfterBuild(t *testing.T) {
	c := Build()
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for _, coord := range c.LayerCoordinates() {
			got := c.Layer(axis, coord)
			if len(got) != 9 {
				t.Errorf("axis %v layer %+.2f: %d cubies, want 9", axis, coord, len(got))
			}
			for _, cb := range got {
				if d := cb.Coord(axis) - coord; d > DefaultTolerance || d < -DefaultTolerance {
					t.Errorf("%v is not in layer %v=%+.2f", cb, axis, coord)
				}
			}
		}
	}
}

func TestLayerOutOfRangeIsEmpty(t *testing.T) {
	c := Build()
	if got := c.Layer(AxisY, 2*c.Offset()); len(got) != 0 {
		t.Errorf("expected empty layer, got %d cubies", len(got))
	}
	if got := c.Layer(AxisY, c.Offset()/2); len(got) != 0 {
		t.Errorf("coordinate between layers should match nothing, got %d", len(got))
	}
}

func TestLayerFollowsCurrentPositions(t *testing.T) {
	c := Build()
	q := newTestQueue(c)

	// R lifts the back column of the right layer onto the top, bringing
	// two cubies whose home is below the top layer.
	q.EnqueueMoves(R)
	q.Run(testClock, testFrame)

	top := c.Layer(AxisY, c.Offset())
	if len(top) != 9 {
		t.Fatalf("top layer has %d cubies, want 9", len(top))
	}
	moved := 0
	for _, cb := range top {
		if cb.Home[1] != 1 {
			moved++
		}
	}
	if moved != 2 {
		t.Errorf("expected 2 cubies from other layers on top, got %d", moved)
	}
}

func TestLayerWithTransformedGroup(t *testing.T) {
	c := Build()
	c.Group().Position[0] = 10
	c.Group().Position[2] = -4

	for _, coord := range c.LayerCoordinates() {
		if got := len(c.Layer(AxisX, coord)); got != 9 {
			t.Errorf("layer x=%+.2f has %d cubies with a moved group, want 9", coord, got)
		}
	}
}
