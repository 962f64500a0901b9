package cube3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is a rotation axis in the cube's frame.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Vec returns the unit vector along the axis.
func (a Axis) Vec() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = 1
	return v
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("cube3d: invalid axis %q", s)
}

// Direction is the sign of a quarter turn around an axis. The names
// follow the keyboard table; geometrically +1 is a positive right-hand
// rotation about the axis.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	if d < 0 {
		return "ccw"
	}
	return "cw"
}

// Rotation is a request to turn one layer a quarter turn.
type Rotation struct {
	Axis      Axis
	Layer     float64 // coordinate of the layer along Axis
	Direction Direction
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	r.Direction = -r.Direction
	return r
}

// Cancels reports whether r and o undo each other: same axis, layers
// within tolerance, opposite directions.
func (r Rotation) Cancels(o Rotation, tolerance float64) bool {
	return r.Axis == o.Axis &&
		math.Abs(r.Layer-o.Layer) < tolerance &&
		r.Direction == -o.Direction
}

// Angle returns the signed turn angle in radians.
func (r Rotation) Angle() float64 {
	return float64(r.Direction) * math.Pi / 2
}

func (r Rotation) String() string {
	return fmt.Sprintf("%s@%+.2f %s", r.Axis, r.Layer, r.Direction)
}
