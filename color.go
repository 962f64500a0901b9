package cube3d

import "github.com/go-gl/mathgl/mgl64"

// Color is a sticker color.
type Color byte

const (
	Interior Color = iota // Hidden faces and the core
	Red                   // +X when built
	Orange                // -X
	White                 // +Y
	Yellow                // -Y
	Blue                  // +Z
	Green                 // -Z
)

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Orange:
		return "O"
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Blue:
		return "B"
	case Green:
		return "G"
	default:
		return "."
	}
}

// Hex returns the color as an RGB hex string.
func (c Color) Hex() string {
	switch c {
	case Red:
		return "#ff0000"
	case Orange:
		return "#ffa500"
	case White:
		return "#ffffff"
	case Yellow:
		return "#ffff00"
	case Blue:
		return "#0000ff"
	case Green:
		return "#00ff00"
	default:
		return "#1a1a1a"
	}
}

// Side identifies one of the six faces of a cubie or of the whole cube.
// The order matches Cubie.Colors.
type Side int

const (
	SideRight Side = iota // +X
	SideLeft              // -X
	SideUp                // +Y
	SideDown              // -Y
	SideFront             // +Z
	SideBack              // -Z
)

// Sides lists all sides in color order.
var Sides = [6]Side{SideRight, SideLeft, SideUp, SideDown, SideFront, SideBack}

func (s Side) String() string {
	switch s {
	case SideRight:
		return "+X"
	case SideLeft:
		return "-X"
	case SideUp:
		return "+Y"
	case SideDown:
		return "-Y"
	case SideFront:
		return "+Z"
	case SideBack:
		return "-Z"
	default:
		return "?"
	}
}

// Axis returns the axis the side is perpendicular to.
func (s Side) Axis() Axis {
	return Axis(s / 2)
}

// Sign returns +1 for positive sides and -1 for negative ones.
func (s Side) Sign() int {
	if s%2 == 0 {
		return 1
	}
	return -1
}

// Normal returns the outward unit normal of the side.
func (s Side) Normal() mgl64.Vec3 {
	return s.Axis().Vec().Mul(float64(s.Sign()))
}

// sideOf returns the side whose normal is closest to v.
func sideOf(v mgl64.Vec3) Side {
	best, bestDot := SideRight, -2.0
	for _, s := range Sides {
		if d := s.Normal().Dot(v); d > bestDot {
			best, bestDot = s, d
		}
	}
	return best
}

// faceColors are the colors of each side of a built cube.
var faceColors = [6]Color{Red, Orange, White, Yellow, Blue, Green}
