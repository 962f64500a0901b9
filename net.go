package cube3d

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Net is the cube unfolded into six 3x3 faces. Net[s] holds the stickers
// of side s row by row as seen from outside the cube:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Side faces are viewed with +Y up; the up face with the front face
// below it, and the down face with the front face above it.
type Net [6][9]Color

// viewBasis gives, for each side, the cube-frame directions of a
// sticker grid's columns (right) and rows (up).
var viewBasis = [6]struct{ right, up mgl64.Vec3 }{
	SideRight: {mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
	SideLeft:  {mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
	SideUp:    {mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
	SideDown:  {mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
	SideFront: {mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	SideBack:  {mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
}

// Net projects the cube onto its six faces. Cubies that are mid-turn are
// placed at their nearest grid position and orientation.
func (c *Cube) Net() Net {
	byGrid := make(map[[3]int]*Cubie, len(c.cubies))
	for _, cb := range c.cubies {
		byGrid[cb.Grid()] = cb
	}

	var net Net
	for _, s := range Sides {
		basis := viewBasis[s]
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				p := s.Normal().
					Add(basis.right.Mul(float64(col - 1))).
					Add(basis.up.Mul(float64(1 - row)))
				key := [3]int{roundInt(p[0]), roundInt(p[1]), roundInt(p[2])}
				if cb, ok := byGrid[key]; ok {
					net[s][row*3+col] = cb.ColorFacing(s)
				}
			}
		}
	}
	return net
}

// Center returns the center sticker of side s.
func (n Net) Center(s Side) Color {
	return n[s][4]
}

// Uniform reports whether every side shows a single color.
func (n Net) Uniform() bool {
	for _, face := range n {
		for _, col := range face {
			if col != face[4] {
				return false
			}
		}
	}
	return true
}

// String lays the net out as a cross:
//
//	      U
//	    L F R B
//	      D
func (n Net) String() string {
	var b strings.Builder

	writeRow := func(s Side, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(n[s][row*3+col].String())
			b.WriteByte(' ')
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(SideUp, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, s := range []Side{SideLeft, SideFront, SideRight, SideBack} {
			writeRow(s, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(SideDown, row)
		b.WriteString("\n")
	}

	return b.String()
}

func roundInt(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
