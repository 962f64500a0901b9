package cube3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cube3d/internal/scene"
)

// Cubie geometry of a standard cube.
const (
	CubieSize = 1.0
	CubieGap  = 0.05 // visible gap between neighbouring cubies
)

// Cubie is one of the 27 unit cubes.
type Cubie struct {
	ID     int      // Stable identity, 0..26
	Home   [3]int   // Grid coordinate at construction, each in {-1,0,1}
	Colors [6]Color // Indexed by Side; fixed for life

	node *scene.Node
	cube *Cube
}

// Node returns the cubie's scene node.
func (c *Cubie) Node() *scene.Node {
	return c.node
}

// Position returns the cubie's current position in the cube's frame.
// While a turn is animating this includes the pivot's rotation.
func (c *Cubie) Position() mgl64.Vec3 {
	return mgl64.TransformCoordinate(c.node.WorldPosition(), c.cube.group.World().Inv())
}

// Orientation returns the cubie's current orientation in the cube's frame.
func (c *Cubie) Orientation() mgl64.Quat {
	return c.cube.group.WorldRotation().Inverse().Mul(c.node.WorldRotation()).Normalize()
}

// Coord returns the cubie's current coordinate along axis.
func (c *Cubie) Coord(axis Axis) float64 {
	return c.Position()[axis]
}

// Grid returns the cubie's current position in layer units, rounded.
func (c *Cubie) Grid() [3]int {
	p := c.Position()
	off := c.cube.Offset()
	return [3]int{
		int(math.Round(p[0] / off)),
		int(math.Round(p[1] / off)),
		int(math.Round(p[2] / off)),
	}
}

// ColorFacing returns the color of the cubie face that currently points
// towards side s of the cube.
func (c *Cubie) ColorFacing(s Side) Color {
	local := c.Orientation().Inverse().Rotate(s.Normal())
	return c.Colors[sideOf(local)]
}

// Visible returns the number of non-interior faces.
func (c *Cubie) Visible() int {
	n := 0
	for _, col := range c.Colors {
		if col != Interior {
			n++
		}
	}
	return n
}

func (c *Cubie) String() string {
	return fmt.Sprintf("cubie#%d home=%v at=%v", c.ID, c.Home, c.Grid())
}

// Cube is a 3x3x3 arrangement of cubies held by a permanent group node.
type Cube struct {
	size, gap float64

	root   *scene.Node // scene root; pivots are added here
	group  *scene.Node // permanent parent of every idle cubie
	cubies []*Cubie
}

// Build creates a cube with the standard cubie size and gap.
func Build() *Cube {
	return BuildWith(CubieSize, CubieGap)
}

// BuildWith creates a cube of 27 cubies of the given size separated by
// gap. Cubie (x,y,z) sits at (x,y,z)·(size+gap) and is colored on the
// faces that lie on the outside of the cube.
func BuildWith(size, gap float64) *Cube {
	c := &Cube{
		size:  size,
		gap:   gap,
		root:  scene.NewNode("scene"),
		group: scene.NewNode("cube"),
	}
	c.root.Add(c.group)

	off := c.Offset()
	id := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				cb := &Cubie{
					ID:     id,
					Home:   [3]int{x, y, z},
					Colors: homeColors(x, y, z),
					node:   scene.NewNode(fmt.Sprintf("cubie-%d", id)),
					cube:   c,
				}
				cb.node.Position = mgl64.Vec3{float64(x) * off, float64(y) * off, float64(z) * off}
				c.group.Add(cb.node)
				c.cubies = append(c.cubies, cb)
				id++
			}
		}
	}

	return c
}

// homeColors colors face i iff the grid coordinate on its axis is ±1
// with the face's sign.
func homeColors(x, y, z int) [6]Color {
	coord := [3]int{x, y, z}
	var colors [6]Color
	for _, s := range Sides {
		if coord[s.Axis()] == s.Sign() {
			colors[s] = faceColors[s]
		}
	}
	return colors
}

// Offset returns the distance between neighbouring layers.
func (c *Cube) Offset() float64 {
	return c.size + c.gap
}

// Size returns the edge length of one cubie.
func (c *Cube) Size() float64 {
	return c.size
}

// Cubies returns the cubies in construction order.
func (c *Cube) Cubies() []*Cubie {
	out := make([]*Cubie, len(c.cubies))
	copy(out, c.cubies)
	return out
}

// Cubie returns the cubie with the given id, or nil.
func (c *Cube) Cubie(id int) *Cubie {
	if id < 0 || id >= len(c.cubies) {
		return nil
	}
	return c.cubies[id]
}

// Group returns the permanent group node holding idle cubies.
func (c *Cube) Group() *scene.Node {
	return c.group
}

// Scene returns the root node the group and temporary pivots hang from.
func (c *Cube) Scene() *scene.Node {
	return c.root
}

// Reset returns every cubie to its home position and orientation and
// re-parents it to the group. Pivots left in the scene are discarded.
func (c *Cube) Reset() {
	for _, n := range c.root.Children() {
		if n != c.group {
			c.root.Remove(n)
		}
	}

	off := c.Offset()
	for _, cb := range c.cubies {
		if cb.node.Parent() != c.group {
			c.group.Add(cb.node)
		}
		cb.node.Position = mgl64.Vec3{float64(cb.Home[0]) * off, float64(cb.Home[1]) * off, float64(cb.Home[2]) * off}
		cb.node.Rotation = mgl64.QuatIdent()
	}
}

// AtHome reports whether every cubie is at its construction position and
// orientation, within tolerance.
func (c *Cube) AtHome(tolerance float64) bool {
	off := c.Offset()
	for _, cb := range c.cubies {
		home := mgl64.Vec3{float64(cb.Home[0]) * off, float64(cb.Home[1]) * off, float64(cb.Home[2]) * off}
		if !cb.Position().ApproxEqualThreshold(home, tolerance) {
			return false
		}
		if !cb.Orientation().OrientationEqualThreshold(mgl64.QuatIdent(), tolerance) {
			return false
		}
	}
	return true
}

// snap removes accumulated floating-point error from an idle cubie:
// the orientation becomes the nearest axis-aligned rotation and the
// position the nearest grid point.
func (c *Cube) snap(cb *Cubie) {
	n := cb.node
	off := c.Offset()
	for i := 0; i < 3; i++ {
		n.Position[i] = math.Round(n.Position[i]/off) * off
	}
	n.Rotation = snapRotation(n.Rotation)
}

// snapRotation rounds every element of q's rotation matrix to -1, 0 or 1.
// For a rotation within a few degrees of an axis-aligned one this yields
// that signed permutation matrix exactly, which is the same as rounding
// each Euler angle to a multiple of 90° but without the gimbal-lock
// ambiguity at ±90° pitch.
func snapRotation(q mgl64.Quat) mgl64.Quat {
	m := q.Normalize().Mat4().Mat3()
	for i := range m {
		m[i] = math.Round(m[i])
	}
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}
