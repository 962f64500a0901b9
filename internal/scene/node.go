// Package scene provides a minimal scene graph: nodes with a local
// translation and rotation, arranged in a parent/child hierarchy.
//
// Only rigid transforms are supported (no scale), which keeps world
// matrices orthonormal and lets Decompose recover position and rotation
// exactly up to floating-point error.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Node is a transform in the scene graph.
type Node struct {
	Name     string
	Position mgl64.Vec3 // relative to the parent
	Rotation mgl64.Quat // relative to the parent

	parent   *Node
	children []*Node
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
	}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's children.
// The copy is safe to iterate while re-parenting.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Add appends child to n, keeping child's local transform.
// If child already has a parent it is removed from it first.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n, keeping child's local transform.
// Returns false if child is not a child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Local returns the node's local transform matrix (T * R).
func (n *Node) Local() mgl64.Mat4 {
	return mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).
		Mul4(n.Rotation.Mat4())
}

// World returns the node's transform relative to the root of its tree.
func (n *Node) World() mgl64.Mat4 {
	if n.parent == nil {
		return n.Local()
	}
	return n.parent.World().Mul4(n.Local())
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	pos, _ := Decompose(n.World())
	return pos
}

// WorldRotation returns the node's orientation in world space.
func (n *Node) WorldRotation() mgl64.Quat {
	if n.parent == nil {
		return n.Rotation
	}
	return n.parent.WorldRotation().Mul(n.Rotation).Normalize()
}

// SetWorld sets the local transform so that the node's world transform
// equals world under its current parent.
func (n *Node) SetWorld(world mgl64.Mat4) {
	local := world
	if n.parent != nil {
		local = n.parent.World().Inv().Mul4(world)
	}
	n.Position, n.Rotation = Decompose(local)
}

// Decompose splits a rigid transform into translation and rotation.
func Decompose(m mgl64.Mat4) (mgl64.Vec3, mgl64.Quat) {
	pos := mgl64.Vec3{m[12], m[13], m[14]}
	rot := mgl64.Mat4ToQuat(m).Normalize()
	return pos, rot
}
