package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func TestAddRemove(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")

	root.Add(a)
	root.Add(b)
	if root.Len() != 2 {
		t.Fatalf("expected 2 children, got %d", root.Len())
	}

	// Adding to another parent moves the node.
	a.Add(b)
	if root.Len() != 1 || a.Len() != 1 || b.Parent() != a {
		t.Errorf("b should have moved under a")
	}

	if !a.Remove(b) {
		t.Error("Remove should report success")
	}
	if a.Remove(b) {
		t.Error("second Remove should report failure")
	}
	if b.Parent() != nil {
		t.Error("removed node should have no parent")
	}
}

func TestWorldComposesParents(t *testing.T) {
	root := NewNode("root")
	root.Position = mgl64.Vec3{1, 0, 0}
	root.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})

	child := NewNode("child")
	child.Position = mgl64.Vec3{1, 0, 0}
	root.Add(child)

	// Rotating (1,0,0) by 90° around Z gives (0,1,0); then translate by (1,0,0).
	got := child.WorldPosition()
	want := mgl64.Vec3{1, 1, 0}
	if !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("world position = %v, want %v", got, want)
	}
}

func TestAttachPreservesWorldTransform(t *testing.T) {
	world := NewNode("world")

	group := NewNode("group")
	group.Position = mgl64.Vec3{0.5, -2, 3}
	group.Rotation = mgl64.QuatRotate(0.3, mgl64.Vec3{1, 1, 0}.Normalize())
	world.Add(group)

	pivot := NewNode("pivot")
	pivot.Position = mgl64.Vec3{-1, 4, 0}
	pivot.Rotation = mgl64.QuatRotate(1.1, mgl64.Vec3{0, 0, 1})
	world.Add(pivot)

	n := NewNode("n")
	n.Position = mgl64.Vec3{1.05, 1.05, 0}
	n.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	group.Add(n)

	beforePos := n.WorldPosition()
	beforeRot := n.WorldRotation()

	Attach(n, pivot)
	if n.Parent() != pivot {
		t.Fatal("node should be a child of pivot")
	}
	if !n.WorldPosition().ApproxEqualThreshold(beforePos, eps) {
		t.Errorf("position changed: %v -> %v", beforePos, n.WorldPosition())
	}
	if !n.WorldRotation().OrientationEqualThreshold(beforeRot, eps) {
		t.Errorf("rotation changed: %v -> %v", beforeRot, n.WorldRotation())
	}

	Attach(n, group)
	if !n.Position.ApproxEqualThreshold(mgl64.Vec3{1.05, 1.05, 0}, eps) {
		t.Errorf("round trip should restore local position, got %v", n.Position)
	}
}

func TestDetachKeepsWorld(t *testing.T) {
	root := NewNode("root")
	root.Position = mgl64.Vec3{0, 2, 0}
	n := NewNode("n")
	n.Position = mgl64.Vec3{1, 0, 0}
	root.Add(n)

	Detach(n)
	if n.Parent() != nil {
		t.Fatal("detached node should be a root")
	}
	if !n.Position.ApproxEqualThreshold(mgl64.Vec3{1, 2, 0}, eps) {
		t.Errorf("local position = %v, want (1,2,0)", n.Position)
	}

	// Detaching a root is a no-op.
	Detach(n)
	if !n.Position.ApproxEqualThreshold(mgl64.Vec3{1, 2, 0}, eps) {
		t.Errorf("second detach moved the node: %v", n.Position)
	}
}
