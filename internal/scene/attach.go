package scene

// Attach moves node under parent without changing its world transform.
// The new local transform is parentWorld⁻¹ · nodeWorld, computed from the
// world transform captured before the node leaves its old parent.
func Attach(node, parent *Node) {
	world := node.World()
	if node.parent != nil {
		node.parent.Remove(node)
	}
	parent.Add(node)
	node.SetWorld(world)
}

// Detach removes node from its parent and makes it a root whose local
// transform equals its former world transform.
func Detach(node *Node) {
	if node.parent == nil {
		return
	}
	world := node.World()
	node.parent.Remove(node)
	node.SetWorld(world)
}
