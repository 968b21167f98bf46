package block

// Tree is a derived, id-indexed view of the flat block sequence. The linear
// sequence stays authoritative; the tree is a cache that is rebuilt whole
// whenever it falls out of sync, never patched incrementally.
type Tree struct {
	// Roots lists the top-level block IDs in document order.
	Roots []ID
	Nodes map[ID]*TreeNode
}

// TreeNode is one block in the derived tree. ParentID is empty for roots.
type TreeNode struct {
	ID       ID
	ParentID ID
	Children []ID
	Index    int
	Indent   int
	Kind     Kind
}

// BuildTree derives a tree from a flat sequence. Parentage follows the flat
// rule: a block's parent is the nearest preceding block with smaller indent.
func BuildTree(blocks []Block) *Tree {
	t := &Tree{Nodes: make(map[ID]*TreeNode, len(blocks))}

	type frame struct {
		id     ID
		indent int
	}
	var stack []frame

	for i, b := range blocks {
		for len(stack) > 0 && stack[len(stack)-1].indent >= b.Indent {
			stack = stack[:len(stack)-1]
		}

		n := &TreeNode{ID: b.ID, Index: i, Indent: b.Indent, Kind: b.Kind}
		if len(stack) > 0 {
			parent := stack[len(stack)-1].id
			n.ParentID = parent
			t.Nodes[parent].Children = append(t.Nodes[parent].Children, b.ID)
		} else {
			t.Roots = append(t.Roots, b.ID)
		}
		t.Nodes[b.ID] = n
		stack = append(stack, frame{id: b.ID, indent: b.Indent})
	}
	return t
}

// Node looks up a tree node by block ID.
func (t *Tree) Node(id ID) (*TreeNode, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// InSync reports whether the tree still matches a flat sequence. Count
// comparison is the desync signal; any mismatch means full rebuild.
func (t *Tree) InSync(blocks []Block) bool {
	return t != nil && len(t.Nodes) == len(blocks)
}

// Tree returns the derived tree for the current document state, rebuilding
// it when the cached copy is stale or desynced.
func (d *Document) Tree() *Tree {
	if d.tree != nil && d.treeVersion == d.version && d.tree.InSync(d.blocks) {
		return d.tree
	}
	d.tree = BuildTree(d.blocks)
	d.treeVersion = d.version
	return d.tree
}
