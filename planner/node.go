package planner

import "slices"

const rootParent = -1

// Node is a vertex of the search tree. Parent is the arena index of the
// node it was expanded from, or -1 for the root.
type Node struct {
	Position Point `json:"position"`
	Parent   int   `json:"parent"`
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == rootParent
}

// tree is an append-only arena of nodes. Nodes only ever reference earlier
// indexes, so every parent chain ends at the root at index 0.
type tree struct {
	nodes []Node
}

func newTree(root Point) *tree {
	return &tree{nodes: []Node{{Position: root, Parent: rootParent}}}
}

func (t *tree) add(p Point, parent int) int {
	t.nodes = append(t.nodes, Node{Position: p, Parent: parent})
	return len(t.nodes) - 1
}

func (t *tree) len() int {
	return len(t.nodes)
}

func (t *tree) at(i int) Node {
	return t.nodes[i]
}

// pathTo walks parent links from node i up to the root and returns the
// positions ordered root first.
func (t *tree) pathTo(i int) []Point {
	var path []Point
	for n := t.nodes[i]; ; n = t.nodes[n.Parent] {
		path = append(path, n.Position)
		if n.IsRoot() {
			break
		}
	}
	slices.Reverse(path)
	return path
}
