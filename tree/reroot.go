// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

// RerootAt moves the root of the tree
// to the parent end of the branch of node n,
// preserving the total branch length of the tree.
//
// The node must be a node of the tree,
// other than the current root.
// A violation of the tree invariants during the surgery
// indicates a malformed tree
// and panics.
func (t *Tree) RerootAt(n *Node) {
	if n == t.root {
		panic("tree: reroot at the current root")
	}
	if n.parent == t.root {
		t.rerootAtRootChild(n)
		return
	}

	p := n.parent
	p.removeChild(n)
	newRoot := &Node{children: []*Node{n}}
	n.parent = newRoot

	// Reverse the path from the old parent of n
	// up to the old root:
	// each node on the path becomes the child
	// of the node below it,
	// keeping the length of the reversed branch.
	prev := newRoot
	prevLen, prevHas := 0.0, true
	for cur := p; cur != nil; {
		next := cur.parent
		curLen, curHas := cur.length, cur.hasLen
		if next != nil {
			next.removeChild(cur)
		}
		prev.children = append(prev.children, cur)
		cur.parent = prev
		cur.length, cur.hasLen = prevLen, prevHas
		prev = cur
		prevLen, prevHas = curLen, curHas
		cur = next
	}

	// The old root may be left with a single child;
	// merge it away.
	oldRoot := prev
	var single []*Node
	for _, x := range []*Node{oldRoot, oldRoot.parent} {
		if len(x.children) == 1 {
			single = append(single, x)
		}
	}
	if len(single) > 1 {
		panic("tree: invariant violation: several single child nodes after rerooting")
	}
	if len(single) == 1 {
		collapseSingleChild(single[0])
	}

	t.root = newRoot
}

// rerootAtRootChild handles the trivial case:
// the new root splits the same branch as the old root,
// so the old branches across the root merge into one.
func (t *Tree) rerootAtRootChild(n *Node) {
	var sisters []*Node
	for _, c := range t.root.children {
		if c != n {
			sisters = append(sisters, c)
		}
	}
	if len(sisters) != 1 {
		panic("tree: invariant violation: unexpected number of sister nodes")
	}
	sister := sisters[0]

	newRoot := &Node{children: []*Node{n, sister}}
	sister.length += n.length
	sister.hasLen = sister.hasLen || n.hasLen
	sister.parent = newRoot
	n.length, n.hasLen = 0, true
	n.parent = newRoot
	t.root = newRoot
}

// collapseSingleChild removes the degree one node x from the tree:
// its single child takes its place,
// absorbing the branch length of x.
func collapseSingleChild(x *Node) {
	if len(x.children) != 1 {
		panic("tree: invariant violation: collapse of a multi-child node")
	}
	if x.parent == nil {
		panic("tree: invariant violation: collapse of the root")
	}
	c := x.children[0]
	p := x.parent
	for i, s := range p.children {
		if s == x {
			p.children[i] = c
			break
		}
	}
	c.parent = p
	x.children = nil
	x.parent = nil
	if x.hasLen {
		c.length += x.length
		c.hasLen = true
	}
}
