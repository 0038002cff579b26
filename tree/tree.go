// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree provides a rooted phylogenetic tree
// with named tips and branch lengths,
// as used by phylogenetic placement tools.
package tree

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// A Node is a node of a phylogenetic tree.
//
// A node without children is a tip.
// Nodes with a single child only appear
// as transient artifacts of tree surgery
// and are collapsed before the tree is used.
type Node struct {
	name     string
	length   float64
	hasLen   bool
	parent   *Node
	children []*Node
}

// Name returns the name of the node.
func (n *Node) Name() string {
	return n.name
}

// Length returns the length of the branch
// between the node and its parent.
// It returns false if the branch length is undefined
// (for example, at the root).
func (n *Node) Length() (float64, bool) {
	return n.length, n.hasLen
}

// Parent returns the parent of the node,
// or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of the node.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// IsTerm returns true if the node is a terminal
// (i.e. a tip without descendants).
func (n *Node) IsTerm() bool {
	return len(n.children) == 0
}

// Tips returns the tips of the subtree rooted at the node.
// If the node itself is a tip,
// it returns the node.
func (n *Node) Tips() []*Node {
	if n.IsTerm() {
		return []*Node{n}
	}

	var tips []*Node
	for _, c := range n.children {
		tips = append(tips, c.Tips()...)
	}
	return tips
}

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	root *Node
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Terms returns the name of all terminals of the tree,
// sorted alphabetically.
func (t *Tree) Terms() []string {
	var terms []string
	for _, tip := range t.root.Tips() {
		if tip.name == "" {
			continue
		}
		terms = append(terms, tip.name)
	}
	slices.Sort(terms)
	return terms
}

// LCA returns the lowest common ancestor
// of the named terminals.
// It returns nil if no terminal matches a name.
func (t *Tree) LCA(names []string) *Node {
	set := make(map[string]bool, len(names))
	for _, nm := range names {
		set[nm] = true
	}

	var lca *Node
	for _, tip := range t.root.Tips() {
		if !set[tip.name] {
			continue
		}
		if lca == nil {
			lca = tip
			continue
		}
		lca = commonAncestor(lca, tip)
	}
	return lca
}

func commonAncestor(a, b *Node) *Node {
	da, db := depth(a), depth(b)
	for da > db {
		a = a.parent
		da--
	}
	for db > da {
		b = b.parent
		db--
	}
	for a != b {
		a = a.parent
		b = b.parent
	}
	return a
}

func depth(n *Node) int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// TotalLength returns the sum of all branch lengths
// of the tree.
func (t *Tree) TotalLength() float64 {
	var ls []float64
	addLengths(t.root, &ls)
	return floats.Sum(ls)
}

func addLengths(n *Node, ls *[]float64) {
	if n.hasLen {
		*ls = append(*ls, n.length)
	}
	for _, c := range n.children {
		addLengths(c, ls)
	}
}

// removeChild detaches c from the child list of n.
func (n *Node) removeChild(c *Node) {
	for i, x := range n.children {
		if x == c {
			n.children = slices.Delete(n.children, i, i+1)
			c.parent = nil
			return
		}
	}
	panic("tree: invariant violation: node is not a child of its parent")
}
