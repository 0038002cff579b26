// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reroot repositions the root
// of an independently inferred phylogenetic tree
// to match the root bipartition
// of a reference tree.
package reroot

import (
	"errors"
	"fmt"

	"github.com/js-arias/graft/tree"
)

// ErrParaphyletic is the error produced
// when the root bipartition of the reference tree
// cannot be located in the target tree.
// Callers can detect it with errors.Is
// and fall back to an externally rooted tree.
var ErrParaphyletic = errors.New("tree is paraphyletic")

// Reroot moves the root of the target tree
// so that it matches the root bipartition
// of the reference tree,
// restricted to the tips shared by both trees.
// The target tree is modified in place
// and returned.
//
// The root of the reference tree must have two children.
func Reroot(ref, target *tree.Tree) (*tree.Tree, error) {
	children := ref.Root().Children()
	if len(children) != 2 {
		return nil, fmt.Errorf("reroot: reference root with %d children, want 2", len(children))
	}

	shared := make(map[string]bool)
	for _, nm := range target.Terms() {
		shared[nm] = true
	}
	left := sharedTips(children[0], shared)
	right := sharedTips(children[1], shared)

	leftLCA := target.LCA(left)
	rightLCA := target.LCA(right)
	if leftLCA == nil || rightLCA == nil {
		return nil, fmt.Errorf("reroot: %w: no shared tips under a reference root child", ErrParaphyletic)
	}

	// Anchor the root at the side
	// that resolves below the target root.
	var other []string
	var anchor *tree.Node
	if leftLCA == target.Root() {
		if rightLCA == target.Root() {
			return nil, fmt.Errorf("reroot: %w: split unresolved on both sides", ErrParaphyletic)
		}
		anchor, other = rightLCA, left
	} else {
		anchor, other = leftLCA, right
	}
	target.RerootAt(anchor)

	lca := target.LCA(other)
	if lca == nil || lca.Parent() == nil {
		return nil, fmt.Errorf("reroot: %w: reference split not found in target tree", ErrParaphyletic)
	}

	far := longestBranchNode(lca)
	if far == nil {
		return nil, fmt.Errorf("reroot: tree without branch lengths")
	}
	target.RerootAt(far)
	return target, nil
}

// sharedTips returns the tip names
// of the subtree rooted at n
// that are present in the given set.
func sharedTips(n *tree.Node, set map[string]bool) []string {
	var names []string
	for _, tip := range n.Tips() {
		if set[tip.Name()] {
			names = append(names, tip.Name())
		}
	}
	return names
}

// longestBranchNode returns the node
// with the longest branch
// on the path between the given node and the root.
func longestBranchNode(n *tree.Node) *tree.Node {
	max := -1.0
	var best *tree.Node
	for ; n.Parent() != nil; n = n.Parent() {
		if l, ok := n.Length(); ok && l > max {
			best = n
			max = l
		}
	}
	return best
}
