// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package reroot_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/graft/reroot"
	"github.com/js-arias/graft/tree"
	"gonum.org/v1/gonum/floats/scalar"
)

const refTree = "((A:1,B:1):1,(C:1,D:1):1);"

func TestReroot(t *testing.T) {
	ref := readTree(t, refTree)
	target := readTree(t, "(((C:1,D:1):1,B:1):1,A:1);")
	before := target.TotalLength()

	rt, err := reroot.Reroot(ref, target)
	if err != nil {
		t.Fatalf("unable to reroot: %v", err)
	}

	if !scalar.EqualWithinAbs(rt.TotalLength(), before, 1e-10) {
		t.Errorf("total length: got %v, want %v", rt.TotalLength(), before)
	}
	testSplit(t, rt)
}

func TestRerootRooted(t *testing.T) {
	// the target is already rooted as the reference
	ref := readTree(t, refTree)
	target := readTree(t, "((A:1,B:1):2,(C:1,D:1):3);")
	before := target.TotalLength()

	rt, err := reroot.Reroot(ref, target)
	if err != nil {
		t.Fatalf("unable to reroot: %v", err)
	}

	if !scalar.EqualWithinAbs(rt.TotalLength(), before, 1e-10) {
		t.Errorf("total length: got %v, want %v", rt.TotalLength(), before)
	}
	testSplit(t, rt)
}

func TestRerootParaphyletic(t *testing.T) {
	tests := map[string]string{
		"unresolved on both sides": "((A:1,C:1):1,(B:1,D:1):1);",
		"split not found":          "(((A:1,C:1):1,B:1):1,D:1);",
	}

	for name, target := range tests {
		ref := readTree(t, refTree)
		_, err := reroot.Reroot(ref, readTree(t, target))
		if err == nil {
			t.Errorf("%s: expecting paraphyletic tree error", name)
			continue
		}
		if !errors.Is(err, reroot.ErrParaphyletic) {
			t.Errorf("%s: got error %q, want %q", name, err, reroot.ErrParaphyletic)
		}
	}
}

func TestRerootNonBinaryReference(t *testing.T) {
	ref := readTree(t, "(A:1,B:1,C:1);")
	target := readTree(t, "((A:1,B:1):1,C:1);")

	if _, err := reroot.Reroot(ref, target); err == nil {
		t.Errorf("expecting error for a non binary reference root")
	}
}

// testSplit checks that the rerooted tree
// splits the tips as the reference tree:
// {A, B} on one side and {C, D} on the other.
func testSplit(t testing.TB, rt *tree.Tree) {
	t.Helper()

	children := rt.Root().Children()
	if len(children) != 2 {
		t.Fatalf("root children: got %d, want 2", len(children))
	}

	sides := make([]string, 2)
	for i, c := range children {
		var names []string
		for _, tip := range c.Tips() {
			names = append(names, tip.Name())
		}
		slices.Sort(names)
		sides[i] = strings.Join(names, " ")
	}
	slices.Sort(sides)

	want := []string{"A B", "C D"}
	if sides[0] != want[0] || sides[1] != want[1] {
		t.Errorf("root split: got %v, want %v", sides, want)
	}
}

func readTree(t testing.TB, text string) *tree.Tree {
	t.Helper()

	tr, _, err := tree.ReadNewick(strings.NewReader(text))
	if err != nil {
		t.Fatalf("unable to read tree %q: %v", text, err)
	}
	return tr
}
