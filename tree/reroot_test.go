// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/js-arias/graft/tree"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestRerootAtRootChild(t *testing.T) {
	tr, _, err := tree.ReadNewick(strings.NewReader("((A:1,B:2):3,C:6);"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	before := tr.TotalLength()

	c := tr.LCA([]string{"C"})
	if c == nil {
		t.Fatalf("tip %q not found", "C")
	}
	tr.RerootAt(c)

	if !scalar.EqualWithinAbs(tr.TotalLength(), before, 1e-10) {
		t.Errorf("total length: got %v, want %v", tr.TotalLength(), before)
	}
	testNewick(t, tr, "(C:0,(A:1,B:2):9);")
}

func TestRerootAtDeepNode(t *testing.T) {
	tr, _, err := tree.ReadNewick(strings.NewReader("(((A:1,B:1):1,C:1):1,D:1);"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	before := tr.TotalLength()

	ab := tr.LCA([]string{"A", "B"})
	if ab == nil || ab.IsTerm() {
		t.Fatalf("invalid ancestor for %q and %q", "A", "B")
	}
	tr.RerootAt(ab)

	if !scalar.EqualWithinAbs(tr.TotalLength(), before, 1e-10) {
		t.Errorf("total length: got %v, want %v", tr.TotalLength(), before)
	}
	if g := len(tr.Root().Children()); g != 2 {
		t.Errorf("root children: got %d, want 2", g)
	}
	testNewick(t, tr, "((A:1,B:1):1,(C:1,D:2):0);")
}

func TestLCA(t *testing.T) {
	tr, _, err := tree.ReadNewick(strings.NewReader("(((A:1,B:1):1,C:1):1,D:1);"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	ab := tr.LCA([]string{"A", "B"})
	var tips []string
	for _, tip := range ab.Tips() {
		tips = append(tips, tip.Name())
	}
	if len(tips) != 2 || tips[0] != "A" || tips[1] != "B" {
		t.Errorf("ancestor tips: got %v, want [A B]", tips)
	}

	if g := tr.LCA([]string{"A", "D"}); g != tr.Root() {
		t.Errorf("expecting the root as ancestor of %q and %q", "A", "D")
	}
	if g := tr.LCA([]string{"C"}); g == nil || g.Name() != "C" {
		t.Errorf("single tip ancestor: got %v, want the tip itself", g)
	}
	if g := tr.LCA([]string{"not-a-tip"}); g != nil {
		t.Errorf("unknown tip: got %v, want nil", g)
	}
}

func testNewick(t testing.TB, tr *tree.Tree, want string) {
	t.Helper()

	var buf bytes.Buffer
	if err := tr.Newick(&buf); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	if g := strings.TrimSpace(buf.String()); g != want {
		t.Errorf("tree: got %q, want %q", g, want)
	}
}
