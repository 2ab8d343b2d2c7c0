package cst

import (
	"testing"

	"github.com/npillmayer/peggo/text"
)

func TestEmptySentinelImmutable(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic mutating :EMPTY sentinel")
		}
	}()
	Empty().SetAttribute("x", "y")
}

func TestAssignSourcePosContiguous(t *testing.T) {
	doc := text.NewDocumentString("abcdef")
	a := NewLeaf("a", doc.Slice(0, 2))
	b := NewLeaf("b", doc.Slice(2, 4))
	c := NewLeaf("c", doc.Slice(4, 6))
	branch := NewBranch("root", []*Node{a, b, c})
	branch.AssignSourcePos(0)

	if a.SourcePos() != 0 || b.SourcePos() != 2 || c.SourcePos() != 4 {
		t.Errorf("expected contiguous offsets 0,2,4 got %d,%d,%d",
			a.SourcePos(), b.SourcePos(), c.SourcePos())
	}
}

func TestAssignSourcePosIdempotent(t *testing.T) {
	leaf := NewLeaf("x", text.NewDocumentString("hi").Slice(0, 2))
	leaf.AssignSourcePos(5)
	leaf.AssignSourcePos(5) // idempotent, must not panic
	if leaf.SourcePos() != 5 {
		t.Errorf("expected 5, got %d", leaf.SourcePos())
	}
}

func TestAssignSourcePosReassignPanics(t *testing.T) {
	leaf := NewLeaf("x", text.NewDocumentString("hi").Slice(0, 2))
	leaf.AssignSourcePos(5)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on reassignment to different value")
		}
	}()
	leaf.AssignSourcePos(6)
}

func TestAttributesInsertionOrder(t *testing.T) {
	n := NewBranch("n", nil)
	n.SetAttribute("z", "1")
	n.SetAttribute("a", "2")
	keys := n.AttributeKeys()
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Errorf("expected insertion order [z a], got %v", keys)
	}
}

func TestSExprRendersChildren(t *testing.T) {
	doc := text.NewDocumentString("42")
	leaf := NewLeaf(":Text", doc.Slice(0, 2))
	branch := NewBranch("number", []*Node{leaf})
	s := branch.SExpr(60)
	want := `(number (:Text "42"))`
	if s != want {
		t.Errorf("expected %q, got %q", want, s)
	}
}
