package parse

import (
	"testing"

	"github.com/npillmayer/peggo/text"
)

func TestAlternativeOrderedChoice(t *testing.T) {
	doc := text.NewDocumentString("foo")
	a := NewText("foo")
	b := NewText("foobar")
	p := Or(b, a) // "foobar" tried first and fails; "foo" should win
	ctx := newContext(doc, p)
	node, next := p.Call(ctx, 0)
	if node == nil || next != 3 {
		t.Fatalf("expected alternative to fall through to second branch, got node=%v next=%d", node, next)
	}
	if _, hit := b.memo[0]; !hit {
		t.Errorf("expected the tried-and-failed branch to still be memoized")
	}
}

func TestAlternativeMergesUnnamedChildren(t *testing.T) {
	a, b, c := NewText("a"), NewText("b"), NewText("c")
	inner := Or(a, b)
	outer := Or(inner, c)
	if len(outer.children) != 3 {
		t.Errorf("expected unnamed Alternative merge to flatten to 3 children, got %d", len(outer.children))
	}
}

func TestSeriesMergesUnnamedChildren(t *testing.T) {
	a, b, c := NewText("a"), NewText("b"), NewText("c")
	inner := Seq(a, b)
	outer := Seq(inner, c)
	if len(outer.children) != 3 {
		t.Errorf("expected unnamed Series merge to flatten to 3 children, got %d", len(outer.children))
	}
}

func TestSeriesMandatoryBeforeThresholdFailsNonDestructively(t *testing.T) {
	doc := text.NewDocumentString("AXC")
	p := Seq(NewText("A"), NewText("B"), NewText("C"))
	Mandatory(p, 5) // never mandatory: m beyond length clamps to len(children)
	ctx := newContext(doc, p)
	node, next := p.Call(ctx, 0)
	if node != nil || next != 0 {
		t.Fatalf("expected a plain PEG failure, got node=%v next=%d", node, next)
	}
}

func TestRepeatStopsOnNonAdvancingMatch(t *testing.T) {
	doc := text.NewDocumentString("")
	child := Option(NewText("x")) // always "matches" (possibly emptily) at any offset
	p := Repeat(child, 0, -1)
	ctx := newContext(doc, p)
	// dispatchRepeat must terminate: an Option always "succeeds" without
	// ever advancing past an empty document, which would loop forever
	// without the non-advancing-match guard (spec §4.3).
	node, next := p.Call(ctx, 0)
	if node == nil || next != 0 {
		t.Fatalf("expected a single accepted empty match, got node=%v next=%d", node, next)
	}
}

func TestLookaheadPositiveDoesNotConsume(t *testing.T) {
	doc := text.NewDocumentString("abc")
	p := Pos(NewText("abc"))
	ctx := newContext(doc, p)
	node, next := p.Call(ctx, 0)
	if node == nil || !node.IsEmpty() || next != 0 {
		t.Fatalf("expected zero-width success, got node=%v next=%d", node, next)
	}
}

func TestLookaheadNegativeFailsOnMatch(t *testing.T) {
	doc := text.NewDocumentString("abc")
	p := Neg(NewText("abc"))
	ctx := newContext(doc, p)
	node, _ := p.Call(ctx, 0)
	if node != nil {
		t.Fatalf("expected negative lookahead to fail when child matches")
	}
}

func TestSynonymPassesThroughUnchanged(t *testing.T) {
	doc := text.NewDocumentString("abc")
	leaf := Assign("word", NewText("abc"))
	p := Synonym(leaf)
	ctx := newContext(doc, p)
	node, next := p.Call(ctx, 0)
	if node == nil || node.Name() != "word" || next != 3 {
		t.Fatalf("expected synonym to forward child's node unchanged, got node=%v next=%d", node, next)
	}
}

func TestInterleaveAnyOrder(t *testing.T) {
	doc := text.NewDocumentString("ba")
	a, b := Assign("a", NewText("a")), Assign("b", NewText("b"))
	p := NewInterleave(nil, 2, a, b)
	ctx := newContext(doc, p)
	node, next := p.Call(ctx, 0)
	if node == nil || next != 2 {
		t.Fatalf("expected interleave to accept b-then-a, got node=%v next=%d", node, next)
	}
}
