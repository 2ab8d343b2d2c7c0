package parse

import (
	"testing"

	"github.com/npillmayer/peggo/cst"
	"github.com/npillmayer/peggo/perr"
	"github.com/npillmayer/peggo/text"
)

// spec §8, scenario 1: Input "A" under Text("A") -> node (:Text "A"), no errors.
func TestEndToEndTextMatch(t *testing.T) {
	doc := text.NewDocumentString("A")
	root := NewText("A")
	node, errs := Parse(root, doc, 0)
	if node == nil || node.Name() != ":Text" || node.String() != "A" {
		t.Fatalf("unexpected node: %v", node)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

// spec §8, scenario 3/4: Series(A,B,C, mandatory=1) succeeds on "ABC" and
// raises a mandatory-continuation error on "ABX", with the root resuming at
// EOF and producing a __ZOMBIE placeholder for the skipped span.
func TestEndToEndSeriesMandatoryCommit(t *testing.T) {
	build := func() *Parser {
		p := Seq(NewText("A"), NewText("B"), NewText("C"))
		return Mandatory(p, 1)
	}

	t.Run("matches", func(t *testing.T) {
		doc := text.NewDocumentString("ABC")
		node, errs := Parse(build(), doc, 0)
		if node == nil || len(node.Children()) != 3 {
			t.Fatalf("expected a 3-child series node, got %v", node)
		}
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("raises and recovers at root", func(t *testing.T) {
		doc := text.NewDocumentString("ABX")
		node, errs := Parse(build(), doc, 0)
		if node == nil {
			t.Fatalf("expected root to resolve the recoverSignal into a repaired tree")
		}
		if len(errs) != 1 {
			t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
		}
		e := errs[0]
		if e.Code != perr.CodeMandatoryContinuation {
			t.Errorf("expected code %d, got %d", perr.CodeMandatoryContinuation, e.Code)
		}
		if e.Position != 2 {
			t.Errorf("expected failure position 2, got %d", e.Position)
		}
		if !containsZombie(node) {
			t.Errorf("expected a __ZOMBIE node covering the skipped span, got %s", node.SExpr(0))
		}
	})
}

func containsZombie(n *cst.Node) bool {
	if n == nil {
		return false
	}
	if n.Name() == "__ZOMBIE" {
		return true
	}
	for _, c := range n.Children() {
		if containsZombie(c) {
			return true
		}
	}
	return false
}

// spec §8, scenario 6: a left-recursive expression grammar terminates and
// produces a left-associative tree, `E := E & '+' & T | T`.
func TestEndToEndLeftRecursionTerminatesLeftAssociative(t *testing.T) {
	term := Assign("term", NewText("a"))
	e := Forward()
	add := Assign("expr", Seq(e, NewText("+"), term))
	// ":choice" keeps the Alternative disposable so a matched named child
	// (add or term) passes through unchanged rather than being wrapped
	// under a throwaway ":Alternative" node (spec §4.4 returnItemFlatten).
	e.Set(Assign(":choice", Or(add, term)))

	doc := text.NewDocumentString("a+a+a")
	node, errs := Parse(e, doc, 0)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if node == nil || node.String() != "a+a+a" {
		t.Fatalf("expected full match of input, got %v", node)
	}
	if node.Name() != "expr" {
		t.Fatalf("expected outermost node named \"expr\", got %q", node.Name())
	}
	inner := node.Children()[0]
	if inner.Name() != "expr" {
		t.Fatalf("expected left-associative nesting (first child also \"expr\"), got %q", inner.Name())
	}
	leaf := inner.Children()[0]
	if leaf.Name() != "term" {
		t.Fatalf("expected innermost left child to be the base \"term\", got %q", leaf.Name())
	}
}

// spec §4.6: a resumer's own call-site offset can differ from where the
// failing series' partial subtree actually begins (here root is invoked at
// 0, but the mandatory series it resumes on behalf of starts matching at 1,
// after root's own leading "X"). AssignSourcePos must use the partial's true
// origin rather than the resumer's at, or this panics as a fatality instead
// of recovering.
func TestEndToEndRecoveryResumerOffsetMismatch(t *testing.T) {
	root := Seq(NewText("X"), Mandatory(Seq(NewText("A"), NewText("B"), NewText("C")), 1))

	doc := text.NewDocumentString("XABZ")
	node, errs := Parse(root, doc, 0)
	if node == nil {
		t.Fatalf("expected root to resolve the recoverSignal into a repaired tree")
	}
	if node.SourcePos() != 1 {
		t.Fatalf("expected the recovered tree to be positioned at the failing series' own origin (1), got %d", node.SourcePos())
	}
	if len(errs) != 1 || errs[0].Code != perr.CodeMandatoryContinuation {
		t.Fatalf("expected one mandatory-continuation error, got %v", errs)
	}
	if errs[0].Position != 3 {
		t.Errorf("expected failure position 3, got %d", errs[0].Position)
	}
	if !containsZombie(node) {
		t.Errorf("expected a __ZOMBIE node covering the skipped span, got %s", node.SExpr(0))
	}
}

// spec §6: Parse appends PARSER_STOPPED_BEFORE_END when the root matches
// but does not consume the whole document.
func TestEndToEndStoppedBeforeEnd(t *testing.T) {
	doc := text.NewDocumentString("AB")
	node, errs := Parse(NewText("A"), doc, 0)
	if node == nil {
		t.Fatalf("expected a match")
	}
	if len(errs) != 1 || errs[0].Code != perr.CodeParserStoppedBeforeEnd {
		t.Fatalf("expected one PARSER_STOPPED_BEFORE_END error, got %v", errs)
	}
}
