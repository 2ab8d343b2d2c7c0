package parse

import (
	"regexp"
	"testing"

	"github.com/npillmayer/peggo/rset"
	"github.com/npillmayer/peggo/text"
)

func TestTextMatch(t *testing.T) {
	doc := text.NewDocumentString("hello world")
	p := NewText("hello")
	node, next := p.Call(newContext(doc, p), 0)
	if node == nil || node.Name() != ":Text" || node.String() != "hello" || next != 5 {
		t.Fatalf("unexpected result: node=%v next=%d", node, next)
	}
}

func TestTextNoMatch(t *testing.T) {
	doc := text.NewDocumentString("goodbye")
	p := NewText("hello")
	node, next := p.Call(newContext(doc, p), 0)
	if node != nil || next != 0 {
		t.Fatalf("expected failure at origin, got node=%v next=%d", node, next)
	}
}

func TestIgnoreCaseASCII(t *testing.T) {
	doc := text.NewDocumentString("HeLLo")
	p := NewIgnoreCase("hello")
	node, next := p.Call(newContext(doc, p), 0)
	if node == nil || next != 5 {
		t.Fatalf("expected case-insensitive match, got node=%v next=%d", node, next)
	}
}

func TestIgnoreCaseUnicode(t *testing.T) {
	doc := text.NewDocumentString("STRASSE")
	p := NewIgnoreCase("straße") // non-ASCII forces the unicode.ToLower path; ß has no uppercase fold so this simply won't match "SS"
	_, next := p.Call(newContext(doc, p), 0)
	if next != 0 {
		t.Fatalf("expected no match on differing lengths, got next=%d", next)
	}
}

func TestCharRangeGreedy(t *testing.T) {
	doc := text.NewDocumentString("aaab")
	set := rset.FromRunes('a')
	p := NewCharRange(set, 1, -1)
	node, next := p.Call(newContext(doc, p), 0)
	if node == nil || next != 3 || node.String() != "aaa" {
		t.Fatalf("expected greedy match of 3 a's, got node=%v next=%d", node, next)
	}
}

func TestCharRangeBelowMinFails(t *testing.T) {
	doc := text.NewDocumentString("b")
	set := rset.FromRunes('a')
	p := NewCharRange(set, 1, -1)
	node, next := p.Call(newContext(doc, p), 0)
	if node != nil || next != 0 {
		t.Fatalf("expected failure, got node=%v next=%d", node, next)
	}
}

func TestRegExpMatch(t *testing.T) {
	doc := text.NewDocumentString("ABC123")
	p := NewRegExp(regexp.MustCompile(`[A-Z]+`))
	node, next := p.Call(newContext(doc, p), 0)
	if node == nil || node.String() != "ABC" || next != 3 {
		t.Fatalf("unexpected result: node=%v next=%d", node, next)
	}
}

func TestWhitespaceSkipsComments(t *testing.T) {
	doc := text.NewDocumentString("  // hi\n  x")
	ws := NewWhitespace(regexp.MustCompile(`\s*`), regexp.MustCompile(`//[^\n]*`))
	ctx := newContext(doc, ws)
	ctx.commentRx = regexp.MustCompile(`//[^\n]*`)
	node, next := ws.Call(ctx, 0)
	if next != 10 {
		t.Fatalf("expected whitespace+comment to consume through offset 10, got %d (node=%v)", next, node)
	}
}

func TestDropContentYieldsEmpty(t *testing.T) {
	doc := text.NewDocumentString("hello")
	p := Assign("DROP:greeting", NewText("hello"))
	node, next := p.Call(newContext(doc, p), 0)
	if !node.IsEmpty() || next != 5 {
		t.Fatalf("expected :EMPTY result with advance, got node=%v next=%d", node, next)
	}
}
