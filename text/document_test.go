package text

import (
	"regexp"
	"testing"
)

func TestSliceString(t *testing.T) {
	doc := NewDocumentString("hello world")
	s := doc.Slice(6, 11)
	if s.String() != "world" {
		t.Errorf("expected 'world', got %q", s.String())
	}
}

func TestSliceEqual(t *testing.T) {
	doc := NewDocumentString("abcabc")
	a := doc.Slice(0, 3)
	b := doc.Slice(3, 6)
	if !a.Equal(b) {
		t.Errorf("expected %q == %q", a.String(), b.String())
	}
}

func TestMatchRegexpAtSticky(t *testing.T) {
	doc := NewDocumentString("  123abc")
	rx := regexp.MustCompile(`\d+`)
	if _, ok := doc.Full().MatchRegexpAt(rx); ok {
		t.Errorf("expected no sticky match at offset 0")
	}
	s := doc.Slice(2, doc.Len())
	end, ok := s.MatchRegexpAt(rx)
	if !ok || end != 5 {
		t.Errorf("expected sticky match ending at 5, got (%d, %v)", end, ok)
	}
}

func TestFindRegexp(t *testing.T) {
	doc := NewDocumentString("   ) tail")
	rx := regexp.MustCompile(`\)`)
	start, end, ok := doc.Full().FindRegexp(rx)
	if !ok || start != 3 || end != 4 {
		t.Errorf("expected match at (3,4), got (%d,%d,%v)", start, end, ok)
	}
}

func TestRuneAt(t *testing.T) {
	doc := NewDocumentString("a€b")
	r, sz := doc.RuneAt(1)
	if r != '€' || sz != 3 {
		t.Errorf("expected euro sign size 3, got %q size %d", r, sz)
	}
}

func TestLineColumn(t *testing.T) {
	doc := NewDocumentString("ab\ncd\nef")
	line, col := doc.LineColumn(6)
	if line != 3 || col != 1 {
		t.Errorf("expected (3,1), got (%d,%d)", line, col)
	}
}
