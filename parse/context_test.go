package parse

import (
	"testing"

	"github.com/npillmayer/peggo/text"
)

func TestRollbackPopRunsUndoOnce(t *testing.T) {
	ctx := newContext(text.NewDocumentString("abc"), nil)
	calls := 0
	ctx.pushRollback(2, func() { calls++ })
	ctx.popRollback(2)
	ctx.popRollback(2)
	if calls != 1 {
		t.Errorf("expected undo to run exactly once, ran %d times", calls)
	}
}

func TestRollbackLocationEmptyStack(t *testing.T) {
	ctx := newContext(text.NewDocumentString(""), nil)
	if loc := ctx.rollbackLocation(); loc != -2 {
		t.Errorf("expected -2 for empty rollback stack, got %d", loc)
	}
}

func TestTruncateRollbackDoesNotRunUndo(t *testing.T) {
	ctx := newContext(text.NewDocumentString("abc"), nil)
	ran := false
	mark := len(ctx.rollback)
	ctx.pushRollback(1, func() { ran = true })
	ctx.truncateRollbackTo(mark)
	if ran {
		t.Errorf("truncateRollbackTo must not invoke undo closures")
	}
	if len(ctx.rollback) != mark {
		t.Errorf("expected rollback stack trimmed back to %d, got %d", mark, len(ctx.rollback))
	}
}

func TestNoteFailureTracksFarthest(t *testing.T) {
	ctx := newContext(text.NewDocumentString("abcdef"), nil)
	p1, p2 := newParser(kText), newParser(kText)
	ctx.noteFailure(2, p1)
	ctx.noteFailure(5, p2)
	ctx.noteFailure(3, p1)
	if ctx.farthestFail != 5 || ctx.farthestParser != p2 {
		t.Errorf("expected farthest failure at 5 tracked to p2, got %d/%v", ctx.farthestFail, ctx.farthestParser)
	}
}
