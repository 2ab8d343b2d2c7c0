package parse

import (
	"regexp"

	"github.com/npillmayer/peggo/cst"
	"github.com/npillmayer/peggo/perr"
	"github.com/npillmayer/peggo/text"
)

// rollbackEntry is one frame of the context-sensitive undo stack. It mirrors
// the teacher's runtime.MemoryFrameStack push/pop-a-frame shape, repurposed
// from interpreter call frames to undo closures for Capture/Retrieve/Pop
// (spec §4.7).
type rollbackEntry struct {
	location int32
	undo     func()
}

// seedState is the per-(Forward,location) bookkeeping used by the
// left-recursion driver (spec §4.5).
type seedState struct {
	node    *cst.Node
	next    int32
	growing bool
}

// Context holds everything a single Parse run threads through the call
// protocol: the document being parsed, the rollback stack, the accumulated
// error list, the farthest-failure tracker, the grammar's single comment
// regexp, and left-recursion seed
// bookkeeping.
type Context struct {
	doc   *text.Document
	root  *Parser

	commentRx *regexp.Regexp // nil: no comments configured for this grammar

	memoize bool // current memoization-enabled flag, saved/restored per Call frame

	rollback []rollbackEntry

	errors []*perr.Error

	farthestFail   int32
	farthestParser *Parser

	reentryWindow int32 // bytes scanned forward by a reentry search before giving up

	seeds map[string]*seedState

	// growing counts, per location, how many Forward seeds are currently
	// being grown at that location. While a count is positive, callStandard
	// must not read or write any parser's memo table at that location:
	// standard Warth growth re-evaluates the involved rule set on every
	// iteration rather than consulting their memo cells (spec §4.5).
	growing map[int32]int

	withinLookahead int // >0 while evaluating inside a Lookahead

	reducer Reducer

	trace       bool
	traceDepth  int
	traceEvents []traceEvent

	vars *capturedVars // lazily allocated backing store for Capture/Retrieve/Pop
}

// defaultReentryWindow bounds how far a skip/resume search scans forward
// before concluding no viable reentry point exists (spec §4.6).
const defaultReentryWindow = 10000

// newContext builds a fresh evaluation Context for doc, rooted at root.
func newContext(doc *text.Document, root *Parser) *Context {
	return &Context{
		doc:           doc,
		root:          root,
		memoize:       true,
		farthestFail:  -1,
		reentryWindow: defaultReentryWindow,
		seeds:         make(map[string]*seedState),
		reducer:       ReduceFlatten,
	}
}

// popRollback discards rollback entries whose location is at or beyond loc:
// a parser backtracking past a Capture must see its undo run exactly once
// (spec §4.7).
func (ctx *Context) popRollback(loc int32) {
	for len(ctx.rollback) > 0 && ctx.rollback[len(ctx.rollback)-1].location >= loc {
		top := ctx.rollback[len(ctx.rollback)-1]
		ctx.rollback = ctx.rollback[:len(ctx.rollback)-1]
		if top.undo != nil {
			top.undo()
		}
	}
}

// pushRollback records an undo closure at the current location.
func (ctx *Context) pushRollback(loc int32, undo func()) {
	ctx.rollback = append(ctx.rollback, rollbackEntry{location: loc, undo: undo})
}

// truncateRollbackTo discards (without running) rollback entries pushed
// after mark, used by the left-recursion driver when a growth attempt fails
// to improve on the seed (spec §4.5).
func (ctx *Context) truncateRollbackTo(mark int) {
	ctx.rollback = ctx.rollback[:mark]
}

// rollbackLocation returns the top rollback entry's location, or -2 if the
// stack is empty.
func (ctx *Context) rollbackLocation() int32 {
	if len(ctx.rollback) == 0 {
		return -2
	}
	return ctx.rollback[len(ctx.rollback)-1].location
}

// addError appends e to the context's error list.
func (ctx *Context) addError(e *perr.Error) {
	ctx.errors = append(ctx.errors, e)
}

// noteFailure updates the farthest-failure tracker: the largest offset at
// which a parser has returned a plain failure, and that parser. The
// PARSER_STOPPED_BEFORE_END diagnostic built by Context.Parse is positioned
// at the root's end offset and does not read this tracker.
func (ctx *Context) noteFailure(at int32, p *Parser) {
	if at > ctx.farthestFail {
		ctx.farthestFail = at
		ctx.farthestParser = p
	}
}

// cleanUp releases per-run state so a Context is not reused across Parse
// calls with stale seeds, rollback entries, diagnostics, farthest-failure
// data or captured variables.
func (ctx *Context) cleanUp() {
	ctx.rollback = nil
	ctx.seeds = make(map[string]*seedState)
	ctx.growing = nil
	ctx.errors = nil
	ctx.farthestFail = -1
	ctx.farthestParser = nil
	ctx.vars = nil
}

// beginGrowing and endGrowing bracket a left-recursion growth iteration at
// location at (spec §4.5); isGrowing reports whether any Forward is
// currently growing its seed at that location.
func (ctx *Context) beginGrowing(at int32) {
	if ctx.growing == nil {
		ctx.growing = make(map[int32]int)
	}
	ctx.growing[at]++
}

func (ctx *Context) endGrowing(at int32) {
	ctx.growing[at]--
	if ctx.growing[at] <= 0 {
		delete(ctx.growing, at)
	}
}

func (ctx *Context) isGrowing(at int32) bool {
	return ctx.growing[at] > 0
}

// clearParserMemos walks the grammar graph rooted at ctx.root (the same
// visited-set traversal Bind uses) and resets every reachable parser's memo
// table, implementing spec §3's "each parser's memo table is cleared after
// the run" so a Context bound once can be reused across several Parse calls
// on different documents without stale cross-run memo entries.
func (ctx *Context) clearParserMemos() {
	seen := make(map[uint64]bool)
	var walk func(p *Parser)
	walk = func(p *Parser) {
		if p == nil || seen[p.id] {
			return
		}
		seen[p.id] = true
		p.memo = make(map[int32]memoEntry)
		for _, c := range p.children {
			walk(c)
		}
		if p.separator != nil {
			walk(p.separator)
		}
		if p.kind == kForward {
			walk(p.forwardBody)
		}
	}
	walk(ctx.root)
}
