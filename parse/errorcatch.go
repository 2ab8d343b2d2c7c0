package parse

import (
	"fmt"

	"github.com/npillmayer/peggo/cst"
	"github.com/npillmayer/peggo/perr"
)

// recoverSignal is the control-flow payload used to implement mandatory-
// continuation error catching (spec §4.6). A Series (or Interleave) that
// fails past its mandatory threshold panics with one of these; every
// parser's call wrapper recovers it and either resolves it (if the parser
// is an active resumer or the grammar root) or re-wraps and re-raises it.
type recoverSignal struct {
	partial *cst.Node
	at      int32 // current propagation location: where resumption would continue from
	// origLen is the byte length spanned by partial as first built in
	// raiseMandatory (spec §4.6 item 5's "node_orig_len"). Re-wrapping
	// never changes the span a partial subtree covers, only adds a sibling
	// at the resumer, so at - origLen recovers the absolute offset the
	// partial's content actually begins at — which is not, in general,
	// the offset the resuming parser was itself called at.
	origLen    int32
	err        *perr.Error
	firstThrow bool
}

// panicFatal raises a fatality-class *perr.Error, the internal-invariant
// panic distinct from recoverSignal: fatalities are never caught by the
// error-catching protocol (spec §7).
func panicFatal(message string) {
	panic(perr.NewFatal(message))
}

// ErrorRule attaches a diagnostic message to a matcher describing what was
// expected at a mandatory-continuation failure (spec §4.6, attached via
// Errors).
type ErrorRule struct {
	trigger Matcher
	message string
}

// On builds an ErrorRule: when trigger matches at the exact failure
// position, message is used for the diagnostic instead of the default.
func On(trigger Matcher, message string) ErrorRule {
	return ErrorRule{trigger: trigger, message: message}
}

// Errors attaches a list of candidate diagnostic messages to the unique
// error-catching descendant of root (spec §4.6; the "single active
// error-catching descendant by traversal" rule — see findErrorCatcher).
func Errors(root *Parser, rules ...ErrorRule) *Parser {
	target := mustFindErrorCatcher(root)
	target.errorList = append(target.errorList, rules...)
	return root
}

// SkipUntil attaches a reentry matcher used by the raising parser itself to
// bound its own immediate error span (spec §4.6 item 1).
func SkipUntil(root *Parser, m Matcher) *Parser {
	target := mustFindErrorCatcher(root)
	target.skipList = append(target.skipList, m)
	return root
}

// Resume attaches a reentry matcher used by an ancestor to decide where
// parsing continues after a descendant's mandatory-continuation error
// propagates up to it (spec §4.6 item 4).
func Resume(root *Parser, m Matcher) *Parser {
	target := mustFindErrorCatcher(root)
	target.resumeList = append(target.resumeList, m)
	return root
}

// findErrorCatcher walks root's subtree (through Series/Alternative/Repeat/
// Interleave/Lookahead/Synonym children and through Forward bodies, with a
// visited set to tolerate cycles) and returns the unique parser marked
// error-catching (flagErrorCatching, set by Mandatory or a partial
// NewInterleave). Zero or more than one match is a grammar-construction
// error.
func findErrorCatcher(root *Parser) (*Parser, error) {
	seen := make(map[uint64]bool)
	var found []*Parser
	var walk func(p *Parser)
	walk = func(p *Parser) {
		if p == nil || seen[p.id] {
			return
		}
		seen[p.id] = true
		if p.flags&flagErrorCatching != 0 {
			found = append(found, p)
		}
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
	walk(root)
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("no error-catching parser found below %q", root.name)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("ambiguous: %d error-catching parsers found below %q", len(found), root.name)
	}
}

func mustFindErrorCatcher(root *Parser) *Parser {
	target, err := findErrorCatcher(root)
	if err != nil {
		panicFatal(err.Error())
	}
	return target
}

// selectErrorMessage picks the diagnostic text for a mandatory-continuation
// failure at failAt: the first ErrorRule whose trigger matches exactly at
// failAt wins; otherwise a generic message naming the raising parser.
func selectErrorMessage(ctx *Context, rules []ErrorRule, failAt int32, p *Parser) string {
	for _, r := range rules {
		if start := matcherStart(ctx, r.trigger, failAt); start == failAt {
			return r.message
		}
	}
	name := p.nodeName
	if p.name != "" {
		name = p.name
	}
	return fmt.Sprintf("mandatory continuation expected in %s", name)
}

// matcherStart returns the start offset of m's next occurrence at or after
// origin (as opposed to locate, which returns the END offset parsing would
// resume from). Used only to test "does this trigger match immediately at
// the failure point".
func matcherStart(ctx *Context, m Matcher, origin int32) int32 {
	switch m.kind {
	case matchRegex:
		s := ctx.doc.Slice(origin, ctx.doc.Len())
		start, _, ok := s.FindRegexp(m.rx)
		if !ok {
			return -1
		}
		return start
	case matchString:
		if ctx.doc.Slice(origin, ctx.doc.Len()).HasPrefixString(m.lit) {
			return origin
		}
		return -1
	case matchAny:
		return origin
	default:
		// Procedure/Parser matchers only support forward search (locate),
		// not an exact-position test; they never win a message selection.
		return -1
	}
}

// raiseMandatory implements spec §4.6 items 1-3: it performs the raising
// parser's own reentry search (skipList) to bound an immediate zombie span,
// selects a diagnostic message, records the error, bundles the partially
// built sequence together with the zombie, and panics with a recoverSignal
// for an enclosing call wrapper to catch.
func raiseMandatory(ctx *Context, p *Parser, failAt int32, partialKids []*cst.Node) (*cst.Node, int32) {
	skipPos, ok := locateAny(ctx, p.skipList, failAt)
	if !ok {
		skipPos = failAt
	}
	code := perr.CodeMandatoryContinuation
	if failAt >= ctx.doc.Len() && ctx.withinLookahead > 0 {
		code = perr.CodeMandatoryContinuationAtEOF
	}
	msg := selectErrorMessage(ctx, p.errorList, failAt, p)
	line, col := ctx.doc.LineColumn(failAt)
	errRec := perr.New(code, msg, failAt).WithLineColumn(line, col).WithLength(skipPos - failAt)
	ctx.addError(errRec)

	tracer().Errorf("mandatory continuation failed in %s at offset %d: %s", p.nodeName, failAt, msg)

	// origin is where p itself started matching: the already-assigned
	// source position of its first successfully-matched child, or failAt
	// itself if the mandatory threshold was the very first element.
	origin := failAt
	if len(partialKids) > 0 {
		origin = partialKids[0].SourcePos()
	}

	skipNode := cst.Zombie(ctx.doc.Slice(failAt, skipPos))
	kids := append(append([]*cst.Node{}, partialKids...), skipNode)
	partial := cst.NewBranch(p.nodeName, kids)
	partial.AssignSourcePos(origin)

	panic(recoverSignal{partial: partial, at: skipPos, origLen: skipPos - origin, err: errRec, firstThrow: true})
}

// handleRecover implements spec §4.6 item 5's propagation algorithm: a
// parser whose call wrapper catches a recoverSignal either resolves it (if
// it is an active resumer or the grammar root) or re-wraps the partial
// result under its own node name and re-raises. Exactly one "free pass"
// happens immediately after the raise (covering the raiser's own wrapper,
// whose partial node already reflects the raise), after which every
// non-resolving ancestor accumulates one more layer of wrapping as the
// panic unwinds.
func (p *Parser) handleRecover(ctx *Context, sig recoverSignal) (*cst.Node, int32) {
	origin := sig.at - sig.origLen
	resumer := len(p.resumeList) > 0 || p == ctx.root
	if resumer {
		pos, ok := locateAny(ctx, p.resumeList, sig.at)
		if !ok {
			pos = ctx.doc.Len()
		}
		gap := cst.Zombie(ctx.doc.Slice(sig.at, pos))
		gap.AssignSourcePos(sig.at)
		var kids []*cst.Node
		if sig.partial != nil {
			kids = append(kids, sig.partial)
		}
		kids = append(kids, gap)
		branch := cst.NewBranch(p.nodeName, kids)
		// branch is assigned at origin, not at p's own call-site location:
		// a recovered tree covers only the raiser's partial plus the gap
		// up to pos, which in general starts after wherever p itself was
		// invoked (any of p's own preceding matches are not part of sig).
		branch.AssignSourcePos(origin)
		return branch, pos
	}
	if sig.firstThrow {
		panic(recoverSignal{partial: sig.partial, at: sig.at, origLen: sig.origLen, err: sig.err, firstThrow: false})
	}
	var kids []*cst.Node
	if sig.partial != nil {
		kids = append(kids, sig.partial)
	}
	wrapped := cst.NewBranch(p.nodeName, kids)
	// wrapped has exactly sig.partial as its one child, so it spans the
	// same range and is assigned at the same origin.
	wrapped.AssignSourcePos(origin)
	panic(recoverSignal{partial: wrapped, at: sig.at, origLen: sig.origLen, err: sig.err, firstThrow: false})
}
