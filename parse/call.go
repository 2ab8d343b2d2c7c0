package parse

import "github.com/npillmayer/peggo/cst"

// Call implements the shared evaluation protocol every parser goes through
// (spec §4.1):
//
//  1. pop stale rollback entries for locations we are about to revisit
//  2. consult the per-parser memo table
//  3. save/raise the context's memoize flag around the actual dispatch
//  4. catch a mandatory-continuation exception raised beneath us
//  5. update the farthest-failure tracker on a plain failure
//  6. assign source positions on success
//  7. store the memo entry if memoization is still enabled, then restore
//     the saved flag
//
// Forward parsers replace steps 2-6 with the left-recursion driver
// (callForward, spec §4.5); everything else uses callStandard.
func (p *Parser) Call(ctx *Context, at int32) (*cst.Node, int32) {
	if p.kind == kForward {
		return p.callForward(ctx, at)
	}
	return p.callStandard(ctx, at)
}

func (p *Parser) callStandard(ctx *Context, at int32) (node *cst.Node, next int32) {
	ctx.popRollback(at)

	growing := ctx.isGrowing(at)
	if !growing {
		if entry, ok := p.memo[at]; ok {
			return entry.node, entry.next
		}
	}

	prevMemoize := ctx.memoize
	ctx.memoize = true

	node, next = p.callWithRecovery(ctx, at)

	if node == nil {
		ctx.noteFailure(at, p)
	} else if node.SourcePos() < 0 {
		// A node returned from error recovery already carries its own
		// source position (assigned from the true origin of its partial
		// subtree, which can differ from at) and must not be re-stamped.
		node.AssignSourcePos(at)
	}

	if ctx.memoize && !growing {
		p.memo[at] = memoEntry{node: node, next: next}
	}
	ctx.memoize = prevMemoize
	return node, next
}

// callWithRecovery wraps dispatch with the recoverSignal catch described in
// handleRecover. Any other panic value (including a *perr.Error fatality)
// propagates unchanged: fatalities are never part of ordinary control flow.
func (p *Parser) callWithRecovery(ctx *Context, at int32) (node *cst.Node, next int32) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(recoverSignal)
			if !ok {
				panic(r)
			}
			node, next = p.handleRecover(ctx, sig)
		}
	}()
	return p.dispatch(ctx, at)
}

// dispatch selects the variant-specific matching logic (defined across
// dispatch_leaf.go and dispatch_combinator.go) by kind.
func (p *Parser) dispatch(ctx *Context, at int32) (*cst.Node, int32) {
	switch p.kind {
	case kText:
		return p.dispatchText(ctx, at)
	case kIgnoreCase:
		return p.dispatchIgnoreCase(ctx, at)
	case kCharRange:
		return p.dispatchCharRange(ctx, at)
	case kRegExp:
		return p.dispatchRegExp(ctx, at)
	case kWhitespace:
		return p.dispatchWhitespace(ctx, at)
	case kRepeat:
		return p.dispatchRepeat(ctx, at)
	case kAlternative:
		return p.dispatchAlternative(ctx, at)
	case kSeries:
		return p.dispatchSeries(ctx, at)
	case kInterleave:
		return p.dispatchInterleave(ctx, at)
	case kLookahead:
		return p.dispatchLookahead(ctx, at)
	case kSynonym:
		return p.children[0].Call(ctx, at)
	case kLiteralSet:
		return p.dispatchLiteralSet(ctx, at)
	case kCapture:
		return p.dispatchCapture(ctx, at)
	case kRetrieve:
		return p.dispatchRetrieve(ctx, at)
	case kPop:
		return p.dispatchPop(ctx, at)
	case kTrace:
		return p.dispatchTrace(ctx, at)
	}
	panicFatal("dispatch: unknown parser kind")
	return nil, at
}
