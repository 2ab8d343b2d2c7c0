package parse

import "github.com/npillmayer/peggo/cst"

// callForward implements the Warth-style seed-growing left-recursion
// driver (spec §4.5), structured as a fixpoint loop analogous to the
// teacher's Earley innerLoop:
//
//  1. if (this Forward, at) is currently being grown, return the seed as-is
//     — this is what lets a recursive call through the same location
//     terminate instead of looping forever
//  2. otherwise plant an initial seed (nil, at), mark it growing, and
//     invoke the body once
//  3. repeatedly re-invoke the body at the same location; if it improves on
//     the seed (matches farther), accept it and loop again; otherwise
//     discard whatever rollback entries the failed attempt pushed and stop
//  4. clear the growing mark and return the final seed
func (p *Parser) callForward(ctx *Context, at int32) (*cst.Node, int32) {
	ctx.popRollback(at)

	key := forwardKey(p, at)
	if st, ok := ctx.seeds[key]; ok {
		return st.node, st.next
	}

	st := &seedState{node: nil, next: at, growing: true}
	ctx.seeds[key] = st

	// Every body evaluation below happens under beginGrowing/endGrowing, so
	// callStandard bypasses memoization for the entire recursive cycle at
	// this location: a memo entry written from an earlier, un-grown round
	// would otherwise short-circuit every later round to the same result
	// and the seed could never grow (spec §4.5).
	body := p.forwardBody
	ctx.beginGrowing(at)
	node, next := body.Call(ctx, at)
	st.node, st.next = node, next

	for {
		mark := len(ctx.rollback)
		node2, next2 := body.Call(ctx, at)
		if node2 != nil && next2 > st.next {
			st.node, st.next = node2, next2
			continue
		}
		ctx.truncateRollbackTo(mark)
		break
	}
	ctx.endGrowing(at)

	st.growing = false
	result := *st
	delete(ctx.seeds, key)

	if result.node == nil {
		ctx.noteFailure(at, p)
	} else {
		result.node.AssignSourcePos(at)
	}
	return result.node, result.next
}
