package parse

import "github.com/npillmayer/peggo/cst"

func (p *Parser) dispatchRepeat(ctx *Context, at int32) (*cst.Node, int32) {
	var kids []*cst.Node
	cursor := at
	count := 0
	for p.maxCount < 0 || count < p.maxCount {
		node, next := p.children[0].Call(ctx, cursor)
		if node == nil {
			break
		}
		kids = append(kids, node)
		count++
		if next == cursor {
			// child matched without advancing: accept it once, then stop
			// to avoid looping forever (spec §4.3).
			break
		}
		cursor = next
	}
	if count < p.minCount {
		return nil, at
	}
	return ctx.reducer.Seq(p, kids), cursor
}

func (p *Parser) dispatchAlternative(ctx *Context, at int32) (*cst.Node, int32) {
	for _, child := range p.children {
		if node, next := child.Call(ctx, at); node != nil {
			return ctx.reducer.Item(p, node), next
		}
	}
	return nil, at
}

func (p *Parser) dispatchSeries(ctx *Context, at int32) (*cst.Node, int32) {
	var kids []*cst.Node
	cursor := at
	for i, child := range p.children {
		node, next := child.Call(ctx, cursor)
		if node == nil {
			if i < p.mandatory {
				return nil, at
			}
			return raiseMandatory(ctx, p, cursor, kids)
		}
		kids = append(kids, node)
		cursor = next
	}
	return ctx.reducer.Seq(p, kids), cursor
}

// dispatchInterleave matches p.children in any order, each exactly once,
// separated by p.separator where present (spec §4.3 Open Questions:
// resolved as permutation / match-all-once-any-order, grounded on
// other_examples' langlang Choice combinator). A child's failure past
// p.mandatory triggers the same error-catching path a Series uses.
func (p *Parser) dispatchInterleave(ctx *Context, at int32) (*cst.Node, int32) {
	remaining := make([]*Parser, len(p.children))
	copy(remaining, p.children)
	var kids []*cst.Node
	cursor := at
	matched := 0
	for len(remaining) > 0 {
		progressed := false
		for i, child := range remaining {
			tryAt := cursor
			if p.separator != nil && matched > 0 {
				sepNode, sepNext := p.separator.Call(ctx, cursor)
				if sepNode == nil {
					continue
				}
				tryAt = sepNext
			}
			if node, next := child.Call(ctx, tryAt); node != nil {
				kids = append(kids, node)
				cursor = next
				matched++
				remaining = append(remaining[:i:i], remaining[i+1:]...)
				progressed = true
				break
			}
		}
		if !progressed {
			if matched < p.mandatory {
				return nil, at
			}
			return raiseMandatory(ctx, p, cursor, kids)
		}
	}
	return ctx.reducer.Seq(p, kids), cursor
}

func (p *Parser) dispatchLookahead(ctx *Context, at int32) (*cst.Node, int32) {
	ctx.withinLookahead++
	node, _ := p.children[0].Call(ctx, at)
	ctx.withinLookahead--
	if (node != nil) == p.positive {
		return cst.Empty(), at
	}
	return nil, at
}
