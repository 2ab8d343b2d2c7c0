package parse

import "github.com/npillmayer/peggo/cst"

// Reducer implements early tree-reduction (spec §4.4): the policy applied
// each time a combinator is about to return a node, before that node is
// ever handed to a parent. Item handles the single-child case (called by
// Alternative and Capture; a Series/Repeat that ends up with exactly one
// surviving child applies the same rule from within Seq); Seq handles the
// general multi-child case, including Option/ZeroOrMore/OneOrMore, which are
// Repeats. Lookahead returns :EMPTY directly without calling either.
type Reducer interface {
	Item(p *Parser, child *cst.Node) *cst.Node
	Seq(p *Parser, children []*cst.Node) *cst.Node
}

// ReduceFlatten is the default reduction policy (spec §4.4): anonymous
// branch children are spliced into their parent, empty anonymous children
// vanish, and a lone anonymous child is adopted under its parent's name
// rather than wrapped in an extra layer (a lone named child is wrapped; a
// disposable parent passes its lone child through).
var ReduceFlatten Reducer = flattenReducer{}

// ReduceMergeTreetops additionally concatenates maximal runs of leaf-only
// anonymous siblings into a single leaf, trading some tree granularity for
// fewer, denser nodes (spec §4.4, Open Questions: resolved to merge only
// maximal runs of leaf-only anonymous siblings, never mixing in a branch
// sibling, so a Series like `ws ~ ident ~ ws` never merges across ident).
var ReduceMergeTreetops Reducer = mergeTreetopsReducer{}

type flattenReducer struct{}

func (flattenReducer) Item(p *Parser, child *cst.Node) *cst.Node {
	return reduceItem(p, child)
}

func (flattenReducer) Seq(p *Parser, children []*cst.Node) *cst.Node {
	return finishSeq(p, spliceAnonymous(children))
}

type mergeTreetopsReducer struct{}

func (mergeTreetopsReducer) Item(p *Parser, child *cst.Node) *cst.Node {
	return reduceItem(p, child)
}

func (mergeTreetopsReducer) Seq(p *Parser, children []*cst.Node) *cst.Node {
	return finishSeq(p, mergeAnonymousLeafRuns(spliceAnonymous(children)))
}

// reduceItem implements returnItemFlatten (spec §4.4): if the parent drops
// content, the result is :EMPTY; if the parent is disposable (but keeps
// content), the child passes through unchanged; an anonymous child is
// cloned under the parent's node_name rather than wrapped; otherwise the
// child is wrapped in a new named branch.
func reduceItem(p *Parser, child *cst.Node) *cst.Node {
	if p.dropContent() {
		return cst.Empty()
	}
	if child == nil {
		if p.isDisposable() {
			return cst.Empty()
		}
		return cst.NewBranch(p.nodeName, nil)
	}
	if p.isDisposable() {
		return child
	}
	if child.IsAnonymous() {
		return child.Rename(p.nodeName)
	}
	return cst.NewBranch(p.nodeName, []*cst.Node{child})
}

// spliceAnonymous drops empty anonymous children and splices an anonymous
// branch child's own children directly into the result, implementing the
// "splice anonymous non-leaf children's grandchildren into the parent"
// clause of returnSeqFlatten.
func spliceAnonymous(children []*cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range children {
		switch {
		case c.IsEmpty() && c.IsAnonymous():
			continue
		case c.IsAnonymous() && c.IsBranch():
			out = append(out, c.Children()...)
		default:
			out = append(out, c)
		}
	}
	return out
}

// mergeAnonymousLeafRuns concatenates maximal runs of consecutive anonymous
// leaf siblings into a single leaf node, leaving named nodes and branches
// untouched (spec §4.4 Open Questions).
func mergeAnonymousLeafRuns(children []*cst.Node) []*cst.Node {
	var out []*cst.Node
	i := 0
	for i < len(children) {
		c := children[i]
		if !c.IsAnonymous() || !c.IsLeaf() {
			out = append(out, c)
			i++
			continue
		}
		j := i + 1
		for j < len(children) && children[j].IsAnonymous() && children[j].IsLeaf() {
			j++
		}
		if j == i+1 {
			out = append(out, c)
		} else {
			out = append(out, mergeLeaves(children[i:j]))
		}
		i = j
	}
	return out
}

// mergeLeaves concatenates a contiguous run of leaves spanning the same
// document into one leaf covering their combined extent.
func mergeLeaves(run []*cst.Node) *cst.Node {
	first, last := run[0], run[len(run)-1]
	doc := first.Text().Document()
	span := doc.Slice(first.Text().Start(), last.Text().Stop())
	return cst.NewLeaf(first.Name(), span)
}

// finishSeq implements the tail of returnSeqFlatten/returnSeqMergeTreetops
// common to both policies: zero children collapse to :EMPTY (if disposable)
// or an empty named node; exactly one child delegates to the Item rule;
// otherwise the spliced/merged run is wrapped under the parent's name.
func finishSeq(p *Parser, children []*cst.Node) *cst.Node {
	if p.dropContent() {
		return cst.Empty()
	}
	switch len(children) {
	case 0:
		if p.isDisposable() {
			return cst.Empty()
		}
		return cst.NewBranch(p.nodeName, nil)
	case 1:
		return reduceItem(p, children[0])
	default:
		return cst.NewBranch(p.nodeName, children)
	}
}
