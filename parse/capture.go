package parse

import "github.com/npillmayer/peggo/cst"

// Capture/Retrieve/Pop implement a single named-variable, context-sensitive
// extension to the otherwise context-free algebra (spec §4.7 — kept
// intentionally skeletal per the variables map, one named slot at a time,
// with its write undone through the rollback stack on backtracking).
type capturedVars struct {
	vars map[string]cst.Node
}

func contextVars(ctx *Context) *capturedVars {
	if ctx.vars == nil {
		ctx.vars = &capturedVars{vars: make(map[string]cst.Node)}
	}
	return ctx.vars
}

// NewCapture matches child and, on success, stores its covered text under
// name for a later Retrieve/Pop. The store is undone via the rollback stack
// if the enclosing parser ultimately backtracks past this location.
func NewCapture(name string, child *Parser) *Parser {
	p := newParser(kCapture)
	p.flags |= flagNary
	p.children = []*Parser{child}
	p.captureVar = name
	p.nodeName = ":Capture"
	return p
}

// NewRetrieve matches the text previously stored under name literally,
// without consuming the capture (spec §4.7).
func NewRetrieve(name string) *Parser {
	p := newParser(kRetrieve)
	p.captureVar = name
	p.nodeName = ":Retrieve"
	return p
}

// NewPop behaves like NewRetrieve but additionally removes the captured
// value, undone (restored) by the rollback stack on backtracking.
func NewPop(name string) *Parser {
	p := newParser(kPop)
	p.captureVar = name
	p.nodeName = ":Pop"
	return p
}

func (p *Parser) dispatchCapture(ctx *Context, at int32) (*cst.Node, int32) {
	node, next := p.children[0].Call(ctx, at)
	if node == nil {
		return nil, at
	}
	vars := contextVars(ctx)
	prev, had := vars.vars[p.captureVar]
	vars.vars[p.captureVar] = *node
	ctx.pushRollback(at, func() {
		if had {
			vars.vars[p.captureVar] = prev
		} else {
			delete(vars.vars, p.captureVar)
		}
	})
	return ctx.reducer.Item(p, node), next
}

func (p *Parser) dispatchRetrieve(ctx *Context, at int32) (*cst.Node, int32) {
	vars := contextVars(ctx)
	val, ok := vars.vars[p.captureVar]
	if !ok {
		return nil, at
	}
	lit := val.String()
	rest := ctx.doc.Slice(at, ctx.doc.Len())
	if !rest.HasPrefixString(lit) {
		return nil, at
	}
	end := at + int32(len(lit))
	return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, end)), end
}

func (p *Parser) dispatchPop(ctx *Context, at int32) (*cst.Node, int32) {
	vars := contextVars(ctx)
	val, ok := vars.vars[p.captureVar]
	if !ok {
		return nil, at
	}
	lit := val.String()
	rest := ctx.doc.Slice(at, ctx.doc.Len())
	if !rest.HasPrefixString(lit) {
		return nil, at
	}
	end := at + int32(len(lit))
	delete(vars.vars, p.captureVar)
	ctx.pushRollback(at, func() {
		vars.vars[p.captureVar] = val
	})
	return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, end)), end
}
