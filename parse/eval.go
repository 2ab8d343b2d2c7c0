package parse

import (
	"fmt"
	"regexp"

	"github.com/npillmayer/peggo/cst"
	"github.com/npillmayer/peggo/perr"
	"github.com/npillmayer/peggo/text"
)

// Bind validates a grammar graph rooted at root and prepares a fresh
// Context for evaluating it: every Forward must have been Set, and at most
// one distinct comment pattern may be configured across all Whitespace
// parsers reachable from root (spec §4.2, §5).
func Bind(root *Parser) (*Context, error) {
	ctx := newContext(nil, root)

	seen := make(map[uint64]bool)
	var commentRx *regexp.Regexp
	var bindErr error

	var walk func(p *Parser)
	walk = func(p *Parser) {
		if p == nil || bindErr != nil || seen[p.id] {
			return
		}
		seen[p.id] = true

		if p.kind == kForward && p.forwardBody == nil {
			bindErr = fmt.Errorf("parse: unresolved Forward parser %q", p.name)
			return
		}
		if p.kind == kWhitespace && p.rx != nil {
			switch {
			case commentRx == nil:
				commentRx = p.rx
			case commentRx.String() != p.rx.String():
				bindErr = fmt.Errorf("parse: conflicting comment patterns in one grammar: %q vs %q",
					commentRx.String(), p.rx.String())
				return
			}
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
	if bindErr != nil {
		return nil, bindErr
	}
	ctx.commentRx = commentRx
	return ctx, nil
}

// Parse binds root, then evaluates it against doc starting at start. It is
// a convenience wrapper around Bind + Context.Parse for one-shot use; a
// caller evaluating the same grammar repeatedly should Bind once and reuse
// the Context.
func Parse(root *Parser, doc *text.Document, start int32) (*cst.Node, []*perr.Error) {
	ctx, err := Bind(root)
	if err != nil {
		return nil, []*perr.Error{perr.NewFatal(err.Error())}
	}
	return ctx.Parse(doc, start)
}

// Parse evaluates ctx's bound grammar against doc starting at start,
// returning the resulting parse tree (nil on outright failure) and the
// accumulated diagnostics in the order they were detected (not sorted by
// position). If the root parser returned a node but stopped short of the
// document's end, a PARSER_STOPPED_BEFORE_END diagnostic at the root's end
// offset is appended (spec §5, §8).
func (ctx *Context) Parse(doc *text.Document, start int32) (*cst.Node, []*perr.Error) {
	ctx.doc = doc
	ctx.cleanUp()
	tracer().Debugf("parse: starting at offset %d, %d bytes total", start, doc.Len())

	node, next := ctx.root.Call(ctx, start)
	tracer().Debugf("parse: root parser returned at offset %d (matched=%v)", next, node != nil)
	if node != nil && next < doc.Len() {
		line, col := doc.LineColumn(next)
		ctx.addError(perr.New(perr.CodeParserStoppedBeforeEnd, "parser stopped before end of input", next).
			WithLineColumn(line, col))
	}
	ctx.clearParserMemos()
	return node, ctx.errors
}

// Errors returns the diagnostics accumulated by the most recent Parse call.
func (ctx *Context) Errors() []*perr.Error { return ctx.errors }
