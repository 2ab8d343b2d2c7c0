package parse

import (
	"fmt"

	"github.com/npillmayer/peggo/cst"
	"github.com/pterm/pterm"
)

// NewTrace wraps child so that every Call into it is recorded as a
// diagnostic event, rendered as a colorized tree dump once a Context has
// EnableTrace set (the ":Trace" parser variant, spec §6). Grounded on the
// teacher's terexlang/trepl pterm.LeveledList tree-rendering technique,
// repurposed from printing s-expressions to printing a parse trace.
func NewTrace(label string, child *Parser) *Parser {
	p := newParser(kTrace)
	p.flags |= flagNary
	p.children = []*Parser{child}
	p.traceLabel = label
	return p
}

// traceEvent is one recorded Call into a traced parser.
type traceEvent struct {
	level   int
	label   string
	at      int32
	matched bool
	next    int32
}

func (p *Parser) dispatchTrace(ctx *Context, at int32) (*cst.Node, int32) {
	if !ctx.trace {
		return p.children[0].Call(ctx, at)
	}
	level := ctx.traceDepth
	ctx.traceDepth++
	node, next := p.children[0].Call(ctx, at)
	ctx.traceDepth--
	ctx.traceEvents = append(ctx.traceEvents, traceEvent{
		level:   level,
		label:   p.traceLabel,
		at:      at,
		matched: node != nil,
		next:    next,
	})
	return node, next
}

// EnableTrace switches ctx into trace-recording mode. Call before Parse, or
// rebind a Context obtained from Bind before evaluating.
func EnableTrace(ctx *Context) {
	ctx.trace = true
}

// DumpTrace renders the events recorded by any :Trace parsers encountered
// during the run as a pterm tree, one line per traced Call, indented by
// nesting depth and marked with its match/no-match outcome.
func DumpTrace(ctx *Context) {
	var ll pterm.LeveledList
	for _, ev := range ctx.traceEvents {
		status := "✓"
		if !ev.matched {
			status = "✗"
		}
		text := fmt.Sprintf("%s %s @%d", status, ev.label, ev.at)
		if ev.matched {
			text += fmt.Sprintf(" → %d", ev.next)
		}
		ll = append(ll, pterm.LeveledListItem{Level: ev.level, Text: text})
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}
