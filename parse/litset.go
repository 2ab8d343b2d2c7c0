package parse

import (
	"strings"

	"github.com/npillmayer/peggo/cst"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// literalScanner wraps a compiled lexmachine DFA recognizing a fixed set of
// literal alternatives, used as a fast path for an Alternative built
// entirely out of NewText children (spec §4.2/§4.3 "all-literal
// Alternatives" optimization). Grounded on the teacher's
// lr/scanner/lexmachine.go LMAdapter, repurposed from a standalone
// tokenizer into a single-shot "does one of these literals start here"
// probe.
type literalScanner struct {
	lexer    *lexmachine.Lexer
	literals []string
}

// NewLiteralSet builds a combinator matching the longest of literals that
// occurs at the current location, compiling a DFA once at construction
// rather than trying each literal in sequence at match time.
func NewLiteralSet(literals ...string) *Parser {
	lexer := lexmachine.NewLexer()
	for i, lit := range literals {
		idx := i // pre-1.22 loop-variable capture: bind a fresh copy per iteration
		// Escape each rune as its own backslash-escaped atom, matching the
		// teacher's LMAdapter literal-quoting technique.
		pattern := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lexer.Add([]byte(pattern), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(idx, string(m.Bytes), m), nil
		})
	}
	if err := lexer.Compile(); err != nil {
		panicFatal("NewLiteralSet: DFA compile failed: " + err.Error())
	}
	p := newParser(kLiteralSet)
	p.flags |= flagLeaf
	p.litset = &literalScanner{lexer: lexer, literals: literals}
	p.nodeName = ":LiteralSet"
	return p
}

func (p *Parser) dispatchLiteralSet(ctx *Context, at int32) (*cst.Node, int32) {
	sc, err := p.litset.lexer.Scanner(ctx.doc.Bytes()[at:])
	if err != nil {
		return nil, at
	}
	tok, scanErr, eof := sc.Next()
	if eof || scanErr != nil {
		return nil, at
	}
	token, ok := tok.(*lexmachine.Token)
	if !ok || token.StartColumn != 0 {
		return nil, at
	}
	end := at + int32(len(token.Lexeme))
	if p.dropContent() {
		return cst.Empty(), end
	}
	return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, end)), end
}
