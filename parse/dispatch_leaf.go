package parse

import (
	"unicode"

	"github.com/npillmayer/peggo/cst"
)

func (p *Parser) dispatchText(ctx *Context, at int32) (*cst.Node, int32) {
	rest := ctx.doc.Slice(at, ctx.doc.Len())
	if !rest.HasPrefixString(p.text) {
		return nil, at
	}
	end := at + int32(len(p.text))
	if p.dropContent() {
		return cst.Empty(), end
	}
	return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, end)), end
}

func (p *Parser) dispatchIgnoreCase(ctx *Context, at int32) (*cst.Node, int32) {
	if p.asciiOnly {
		end := at + int32(len(p.text))
		if end > ctx.doc.Len() {
			return nil, at
		}
		if !equalFoldASCII(ctx.doc.Bytes()[at:end], p.text) {
			return nil, at
		}
		if p.dropContent() {
			return cst.Empty(), end
		}
		return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, end)), end
	}
	cursor := at
	for _, want := range p.text {
		r, sz := ctx.doc.RuneAt(cursor)
		if sz == 0 || unicode.ToLower(r) != want {
			return nil, at
		}
		cursor += sz
	}
	if p.dropContent() {
		return cst.Empty(), cursor
	}
	return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, cursor)), cursor
}

func equalFoldASCII(raw []byte, lower string) bool {
	if len(raw) != len(lower) {
		return false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lower[i] {
			return false
		}
	}
	return true
}

func (p *Parser) dispatchCharRange(ctx *Context, at int32) (*cst.Node, int32) {
	cursor := at
	count := 0
	for p.maxCount < 0 || count < p.maxCount {
		r, sz := ctx.doc.RuneAt(cursor)
		if sz == 0 || !p.runeSet.Contains(r) {
			break
		}
		cursor += sz
		count++
	}
	if count < p.minCount {
		return nil, at
	}
	if p.dropContent() {
		return cst.Empty(), cursor
	}
	return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, cursor)), cursor
}

func (p *Parser) dispatchRegExp(ctx *Context, at int32) (*cst.Node, int32) {
	end, ok := ctx.doc.Slice(at, ctx.doc.Len()).MatchRegexpAt(p.rx)
	if !ok {
		return nil, at
	}
	if p.dropContent() {
		return cst.Empty(), end
	}
	if end == at && p.isDisposable() {
		return cst.Empty(), end
	}
	return cst.NewLeaf(p.nodeName, ctx.doc.Slice(at, end)), end
}

// dispatchWhitespace matches `ws (comment ws)*`, where ws is p.wsRx and
// comment is the grammar-wide ctx.commentRx (nil if the grammar has none).
// Matched comments are discarded unless the parser was built WithComments,
// in which case they survive as comment__ leaves (spec §4.2).
func (p *Parser) dispatchWhitespace(ctx *Context, at int32) (*cst.Node, int32) {
	cursor := at
	if end, ok := ctx.doc.Slice(cursor, ctx.doc.Len()).MatchRegexpAt(p.wsRx); ok {
		cursor = end
	}
	var comments []*cst.Node
	for ctx.commentRx != nil {
		cEnd, ok := ctx.doc.Slice(cursor, ctx.doc.Len()).MatchRegexpAt(ctx.commentRx)
		if !ok || cEnd == cursor {
			break
		}
		if p.keepComments() {
			comments = append(comments, cst.NewLeaf(cst.NameComment, ctx.doc.Slice(cursor, cEnd)))
		}
		cursor = cEnd
		if end, ok := ctx.doc.Slice(cursor, ctx.doc.Len()).MatchRegexpAt(p.wsRx); ok {
			cursor = end
		}
	}
	if len(comments) > 0 {
		return cst.NewBranch(p.nodeName, comments), cursor
	}
	return cst.Empty(), cursor
}
