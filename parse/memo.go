package parse

import (
	"github.com/cnf/structhash"
	"github.com/npillmayer/peggo/cst"
)

// memoEntry is a packrat memo cell: the result a Parser produced at a given
// location, and the location it advanced to.
type memoEntry struct {
	node *cst.Node
	next int32
}

// seedKeyData is hashed with structhash to produce the left-recursion seed
// key for a (Forward parser, location) pair (spec §4.5). Using the parser's
// assigned id rather than its address keeps the key plain data, matching
// how the teacher's Earley items hash a (symbol, dot) pair rather than a
// pointer.
type seedKeyData struct {
	ParserID uint64
	At       int32
}

func forwardKey(p *Parser, at int32) string {
	h, err := structhash.Hash(seedKeyData{ParserID: p.id, At: at}, 1)
	if err != nil {
		// seedKeyData is plain data; structhash only fails on unhashable
		// types, so this is unreachable in practice.
		panicFatal("structhash: " + err.Error())
	}
	return h
}
