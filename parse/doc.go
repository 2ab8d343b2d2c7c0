/*
Package parse implements the CORE of the peggo parsing runtime: the parser
algebra (Text, IgnoreCase, CharRange, RegExp, Whitespace, Repeat,
Alternative, Series, Interleave, Lookahead, Synonym, Forward) and their
shared evaluation protocol, packrat memoization with a Warth-style
left-recursion driver, mandatory-continuation error catching with
skip/resume reentry, and early tree reduction.

Parsers are value objects (*Parser) composed algebraically into a possibly
cyclic grammar graph (cycles run through Forward). A graph is bound to a
fresh Context and evaluated against a document with Parse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'peggo.parse'.
func tracer() tracing.Trace {
	return tracing.Select("peggo.parse")
}
