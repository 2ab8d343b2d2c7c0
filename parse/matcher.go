package parse

import (
	"regexp"

	"github.com/npillmayer/peggo/text"
)

// matcherKind tags a Matcher's variant.
type matcherKind uint8

const (
	matchRegex matcherKind = iota
	matchString
	matchProcedure
	matchParser
	matchAny
)

// Matcher locates a position in the document, used by the skip/resume
// reentry search (spec §4.6) attached via SkipUntil/Resume. It is a tagged
// union rather than an interface, matching the Parser variant style.
type Matcher struct {
	kind matcherKind
	rx   *regexp.Regexp
	lit  string
	proc func(doc *text.Document, at int32) (int32, bool)
	p    *Parser
}

// AtRegexp is a locator Matcher: it finds the next occurrence of rx at or
// after the search origin (spec §6, "at(regex|string|proc)").
func AtRegexp(rx *regexp.Regexp) Matcher { return Matcher{kind: matchRegex, rx: rx} }

// AtString is a locator Matcher for a literal substring.
func AtString(s string) Matcher { return Matcher{kind: matchString, lit: s} }

// AtFunc is a locator Matcher built from a caller-supplied procedure.
func AtFunc(f func(doc *text.Document, at int32) (int32, bool)) Matcher {
	return Matcher{kind: matchProcedure, proc: f}
}

// After is a consumer Matcher: it probes forward for the next position at
// which p succeeds and resumes right after that match (spec §6,
// "after(parser)").
func After(p *Parser) Matcher { return Matcher{kind: matchParser, p: p} }

// Passage is a consumer Matcher equivalent to After: it locates the next
// point from which p can successfully consume input and resumes past it
// (spec §6, "passage(parser)"). The spec does not distinguish After from
// Passage beyond naming, so both share one implementation.
func Passage(p *Parser) Matcher { return Matcher{kind: matchParser, p: p} }

// AnyPassage is the sentinel matcher that always "locates" immediately at
// the search origin — i.e. it contributes no skip distance of its own. It
// lets a grammar attach Errors/skip-list entries without requiring a real
// reentry search when no better locator applies (spec §6, "any_passage
// sentinel").
var AnyPassage = Matcher{kind: matchAny}

// locate finds m's next occurrence in doc at or after origin, bounded by
// window bytes of search. It returns the matcher's END offset (the position
// at which parsing should resume), since that is always what the
// error-catching protocol needs.
func (m Matcher) locate(ctx *Context, origin int32) (pos int32, ok bool) {
	limit := origin + ctx.reentryWindow
	if limit > ctx.doc.Len() {
		limit = ctx.doc.Len()
	}
	switch m.kind {
	case matchRegex:
		s := ctx.doc.Slice(origin, limit)
		_, end, found := s.FindRegexp(m.rx)
		if !found || end > limit {
			return 0, false
		}
		return end, true
	case matchString:
		buf := ctx.doc.Bytes()
		for i := origin; i+int32(len(m.lit)) <= limit; i++ {
			if string(buf[i:i+int32(len(m.lit))]) == m.lit {
				return i + int32(len(m.lit)), true
			}
		}
		return 0, false
	case matchProcedure:
		pos, found := m.proc(ctx.doc, origin)
		if !found || pos > limit {
			return 0, false
		}
		return pos, true
	case matchParser:
		for i := origin; i <= limit; i++ {
			node, next := m.p.Call(ctx, i)
			if node != nil {
				return next, true
			}
		}
		return 0, false
	case matchAny:
		return origin, true
	}
	return 0, false
}

// locateAny tries every matcher and returns the closest (leftmost) hit; list
// order only breaks ties between equal positions, the earlier matcher
// winning (spec §4.6).
func locateAny(ctx *Context, ms []Matcher, origin int32) (int32, bool) {
	best := int32(-1)
	found := false
	for _, m := range ms {
		if pos, ok := m.locate(ctx, origin); ok {
			if !found || pos < best {
				best, found = pos, true
			}
		}
	}
	return best, found
}
