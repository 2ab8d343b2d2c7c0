package parse

import (
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/npillmayer/peggo/rset"
)

// kind tags the variant of a Parser, mirroring the teacher's
// earley.Parser{mode uint} tagged-union style in preference to a deep
// interface hierarchy.
type kind uint8

const (
	kText kind = iota
	kIgnoreCase
	kCharRange
	kRegExp
	kWhitespace
	kRepeat
	kAlternative
	kSeries
	kInterleave
	kLookahead
	kSynonym
	kForward
	kLiteralSet
	kCapture
	kRetrieve
	kPop
	kTrace
)

// flagSet is a bitmask of per-parser properties (spec §3).
type flagSet uint16

const (
	flagLeaf flagSet = 1 << iota
	flagNary
	flagFlow
	flagLookaheadKind
	flagErrorCatching
	flagForward
	flagDisposable
	flagDropContent
	flagNoMemoization
	flagTraversalMarker
)

var nextParserID uint64

// Parser is a node in the grammar graph. It is a tagged union: kind selects
// which of the variant-specific fields below are meaningful, dispatched in
// call.go's dispatch switch.
type Parser struct {
	id   uint64
	kind kind

	name     string // user symbol name; "" if never assigned
	nodeName string // name propagated to produced nodes; defaults to a type tag

	flags flagSet

	children []*Parser

	memo map[int32]memoEntry

	// Text / IgnoreCase
	text      string
	asciiOnly bool

	// CharRange
	runeSet            *rset.RuneSet
	minCount, maxCount int // also used by Repeat; maxCount<0 means unbounded

	// RegExp / Whitespace
	rx   *regexp.Regexp
	wsRx *regexp.Regexp

	// Series / Interleave: mandatory threshold (index of first parser whose
	// failure triggers error-catching; noMandatory means "never")
	mandatory int

	// Interleave
	separator *Parser

	// Lookahead
	positive bool

	// Forward
	forwardBody *Parser

	// error-catching attachment (spec §4.6)
	skipList   []Matcher
	errorList  []ErrorRule
	resumeList []Matcher

	// Capture / Retrieve / Pop
	captureVar string

	// LiteralSet
	litset *literalScanner

	// Trace
	traceLabel string
}

func newParser(k kind) *Parser {
	return &Parser{
		id:        atomic.AddUint64(&nextParserID, 1),
		kind:      k,
		memo:      make(map[int32]memoEntry),
		mandatory: noMandatory,
	}
}

// noMandatory marks a Series/Interleave with no mandatory continuation: any
// child failure is an ordinary PEG failure, never an error-catching trigger.
const noMandatory = 1 << 30

func (p *Parser) isDisposable() bool { return p.flags&flagDisposable != 0 }
func (p *Parser) dropContent() bool  { return p.flags&flagDropContent != 0 }

// Name returns the parser's assigned symbol name, or "" if anonymous.
func (p *Parser) Name() string { return p.name }

// Assign fixes a parser's symbol name (spec §6):
//
//	"HIDE:foo" → disposable, kept as "foo" in error messages
//	"DROP:foo" → disposable and drop_content
//	":foo"     → disposable (already anonymous by convention)
//	"foo"      → an ordinary kept symbol
func Assign(name string, p *Parser) *Parser {
	switch {
	case strings.HasPrefix(name, "HIDE:"):
		p.flags |= flagDisposable
		p.name = strings.TrimPrefix(name, "HIDE:")
		p.nodeName = p.name
	case strings.HasPrefix(name, "DROP:"):
		p.flags |= flagDisposable | flagDropContent
		p.name = strings.TrimPrefix(name, "DROP:")
		p.nodeName = p.name
	case strings.HasPrefix(name, ":"):
		p.flags |= flagDisposable
		p.name = name
		p.nodeName = name
	default:
		p.name = name
		p.nodeName = name
	}
	return p
}

// ---- leaf constructors (spec §4.2) ----

// NewText matches a literal string exactly.
func NewText(s string) *Parser {
	p := newParser(kText)
	p.flags |= flagLeaf
	p.text = s
	p.nodeName = ":Text"
	return p
}

// NewIgnoreCase matches s case-insensitively. ASCII-only literals use a fast
// byte-wise tolower comparison; any non-ASCII rune switches to Unicode
// case-folding via unicode.ToLower.
func NewIgnoreCase(s string) *Parser {
	p := newParser(kIgnoreCase)
	p.flags |= flagLeaf
	p.text = strings.ToLower(s)
	p.asciiOnly = isASCII(s)
	p.nodeName = ":IgnoreCase"
	return p
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// NewCharRange matches a greedy run of [min,max] runes from set. max<0
// means unbounded.
func NewCharRange(set *rset.RuneSet, min, max int) *Parser {
	p := newParser(kCharRange)
	p.flags |= flagLeaf
	p.runeSet = set
	p.minCount, p.maxCount = min, max
	p.nodeName = ":CharRange"
	return p
}

// NewRegExp matches rx anchored at the current location (sticky, per
// text.Slice.MatchRegexpAt).
func NewRegExp(rx *regexp.Regexp) *Parser {
	p := newParser(kRegExp)
	p.flags |= flagLeaf
	p.rx = rx
	p.nodeName = ":RegExp"
	return p
}

// NewWhitespace matches runs of whitespace interleaved with an optional
// grammar-wide comment pattern. Constructing a second Whitespace parser with
// a different non-empty comment regexp in the same grammar graph is a bind
// error (spec §4.2), checked in Bind.
func NewWhitespace(ws *regexp.Regexp, comment *regexp.Regexp) *Parser {
	p := newParser(kWhitespace)
	p.flags |= flagLeaf | flagDisposable
	p.wsRx = ws
	p.rx = comment // stashed here for Bind to discover; copied to ctx.commentRx
	p.nodeName = ":Whitespace"
	return p
}

// keepComments reports whether this Whitespace parser preserves matched
// comments as comment__ leaves rather than discarding them.
func (p *Parser) keepComments() bool { return p.flags&flagFlow != 0 }

// WithComments marks a Whitespace parser to retain matched comments as
// comment__ leaf children instead of folding them away.
func (p *Parser) WithComments() *Parser {
	p.flags |= flagFlow
	return p
}

// ---- combinators (spec §4.3) ----

// Repeat matches child between min and max times (max<0: unbounded).
func Repeat(child *Parser, min, max int) *Parser {
	p := newParser(kRepeat)
	p.flags |= flagNary
	p.children = []*Parser{child}
	p.minCount, p.maxCount = min, max
	p.nodeName = ":Repeat"
	return p
}

// Option matches child zero or one times.
func Option(child *Parser) *Parser { return tagRepeat(Repeat(child, 0, 1), ":Option") }

// ZeroOrMore matches child zero or more times.
func ZeroOrMore(child *Parser) *Parser { return tagRepeat(Repeat(child, 0, -1), ":ZeroOrMore") }

// OneOrMore matches child one or more times.
func OneOrMore(child *Parser) *Parser { return tagRepeat(Repeat(child, 1, -1), ":OneOrMore") }

func tagRepeat(p *Parser, name string) *Parser {
	p.nodeName = name
	return p
}

// Or builds a PEG-ordered Alternative. If the leftmost operand is itself an
// unnamed Alternative, its children are merged in rather than nested, so
// Or(Or(a,b),c) behaves the same as Or(a,b,c) and produces one flat node.
func Or(ps ...*Parser) *Parser {
	p := newParser(kAlternative)
	p.flags |= flagNary
	p.nodeName = ":Alternative"
	for _, child := range ps {
		if child.kind == kAlternative && child.name == "" && len(p.children) == 0 {
			p.children = append(p.children, child.children...)
			continue
		}
		p.children = append(p.children, child)
	}
	return p
}

// Seq builds an ordered Series. Mandatory(m) marks ps[m:] as mandatory: once
// ps[0..m) have matched, a later child's failure raises a
// mandatory-continuation error instead of an ordinary PEG failure. If the
// leftmost operand is itself an unnamed Series with no mandatory marker of
// its own, its children are merged in.
func Seq(ps ...*Parser) *Parser {
	p := newParser(kSeries)
	p.flags |= flagNary
	p.nodeName = ":Series"
	p.mandatory = noMandatory
	for _, child := range ps {
		if child.kind == kSeries && child.name == "" && child.mandatory == noMandatory && len(p.children) == 0 {
			p.children = append(p.children, child.children...)
			continue
		}
		p.children = append(p.children, child)
	}
	return p
}

// Mandatory marks index m of a Series as the first mandatory child (spec
// §4.3, §4.6): a failure at or after position m raises a
// mandatory-continuation error rather than backtracking. m is clamped to
// [0,len(children)].
func Mandatory(p *Parser, m int) *Parser {
	if m < 0 {
		m = 0
	}
	if m > len(p.children) {
		m = len(p.children)
	}
	p.mandatory = m
	p.flags |= flagErrorCatching
	return p
}

// NewInterleave matches ps in any order, each exactly once, optionally
// separated by sep (nil for none). mandatory mirrors Seq's Mandatory
// semantics against how many of ps have matched so far.
func NewInterleave(sep *Parser, mandatory int, ps ...*Parser) *Parser {
	p := newParser(kInterleave)
	p.flags |= flagNary
	p.children = ps
	p.separator = sep
	p.mandatory = mandatory
	if mandatory < len(ps) {
		p.flags |= flagErrorCatching
	}
	p.nodeName = ":Interleave"
	return p
}

// Lookahead builds a zero-width predicate: Pos succeeds (without consuming)
// iff child matches; Neg succeeds iff child fails.
func Lookahead(child *Parser, positive bool) *Parser {
	p := newParser(kLookahead)
	p.flags |= flagNary | flagLookaheadKind | flagDisposable
	p.children = []*Parser{child}
	p.positive = positive
	p.nodeName = ":Lookahead"
	return p
}

// Pos is positive lookahead: &child.
func Pos(child *Parser) *Parser { return Lookahead(child, true) }

// Neg is negative lookahead: !child.
func Neg(child *Parser) *Parser { return Lookahead(child, false) }

// Synonym gives child an additional name without cloning its subtree or
// applying reduction: the result returned by child is passed through
// unchanged (spec §4.3).
func Synonym(child *Parser) *Parser {
	p := newParser(kSynonym)
	p.flags |= flagNary
	p.children = []*Parser{child}
	return p
}

// Forward declares a placeholder parser to be resolved later with Set,
// enabling cyclic (including left-recursive) grammar graphs (spec §4.5).
func Forward() *Parser {
	p := newParser(kForward)
	p.flags |= flagForward
	p.nodeName = ":Forward"
	return p
}

// Set resolves a Forward's body. Calling Set twice is a programming error
// and panics with a fatality.
func (p *Parser) Set(body *Parser) *Parser {
	if p.kind != kForward {
		panicFatal("Set called on a non-Forward parser")
	}
	if p.forwardBody != nil {
		panicFatal("Forward parser's body already set")
	}
	p.forwardBody = body
	return p
}
