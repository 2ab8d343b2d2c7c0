package text

import (
	"regexp"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'peggo.text'.
func tracer() tracing.Trace {
	return tracing.Select("peggo.text")
}

// Document is an immutable byte sequence, interpreted as UTF-8. Operations
// address it by byte offset (int32), as grammars rarely exceed a few
// hundred megabytes and int32 keeps Slice small.
type Document struct {
	buf []byte
}

// NewDocument wraps buf as an immutable Document. The caller must not
// mutate buf afterwards.
func NewDocument(buf []byte) *Document {
	tracer().Debugf("text: new document, %d bytes", len(buf))
	return &Document{buf: buf}
}

// NewDocumentString is a convenience wrapper around NewDocument.
func NewDocumentString(s string) *Document {
	return NewDocument([]byte(s))
}

// Len returns the document length in bytes.
func (d *Document) Len() int32 {
	if d == nil {
		return 0
	}
	return int32(len(d.buf))
}

// Bytes returns the raw backing buffer. Callers must treat it as read-only.
func (d *Document) Bytes() []byte {
	if d == nil {
		return nil
	}
	return d.buf
}

// Slice returns the Slice view [start, stop) of d. Out-of-range bounds are
// clamped rather than panicking, since parsers routinely probe just past
// the end of input.
func (d *Document) Slice(start, stop int32) Slice {
	n := d.Len()
	if start < 0 {
		start = 0
	}
	if stop > n {
		stop = n
	}
	if stop < start {
		stop = start
	}
	return Slice{doc: d, start: start, stop: stop}
}

// Full returns a Slice spanning the entire document.
func (d *Document) Full() Slice {
	return d.Slice(0, d.Len())
}

// RuneAt decodes a single UTF-8 rune starting at the given byte offset. It
// returns utf8.RuneError and size 0 if offset is out of range.
func (d *Document) RuneAt(offset int32) (r rune, size int32) {
	if d == nil || offset < 0 || offset >= d.Len() {
		return utf8.RuneError, 0
	}
	rr, sz := utf8.DecodeRune(d.buf[offset:])
	return rr, int32(sz)
}

// LineColumn computes the 1-based line and column (in runes from line
// start) of a byte offset. This is O(offset) and is meant for error
// reporting, not for hot-path use.
func (d *Document) LineColumn(offset int32) (line, column int) {
	if d == nil {
		return 1, 1
	}
	if offset > d.Len() {
		offset = d.Len()
	}
	line = 1
	lineStart := int32(0)
	for i := int32(0); i < offset; {
		r, sz := d.RuneAt(i)
		if sz == 0 {
			break
		}
		if r == '\n' {
			line++
			lineStart = i + sz
		}
		i += sz
	}
	column = 1
	for i := lineStart; i < offset; {
		_, sz := d.RuneAt(i)
		if sz == 0 {
			break
		}
		column++
		i += sz
	}
	return line, column
}

// Slice is a zero-copy view (buffer, start, stop) with inclusive-exclusive
// byte-offset semantics. The zero value is the empty slice of a nil
// document and is safe to use.
type Slice struct {
	doc        *Document
	start, stop int32
}

// NewSlice builds a slice directly; most callers should prefer
// Document.Slice.
func NewSlice(doc *Document, start, stop int32) Slice {
	return doc.Slice(start, stop)
}

// Document returns the slice's owning document.
func (s Slice) Document() *Document { return s.doc }

// Start returns the inclusive start offset.
func (s Slice) Start() int32 { return s.start }

// Stop returns the exclusive stop offset.
func (s Slice) Stop() int32 { return s.stop }

// Len returns the slice length in bytes.
func (s Slice) Len() int32 { return s.stop - s.start }

// IsEmpty returns true for a zero-length slice.
func (s Slice) IsEmpty() bool { return s.stop <= s.start }

// String materializes the slice's text. This is the only operation that
// allocates/copies.
func (s Slice) String() string {
	if s.doc == nil || s.IsEmpty() {
		return ""
	}
	return string(s.doc.buf[s.start:s.stop])
}

// Equal compares two slices by content, not by (doc, start, stop) identity.
func (s Slice) Equal(other Slice) bool {
	if s.Len() != other.Len() {
		return false
	}
	return s.String() == other.String()
}

// HasPrefixString reports whether the document text at s's start matches
// lit exactly, without requiring s to already be bounded to lit's length.
func (s Slice) HasPrefixString(lit string) bool {
	if s.doc == nil {
		return lit == ""
	}
	end := s.start + int32(len(lit))
	if end > s.doc.Len() {
		return false
	}
	return string(s.doc.buf[s.start:end]) == lit
}

// MatchRegexpAt performs a sticky (anchored-at-offset) match of rx against
// the document starting exactly at s.Start(). It returns the exclusive end
// offset of the match and true on success; an empty match is legal and
// returns ok=true with end==s.Start().
func (s Slice) MatchRegexpAt(rx *regexp.Regexp) (end int32, ok bool) {
	if s.doc == nil {
		return s.start, rx.MatchString("")
	}
	loc := rx.FindIndex(s.doc.buf[s.start:])
	if loc == nil || loc[0] != 0 {
		return s.start, false
	}
	return s.start + int32(loc[1]), true
}

// FindRegexp searches for the first match of rx anywhere at or after
// s.Start(), without anchoring. Used by the error-catching reentry search
// (spec §4.6) to locate skip/resume points. Returns the match's start and
// end offsets.
func (s Slice) FindRegexp(rx *regexp.Regexp) (matchStart, matchEnd int32, ok bool) {
	if s.doc == nil {
		return 0, 0, false
	}
	loc := rx.FindIndex(s.doc.buf[s.start:])
	if loc == nil {
		return 0, 0, false
	}
	return s.start + int32(loc[0]), s.start + int32(loc[1]), true
}
