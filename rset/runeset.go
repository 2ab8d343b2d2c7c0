package rset

import (
	"fmt"
	"sync"
	"unicode"

	"golang.org/x/exp/slices"
)

// runeRange is an inclusive rune range [lo, hi].
type runeRange struct {
	lo, hi rune
}

func (r runeRange) contains(c rune) bool { return c >= r.lo && c <= r.hi }

// RuneSet is a sorted, non-overlapping collection of rune ranges. The zero
// value is the empty set.
type RuneSet struct {
	ranges []runeRange

	mu    sync.Mutex
	cache map[rune]bool // membership cache, lazily filled, invalidated on build
}

// New builds a RuneSet from a list of inclusive [lo, hi] pairs.
func New(ranges ...[2]rune) *RuneSet {
	rs := &RuneSet{}
	for _, r := range ranges {
		rs.ranges = append(rs.ranges, runeRange{r[0], r[1]})
	}
	rs.normalize()
	return rs
}

// FromRunes builds a RuneSet containing exactly the given runes (each as a
// singleton range, merged where adjacent).
func FromRunes(rs ...rune) *RuneSet {
	set := &RuneSet{}
	for _, r := range rs {
		set.ranges = append(set.ranges, runeRange{r, r})
	}
	set.normalize()
	return set
}

// Unicode builds a RuneSet from a named Unicode category or script (e.g.
// "L", "Latin", "Nd"), mirroring the \p{Class} notation pigeon-style PEG
// grammars expose to CharRange matchers (spec §4.2).
func Unicode(class string) (*RuneSet, error) {
	tab, ok := unicode.Categories[class]
	if !ok {
		tab, ok = unicode.Scripts[class]
	}
	if !ok {
		tab, ok = unicode.Properties[class]
	}
	if !ok {
		return nil, fmt.Errorf("rset: unknown unicode class %q", class)
	}
	set := &RuneSet{}
	for _, r16 := range tab.R16 {
		for c := rune(r16.Lo); c <= rune(r16.Hi); c += rune(r16.Stride) {
			set.ranges = append(set.ranges, runeRange{c, c})
			if r16.Stride == 0 {
				break
			}
		}
	}
	for _, r32 := range tab.R32 {
		for c := rune(r32.Lo); c <= rune(r32.Hi); c += rune(r32.Stride) {
			set.ranges = append(set.ranges, runeRange{c, c})
			if r32.Stride == 0 {
				break
			}
		}
	}
	set.normalize()
	return set, nil
}

// normalize sorts ranges and merges overlapping/adjacent ones in place; it
// is the one place mutation is allowed, used only during construction.
func (rs *RuneSet) normalize() {
	if len(rs.ranges) == 0 {
		return
	}
	slices.SortFunc(rs.ranges, func(a, b runeRange) int {
		return int(a.lo - b.lo)
	})
	merged := rs.ranges[:1]
	for _, r := range rs.ranges[1:] {
		last := &merged[len(merged)-1]
		if r.lo <= last.hi+1 {
			if r.hi > last.hi {
				last.hi = r.hi
			}
			continue
		}
		merged = append(merged, r)
	}
	rs.ranges = merged
	rs.cache = nil
}

// Contains reports whether c is a member of the set, consulting and filling
// a membership cache (spec §3: "cached membership tests").
func (rs *RuneSet) Contains(c rune) bool {
	if rs == nil {
		return false
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.cache == nil {
		rs.cache = make(map[rune]bool)
	}
	if hit, ok := rs.cache[c]; ok {
		return hit
	}
	lo, hi := 0, len(rs.ranges)-1
	found := false
	for lo <= hi {
		mid := (lo + hi) / 2
		r := rs.ranges[mid]
		switch {
		case r.contains(c):
			found = true
			lo = hi + 1
		case c < r.lo:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	rs.cache[c] = found
	return found
}

// IsEmpty reports whether the set has no members.
func (rs *RuneSet) IsEmpty() bool {
	return rs == nil || len(rs.ranges) == 0
}

// Union returns a new RuneSet containing every rune in rs or other.
func (rs *RuneSet) Union(other *RuneSet) *RuneSet {
	out := &RuneSet{}
	out.ranges = append(out.ranges, rs.allRanges()...)
	out.ranges = append(out.ranges, other.allRanges()...)
	out.normalize()
	return out
}

// Intersect returns a new RuneSet containing runes present in both rs and
// other.
func (rs *RuneSet) Intersect(other *RuneSet) *RuneSet {
	out := &RuneSet{}
	for _, a := range rs.allRanges() {
		for _, b := range other.allRanges() {
			lo := maxRune(a.lo, b.lo)
			hi := minRune(a.hi, b.hi)
			if lo <= hi {
				out.ranges = append(out.ranges, runeRange{lo, hi})
			}
		}
	}
	out.normalize()
	return out
}

// Subtract returns a new RuneSet containing runes in rs that are not in
// other.
func (rs *RuneSet) Subtract(other *RuneSet) *RuneSet {
	out := &RuneSet{}
	for _, a := range rs.allRanges() {
		pieces := []runeRange{a}
		for _, b := range other.allRanges() {
			var next []runeRange
			for _, p := range pieces {
				next = append(next, subtractOne(p, b)...)
			}
			pieces = next
		}
		out.ranges = append(out.ranges, pieces...)
	}
	out.normalize()
	return out
}

// Negate returns the complement of rs with respect to within (or, if
// within is nil, with respect to the full rune space 0..unicode.MaxRune).
func (rs *RuneSet) Negate(within *RuneSet) *RuneSet {
	universe := within
	if universe == nil {
		universe = New([2]rune{0, unicode.MaxRune})
	}
	return universe.Subtract(rs)
}

func (rs *RuneSet) allRanges() []runeRange {
	if rs == nil {
		return nil
	}
	return rs.ranges
}

func subtractOne(a, b runeRange) []runeRange {
	if b.hi < a.lo || b.lo > a.hi {
		return []runeRange{a}
	}
	var out []runeRange
	if b.lo > a.lo {
		out = append(out, runeRange{a.lo, b.lo - 1})
	}
	if b.hi < a.hi {
		out = append(out, runeRange{b.hi + 1, a.hi})
	}
	return out
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}

// String renders the set as a sequence of ranges in ascending order, e.g.
// "[0-9_a-z]".
func (rs *RuneSet) String() string {
	if rs.IsEmpty() {
		return "[]"
	}
	s := "["
	for _, r := range rs.ranges {
		if r.lo == r.hi {
			s += fmt.Sprintf("%c", r.lo)
		} else {
			s += fmt.Sprintf("%c-%c", r.lo, r.hi)
		}
	}
	return s + "]"
}
