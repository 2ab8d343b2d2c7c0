package cst

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/peggo/perr"
	"github.com/npillmayer/peggo/text"
)

// Reserved node names (spec §3, §6).
const (
	NameEmpty   = ":EMPTY"
	NameZombie  = "__ZOMBIE"
	NameComment = "comment__"
)

// unassignedPos marks a Node whose source position has not yet been set.
const unassignedPos int32 = -1

// Node is a concrete-syntax-tree node: a name, ordered children XOR a text
// slice (never both), an optional insertion-ordered attribute map and a
// source offset. The zero value is not meaningful; construct with NewLeaf
// or NewBranch.
type Node struct {
	name       string
	children   []*Node
	text       text.Slice
	attributes *linkedhashmap.Map // lazily allocated
	sourcePos  int32
}

// emptyNode is the shared ":EMPTY" sentinel (spec §3: "must not be
// mutated").
var emptyNode = &Node{name: NameEmpty, sourcePos: unassignedPos}

// Empty returns the shared empty-result sentinel node.
func Empty() *Node { return emptyNode }

// NewLeaf constructs a leaf node carrying a text slice.
func NewLeaf(name string, t text.Slice) *Node {
	return &Node{name: name, text: t, sourcePos: unassignedPos}
}

// NewBranch constructs a branch node from ordered children. Passing no
// children produces an empty named node (distinct from the :EMPTY
// sentinel, which is anonymous by construction).
func NewBranch(name string, children []*Node) *Node {
	return &Node{name: name, children: children, sourcePos: unassignedPos}
}

// Zombie wraps a skipped span in a "__ZOMBIE" leaf node, used by the
// error-catching reentry protocol (spec §4.6).
func Zombie(s text.Slice) *Node {
	return NewLeaf(NameZombie, s)
}

func (n *Node) assertMutable() {
	if n == emptyNode {
		panic(perr.NewFatal("attempt to mutate the shared :EMPTY sentinel node"))
	}
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Rename returns a shallow clone of n under a new name; used by
// returnItemFlatten when an anonymous child is adopted under the parent's
// node_name (spec §4.4).
func (n *Node) Rename(name string) *Node {
	if n == emptyNode || n == nil {
		return n
	}
	clone := *n
	clone.name = name
	return &clone
}

// IsLeaf reports whether n is a leaf (carries text, no children).
func (n *Node) IsLeaf() bool { return n != nil && n.children == nil }

// IsBranch reports whether n is a branch (carries children).
func (n *Node) IsBranch() bool { return n != nil && n.children != nil }

// IsEmpty reports whether n has neither children nor text, i.e. it is the
// :EMPTY sentinel or an equivalent empty result (spec §3).
func (n *Node) IsEmpty() bool {
	return n == nil || (len(n.children) == 0 && n.text.IsEmpty())
}

// IsAnonymous reports whether n's name marks it disposable/anonymous, i.e.
// begins with ':' (spec §4.4).
func (n *Node) IsAnonymous() bool {
	return n != nil && len(n.name) > 0 && n.name[0] == ':'
}

// Children returns n's children, or nil for a leaf.
func (n *Node) Children() []*Node { return n.children }

// Text returns n's text slice, or the zero Slice for a branch.
func (n *Node) Text() text.Slice { return n.text }

// String renders n's covered text: its own text if a leaf, or the
// concatenation of its children's text if a branch.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.text.String()
	}
	s := ""
	for _, c := range n.children {
		s += c.String()
	}
	return s
}

// SourcePos returns n's byte offset into the document, or unassignedPos
// (-1) if not yet assigned.
func (n *Node) SourcePos() int32 {
	if n == nil {
		return unassignedPos
	}
	return n.sourcePos
}

// Len returns the byte length n spans: its text length if a leaf, or the
// sum of its children's lengths if a branch.
func (n *Node) Len() int32 {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return n.text.Len()
	}
	var total int32
	for _, c := range n.children {
		total += c.Len()
	}
	return total
}

// AssignSourcePos implements spec invariant (b): assigning p to a branch
// node recursively assigns p, p+len0, p+len0+len1, … to its children. It is
// idempotent for the same value, and a fatal error if n already carries a
// different non-negative position (the reassignment guard).
func (n *Node) AssignSourcePos(p int32) {
	if n == nil || n == emptyNode {
		return
	}
	if n.sourcePos != unassignedPos && n.sourcePos != p {
		panic(perr.NewFatal("source position re-assigned to a different value"))
	}
	n.sourcePos = p
	if n.IsBranch() {
		cursor := p
		for _, c := range n.children {
			c.AssignSourcePos(cursor)
			cursor += c.Len()
		}
	}
}

// SetAttribute sets a named attribute, allocating the attribute map on
// first use. Insertion order is preserved (spec §3).
func (n *Node) SetAttribute(key, value string) {
	n.assertMutable()
	if n.attributes == nil {
		n.attributes = linkedhashmap.New()
	}
	n.attributes.Put(key, value)
}

// Attribute retrieves a named attribute.
func (n *Node) Attribute(key string) (string, bool) {
	if n == nil || n.attributes == nil {
		return "", false
	}
	v, found := n.attributes.Get(key)
	if !found {
		return "", false
	}
	return v.(string), true
}

// AttributeKeys returns attribute keys in insertion order, or nil if no
// attributes have been set.
func (n *Node) AttributeKeys() []string {
	if n == nil || n.attributes == nil {
		return nil
	}
	keys := n.attributes.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}
