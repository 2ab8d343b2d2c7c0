package cst

import (
	"bytes"
	"fmt"
)

// SExprDefaultWrap is the default wrap width (in runes) for SExpr output,
// matching the teacher's terex.(*GCons) pretty-printer conventions.
const SExprDefaultWrap = 60

// SExpr renders n in canonical S-expression form:
//
//	(name [`attr "val"]… child…)
//
// wrapped at wrapWidth runes (a value <= 0 selects SExprDefaultWrap). This is grounded on
// terex.go's recursive-descent GCons printer, adapted from cons-cells to
// Node's branch/leaf shape.
func (n *Node) SExpr(wrapWidth int) string {
	if wrapWidth <= 0 {
		wrapWidth = SExprDefaultWrap
	}
	var buf bytes.Buffer
	n.writeSExpr(&buf, 0, wrapWidth)
	return buf.String()
}

func (n *Node) writeSExpr(buf *bytes.Buffer, indent, wrap int) {
	if n == nil {
		buf.WriteString("()")
		return
	}
	buf.WriteByte('(')
	buf.WriteString(n.name)
	for _, k := range n.AttributeKeys() {
		v, _ := n.Attribute(k)
		fmt.Fprintf(buf, " `%s %q", k, v)
	}
	if n.IsLeaf() {
		if !n.text.IsEmpty() {
			fmt.Fprintf(buf, " %q", n.text.String())
		}
	} else {
		lineLen := buf.Len()
		for _, c := range n.children {
			before := buf.Len()
			buf.WriteByte(' ')
			c.writeSExpr(buf, indent+1, wrap)
			if buf.Len()-lineLen > wrap {
				buf.Truncate(before)
				buf.WriteByte('\n')
				buf.WriteString(spaces(indent + 1))
				c.writeSExpr(buf, indent+1, wrap)
				lineLen = buf.Len()
			}
		}
	}
	buf.WriteByte(')')
}

func spaces(n int) string {
	s := make([]byte, n*2)
	for i := range s {
		s[i] = ' '
	}
	return string(s)
}

// XML renders n in a pseudo-XML form for external tooling (spec §6). Leaf
// nodes are rendered as <name>text</name>; the :EMPTY sentinel and
// __ZOMBIE placeholder serialize with their reserved names, unescaped.
func (n *Node) XML() string {
	var buf bytes.Buffer
	n.writeXML(&buf, 0)
	return buf.String()
}

func (n *Node) writeXML(buf *bytes.Buffer, indent int) {
	if n == nil {
		return
	}
	pad := spaces(indent)
	buf.WriteString(pad)
	buf.WriteByte('<')
	buf.WriteString(xmlTag(n.name))
	for _, k := range n.AttributeKeys() {
		v, _ := n.Attribute(k)
		fmt.Fprintf(buf, " %s=%q", xmlTag(k), v)
	}
	buf.WriteByte('>')
	if n.IsLeaf() {
		buf.WriteString(n.text.String())
	} else {
		buf.WriteByte('\n')
		for _, c := range n.children {
			c.writeXML(buf, indent+1)
			buf.WriteByte('\n')
		}
		buf.WriteString(pad)
	}
	buf.WriteString("</")
	buf.WriteString(xmlTag(n.name))
	buf.WriteByte('>')
}

// xmlTag strips the leading ':' from anonymous/type-tag names; the reserved
// names ":EMPTY" and "__ZOMBIE" pass through unchanged.
func xmlTag(name string) string {
	if name == NameEmpty {
		return name
	}
	if len(name) > 0 && name[0] == ':' {
		return name[1:]
	}
	return name
}
