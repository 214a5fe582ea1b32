package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is a single XML attribute with its name as written in the source,
// prefix included (e.g. "xml:space").
type Attr struct {
	Name  string
	Value string
}

// Node is one XML node. Element nodes have a Name (as written, e.g. "w:p");
// character data nodes have an empty Name and their text in Data.
// Names are never namespace-resolved: the tree round-trips the original
// prefixes untouched.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Data     string

	parent *Node
}

// Parent returns the node's parent element, or nil for a detached or root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsElement reports whether the node is an element (as opposed to character data).
func (n *Node) IsElement() bool {
	return n.Name != ""
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// InsertAfter inserts sibling immediately after n among n's parent's children.
func (n *Node) InsertAfter(sibling *Node) error {
	if n.parent == nil {
		return fmt.Errorf("node <%s> has no parent", n.Name)
	}
	p := n.parent
	for i, c := range p.Children {
		if c == n {
			sibling.parent = p
			p.Children = append(p.Children, nil)
			copy(p.Children[i+2:], p.Children[i+1:])
			p.Children[i+1] = sibling
			return nil
		}
	}
	return fmt.Errorf("node <%s> not found among its parent's children", n.Name)
}

// Remove detaches n from its parent.
func (n *Node) Remove() error {
	if n.parent == nil {
		return fmt.Errorf("node <%s> has no parent", n.Name)
	}
	p := n.parent
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			n.parent = nil
			return nil
		}
	}
	return fmt.Errorf("node <%s> not found among its parent's children", n.Name)
}

// Clone returns a deep copy of n, detached from any parent.
func (n *Node) Clone() *Node {
	return n.CloneWithout()
}

// CloneWithout returns a deep copy of n whose direct children with any of the
// given element names are omitted. Deeper descendants are always kept, so
// e.g. CloneWithout("w:r") on a paragraph strips its runs but keeps w:pPr
// with everything inside it.
func (n *Node) CloneWithout(strip ...string) *Node {
	c := &Node{
		Name: n.Name,
		Data: n.Data,
	}
	if len(n.Attrs) > 0 {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
outer:
	for _, child := range n.Children {
		for _, s := range strip {
			if child.Name == s {
				continue outer
			}
		}
		c.Append(child.Clone())
	}
	return c
}

// Walk visits n and all its descendants depth-first in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns all descendant elements with the given name, in document
// order. n itself is not considered.
func (n *Node) FindAll(name string) []*Node {
	var found []*Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) {
			if d.Name == name {
				found = append(found, d)
			}
		})
	}
	return found
}

// ChildrenNamed returns the direct child elements with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var found []*Node
	for _, c := range n.Children {
		if c.Name == name {
			found = append(found, c)
		}
	}
	return found
}

// FirstChild returns the first direct child element with the given name, or nil.
func (n *Node) FirstChild(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Text returns the visible text of a paragraph node: the concatenated w:t
// content of its direct runs, including runs inside hyperlinks. Text nested in
// drawings or text boxes belongs to other paragraphs and is not included.
func (n *Node) Text() string {
	var b strings.Builder
	for _, c := range n.Children {
		switch c.Name {
		case "w:r":
			writeRunText(&b, c)
		case "w:hyperlink":
			for _, r := range c.ChildrenNamed("w:r") {
				writeRunText(&b, r)
			}
		}
	}
	return b.String()
}

func writeRunText(b *strings.Builder, run *Node) {
	for _, c := range run.Children {
		switch c.Name {
		case "w:t":
			for _, t := range c.Children {
				if !t.IsElement() {
					b.WriteString(t.Data)
				}
			}
		case "w:tab":
			b.WriteByte('\t')
		}
	}
}

// SetText replaces the paragraph's run content with a single run containing
// text. Paragraph properties are untouched; the first existing run's
// properties, if any, carry over to the new run. Hyperlinks are flattened:
// their text was part of Text() and so survives in the rewrite, but the link
// element itself is dropped.
func (n *Node) SetText(text string) {
	var rPr *Node
	if r := n.FirstChild("w:r"); r != nil {
		if p := r.FirstChild("w:rPr"); p != nil {
			rPr = p.Clone()
		}
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.Name == "w:r" || c.Name == "w:hyperlink" {
			c.parent = nil
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
	n.Append(NewRun(text, rPr))
}

// NewRun builds a w:r node holding text, optionally carrying run properties.
// The w:t element is marked xml:space="preserve" so leading or trailing
// whitespace survives.
func NewRun(text string, rPr *Node) *Node {
	run := &Node{Name: "w:r"}
	if rPr != nil {
		run.Append(rPr)
	}
	t := &Node{
		Name:  "w:t",
		Attrs: []Attr{{Name: "xml:space", Value: "preserve"}},
	}
	t.Append(&Node{Data: text})
	run.Append(t)
	return run
}

// parseXML parses one XML document into a node tree and returns the root
// element. Namespace prefixes are kept as written via RawToken, so the tree
// can be serialized back without re-deriving prefix declarations.
func parseXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Node
	var stack []*Node
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: rawName(t.Name)}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}
				root = n
			} else {
				stack[len(stack)-1].Append(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse xml: unbalanced end element </%s>", rawName(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Append(&Node{Data: string(t)})
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parse xml: unclosed element <%s>", stack[len(stack)-1].Name)
	}
	return root, nil
}

func rawName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

// xmlHeader matches the declaration Word writes on every part.
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"

// marshalPart serializes a part tree back to bytes, declaration included.
func marshalPart(root *Node) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	writeNode(&buf, root)
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *Node) {
	if !n.IsElement() {
		xml.EscapeText(buf, []byte(n.Data))
		return
	}
	buf.WriteByte('<')
	buf.WriteString(n.Name)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if len(n.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	for _, c := range n.Children {
		writeNode(buf, c)
	}
	buf.WriteString("</")
	buf.WriteString(n.Name)
	buf.WriteByte('>')
}
