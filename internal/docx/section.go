package docx

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

const documentRelsPart = "word/_rels/document.xml.rels"

// Section is one document section with the header and footer content it
// references, in reference order.
type Section struct {
	Headers []*Node // w:hdr part roots
	Footers []*Node // w:ftr part roots
}

type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Sections returns the document's sections in document order. Section breaks
// live in w:sectPr nodes: one per paragraph-level break plus the body-level
// one at the end. Header and footer parts are resolved through the document's
// relationships part and parsed on first use, so edits to them are picked up
// by Save.
func (d *Document) Sections() ([]Section, error) {
	rels, err := d.documentRels()
	if err != nil {
		return nil, err
	}

	var sections []Section
	for _, sectPr := range d.sectPrNodes() {
		var sec Section
		for _, ref := range sectPr.ChildrenNamed("w:headerReference") {
			root, err := d.referencedPart(rels, ref.Attr("r:id"))
			if err != nil {
				return nil, err
			}
			if root != nil {
				sec.Headers = append(sec.Headers, root)
			}
		}
		for _, ref := range sectPr.ChildrenNamed("w:footerReference") {
			root, err := d.referencedPart(rels, ref.Attr("r:id"))
			if err != nil {
				return nil, err
			}
			if root != nil {
				sec.Footers = append(sec.Footers, root)
			}
		}
		sections = append(sections, sec)
	}
	return sections, nil
}

// sectPrNodes collects section properties in document order: those embedded in
// paragraph properties mark mid-document breaks, the direct body child closes
// the final section.
func (d *Document) sectPrNodes() []*Node {
	var nodes []*Node
	for _, child := range d.Body().Children {
		switch child.Name {
		case "w:p":
			if pPr := child.FirstChild("w:pPr"); pPr != nil {
				if sectPr := pPr.FirstChild("w:sectPr"); sectPr != nil {
					nodes = append(nodes, sectPr)
				}
			}
		case "w:sectPr":
			nodes = append(nodes, child)
		}
	}
	return nodes
}

func (d *Document) documentRels() (map[string]string, error) {
	rels := make(map[string]string)
	data, ok := d.parts[documentRelsPart]
	if !ok {
		return rels, nil
	}
	var parsed relationships
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentRelsPart, err)
	}
	for _, r := range parsed.Rels {
		rels[r.ID] = r.Target
	}
	return rels, nil
}

// referencedPart resolves a relationship id to a parsed part root. Unknown ids
// and missing parts yield nil rather than an error: a dangling header
// reference should not abort the whole run.
func (d *Document) referencedPart(rels map[string]string, id string) (*Node, error) {
	target, ok := rels[id]
	if !ok || target == "" {
		return nil, nil
	}
	name := path.Clean(strings.TrimPrefix(target, "/"))
	if !strings.HasPrefix(name, "word/") {
		name = "word/" + name
	}
	if _, ok := d.parts[name]; !ok {
		return nil, nil
	}
	return d.tree(name)
}
