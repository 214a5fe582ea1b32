package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

const documentPart = "word/document.xml"

// Document is a loaded .docx package. All parts are held in memory; parts that
// were parsed into trees are re-serialized on save, everything else is written
// back unchanged.
type Document struct {
	names []string          // part names in archive order
	parts map[string][]byte // raw part bytes
	trees map[string]*Node  // parsed parts, keyed by part name
}

// Open loads a .docx file and parses its main document part.
func Open(path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	d := &Document{
		parts: make(map[string][]byte),
		trees: make(map[string]*Node),
	}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		d.names = append(d.names, f.Name)
		d.parts[f.Name] = data
	}

	if _, ok := d.parts[documentPart]; !ok {
		return nil, fmt.Errorf("open %s: %s not found in archive", path, documentPart)
	}
	if _, err := d.tree(documentPart); err != nil {
		return nil, err
	}
	return d, nil
}

// tree returns the parsed tree for a part, parsing and caching it on first use.
func (d *Document) tree(name string) (*Node, error) {
	if t, ok := d.trees[name]; ok {
		return t, nil
	}
	data, ok := d.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found in archive", name)
	}
	t, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	d.trees[name] = t
	return t, nil
}

// Body returns the w:body element of the main document part.
func (d *Document) Body() *Node {
	root := d.trees[documentPart]
	if body := root.FirstChild("w:body"); body != nil {
		return body
	}
	return root
}

// Paragraphs returns the top-level paragraphs of the document body.
func (d *Document) Paragraphs() []*Node {
	return ParagraphsOf(d.Body())
}

// Tables returns the top-level tables of the document body.
func (d *Document) Tables() []*Node {
	return d.Body().ChildrenNamed("w:tbl")
}

// TextBoxes returns every text-box content region found anywhere in the body,
// nested and grouped shapes included, in document order.
func (d *Document) TextBoxes() []*Node {
	return d.Body().FindAll("w:txbxContent")
}

// Save writes the document to path. Parsed parts are serialized from their
// trees; all other parts are copied through byte-for-byte.
func (d *Document) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := zip.NewWriter(out)
	for _, name := range d.names {
		fw, err := w.Create(name)
		if err != nil {
			out.Close()
			return fmt.Errorf("write part %s: %w", name, err)
		}
		data := d.parts[name]
		if t, ok := d.trees[name]; ok {
			data = marshalPart(t)
		}
		if _, err := fw.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return out.Close()
}
