package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"

const contentTypesXML = xmlDecl + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const rootRelsXML = xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// WrapBody wraps body XML (a sequence of w:p / w:tbl elements plus an
// optional trailing w:sectPr) into a complete word/document.xml part.
func WrapBody(body string) string {
	return xmlDecl +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>` +
		body +
		`</w:body></w:document>`
}

// Para builds a minimal w:p element holding text in a single run.
func Para(text string) string {
	if text == "" {
		return `<w:p/>`
	}
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// BuildDocx writes a .docx package to a temp file and returns its path. The
// parts map holds part name to content; the OPC boilerplate parts
// ([Content_Types].xml, _rels/.rels) are added unless already present.
func BuildDocx(t *testing.T, parts map[string]string) string {
	t.Helper()

	if _, ok := parts["[Content_Types].xml"]; !ok {
		parts["[Content_Types].xml"] = contentTypesXML
	}
	if _, ok := parts["_rels/.rels"]; !ok {
		parts["_rels/.rels"] = rootRelsXML
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	// Deterministic part order keeps failures reproducible.
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if content, ok := parts[name]; ok {
			writePart(t, w, name, content)
			delete(parts, name)
		}
	}
	for name, content := range parts {
		writePart(t, w, name, content)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize test docx: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test docx %s: %v", path, err)
	}
	return path
}

// BuildSimpleDocx writes a .docx whose body is the given XML fragment.
func BuildSimpleDocx(t *testing.T, body string) string {
	t.Helper()
	return BuildDocx(t, map[string]string{"word/document.xml": WrapBody(body)})
}

func writePart(t *testing.T, w *zip.Writer, name, content string) {
	t.Helper()
	fw, err := w.Create(name)
	if err != nil {
		t.Fatalf("Failed to create part %s: %v", name, err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write part %s: %v", name, err)
	}
}
