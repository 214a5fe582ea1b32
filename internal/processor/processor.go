package processor

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/docxtrans/docxtrans/internal/cli"
	"github.com/docxtrans/docxtrans/internal/docx"
	"github.com/docxtrans/docxtrans/internal/merge"
	"github.com/docxtrans/docxtrans/internal/translate"
)

// leadingEnum matches an enumeration marker at the start of a translation:
// digits and dots, then whitespace. The original paragraph already carries the
// numbering, so the inserted translation must not repeat it.
var leadingEnum = regexp.MustCompile(`^[\d.]+\s*`)

// Processor handles the main document translation logic
type Processor struct {
	flags      *cli.Flags
	translator translate.Translator
	sleep      func(time.Duration)
	seen       map[*docx.Node]bool
}

// NewProcessor creates a new document processor
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	cfg := &translate.Config{
		Provider:  flags.Provider,
		Model:     flags.Model,
		OpenAIKey: cli.GetOpenAIKey(),
		GeminiKey: cli.GetGeminiKey(),
	}
	translator, err := translate.NewTranslator(cfg)
	if err != nil {
		return nil, err
	}
	return newProcessor(flags, translate.WithBreaker(translator)), nil
}

// newProcessor wires a processor around an explicit translator. Tests use it
// to substitute a fake.
func newProcessor(flags *cli.Flags, translator translate.Translator) *Processor {
	return &Processor{
		flags:      flags,
		translator: translator,
		sleep:      time.Sleep,
		seen:       make(map[*docx.Node]bool),
	}
}

// Run executes the whole pipeline: load, merge, translate, save.
func (p *Processor) Run() error {
	if _, err := os.Stat(p.flags.Input); os.IsNotExist(err) {
		fmt.Println("Input file not found.")
		return nil
	}

	fmt.Printf("Loading %s...\n", p.flags.Input)
	doc, err := docx.Open(p.flags.Input)
	if err != nil {
		return err
	}

	if !p.flags.SkipMerge {
		fmt.Println("Pre-processing: Merging split paragraphs (Body only)...")
		merged := merge.Body(doc)
		fmt.Printf("Merged %d paragraphs.\n", merged)
	}

	if err := p.Translate(doc); err != nil {
		return err
	}

	fmt.Printf("Saving to %s...\n", p.flags.Output)
	if err := doc.Save(p.flags.Output); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

// Translate walks every paragraph-like unit of the document in order: body,
// then each section's headers and footers, then table cells, then text boxes.
func (p *Processor) Translate(doc *docx.Document) error {
	fmt.Println("Translating Body...")
	p.translateList(doc.Paragraphs())

	fmt.Println("Translating Headers/Footers...")
	sections, err := doc.Sections()
	if err != nil {
		// Broken section plumbing costs the headers and footers, not the
		// translations already applied or still to come.
		fmt.Fprintf(os.Stderr, "  Error resolving headers/footers: %v\n", err)
	}
	for _, sec := range sections {
		for _, hdr := range sec.Headers {
			p.translatePart(hdr)
		}
		for _, ftr := range sec.Footers {
			p.translatePart(ftr)
		}
	}

	fmt.Println("Translating Tables...")
	for _, table := range doc.Tables() {
		for _, row := range docx.RowsOf(table) {
			for _, cell := range docx.CellsOf(row) {
				p.translateList(docx.ParagraphsOf(cell))
			}
		}
	}

	fmt.Println("Translating Text Boxes...")
	boxes := doc.TextBoxes()
	for _, box := range boxes {
		p.translateList(box.FindAll("w:p"))
	}
	fmt.Printf("Processed %d text boxes.\n", len(boxes))
	return nil
}

// translatePart translates a header or footer part. Several sections may
// reference the same physical part; it is translated once.
func (p *Processor) translatePart(root *docx.Node) {
	if p.seen[root] {
		return
	}
	p.seen[root] = true
	p.translateList(docx.ParagraphsOf(root))
}

// translateList processes a snapshot of a paragraph sequence. Paragraphs
// inserted during processing live in the tree, not in the snapshot, so they
// are never re-visited.
func (p *Processor) translateList(paras []*docx.Node) {
	for _, para := range paras {
		if p.seen[para] {
			continue
		}
		p.seen[para] = true
		if strings.TrimSpace(para.Text()) == "" {
			continue
		}
		p.translateParagraph(para)
		p.sleep(p.flags.Delay)
	}
}

// translateParagraph translates one paragraph and applies one of the two
// insertion strategies: an inline gloss for header-style lines ending in a
// colon, or a new sibling paragraph for everything else. A translation
// failure leaves the paragraph untouched.
func (p *Processor) translateParagraph(para *docx.Node) {
	text := strings.TrimSpace(para.Text())

	headerColon := strings.HasSuffix(text, "：") || strings.HasSuffix(text, ":")
	toTranslate := strings.TrimRight(text, "：:")

	fmt.Printf("  Translating: %s\n", preview(text))
	translated, err := p.translator.Translate(context.Background(), toTranslate, p.flags.Source, p.flags.Target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Error translating '%s': %v\n", preview(text), err)
		return
	}
	translated = strings.TrimSpace(translated)

	if headerColon {
		// Inline gloss: the label keeps its node and formatting.
		para.SetText(fmt.Sprintf("%s(%s):", toTranslate, translated))
		return
	}

	cleaned := leadingEnum.ReplaceAllString(translated, "")

	// Duplicate the paragraph for its formatting, drop the content, then
	// fill it with a single run holding the translation.
	dup := para.CloneWithout("w:r", "w:hyperlink", "w:bookmarkStart", "w:bookmarkEnd", "w:proofErr")
	dup.Append(docx.NewRun(cleaned, nil))
	if err := para.InsertAfter(dup); err != nil {
		fmt.Fprintf(os.Stderr, "  Error inserting translation for '%s': %v\n", preview(text), err)
	}
}

// preview shortens a text to its first 20 runes for log lines.
func preview(text string) string {
	if utf8.RuneCountInString(text) <= 20 {
		return text
	}
	runes := []rune(text)
	return string(runes[:20]) + "..."
}
