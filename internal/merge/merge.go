// Package merge collapses artificially split body paragraphs back into one
// logical paragraph each. OCR output and converted PDFs often break a single
// sentence across several w:p nodes; translating those fragments separately
// produces garbage, so this pass runs before any translation.
package merge

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docxtrans/docxtrans/internal/docx"
)

// terminators are the characters that end a complete clause or sentence.
// A paragraph ending in one of these is never a candidate for continuation.
const terminators = "。？！：；)）”\".?!:;"

// numberedStart matches an enumeration marker: leading digits followed by a
// dot, or digits alone making up the whole text.
var numberedStart = regexp.MustCompile(`^\s*\d+(\.|$)`)

// headerMaxRunes bounds how long a numbered line can be and still count as a
// heading that must not absorb the following paragraph.
const headerMaxRunes = 40

// Body merges split paragraphs in the document body and returns how many
// paragraph nodes were collapsed away.
func Body(doc *docx.Document) int {
	return paragraphs(doc.Paragraphs())
}

// paragraphs runs the single merge pass over a snapshot of the paragraph
// sequence. The snapshot is iterated; the live tree is mutated by node
// identity, so removals never skip or double-visit an element.
func paragraphs(paras []*docx.Node) int {
	if len(paras) == 0 {
		return 0
	}

	last := paras[0]
	merged := 0
	for _, curr := range paras[1:] {
		text := strings.TrimSpace(curr.Text())
		lastText := strings.TrimSpace(last.Text())

		if text == "" || lastText == "" {
			last = curr
			continue
		}

		if isTerminated(lastText) || numberedStart.MatchString(text) || isHeader(lastText) {
			last = curr
			continue
		}

		// Remove first, then rewrite: if the removal fails the pair is left
		// exactly as it was, never with duplicated text.
		if err := curr.Remove(); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing paragraph: %v\n", err)
			last = curr
			continue
		}
		sep := ""
		if isASCII(lastRune(lastText)) && isASCII(firstRune(text)) {
			sep = " "
		}
		last.SetText(strings.TrimRightFunc(last.Text(), unicode.IsSpace) + sep + text)
		merged++
	}
	return merged
}

func isTerminated(s string) bool {
	return strings.ContainsRune(terminators, lastRune(s))
}

func isHeader(s string) bool {
	return numberedStart.MatchString(s) && utf8.RuneCountInString(s) < headerMaxRunes
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func isASCII(r rune) bool {
	return r < utf8.RuneSelf
}
