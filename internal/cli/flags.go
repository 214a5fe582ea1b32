package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	Input     string
	Output    string
	SkipMerge bool

	// Translation flags
	Source   string
	Target   string
	Provider string
	Model    string
	Delay    time.Duration
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Input:    "document_cn.docx",
		Output:   "translated_document.docx",
		Source:   "zh-CN",
		Target:   "en",
		Provider: "openai",
		Delay:    200 * time.Millisecond,
	}
}
