package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// withConfig writes a config file, points viper at it, and returns a fresh
// command with its flags bound. Resetting viper first keeps the package-global
// state of earlier tests out.
func withConfig(t *testing.T, content string) (*Flags, *cobra.Command) {
	t.Helper()
	viper.Reset()

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	path := filepath.Join(t.TempDir(), ".docxtrans.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	InitConfig(path)

	return flags, cmd
}

func TestNewFlagsDefaults(t *testing.T) {
	flags := NewFlags()

	if flags.Input != "document_cn.docx" {
		t.Errorf("Input = %q, want %q", flags.Input, "document_cn.docx")
	}
	if flags.Output != "translated_document.docx" {
		t.Errorf("Output = %q, want %q", flags.Output, "translated_document.docx")
	}
	if flags.Source != "zh-CN" || flags.Target != "en" {
		t.Errorf("language defaults = %q/%q, want zh-CN/en", flags.Source, flags.Target)
	}
	if flags.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", flags.Provider, "openai")
	}
	if flags.Delay != 200*time.Millisecond {
		t.Errorf("Delay = %v, want 200ms", flags.Delay)
	}
}

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd == nil {
		t.Fatal("CreateRootCommand returned nil")
	}
	if cmd.Use != "docxtrans" {
		t.Errorf("Use = %q, want %q", cmd.Use, "docxtrans")
	}
	for _, name := range []string{"input", "output", "source", "target", "provider", "model", "delay", "skip-merge"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("persistent flag --config not registered")
	}
}

func TestFlagParsing(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	err := cmd.Flags().Parse([]string{
		"--input", "in.docx", "--output", "out.docx",
		"--target", "de", "--delay", "500ms", "--skip-merge",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if flags.Input != "in.docx" || flags.Output != "out.docx" {
		t.Errorf("paths not parsed: %q/%q", flags.Input, flags.Output)
	}
	if flags.Target != "de" {
		t.Errorf("Target = %q, want %q", flags.Target, "de")
	}
	if flags.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v, want 500ms", flags.Delay)
	}
	if !flags.SkipMerge {
		t.Error("SkipMerge not parsed")
	}
}

func TestValidateLanguages(t *testing.T) {
	if err := ValidateLanguages("zh-CN", "en"); err != nil {
		t.Errorf("valid tags rejected: %v", err)
	}
	if err := ValidateLanguages("not a tag", "en"); err == nil {
		t.Error("invalid source tag accepted")
	}
	if err := ValidateLanguages("zh-CN", "!!"); err == nil {
		t.Error("invalid target tag accepted")
	}
}

func TestApplyConfigReachesFlags(t *testing.T) {
	flags, cmd := withConfig(t, `
translation:
  provider: gemini
  target: de
  delay: 500ms
output:
  path: from-config.docx
`)

	ApplyConfig(cmd, flags)

	if flags.Provider != "gemini" {
		t.Errorf("Provider = %q, want %q from config file", flags.Provider, "gemini")
	}
	if flags.Target != "de" {
		t.Errorf("Target = %q, want %q from config file", flags.Target, "de")
	}
	if flags.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v, want 500ms from config file", flags.Delay)
	}
	if flags.Output != "from-config.docx" {
		t.Errorf("Output = %q, want %q from config file", flags.Output, "from-config.docx")
	}
	// Keys absent from the config keep their flag defaults.
	if flags.Source != "zh-CN" {
		t.Errorf("Source = %q, want default %q", flags.Source, "zh-CN")
	}
	if flags.Input != "document_cn.docx" {
		t.Errorf("Input = %q, want default %q", flags.Input, "document_cn.docx")
	}
}

func TestApplyConfigExplicitFlagWins(t *testing.T) {
	flags, cmd := withConfig(t, `
translation:
  provider: gemini
`)

	if err := cmd.Flags().Parse([]string{"--provider", "openai"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ApplyConfig(cmd, flags)

	if flags.Provider != "openai" {
		t.Errorf("Provider = %q, explicit flag should beat the config file", flags.Provider)
	}
}

func TestGetOpenAIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	if key := GetOpenAIKey(); key != "env-key" {
		t.Errorf("GetOpenAIKey = %q, want %q", key, "env-key")
	}
}

func TestGetGeminiKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	if key := GetGeminiKey(); key != "env-key" {
		t.Errorf("GetGeminiKey = %q, want %q", key, "env-key")
	}
}
