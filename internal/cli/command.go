package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/docxtrans/docxtrans/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docxtrans",
		Short: "Word document translator",
		Long: `docxtrans translates a Word document in place while preserving its layout.

It first merges body paragraphs that were artificially split across paragraph
boundaries, then translates every paragraph-like unit (body, headers, footers,
table cells, text boxes) and writes the result back into the document.

Examples:
  docxtrans                                  # document_cn.docx -> translated_document.docx
  docxtrans -i report.docx -o report_en.docx # explicit input/output
  docxtrans --provider gemini --target de    # Gemini backend, German output`,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.docxtrans.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Input, "input", "i", flags.Input, "Input document")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output document")
	cmd.Flags().StringVarP(&flags.Source, "source", "s", flags.Source, "Source language tag (BCP 47)")
	cmd.Flags().StringVarP(&flags.Target, "target", "t", flags.Target, "Target language tag (BCP 47)")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider (openai or gemini)")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Provider model override")
	cmd.Flags().DurationVar(&flags.Delay, "delay", flags.Delay, "Fixed delay between translation calls")
	cmd.Flags().BoolVar(&flags.SkipMerge, "skip-merge", false, "Skip the paragraph merge pre-pass")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translation.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("translation.target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translation.delay", cmd.Flags().Lookup("delay"))
	viper.BindPFlag("output.path", cmd.Flags().Lookup("output"))
}

// ApplyConfig overlays config-file values onto flags the user did not set on
// the command line. Explicit flags always win; for everything else viper
// resolves config file, environment and flag default in that order.
func ApplyConfig(cmd *cobra.Command, flags *Flags) {
	if !cmd.Flags().Changed("source") {
		flags.Source = viper.GetString("translation.source")
	}
	if !cmd.Flags().Changed("target") {
		flags.Target = viper.GetString("translation.target")
	}
	if !cmd.Flags().Changed("provider") {
		flags.Provider = viper.GetString("translation.provider")
	}
	if !cmd.Flags().Changed("model") {
		flags.Model = viper.GetString("translation.model")
	}
	if !cmd.Flags().Changed("delay") {
		flags.Delay = viper.GetDuration("translation.delay")
	}
	if !cmd.Flags().Changed("output") {
		flags.Output = viper.GetString("output.path")
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".docxtrans" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".docxtrans")
	}

	// Environment variables
	viper.SetEnvPrefix("DOCXTRANS")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ValidateLanguages checks that both language tags parse as BCP 47.
func ValidateLanguages(source, target string) error {
	if _, err := language.Parse(source); err != nil {
		return fmt.Errorf("invalid source language %q: %w", source, err)
	}
	if _, err := language.Parse(target); err != nil {
		return fmt.Errorf("invalid target language %q: %w", target, err)
	}
	return nil
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("translation.gemini_key")
}
