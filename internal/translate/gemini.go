package translate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider translates text through the Google Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini-backed translator.
func NewGeminiProvider(cfg *Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Translate sends the text to the Gemini generate-content endpoint and returns
// the model's answer verbatim (trimmed).
func (p *GeminiProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text from %s to %s. Respond with only the translation, nothing else.\n\n%s",
		source, target, text)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &ServiceError{Provider: p.Name(), Err: err}
	}
	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", &ServiceError{Provider: p.Name(), Err: fmt.Errorf("no translation returned")}
	}
	return translated, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}
