package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates text through the OpenAI chat completion API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI-backed translator.
func NewOpenAIProvider(cfg *Config) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		client: openai.NewClient(cfg.OpenAIKey),
		model:  model,
	}
}

// Translate sends the text to the chat completion endpoint and returns the
// model's answer verbatim (trimmed).
func (p *OpenAIProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(
					"Translate the following text from %s to %s. Respond with only the translation, nothing else.\n\n%s",
					source, target, text),
			},
		},
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &ServiceError{Provider: p.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ServiceError{Provider: p.Name(), Err: fmt.Errorf("no translation returned")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}
