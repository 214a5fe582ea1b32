package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/docxtrans/docxtrans/internal/testutil"
)

func TestNewTranslatorOpenAI(t *testing.T) {
	tr, err := NewTranslator(&Config{Provider: "openai", OpenAIKey: "test-api-key"})
	if err != nil {
		t.Fatalf("NewTranslator failed: %v", err)
	}
	if tr.Name() != "openai" {
		t.Errorf("Name() = %q, want %q", tr.Name(), "openai")
	}
}

func TestNewTranslatorMissingKeys(t *testing.T) {
	if _, err := NewTranslator(&Config{Provider: "openai"}); err == nil {
		t.Error("expected error for missing OpenAI key")
	}
	if _, err := NewTranslator(&Config{Provider: "gemini"}); err == nil {
		t.Error("expected error for missing Gemini key")
	}
}

func TestNewTranslatorUnknownProvider(t *testing.T) {
	if _, err := NewTranslator(&Config{Provider: "babelfish"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "openai" {
		t.Errorf("default provider = %q, want %q", cfg.Provider, "openai")
	}
}

func TestServiceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ServiceError{Provider: "openai", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ServiceError should unwrap to its cause")
	}
	if got := err.Error(); got != "openai translation service: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestBreakerPassesSuccessesThrough(t *testing.T) {
	mock := &testutil.MockTranslator{Responses: map[string]string{"你好": "hello"}}
	tr := WithBreaker(mock)

	got, err := tr.Translate(context.Background(), "你好", "zh-CN", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Translate = %q, want %q", got, "hello")
	}
	if tr.Name() != "mock" {
		t.Errorf("Name() = %q, want %q", tr.Name(), "mock")
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cause := errors.New("boom")
	mock := &testutil.MockTranslator{Errors: map[string]error{"bad": cause}}
	tr := WithBreaker(mock)

	for i := 0; i < 5; i++ {
		if _, err := tr.Translate(context.Background(), "bad", "zh-CN", "en"); !errors.Is(err, cause) {
			t.Fatalf("call %d: err = %v, want the provider error", i, err)
		}
	}

	// Breaker is open now: even a good text fails fast without a call.
	calls := len(mock.Calls)
	_, err := tr.Translate(context.Background(), "good", "zh-CN", "en")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError from open breaker, got %v", err)
	}
	if len(mock.Calls) != calls {
		t.Error("open breaker should not have called the provider")
	}
}

func TestOpenAITranslateIntegration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	tr := NewOpenAIProvider(&Config{OpenAIKey: apiKey})

	translation, err := tr.Translate(context.Background(), "你好", "zh-CN", "en")
	if err != nil {
		t.Errorf("Translate failed: %v", err)
	}
	if translation == "" {
		t.Error("Got empty translation")
	}

	t.Logf("Translation of '你好': %s", translation)
}

func TestGeminiTranslateIntegration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	tr, err := NewGeminiProvider(&Config{GeminiKey: apiKey})
	if err != nil {
		t.Fatalf("NewGeminiProvider failed: %v", err)
	}

	translation, err := tr.Translate(context.Background(), "你好", "zh-CN", "en")
	if err != nil {
		t.Errorf("Translate failed: %v", err)
	}
	if translation == "" {
		t.Error("Got empty translation")
	}

	t.Logf("Translation of '你好': %s", translation)
}

func ExampleServiceError() {
	err := &ServiceError{Provider: "gemini", Err: errors.New("quota exceeded")}
	fmt.Println(err)
	// Output: gemini translation service: quota exceeded
}
