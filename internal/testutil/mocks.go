package testutil

import (
	"context"
	"fmt"
)

// MockTranslator is a canned Translator for tests. Texts found in Responses
// map to their values; texts in Errors fail; everything else is echoed with
// the target tag prefixed so assertions can tell source from output.
type MockTranslator struct {
	Responses map[string]string
	Errors    map[string]error
	Calls     []string
}

// Translate records the call and returns the canned response.
func (m *MockTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	m.Calls = append(m.Calls, text)

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if resp, ok := m.Responses[text]; ok {
		return resp, nil
	}
	return fmt.Sprintf("[%s]%s", target, text), nil
}

// Name returns the provider name
func (m *MockTranslator) Name() string {
	return "mock"
}
