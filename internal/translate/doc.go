// Package translate provides machine translation behind a narrow interface:
// text plus source and target language tags in, translated text out. OpenAI
// and Google Gemini backends are available; a circuit breaker can wrap either
// so a dead endpoint is not called once per remaining paragraph.
package translate
