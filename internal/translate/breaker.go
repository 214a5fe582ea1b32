package translate

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// WithBreaker wraps a translator in a circuit breaker. After five consecutive
// service failures the breaker opens and further calls fail fast for a minute
// before a trial call is allowed through. This is failure isolation only:
// no call is ever retried.
func WithBreaker(inner Translator) Translator {
	settings := gobreaker.Settings{
		Name:    "translator",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &breakerTranslator{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

type breakerTranslator struct {
	inner Translator
	cb    *gobreaker.CircuitBreaker
}

func (b *breakerTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, text, source, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &ServiceError{Provider: b.inner.Name(), Err: err}
		}
		return "", err
	}
	return result.(string), nil
}

func (b *breakerTranslator) Name() string {
	return b.inner.Name()
}
