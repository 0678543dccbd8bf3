package analyzer

import (
	"context"
	"errors"
	"fmt"

	"smartnotes/internal/notes/domain/entities"
	"smartnotes/internal/notes/ports/services"
	"smartnotes/internal/notes/resilience"
)

// BreakerAnalyzer пропускает вызовы анализатора, пока circuit breaker открыт.
type BreakerAnalyzer struct {
	next services.Analyzer
	cb   *resilience.CircuitBreaker
}

// NewBreakerAnalyzer оборачивает анализатор circuit breaker'ом.
func NewBreakerAnalyzer(next services.Analyzer, cb *resilience.CircuitBreaker) *BreakerAnalyzer {
	return &BreakerAnalyzer{next: next, cb: cb}
}

var _ services.Analyzer = (*BreakerAnalyzer)(nil)

// Analyze вызывает следующий анализатор, если breaker это разрешает.
// Отказом считаются только ошибки недоступности процесса (запуск и таймаут).
// Некорректный вывод зависит от текста запроса и breaker не трогает.
func (b *BreakerAnalyzer) Analyze(ctx context.Context, text string) (*entities.Summary, error) {
	if !b.cb.AllowRequest(ctx) {
		return nil, fmt.Errorf("analyzer unavailable: %w", resilience.ErrCircuitOpen)
	}

	summary, err := b.next.Analyze(ctx, text)
	switch {
	case err == nil:
		b.cb.RecordResult(ctx, nil)
	case isUnavailable(err):
		b.cb.RecordResult(ctx, err)
	}

	return summary, err
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrProcessStart) || errors.Is(err, ErrAnalyzerTimeout)
}
