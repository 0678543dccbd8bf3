// Package services определяет интерфейсы внешних сервисов, которыми пользуется приложение.
package services

import (
	"context"

	"smartnotes/internal/notes/domain/entities"
)

// Analyzer извлекает краткое изложение и ключевые слова из текста.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*entities.Summary, error)
}
