// Package api определяет входящие порты сервиса заметок.
package api

import (
	"context"

	"smartnotes/internal/notes/domain/entities"
)

// NoteUseCase определяет основной порт для операций с заметками.
type NoteUseCase interface {
	Summarize(ctx context.Context, text string) (*entities.Summary, error)
	Save(ctx context.Context, originalText, summary string, keywords []string) (*entities.Note, error)
	ListHistory(ctx context.Context) ([]*entities.Note, error)
}
