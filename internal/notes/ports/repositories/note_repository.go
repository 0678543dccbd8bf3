// Package repositories определяет интерфейсы хранилища заметок.
package repositories

import (
	"context"

	"smartnotes/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс хранилища заметок.
type NoteRepository interface {
	// Create сохраняет заметку и заполняет ее ID и CreatedAt значениями хранилища.
	Create(ctx context.Context, note *entities.Note) error
	// ListAll возвращает все заметки, новые первыми.
	ListAll(ctx context.Context) ([]*entities.Note, error)
}

// HealthChecker проверяет доступность хранилища.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
