// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"smartnotes/internal/notes/domain/entities"
	"smartnotes/internal/notes/ports/repositories"
	"smartnotes/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrCreateNote = "failed to create note"
	ErrListNotes  = "failed to list notes"
	ErrScanNote   = "failed to scan note"
	ErrIterRows   = "error iterating rows"
)

const (
	queryCreateNote = `INSERT INTO notes (original_text, summary, keywords, schema_version, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at`

	queryListNotes = `SELECT id::text, original_text, summary, keywords, schema_version, created_at
FROM notes
ORDER BY created_at DESC, seq DESC`
)

// PgxPoolInterface - подмножество методов *pgxpool.Pool, нужное репозиторию.
// Ему также удовлетворяет pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД и заполняет ID и CreatedAt.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note")

	err := r.pool.QueryRow(ctx, queryCreateNote,
		note.OriginalText,
		note.Summary,
		entities.NormalizeKeywords(note.Keywords),
		note.SchemaVersion,
		note.CreatedAt,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		log.Error(ctx, ErrCreateNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return nil
}

// ListAll возвращает все заметки, новые первыми.
func (r *NoteRepository) ListAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListAll"))
	log.Debug(ctx, "listing notes")

	rows, err := r.pool.Query(ctx, queryListNotes)
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(
			&note.ID,
			&note.OriginalText,
			&note.Summary,
			&note.Keywords,
			&note.SchemaVersion,
			&note.CreatedAt,
		); err != nil {
			log.Error(ctx, ErrScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanNote, err)
		}
		note.Keywords = entities.NormalizeKeywords(note.Keywords)
		note.CreatedAt = note.CreatedAt.UTC()
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterRows, err)
	}

	log.Debug(ctx, "notes listed", zap.Int("count", len(notes)))
	return notes, nil
}
