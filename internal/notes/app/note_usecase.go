// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"smartnotes/internal/notes/domain/entities"
	"smartnotes/internal/notes/ports/repositories"
	"smartnotes/internal/notes/ports/services"
	"smartnotes/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAnalysisFailure    = errors.New("text analysis failed")
	ErrPersistenceFailure = errors.New("note storage failed")
)

// Константы для сообщений logger.
const (
	LogSummarize       = "summarizing text"
	LogSummarized      = "text summarized"
	LogSaveNote        = "saving note"
	LogNoteSaved       = "note saved"
	LogListHistory     = "listing note history"
	LogEmptyText       = "no text provided"
	LogAnalyzeFailed   = "failed to analyze text"
	LogSaveFailed      = "failed to save note"
	LogHistoryFailed   = "failed to list note history"
	LogHistoryReturned = "note history listed"
)

// NoteUseCase связывает анализатор текста и хранилище заметок.
// Не хранит состояния между вызовами.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	analyzer services.Analyzer
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, analyzer services.Analyzer) *NoteUseCase {
	return &NoteUseCase{
		noteRepo: noteRepo,
		analyzer: analyzer,
	}
}

// Summarize передает текст анализатору и возвращает его результат без изменений.
// Ничего не сохраняет.
func (uc *NoteUseCase) Summarize(ctx context.Context, text string) (*entities.Summary, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Summarize"))

	if text == "" {
		log.Debug(ctx, LogEmptyText)
		return nil, ErrInvalidInput
	}

	log.Debug(ctx, LogSummarize, zap.Int("text_length", len(text)))

	summary, err := uc.analyzer.Analyze(ctx, text)
	if err != nil {
		log.Error(ctx, LogAnalyzeFailed, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailure, err)
	}

	log.Debug(ctx, LogSummarized, zap.Int("keywords", len(summary.Keywords)))
	return summary, nil
}

// Save создает новую заметку из результата суммаризации.
// Поля не проверяются: отсутствующие значения сохраняются пустыми.
func (uc *NoteUseCase) Save(ctx context.Context, originalText, summary string, keywords []string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Save"))
	log.Debug(ctx, LogSaveNote)

	note := entities.NewNote(originalText, summary, keywords)
	if err := uc.noteRepo.Create(ctx, note); err != nil {
		log.Error(ctx, LogSaveFailed, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	log.Info(ctx, LogNoteSaved, zap.String("note_id", note.ID))
	return note, nil
}

// ListHistory возвращает все сохраненные заметки, новые первыми.
func (uc *NoteUseCase) ListHistory(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.ListHistory"))
	log.Debug(ctx, LogListHistory)

	notes, err := uc.noteRepo.ListAll(ctx)
	if err != nil {
		log.Error(ctx, LogHistoryFailed, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	if notes == nil {
		notes = []*entities.Note{}
	}

	log.Debug(ctx, LogHistoryReturned, zap.Int("count", len(notes)))
	return notes, nil
}
