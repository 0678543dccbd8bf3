// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	"smartnotes/internal/notes/domain/entities"
)

// SummarizeRequest содержит текст для анализа.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummaryResponse - результат анализа текста.
type SummaryResponse struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// SaveNoteRequest содержит поля сохраняемой заметки.
type SaveNoteRequest struct {
	OriginalText string   `json:"originalText"`
	Summary      string   `json:"summary"`
	Keywords     []string `json:"keywords"`
}

// Note представляет заметку.
// Идентификатор дублируется в "_id", на него опирается веб-клиент.
type Note struct {
	MongoID       string    `json:"_id"`
	ID            string    `json:"id"`
	OriginalText  string    `json:"originalText"`
	Summary       string    `json:"summary"`
	Keywords      []string  `json:"keywords"`
	CreatedAt     time.Time `json:"createdAt"`
	SchemaVersion int       `json:"schemaVersion"`
}

// SaveNoteResponse - ответ на сохранение заметки.
type SaveNoteResponse struct {
	Message string `json:"message"`
	Note    *Note  `json:"note"`
}

// FromSummary преобразует результат анализа в ответ.
func FromSummary(s *entities.Summary) *SummaryResponse {
	return &SummaryResponse{
		Summary:  s.Summary,
		Keywords: entities.NormalizeKeywords(s.Keywords),
	}
}

// FromNote преобразует сущность заметки в DTO.
func FromNote(n *entities.Note) *Note {
	return &Note{
		MongoID:       n.ID,
		ID:            n.ID,
		OriginalText:  n.OriginalText,
		Summary:       n.Summary,
		Keywords:      entities.NormalizeKeywords(n.Keywords),
		CreatedAt:     n.CreatedAt,
		SchemaVersion: n.SchemaVersion,
	}
}

// FromNotes преобразует список заметок, сохраняя порядок. Никогда не возвращает nil.
func FromNotes(notes []*entities.Note) []*Note {
	result := make([]*Note, 0, len(notes))
	for _, n := range notes {
		result = append(result, FromNote(n))
	}
	return result
}
