// Package entities определяет доменные сущности сервиса заметок.
package entities

import "time"

// CurrentSchemaVersion - версия формата записи Note, с которой пишутся новые заметки.
const CurrentSchemaVersion = 1

// Note представляет сохраненный результат одной суммаризации.
// После создания заметка не изменяется.
type Note struct {
	ID            string    `json:"id"`
	OriginalText  string    `json:"originalText"`
	Summary       string    `json:"summary"`
	Keywords      []string  `json:"keywords"`
	CreatedAt     time.Time `json:"createdAt"`
	SchemaVersion int       `json:"schemaVersion"`
}

// NewNote создает заметку с текущим временем и актуальной версией схемы.
// nil keywords заменяются пустым списком.
func NewNote(originalText, summary string, keywords []string) *Note {
	return &Note{
		OriginalText:  originalText,
		Summary:       summary,
		Keywords:      NormalizeKeywords(keywords),
		CreatedAt:     time.Now().UTC(),
		SchemaVersion: CurrentSchemaVersion,
	}
}

// NormalizeKeywords гарантирует, что список ключевых слов не nil.
func NormalizeKeywords(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}
