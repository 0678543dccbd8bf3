package entities

// Summary - результат анализа текста: краткое изложение и ключевые слова.
type Summary struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}
