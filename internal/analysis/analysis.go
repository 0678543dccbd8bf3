// Package analysis реализует эталонный анализатор текста:
// выжимку методом TextRank и простое извлечение ключевых слов.
package analysis

import (
	"sort"
	"strings"
	"unicode/utf8"

	"smartnotes/internal/notes/domain/entities"
)

// NoTextSummary - выжимка, которую анализатор возвращает без входного текста.
const NoTextSummary = "No text provided"

// Options содержит параметры анализа.
type Options struct {
	SummarySentences int
	KeywordCount     int
	MinKeywordLength int
	Damping          float64
	Epsilon          float64
	MaxIterations    int
}

// DefaultOptions возвращает параметры по умолчанию.
func DefaultOptions() Options {
	return Options{
		SummarySentences: 2,
		KeywordCount:     5,
		MinKeywordLength: 7,
		Damping:          0.85,
		Epsilon:          1e-4,
		MaxIterations:    100,
	}
}

// Analyze строит выжимку и ключевые слова для текста.
// Если выжимка пуста, ею становится сам текст.
func Analyze(text string, opts Options) *entities.Summary {
	summary := Summarize(text, opts)
	if summary == "" {
		summary = text
	}

	return &entities.Summary{
		Summary:  summary,
		Keywords: Keywords(text, opts.KeywordCount, opts.MinKeywordLength),
	}
}

// NoText возвращает результат для пустого вызова.
func NoText() *entities.Summary {
	return &entities.Summary{Summary: NoTextSummary, Keywords: []string{}}
}

// Summarize выбирает самые значимые предложения и склеивает их в исходном порядке.
func Summarize(text string, opts Options) string {
	sentences := SplitSentences(text)
	if len(sentences) <= opts.SummarySentences {
		return strings.Join(sentences, " ")
	}

	words := make([][]string, len(sentences))
	for i, s := range sentences {
		words[i] = tokenize(s)
	}
	scores := rank(words, opts)

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	top := order[:opts.SummarySentences]
	sort.Ints(top)

	picked := make([]string, 0, len(top))
	for _, idx := range top {
		picked = append(picked, sentences[idx])
	}
	return strings.Join(picked, " ")
}

// Keywords возвращает различные токены, разделенные пробелами, длиной не меньше minLength.
// Длинные идут первыми, при равной длине порядок первого появления.
func Keywords(text string, limit, minLength int) []string {
	if limit <= 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	keywords := make([]string, 0, limit)

	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) < minLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return utf8.RuneCountInString(keywords[i]) > utf8.RuneCountInString(keywords[j])
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
