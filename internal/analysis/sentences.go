package analysis

import (
	"strings"
	"unicode"
)

// SplitSentences делит текст на предложения по '.', '!' и '?',
// за которыми следует пробел или конец текста.
func SplitSentences(text string) []string {
	runes := []rune(text)
	sentences := make([]string, 0)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && isTerminator(runes[end]) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}

		sentences = appendSentence(sentences, string(runes[start:end]))
		start = end
		i = end - 1
	}

	if start < len(runes) {
		sentences = appendSentence(sentences, string(runes[start:]))
	}
	return sentences
}

func appendSentence(sentences []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentences
	}
	return append(sentences, s)
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// tokenize возвращает слова предложения в нижнем регистре.
func tokenize(sentence string) []string {
	return strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
