package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartnotes/internal/analysis"
)

const lecture = "Photosynthesis converts light into chemical energy. " +
	"Plants perform photosynthesis in chloroplasts. " +
	"The weather was nice today. " +
	"Chlorophyll absorbs light for photosynthesis."

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "empty", text: "", expected: []string{}},
		{name: "whitespace", text: "   \n\t", expected: []string{}},
		{name: "no terminator", text: "just a fragment", expected: []string{"just a fragment"}},
		{
			name:     "mixed terminators",
			text:     "Is it? Yes! It is.  Done",
			expected: []string{"Is it?", "Yes!", "It is.", "Done"},
		},
		{
			name:     "decimal point is not a boundary",
			text:     "Pi is 3.14 roughly. Next one.",
			expected: []string{"Pi is 3.14 roughly.", "Next one."},
		},
		{
			name:     "ellipsis",
			text:     "Wait... what?!\nOk.",
			expected: []string{"Wait...", "what?!", "Ok."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.SplitSentences(tt.text))
		})
	}
}

func TestSummarize_PicksCentralSentencesInOrder(t *testing.T) {
	summary := analysis.Summarize(lecture, analysis.DefaultOptions())

	assert.Equal(t,
		"Photosynthesis converts light into chemical energy. Chlorophyll absorbs light for photosynthesis.",
		summary)
}

func TestSummarize_ShortTextKeptWhole(t *testing.T) {
	opts := analysis.DefaultOptions()

	assert.Equal(t, "One sentence.", analysis.Summarize("One sentence.", opts))
	assert.Equal(t, "First one. Second one.", analysis.Summarize("First one.   Second one.", opts))
	assert.Empty(t, analysis.Summarize("", opts))
}

func TestKeywords(t *testing.T) {
	text := "photosynthesis energy chlorophyll chloroplasts sunlight photosynthesis a sunlight"

	assert.Equal(t,
		[]string{"photosynthesis", "chloroplasts", "chlorophyll", "sunlight"},
		analysis.Keywords(text, 5, 7))
}

func TestKeywords_LimitAndTies(t *testing.T) {
	text := "alphabet1 bbbbbbbbb ccccccccc ddddddddd eeeeeeeee fffffffff longestwordhere"

	assert.Equal(t,
		[]string{"longestwordhere", "alphabet1", "bbbbbbbbb", "ccccccccc", "ddddddddd"},
		analysis.Keywords(text, 5, 7))
}

func TestKeywords_KeepsPunctuationAndCountsRunes(t *testing.T) {
	assert.Equal(t, []string{"energy."}, analysis.Keywords("energy. energy", 5, 7))
	assert.Equal(t, []string{"фотосинтез"}, analysis.Keywords("фотосинтез свет", 5, 7))
}

func TestKeywords_NeverNil(t *testing.T) {
	assert.NotNil(t, analysis.Keywords("short words only", 5, 7))
	assert.NotNil(t, analysis.Keywords("anything", 0, 7))
}

func TestAnalyze(t *testing.T) {
	result := analysis.Analyze(lecture, analysis.DefaultOptions())

	assert.Equal(t,
		"Photosynthesis converts light into chemical energy. Chlorophyll absorbs light for photosynthesis.",
		result.Summary)
	assert.Equal(t, []string{"photosynthesis.", "Photosynthesis", "photosynthesis", "chloroplasts.", "Chlorophyll"}, result.Keywords)
}

func TestAnalyze_FallsBackToText(t *testing.T) {
	result := analysis.Analyze("   ", analysis.DefaultOptions())

	assert.Equal(t, "   ", result.Summary)
	assert.Equal(t, []string{}, result.Keywords)
}

func TestNoText(t *testing.T) {
	result := analysis.NoText()

	assert.Equal(t, analysis.NoTextSummary, result.Summary)
	assert.Equal(t, []string{}, result.Keywords)
}
