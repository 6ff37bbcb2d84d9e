package scoring

import (
	"math"
	"strings"

	"spellquiz/internal/models"
)

// IsCorrect reports whether an answer matches the expected word.
// The answer is trimmed and compared case-insensitively; the word is
// used verbatim since it was normalized when stored. No partial credit.
func IsCorrect(answer string, word models.Word) bool {
	return strings.EqualFold(strings.TrimSpace(answer), string(word))
}

// Score counts the correctly answered indices. Unvisited or empty
// answers count as wrong.
func Score(words []models.Word, answers map[int]string) int {
	correct := 0
	for i, word := range words {
		if IsCorrect(answers[i], word) {
			correct++
		}
	}
	return correct
}

// Percentage returns the rounded percentage of correct answers.
// An empty quiz scores 0 rather than dividing by zero.
func Percentage(words []models.Word, answers map[int]string) int {
	if len(words) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(Score(words, answers)) / float64(len(words))))
}

// Entry is one row of the summary report.
type Entry struct {
	Index      int
	Word       models.Word
	Answer     string
	NoAnswer   bool
	Correct    bool
	Transcript string // raw speech transcript, empty if none was captured
}

// Report builds per-word summary entries from a finished session's
// recorded answers. Correctness is computed here, on demand; nothing
// is cached between calls.
func Report(words []models.Word, answers, transcripts map[int]string) []Entry {
	entries := make([]Entry, len(words))
	for i, word := range words {
		answer := answers[i]
		entries[i] = Entry{
			Index:      i,
			Word:       word,
			Answer:     answer,
			NoAnswer:   strings.TrimSpace(answer) == "",
			Correct:    IsCorrect(answer, word),
			Transcript: transcripts[i],
		}
	}
	return entries
}
