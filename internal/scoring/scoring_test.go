package scoring

import (
	"testing"

	"spellquiz/internal/models"
)

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		word   models.Word
		want   bool
	}{
		{name: "exact match", answer: "cat", word: "cat", want: true},
		{name: "trailing space trimmed", answer: "Beautiful ", word: "beautiful", want: true},
		{name: "leading space trimmed", answer: "  dog", word: "dog", want: true},
		{name: "case insensitive", answer: "ENVIRONMENT", word: "environment", want: true},
		{name: "misspelling", answer: "beutiful", word: "beautiful", want: false},
		{name: "empty answer", answer: "", word: "cat", want: false},
		{name: "no edit distance tolerance", answer: "cats", word: "cat", want: false},
		{name: "phrase match", answer: "we ate tarts, cookies and cakes", word: "we ate tarts, cookies and cakes", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(tt.answer, tt.word); got != tt.want {
				t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.answer, tt.word, got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	words := []models.Word{"cat", "dog", "bird"}

	tests := []struct {
		name    string
		answers map[int]string
		want    int
	}{
		{name: "all correct", answers: map[int]string{0: "cat", 1: "dog", 2: "bird"}, want: 3},
		{name: "one wrong", answers: map[int]string{0: "cat", 1: "dig", 2: "bird"}, want: 2},
		{name: "sparse answers", answers: map[int]string{1: "dog"}, want: 1},
		{name: "all empty", answers: map[int]string{0: "", 1: "", 2: ""}, want: 0},
		{name: "nil map", answers: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(words, tt.answers); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name    string
		words   []models.Word
		answers map[int]string
		want    int
	}{
		{name: "empty quiz is zero", words: nil, answers: nil, want: 0},
		{name: "full marks", words: []models.Word{"cat", "dog"}, answers: map[int]string{0: "cat", 1: "dog"}, want: 100},
		{name: "half", words: []models.Word{"cat", "dog"}, answers: map[int]string{0: "cat"}, want: 50},
		{name: "rounds to nearest", words: []models.Word{"a", "b", "c"}, answers: map[int]string{0: "a"}, want: 33},
		{name: "rounds up", words: []models.Word{"a", "b", "c"}, answers: map[int]string{0: "a", 1: "b"}, want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.words, tt.answers); got != tt.want {
				t.Errorf("Percentage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	words := []models.Word{"cat", "dog"}
	answers := map[int]string{0: "cat", 1: ""}
	transcripts := map[int]string{0: "the cat"}

	entries := Report(words, answers, transcripts)
	if len(entries) != 2 {
		t.Fatalf("Report() returned %d entries, want 2", len(entries))
	}

	first := entries[0]
	if !first.Correct || first.NoAnswer || first.Transcript != "the cat" {
		t.Errorf("first entry = %+v, want correct with transcript", first)
	}

	second := entries[1]
	if second.Correct {
		t.Error("second entry marked correct, want incorrect")
	}
	if !second.NoAnswer {
		t.Error("empty answer not marked as no answer")
	}
	if second.Transcript != "" {
		t.Errorf("second entry transcript = %q, want empty", second.Transcript)
	}
}
