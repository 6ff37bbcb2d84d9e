package models

// Word is a single spelling word or a short dictation phrase.
// Words are stored trimmed and lower-cased; they are replaced
// wholesale on edit, never mutated in place.
type Word string

// WordList is a named ordered sequence of words.
type WordList struct {
	Name  string
	Words []Word
}

// Copy returns an independent copy of the list's words.
func (l *WordList) Copy() []Word {
	words := make([]Word, len(l.Words))
	copy(words, l.Words)
	return words
}
