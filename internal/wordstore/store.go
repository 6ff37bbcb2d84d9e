package wordstore

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"spellquiz/internal/models"
)

var (
	ErrEmptyWord     = errors.New("word is empty")
	ErrDuplicateWord = errors.New("word already in list")
	ErrOutOfRange    = errors.New("word index out of range")
	ErrUnknownList   = errors.New("unknown word list")
)

// Store owns the registered word lists and tracks which one is active.
// Mutations only affect the store itself; quiz sessions snapshot the
// active list at start and are never touched by later edits.
type Store struct {
	mu     sync.Mutex
	lists  map[string]*models.WordList
	active string
}

// New creates a store from the given named lists and marks activeName
// as the active list. Words are normalized on the way in; duplicates
// within a list (case-insensitive) are dropped.
func New(lists []models.WordList, activeName string) (*Store, error) {
	s := &Store{lists: make(map[string]*models.WordList, len(lists))}
	for _, l := range lists {
		reg := &models.WordList{Name: l.Name}
		for _, w := range l.Words {
			norm := Normalize(string(w))
			if norm == "" || containsWord(reg.Words, norm) {
				continue
			}
			reg.Words = append(reg.Words, models.Word(norm))
		}
		s.lists[l.Name] = reg
	}
	if _, ok := s.lists[activeName]; !ok {
		return nil, ErrUnknownList
	}
	s.active = activeName
	return s, nil
}

// Normalize trims surrounding whitespace and lower-cases a word.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsWord(words []models.Word, norm string) bool {
	for _, w := range words {
		if strings.EqualFold(string(w), norm) {
			return true
		}
	}
	return false
}

// ActiveName returns the name of the active list.
func (s *Store) ActiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ListNames returns the registered list names in sorted order.
func (s *Store) ListNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.lists))
	for name := range s.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Words returns a copy of the active list's words.
func (s *Store) Words() []models.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists[s.active].Copy()
}

// Snapshot returns an independent copy of the active list for a new
// quiz session. Later edits to the store do not affect the snapshot.
func (s *Store) Snapshot() []models.Word {
	return s.Words()
}

// SelectList switches the active list. Returns ErrUnknownList if no
// list with that name is registered; the prior selection is kept.
func (s *Store) SelectList(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[name]; !ok {
		return ErrUnknownList
	}
	s.active = name
	return nil
}

// AddWord appends a word to the active list. The word is trimmed and
// lower-cased first. Empty words and case-insensitive duplicates are
// rejected.
func (s *Store) AddWord(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	norm := Normalize(text)
	if norm == "" {
		return ErrEmptyWord
	}
	list := s.lists[s.active]
	if containsWord(list.Words, norm) {
		return ErrDuplicateWord
	}
	list.Words = append(list.Words, models.Word(norm))
	return nil
}

// RemoveWord removes the word at index from the active list.
func (s *Store) RemoveWord(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[s.active]
	if index < 0 || index >= len(list.Words) {
		return ErrOutOfRange
	}
	list.Words = append(list.Words[:index], list.Words[index+1:]...)
	return nil
}

// UpdateWord replaces the word at index in the active list. The same
// normalization and duplicate rules as AddWord apply, except that the
// entry being replaced does not count as a collision with itself.
func (s *Store) UpdateWord(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[s.active]
	if index < 0 || index >= len(list.Words) {
		return ErrOutOfRange
	}
	norm := Normalize(text)
	if norm == "" {
		return ErrEmptyWord
	}
	for i, w := range list.Words {
		if i != index && strings.EqualFold(string(w), norm) {
			return ErrDuplicateWord
		}
	}
	list.Words[index] = models.Word(norm)
	return nil
}
