package wordstore

import (
	"errors"
	"testing"

	"spellquiz/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New([]models.WordList{
		{Name: "week 1", Words: []models.Word{"cat", "dog", "bird"}},
		{Name: "week 2", Words: []models.Word{"fish", "horse"}},
	}, "week 1")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestAddWord(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
		wantLen int
	}{
		{name: "normal add", text: "mouse", wantErr: nil, wantLen: 4},
		{name: "trimmed and lowercased", text: "  Mouse  ", wantErr: nil, wantLen: 4},
		{name: "empty", text: "   ", wantErr: ErrEmptyWord, wantLen: 3},
		{name: "duplicate", text: "cat", wantErr: ErrDuplicateWord, wantLen: 3},
		{name: "duplicate different case", text: "CAT", wantErr: ErrDuplicateWord, wantLen: 3},
		{name: "multi-word phrase", text: "the cat sat down", wantErr: nil, wantLen: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			err := s.AddWord(tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddWord(%q) error = %v, want %v", tt.text, err, tt.wantErr)
			}
			if got := len(s.Words()); got != tt.wantLen {
				t.Errorf("list length = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestAddWordNormalizes(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddWord("  MousE "); err != nil {
		t.Fatalf("AddWord() error: %v", err)
	}
	words := s.Words()
	if words[len(words)-1] != "mouse" {
		t.Errorf("stored word = %q, want %q", words[len(words)-1], "mouse")
	}
}

func TestRemoveWord(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantErr error
		want    []models.Word
	}{
		{name: "remove first", index: 0, want: []models.Word{"dog", "bird"}},
		{name: "remove last", index: 2, want: []models.Word{"cat", "dog"}},
		{name: "negative index", index: -1, wantErr: ErrOutOfRange, want: []models.Word{"cat", "dog", "bird"}},
		{name: "past end", index: 3, wantErr: ErrOutOfRange, want: []models.Word{"cat", "dog", "bird"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			err := s.RemoveWord(tt.index)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RemoveWord(%d) error = %v, want %v", tt.index, err, tt.wantErr)
			}
			got := s.Words()
			if len(got) != len(tt.want) {
				t.Fatalf("list length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUpdateWord(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		text    string
		wantErr error
	}{
		{name: "replace in place", index: 1, text: "wolf"},
		{name: "same word same index", index: 1, text: "Dog"},
		{name: "collision with other index", index: 1, text: "cat", wantErr: ErrDuplicateWord},
		{name: "empty replacement", index: 1, text: " ", wantErr: ErrEmptyWord},
		{name: "out of range", index: 9, text: "wolf", wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			err := s.UpdateWord(tt.index, tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateWord(%d, %q) error = %v, want %v", tt.index, tt.text, err, tt.wantErr)
			}
		})
	}
}

func TestSelectList(t *testing.T) {
	s := newTestStore(t)

	if err := s.SelectList("week 2"); err != nil {
		t.Fatalf("SelectList() error: %v", err)
	}
	if got := s.ActiveName(); got != "week 2" {
		t.Errorf("ActiveName() = %q, want %q", got, "week 2")
	}
	if got := len(s.Words()); got != 2 {
		t.Errorf("active list length = %d, want 2", got)
	}

	if err := s.SelectList("nope"); !errors.Is(err, ErrUnknownList) {
		t.Errorf("SelectList(unknown) error = %v, want ErrUnknownList", err)
	}
	if got := s.ActiveName(); got != "week 2" {
		t.Errorf("selection changed on failure: ActiveName() = %q", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()

	if err := s.AddWord("zebra"); err != nil {
		t.Fatalf("AddWord() error: %v", err)
	}
	if err := s.RemoveWord(0); err != nil {
		t.Fatalf("RemoveWord() error: %v", err)
	}

	if len(snap) != 3 {
		t.Fatalf("snapshot length changed: %d", len(snap))
	}
	want := []models.Word{"cat", "dog", "bird"}
	for i := range snap {
		if snap[i] != want[i] {
			t.Errorf("snapshot position %d: got %q, want %q", i, snap[i], want[i])
		}
	}
}

func TestNewDedupesAndDropsEmpty(t *testing.T) {
	s, err := New([]models.WordList{
		{Name: "w", Words: []models.Word{"Cat", "cat", " ", "dog"}},
	}, "w")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	got := s.Words()
	if len(got) != 2 || got[0] != "cat" || got[1] != "dog" {
		t.Errorf("Words() = %v, want [cat dog]", got)
	}
}

func TestNewUnknownActive(t *testing.T) {
	_, err := New([]models.WordList{{Name: "w"}}, "missing")
	if !errors.Is(err, ErrUnknownList) {
		t.Errorf("New() error = %v, want ErrUnknownList", err)
	}
}

func TestDefaultLists(t *testing.T) {
	s, err := New(DefaultLists(), DefaultListName)
	if err != nil {
		t.Fatalf("New(DefaultLists()) error: %v", err)
	}
	if got := len(s.Words()); got != 20 {
		t.Errorf("default list has %d words, want 20", got)
	}
	if got := len(s.ListNames()); got != 3 {
		t.Errorf("registered lists = %d, want 3", got)
	}
}
