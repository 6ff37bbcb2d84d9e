package voice

import (
	"sync"

	"spellquiz/internal/models"
)

// StaticCatalog is a Catalog over an in-memory voice table. Update
// replaces the table and notifies subscribers, which models platforms
// that deliver their voice catalog asynchronously.
type StaticCatalog struct {
	mu     sync.Mutex
	voices []models.Voice
	subs   []func()
}

// NewStaticCatalog creates a catalog with an initial voice table.
func NewStaticCatalog(voices []models.Voice) *StaticCatalog {
	return &StaticCatalog{voices: voices}
}

// Voices returns a copy of the current voice table.
func (c *StaticCatalog) Voices() []models.Voice {
	c.mu.Lock()
	defer c.mu.Unlock()
	voices := make([]models.Voice, len(c.voices))
	copy(voices, c.voices)
	return voices
}

// Subscribe registers fn to run after every catalog change.
func (c *StaticCatalog) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Update replaces the voice table and notifies subscribers.
func (c *StaticCatalog) Update(voices []models.Voice) {
	c.mu.Lock()
	c.voices = make([]models.Voice, len(voices))
	copy(c.voices, voices)
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
