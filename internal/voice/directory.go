package voice

import (
	"strings"
	"sync"

	"spellquiz/internal/audio"
	"spellquiz/internal/models"
)

// Catalog is the platform voice-catalog capability. Implementations
// may discover voices asynchronously; they notify subscribers whenever
// the catalog becomes available or changes.
type Catalog interface {
	Voices() []models.Voice
	Subscribe(fn func())
}

// Policy is the injected voice-filter configuration.
type Policy struct {
	// LangPrefixes keeps voices whose locale tag begins with one of
	// these language prefixes.
	LangPrefixes []string `yaml:"lang_prefixes"`

	// AllowedNames, when non-empty, further restricts the catalog to
	// this literal set of voice names.
	AllowedNames []string `yaml:"allowed_names"`

	// PreferredLocales is the prioritized list of exact locale matches
	// used to derive the default selection.
	PreferredLocales []string `yaml:"preferred_locales"`
}

// DefaultPolicy is the standard policy: English voices with a
// Singapore, United Kingdom, Australia regional preference.
func DefaultPolicy() Policy {
	return Policy{
		LangPrefixes:     []string{"en"},
		PreferredLocales: []string{"en-SG", "en-GB", "en-AU"},
	}
}

// AdvancedPolicy additionally admits Chinese voices.
func AdvancedPolicy() Policy {
	p := DefaultPolicy()
	p.LangPrefixes = append(p.LangPrefixes, "zh")
	return p
}

// Directory tracks the filtered voice catalog and the selected voice.
// It re-runs the filter and re-derives the default selection on every
// catalog change notification, not just at startup.
type Directory struct {
	mu       sync.Mutex
	catalog  Catalog
	policy   Policy
	speaker  *audio.Speaker
	filtered []models.Voice
	selected *models.Voice
}

// NewDirectory creates a directory over the catalog, subscribes to its
// change notifications and performs an initial refresh.
func NewDirectory(catalog Catalog, policy Policy, speaker *audio.Speaker) *Directory {
	d := &Directory{
		catalog: catalog,
		policy:  policy,
		speaker: speaker,
	}
	catalog.Subscribe(d.Refresh)
	d.Refresh()
	return d
}

// Refresh re-queries the catalog, applies the filter policy and
// re-derives the default selection.
func (d *Directory) Refresh() {
	voices := d.catalog.Voices()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.filtered = d.filter(voices)
	d.selected = d.defaultSelection()
}

func (d *Directory) filter(voices []models.Voice) []models.Voice {
	var kept []models.Voice
	for _, v := range voices {
		if !d.matchesLanguage(v) {
			continue
		}
		if len(d.policy.AllowedNames) > 0 && !containsFold(d.policy.AllowedNames, v.Name) {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

func (d *Directory) matchesLanguage(v models.Voice) bool {
	locale := strings.ToLower(v.Locale)
	for _, prefix := range d.policy.LangPrefixes {
		if strings.HasPrefix(locale, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

func (d *Directory) defaultSelection() *models.Voice {
	for _, preferred := range d.policy.PreferredLocales {
		for i := range d.filtered {
			if strings.EqualFold(d.filtered[i].Locale, preferred) {
				v := d.filtered[i]
				return &v
			}
		}
	}
	if len(d.filtered) > 0 {
		v := d.filtered[0]
		return &v
	}
	return nil
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Voices returns a copy of the filtered catalog.
func (d *Directory) Voices() []models.Voice {
	d.mu.Lock()
	defer d.mu.Unlock()
	voices := make([]models.Voice, len(d.filtered))
	copy(voices, d.filtered)
	return voices
}

// Selected returns the selected voice, or nil when no voice survived
// the filter. Playback is a no-op in the nil case.
func (d *Directory) Selected() *models.Voice {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected == nil {
		return nil
	}
	v := *d.selected
	return &v
}

// Select sets the selected voice to the filtered-catalog entry with
// the given name. An unknown name keeps the prior selection; callers
// are expected to offer only names drawn from Voices().
func (d *Directory) Select(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.filtered {
		if strings.EqualFold(d.filtered[i].Name, name) {
			v := d.filtered[i]
			d.selected = &v
			return
		}
	}
}

// Preview speaks the fixed sample phrase with the given voice,
// independent of the current selection.
func (d *Directory) Preview(v models.Voice) {
	d.speaker.Speak(audio.PreviewPhrase, &v)
}
