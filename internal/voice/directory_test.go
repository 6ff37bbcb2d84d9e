package voice

import (
	"testing"

	"spellquiz/internal/audio"
	"spellquiz/internal/models"
)

func testVoices() []models.Voice {
	return []models.Voice{
		{Name: "Daniel", Locale: "en-GB"},
		{Name: "Karen", Locale: "en-AU"},
		{Name: "Wendy", Locale: "en-SG"},
		{Name: "Samantha", Locale: "en-US"},
		{Name: "Ting-Ting", Locale: "zh-CN"},
		{Name: "Amelie", Locale: "fr-CA"},
	}
}

func newTestDirectory(policy Policy, voices []models.Voice) (*Directory, *StaticCatalog) {
	catalog := NewStaticCatalog(voices)
	return NewDirectory(catalog, policy, audio.NewSpeaker(nil)), catalog
}

func TestFilterByLanguagePrefix(t *testing.T) {
	tests := []struct {
		name      string
		policy    Policy
		wantCount int
	}{
		{name: "english only", policy: Policy{LangPrefixes: []string{"en"}}, wantCount: 4},
		{name: "english and chinese", policy: Policy{LangPrefixes: []string{"en", "zh"}}, wantCount: 5},
		{name: "no matching language", policy: Policy{LangPrefixes: []string{"de"}}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDirectory(tt.policy, testVoices())
			if got := len(d.Voices()); got != tt.wantCount {
				t.Errorf("filtered catalog has %d voices, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestFilterByNameAllowList(t *testing.T) {
	policy := Policy{
		LangPrefixes: []string{"en"},
		AllowedNames: []string{"Daniel", "Karen"},
	}
	d, _ := newTestDirectory(policy, testVoices())

	voices := d.Voices()
	if len(voices) != 2 {
		t.Fatalf("filtered catalog has %d voices, want 2", len(voices))
	}
	for _, v := range voices {
		if v.Name != "Daniel" && v.Name != "Karen" {
			t.Errorf("unexpected voice %q survived the allow list", v.Name)
		}
	}
}

func TestDefaultSelectionPrefersRegionalOrder(t *testing.T) {
	tests := []struct {
		name   string
		voices []models.Voice
		want   string
	}{
		{name: "singapore first", voices: testVoices(), want: "Wendy"},
		{
			name: "falls back to uk",
			voices: []models.Voice{
				{Name: "Karen", Locale: "en-AU"},
				{Name: "Daniel", Locale: "en-GB"},
			},
			want: "Daniel",
		},
		{
			name: "falls back to first filtered",
			voices: []models.Voice{
				{Name: "Samantha", Locale: "en-US"},
				{Name: "Moira", Locale: "en-IE"},
			},
			want: "Samantha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDirectory(DefaultPolicy(), tt.voices)
			selected := d.Selected()
			if selected == nil {
				t.Fatal("no default selection derived")
			}
			if selected.Name != tt.want {
				t.Errorf("default selection = %q, want %q", selected.Name, tt.want)
			}
		})
	}
}

func TestNoSurvivingVoiceLeavesSelectionUnset(t *testing.T) {
	d, _ := newTestDirectory(DefaultPolicy(), []models.Voice{
		{Name: "Amelie", Locale: "fr-CA"},
	})
	if d.Selected() != nil {
		t.Error("selection set although no voice survived the filter")
	}
}

func TestSelectUnknownNameKeepsPriorSelection(t *testing.T) {
	d, _ := newTestDirectory(DefaultPolicy(), testVoices())

	d.Select("Daniel")
	if got := d.Selected(); got == nil || got.Name != "Daniel" {
		t.Fatalf("Select(Daniel) did not take effect: %+v", got)
	}

	d.Select("Nonexistent")
	if got := d.Selected(); got == nil || got.Name != "Daniel" {
		t.Errorf("selection changed on unknown name: %+v", got)
	}
}

func TestSelectOnlyFromFilteredCatalog(t *testing.T) {
	d, _ := newTestDirectory(DefaultPolicy(), testVoices())

	// Amelie exists in the raw catalog but is filtered out.
	d.Select("Amelie")
	if got := d.Selected(); got != nil && got.Name == "Amelie" {
		t.Error("filtered-out voice became selected")
	}
}

func TestCatalogChangeRerunsFilterAndDefault(t *testing.T) {
	d, catalog := newTestDirectory(DefaultPolicy(), []models.Voice{
		{Name: "Samantha", Locale: "en-US"},
	})
	if got := d.Selected(); got == nil || got.Name != "Samantha" {
		t.Fatalf("initial selection = %+v, want Samantha", got)
	}

	// A later platform notification delivers the full catalog; the
	// directory must re-filter and re-derive the default.
	catalog.Update(testVoices())

	if got := len(d.Voices()); got != 4 {
		t.Errorf("filtered catalog has %d voices after update, want 4", got)
	}
	if got := d.Selected(); got == nil || got.Name != "Wendy" {
		t.Errorf("selection after update = %+v, want Wendy (en-SG)", got)
	}
}

func TestAdvancedPolicyAdmitsChinese(t *testing.T) {
	d, _ := newTestDirectory(AdvancedPolicy(), testVoices())
	found := false
	for _, v := range d.Voices() {
		if v.Name == "Ting-Ting" {
			found = true
		}
	}
	if !found {
		t.Error("advanced policy did not admit the Chinese voice")
	}
}
