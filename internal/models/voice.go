package models

import "strings"

// Voice describes a synthesized voice offered by a speech provider.
// The app holds references to voices; it never mutates one.
type Voice struct {
	Name     string
	Locale   string // BCP 47 tag, e.g. "en-SG"
	Provider string
}

// DisplayName renders a voice for selection menus as "Name (REGION)".
func (v Voice) DisplayName() string {
	if v.Name == "" {
		return "No voice available"
	}
	if _, region, found := strings.Cut(v.Locale, "-"); found && region != "" {
		return v.Name + " (" + region + ")"
	}
	return v.Name
}
