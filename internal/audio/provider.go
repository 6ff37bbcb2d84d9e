package audio

import (
	"context"
	"errors"
	"strings"

	"spellquiz/internal/models"
)

// ErrUnavailable is returned by providers that are not configured on
// this host. Playback downgrades to a no-op in that case; the quiz
// stays fully playable with typed input.
var ErrUnavailable = errors.New("text-to-speech unavailable")

// Provider is the platform text-to-speech capability boundary.
type Provider interface {
	// Synthesize renders text with the given voice at the given rate
	// (1.0 = natural speed) and returns the path of the resulting MP3.
	// Results are cached on disk; repeated calls for the same text and
	// voice are cheap.
	Synthesize(ctx context.Context, text string, voice models.Voice, rate float64) (string, error)

	// Voices lists the voices this provider offers.
	Voices() []models.Voice

	// Name returns the provider name.
	Name() string

	// IsAvailable checks that the provider is configured and usable.
	IsAvailable() error
}

// Config holds settings shared by the audio providers.
type Config struct {
	Provider string // "google" or "openai"
	CacheDir string

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string // "tts-1", "tts-1-hd" or "gpt-4o-mini-tts"
}

// NewProvider creates the provider selected by the configuration.
func NewProvider(cfg *Config) (Provider, error) {
	switch cfg.Provider {
	case "google", "":
		return NewGoogleProvider(cfg.CacheDir), nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, errors.New("unknown audio provider: " + cfg.Provider)
	}
}

// cacheName builds a stable cache filename for a text/voice pair.
func cacheName(text string, voice models.Voice) string {
	sanitize := func(s string) string {
		var b strings.Builder
		for _, r := range strings.ToLower(strings.TrimSpace(s)) {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				b.WriteRune(r)
			case r == ' ':
				b.WriteByte('_')
			}
		}
		return b.String()
	}
	return "word_" + sanitize(voice.Locale) + "_" + sanitize(text) + ".mp3"
}
