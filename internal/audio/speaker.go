package audio

import (
	"context"
	"log"
	"sync"

	"spellquiz/internal/models"
)

// SpeechRate is the fixed playback rate for all utterances, slightly
// slower than natural speech for intelligibility.
const SpeechRate = 0.8

// PreviewPhrase is spoken when auditioning a voice.
const PreviewPhrase = "Hello, this is a preview"

// Utterance is one completed request to render text in a voice.
type Utterance struct {
	Text  string
	Voice models.Voice
	Path  string
}

// Speaker wraps a Provider with the playback policy: at most one
// utterance is in flight system-wide, and starting a new one always
// preempts the previous. Speak is fire-and-forget and silently no-ops
// when no voice or provider is available.
type Speaker struct {
	mu       sync.Mutex
	provider Provider
	cancel   context.CancelFunc
	current  *Utterance
}

// NewSpeaker creates a speaker over the given provider. A nil provider
// is allowed; every Speak call is then a no-op.
func NewSpeaker(provider Provider) *Speaker {
	return &Speaker{provider: provider}
}

// Speak cancels any utterance currently in flight and requests
// synthesis of text with the given voice. The caller does not await
// completion; Current exposes the latest finished utterance.
func (s *Speaker) Speak(text string, voice *models.Voice) {
	if text == "" || voice == nil {
		return
	}

	s.mu.Lock()
	if s.provider == nil || s.provider.IsAvailable() != nil {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	v := *voice
	s.mu.Unlock()

	go func() {
		path, err := s.provider.Synthesize(ctx, text, v, SpeechRate)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Speech synthesis failed for %q: %v", text, err)
			}
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if ctx.Err() != nil {
			// Preempted while synthesizing; a newer utterance owns playback.
			return
		}
		s.current = &Utterance{Text: text, Voice: v, Path: path}
	}()
}

// Cancel stops any in-flight utterance and clears the current one.
func (s *Speaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = nil
}

// Current returns the most recently completed utterance, if any.
func (s *Speaker) Current() (Utterance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Utterance{}, false
	}
	return *s.current, true
}

// AudioFile synthesizes text synchronously and returns the cached MP3
// path, for handlers that stream audio to the browser.
func (s *Speaker) AudioFile(ctx context.Context, text string, voice *models.Voice) (string, error) {
	if voice == nil {
		return "", ErrUnavailable
	}
	s.mu.Lock()
	provider := s.provider
	s.mu.Unlock()
	if provider == nil {
		return "", ErrUnavailable
	}
	if err := provider.IsAvailable(); err != nil {
		return "", err
	}
	return provider.Synthesize(ctx, text, *voice, SpeechRate)
}
