package audio

import (
	"context"
	"sync"
	"testing"
	"time"

	"spellquiz/internal/models"
)

// fakeProvider records synthesis requests and can block until released.
type fakeProvider struct {
	mu       sync.Mutex
	calls    []string
	contexts []context.Context
	block    chan struct{}
	fail     error
}

func (f *fakeProvider) Synthesize(ctx context.Context, text string, voice models.Voice, rate float64) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.contexts = append(f.contexts, ctx)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.fail != nil {
		return "", f.fail
	}
	return "/tmp/" + cacheName(text, voice), nil
}

func (f *fakeProvider) Voices() []models.Voice { return nil }
func (f *fakeProvider) Name() string           { return "fake" }
func (f *fakeProvider) IsAvailable() error     { return nil }

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSpeakRecordsUtterance(t *testing.T) {
	provider := &fakeProvider{}
	speaker := NewSpeaker(provider)
	voice := &models.Voice{Name: "Test", Locale: "en-GB"}

	speaker.Speak("cat", voice)

	waitFor(t, func() bool {
		_, ok := speaker.Current()
		return ok
	})
	current, _ := speaker.Current()
	if current.Text != "cat" {
		t.Errorf("current utterance text = %q, want %q", current.Text, "cat")
	}
	if current.Voice.Name != "Test" {
		t.Errorf("current utterance voice = %q, want %q", current.Voice.Name, "Test")
	}
}

func TestSpeakPreemptsInFlightUtterance(t *testing.T) {
	provider := &fakeProvider{block: make(chan struct{})}
	speaker := NewSpeaker(provider)
	voice := &models.Voice{Name: "Test", Locale: "en-GB"}

	speaker.Speak("first", voice)
	waitFor(t, func() bool { return provider.callCount() == 1 })

	speaker.Speak("second", voice)
	waitFor(t, func() bool { return provider.callCount() == 2 })

	// The first request's context must be cancelled by the second.
	provider.mu.Lock()
	firstCtx := provider.contexts[0]
	provider.mu.Unlock()
	waitFor(t, func() bool { return firstCtx.Err() != nil })

	close(provider.block)
	waitFor(t, func() bool {
		current, ok := speaker.Current()
		return ok && current.Text == "second"
	})
}

func TestSpeakNoVoiceIsNoOp(t *testing.T) {
	provider := &fakeProvider{}
	speaker := NewSpeaker(provider)

	speaker.Speak("cat", nil)
	speaker.Speak("", &models.Voice{Name: "Test"})

	time.Sleep(20 * time.Millisecond)
	if provider.callCount() != 0 {
		t.Errorf("provider called %d times, want 0", provider.callCount())
	}
}

func TestSpeakNilProviderIsNoOp(t *testing.T) {
	speaker := NewSpeaker(nil)
	speaker.Speak("cat", &models.Voice{Name: "Test"})

	if _, ok := speaker.Current(); ok {
		t.Error("utterance recorded without a provider")
	}
}

func TestCancelClearsCurrent(t *testing.T) {
	provider := &fakeProvider{}
	speaker := NewSpeaker(provider)
	voice := &models.Voice{Name: "Test", Locale: "en-GB"}

	speaker.Speak("cat", voice)
	waitFor(t, func() bool {
		_, ok := speaker.Current()
		return ok
	})

	speaker.Cancel()
	if _, ok := speaker.Current(); ok {
		t.Error("current utterance survived Cancel")
	}
}

func TestAudioFileWithoutVoice(t *testing.T) {
	speaker := NewSpeaker(&fakeProvider{})
	if _, err := speaker.AudioFile(context.Background(), "cat", nil); err == nil {
		t.Error("AudioFile(nil voice) returned no error")
	}
}

func TestCacheName(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		voice models.Voice
		want  string
	}{
		{
			name:  "single word",
			text:  "cat",
			voice: models.Voice{Locale: "en-GB"},
			want:  "word_engb_cat.mp3",
		},
		{
			name:  "phrase with punctuation",
			text:  "We ate tarts, cookies and cakes",
			voice: models.Voice{Locale: "en-SG"},
			want:  "word_ensg_we_ate_tarts_cookies_and_cakes.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheName(tt.text, tt.voice); got != tt.want {
				t.Errorf("cacheName() = %q, want %q", got, tt.want)
			}
		})
	}
}
