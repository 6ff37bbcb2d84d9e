package speech

import (
	"context"
	"io"
	"strings"
	"sync"
	"unicode"
)

// RecognitionLocale is the fixed locale for recognition passes.
const RecognitionLocale = "en-US"

// Transcriber is the platform speech-recognition capability. One call
// produces exactly one transcript or an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, locale string) (string, error)
}

// Callbacks receive the outcome of one listening pass. Exactly one of
// OnResult, OnError or OnEnd fires per Listen call.
type Callbacks struct {
	// OnResult delivers the sanitized answer plus the raw transcript.
	OnResult func(answer, transcript string)
	// OnError reports a platform recognition failure.
	OnError func(err error)
	// OnEnd fires when the pass finished without a usable result,
	// including when a self-repeat transcript was discarded.
	OnEnd func()
}

// State of a Listener.
type State int

const (
	StateIdle State = iota
	StateListening
)

// Listener wraps a Transcriber as a single-utterance, non-continuous
// recognition pass: idle -> listening -> idle. Calling Listen while a
// pass is active is an ignored no-op.
type Listener struct {
	mu          sync.Mutex
	transcriber Transcriber
	locale      string
	state       State
}

// NewListener creates a listener in the fixed recognition locale.
// A nil transcriber means recognition is unavailable on this host;
// every Listen call then no-ops.
func NewListener(transcriber Transcriber) *Listener {
	return &Listener{transcriber: transcriber, locale: RecognitionLocale}
}

// State returns the current listener state.
func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Listen starts one recognition pass over the supplied audio. The
// target is the word currently being quizzed; a transcript that equals
// the target (ignoring whitespace and case) is a self-repeat and is
// discarded without populating any input. Returns false when the call
// was ignored because a pass is already active or recognition is
// unavailable.
func (l *Listener) Listen(ctx context.Context, target string, audio io.Reader, filename string, cb Callbacks) bool {
	l.mu.Lock()
	if l.transcriber == nil || l.state == StateListening {
		l.mu.Unlock()
		return false
	}
	l.state = StateListening
	l.mu.Unlock()

	go func() {
		defer l.setIdle()

		transcript, err := l.transcriber.Transcribe(ctx, audio, filename, l.locale)
		if err != nil {
			if cb.OnError != nil {
				cb.OnError(err)
			}
			return
		}

		transcript = strings.TrimSpace(transcript)
		if transcript == "" || isSelfRepeat(transcript, target) {
			if cb.OnEnd != nil {
				cb.OnEnd()
			}
			return
		}

		if cb.OnResult != nil {
			cb.OnResult(SanitizeAnswer(transcript), transcript)
		}
	}()
	return true
}

func (l *Listener) setIdle() {
	l.mu.Lock()
	l.state = StateIdle
	l.mu.Unlock()
}

// isSelfRepeat reports whether the transcript is just the target word
// read back, ignoring whitespace and case. Dictating the word itself
// must not be scored as the answer.
func isSelfRepeat(transcript, target string) bool {
	return cleanForComparison(transcript) == cleanForComparison(target)
}

func cleanForComparison(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SanitizeAnswer derives the usable answer from a raw transcript:
// everything except letters, commas and periods is stripped, and
// whitespace runs collapse to single spaces.
func SanitizeAnswer(transcript string) string {
	var b strings.Builder
	space := false
	for _, r := range transcript {
		switch {
		case unicode.IsLetter(r) || r == ',' || r == '.':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}
