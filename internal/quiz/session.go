package quiz

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"spellquiz/internal/models"
	"spellquiz/internal/scoring"
)

// ErrNoWords is returned when a quiz is started from an empty list.
var ErrNoWords = errors.New("active word list has no words")

// DefaultAutoPlayDelay is the debounce before auto-playing a newly
// presented word, letting the screen settle first.
const DefaultAutoPlayDelay = 500 * time.Millisecond

// Mode is the screen the session is currently on.
type Mode int

const (
	ModeMenu Mode = iota
	ModeListSelect
	ModeActive
	ModeSummary
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeListSelect:
		return "listSelect"
	case ModeActive:
		return "active"
	case ModeSummary:
		return "summary"
	}
	return "unknown"
}

// Options selects between the app variants as policies over one
// transition table rather than forked session code.
type Options struct {
	// ImmediateFeedback reports a per-word verdict on every submit
	// instead of deferring everything to the summary.
	ImmediateFeedback bool

	// SpeechInput enables dictation: commas and periods join the
	// allowed input set and transcripts are retained per word.
	SpeechInput bool

	// AutoPlayDelay overrides the auto-play debounce. Zero means
	// DefaultAutoPlayDelay.
	AutoPlayDelay time.Duration
}

// WordSource supplies the snapshot for a new quiz run.
type WordSource interface {
	Snapshot() []models.Word
}

// Speaker is the slice of the speech output adapter the session drives.
type Speaker interface {
	Speak(text string, voice *models.Voice)
	Cancel()
}

// VoiceSource yields the currently selected voice, nil when none.
type VoiceSource interface {
	Selected() *models.Voice
}

// Event is a platform callback delivered to the session's transition
// function. User operations are methods; platform notifications are
// events, keeping the state machine free of callback registration.
type Event interface{ isEvent() }

// RecognitionResult carries one recognized answer: the sanitized text
// for the input buffer and the raw transcript for later replay.
type RecognitionResult struct {
	Answer     string
	Transcript string
}

// RecognitionError reports a platform recognition failure. The
// session's input is left untouched.
type RecognitionError struct{ Err error }

// RecognitionEnd fires when a listening pass finished without a
// usable result.
type RecognitionEnd struct{}

// playTimerFired is the delayed auto-play timer going off.
type playTimerFired struct {
	index int
	gen   uint64
}

func (RecognitionResult) isEvent() {}
func (RecognitionError) isEvent()  {}
func (RecognitionEnd) isEvent()    {}
func (playTimerFired) isEvent()    {}

// Feedback is the per-word verdict reported in immediate-feedback mode.
type Feedback struct {
	Word    models.Word
	Answer  string
	Correct bool
}

// Session is the quiz state machine. It owns the shuffled snapshot of
// the word list, the current position, and the per-word answers, and
// it drives the speaker whenever the current word changes.
//
// Handlers and timers call in from multiple goroutines, so state is
// guarded by a mutex; semantically each call is still one event
// processed to completion.
type Session struct {
	mu      sync.Mutex
	opts    Options
	source  WordSource
	speaker Speaker
	voices  VoiceSource

	mode        Mode
	words       []models.Word
	index       int
	answers     map[int]string
	transcripts map[int]string
	input       string
	pending     string // transcript awaiting the next submit

	timer    *time.Timer
	timerGen uint64
}

// NewSession creates a session on the menu screen.
func NewSession(source WordSource, speaker Speaker, voices VoiceSource, opts Options) *Session {
	if opts.AutoPlayDelay == 0 {
		opts.AutoPlayDelay = DefaultAutoPlayDelay
	}
	return &Session{
		opts:    opts,
		source:  source,
		speaker: speaker,
		voices:  voices,
		mode:    ModeMenu,
	}
}

// Mode returns the current screen.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Options returns the session's variant policies.
func (s *Session) Options() Options {
	return s.opts
}

// Words returns a copy of the session snapshot.
func (s *Session) Words() []models.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	words := make([]models.Word, len(s.words))
	copy(words, s.words)
	return words
}

// Index returns the 0-based current position.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Input returns the live input buffer.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// CurrentWord returns the word being quizzed, false outside active mode.
func (s *Session) CurrentWord() (models.Word, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeActive {
		return "", false
	}
	return s.words[s.index], true
}

// ShowListSelect moves from the menu to the word-list selection screen.
func (s *Session) ShowListSelect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeMenu {
		s.mode = ModeListSelect
	}
}

// Start begins a quiz: it snapshots the active word list, shuffles it
// uniformly, resets the per-session maps and enters active(0). The
// snapshot is fixed for the session's lifetime; later word-list edits
// do not reach a running quiz.
func (s *Session) Start() error {
	words := s.source.Snapshot()
	if len(words) == 0 {
		return ErrNoWords
	}
	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	s.mu.Lock()
	s.words = words
	s.index = 0
	s.answers = make(map[int]string)
	s.transcripts = make(map[int]string)
	s.input = ""
	s.pending = ""
	s.mode = ModeActive
	s.scheduleAutoPlayLocked()
	s.mu.Unlock()
	return nil
}

// Retry behaves exactly like Start: a fresh shuffle drawn from the
// current word store, not the previous session's order.
func (s *Session) Retry() error {
	s.mu.Lock()
	if s.mode != ModeSummary {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.Start()
}

// TypeInput replaces the live input buffer with text, stripped to the
// allowed character set. This is an input-buffer policy, not a scoring
// policy; scoring sees whatever was in the buffer at submit time.
func (s *Session) TypeInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeActive {
		return
	}
	s.input = sanitizeInput(text, s.opts.SpeechInput)
}

// SubmitNext records the current input at the current index — an
// empty buffer records as "" which is distinct from never visited —
// then advances, or freezes the session into the summary after the
// last word. The returned feedback is meaningful only when the session
// runs with ImmediateFeedback.
func (s *Session) SubmitNext() (Feedback, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeActive {
		return Feedback{}, false
	}

	word := s.words[s.index]
	answer := strings.TrimSpace(s.input)
	s.answers[s.index] = answer
	if s.pending != "" {
		s.transcripts[s.index] = s.pending
		s.pending = ""
	}
	s.input = ""

	var fb Feedback
	if s.opts.ImmediateFeedback {
		fb = Feedback{Word: word, Answer: answer, Correct: scoring.IsCorrect(answer, word)}
	}

	if s.index+1 < len(s.words) {
		s.index++
		s.scheduleAutoPlayLocked()
	} else {
		s.cancelAutoPlayLocked()
		s.mode = ModeSummary
	}
	return fb, s.opts.ImmediateFeedback
}

// Replay re-speaks the current word immediately. No state changes and
// no new auto-play timer.
func (s *Session) Replay() {
	s.mu.Lock()
	if s.mode != ModeActive {
		s.mu.Unlock()
		return
	}
	word := s.words[s.index]
	s.mu.Unlock()
	s.speak(word)
}

// BackToMenu abandons the session from any state. The snapshot and
// answer maps are discarded, never merged back into the word store,
// and any in-flight utterance is stopped.
func (s *Session) BackToMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAutoPlayLocked()
	s.speaker.Cancel()
	s.words = nil
	s.answers = nil
	s.transcripts = nil
	s.input = ""
	s.pending = ""
	s.index = 0
	s.mode = ModeMenu
}

// HandleEvent is the transition function for platform callbacks.
func (s *Session) HandleEvent(ev Event) {
	switch e := ev.(type) {
	case RecognitionResult:
		s.mu.Lock()
		if s.mode == ModeActive {
			s.input = sanitizeInput(e.Answer, s.opts.SpeechInput)
			s.pending = e.Transcript
		}
		s.mu.Unlock()

	case RecognitionError, RecognitionEnd:
		// Recognition is back to idle; prior input stays untouched and
		// nothing retries automatically.

	case playTimerFired:
		s.mu.Lock()
		if s.mode != ModeActive || s.index != e.index || s.timerGen != e.gen {
			// Stale timer: the session moved on before the debounce
			// elapsed. Playing now would speak a word no longer current.
			s.mu.Unlock()
			return
		}
		word := s.words[s.index]
		s.mu.Unlock()
		s.speak(word)
	}
}

// Summary returns the report and aggregate score for a finished quiz.
func (s *Session) Summary() ([]scoring.Entry, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := scoring.Report(s.words, s.answers, s.transcripts)
	return entries, scoring.Score(s.words, s.answers), scoring.Percentage(s.words, s.answers)
}

// TranscriptAt returns the raw transcript recorded at index, if any.
// The summary screen speaks transcripts back through the synthesizer
// so a wrong answer can be heard as it was recognized.
func (s *Session) TranscriptAt(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr, ok := s.transcripts[index]
	return tr, ok
}

func (s *Session) speak(word models.Word) {
	s.speaker.Speak(string(word), s.voices.Selected())
}

// scheduleAutoPlayLocked arms the delayed auto-play for the current
// index, replacing any previous timer. Called with s.mu held.
func (s *Session) scheduleAutoPlayLocked() {
	s.cancelAutoPlayLocked()
	s.timerGen++
	gen := s.timerGen
	index := s.index
	s.timer = time.AfterFunc(s.opts.AutoPlayDelay, func() {
		s.HandleEvent(playTimerFired{index: index, gen: gen})
	})
}

// cancelAutoPlayLocked stops a pending auto-play timer. Called with
// s.mu held.
func (s *Session) cancelAutoPlayLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

// sanitizeInput strips everything outside the allowed input set:
// letters and spaces, plus commas and periods when dictation is on.
func sanitizeInput(text string, allowPunct bool) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || r == ' ':
			b.WriteRune(r)
		case allowPunct && (r == ',' || r == '.'):
			b.WriteRune(r)
		}
	}
	return b.String()
}
