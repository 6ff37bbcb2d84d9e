package handlers

import (
	"encoding/json"
	"net/http"

	"spellquiz/internal/quiz"
	"spellquiz/internal/speech"
)

// maxAudioUpload bounds the size of one recorded utterance.
const maxAudioUpload = 10 << 20 // 10MB

// SpeechHandler accepts recorded audio from the quiz screen and runs a
// recognition pass over it, feeding the outcome into the quiz session.
type SpeechHandler struct {
	registry *Registry
	listener *speech.Listener
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(registry *Registry, listener *speech.Listener) *SpeechHandler {
	return &SpeechHandler{
		registry: registry,
		listener: listener,
	}
}

// Transcribe runs one recognition pass over the uploaded audio and
// reports what the pass produced. The result also lands in the session
// so the next quiz render shows the recognized answer.
func (h *SpeechHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	if session.Mode() != quiz.ModeActive || !session.Options().SpeechInput {
		respondWithError(w, http.StatusConflict, "Speech input is not active", "", nil)
		return
	}

	target, ok := session.CurrentWord()
	if !ok {
		respondWithError(w, http.StatusConflict, "No word is being quizzed", "", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing audio upload", "Error reading audio upload", err)
		return
	}
	defer file.Close()

	type outcome struct {
		status     string
		answer     string
		transcript string
	}
	done := make(chan outcome, 1)

	started := h.listener.Listen(r.Context(), string(target), file, header.Filename, speech.Callbacks{
		OnResult: func(answer, transcript string) {
			session.HandleEvent(quiz.RecognitionResult{Answer: answer, Transcript: transcript})
			done <- outcome{status: "result", answer: answer, transcript: transcript}
		},
		OnError: func(err error) {
			session.HandleEvent(quiz.RecognitionError{Err: err})
			done <- outcome{status: "error"}
		},
		OnEnd: func() {
			session.HandleEvent(quiz.RecognitionEnd{})
			done <- outcome{status: "end"}
		},
	})
	if !started {
		respondWithError(w, http.StatusServiceUnavailable, "Speech recognition is unavailable", "", nil)
		return
	}

	select {
	case out := <-done:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     out.status,
			"answer":     out.answer,
			"transcript": out.transcript,
		})
	case <-r.Context().Done():
		// The pass keeps running and still updates the session; the
		// next quiz render picks up whatever it produced.
	}
}
