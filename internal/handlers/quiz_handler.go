package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"spellquiz/internal/audio"
	"spellquiz/internal/quiz"
	"spellquiz/internal/voice"
)

// QuizHandler drives the quiz screens: start, answer submission,
// replay, abandon, retry and the summary.
type QuizHandler struct {
	registry  *Registry
	speaker   *audio.Speaker
	voices    *voice.Directory
	templates *template.Template
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(registry *Registry, speaker *audio.Speaker, voices *voice.Directory, templates *template.Template) *QuizHandler {
	return &QuizHandler{
		registry:  registry,
		speaker:   speaker,
		voices:    voices,
		templates: templates,
	}
}

// StartQuiz snapshots the active list and enters the first word.
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	if err := session.Start(); err != nil {
		if errors.Is(err, quiz.ErrNoWords) {
			http.Redirect(w, r, "/words/edit", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to start quiz", "Error starting quiz", err)
		return
	}
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// ShowQuiz displays the current word screen.
func (h *QuizHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	switch session.Mode() {
	case quiz.ModeSummary:
		http.Redirect(w, r, "/quiz/results", http.StatusSeeOther)
		return
	case quiz.ModeActive:
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":        "Quiz - SpellQuiz",
		"CurrentIndex": session.Index() + 1,
		"TotalWords":   len(session.Words()),
		"Input":        session.Input(),
		"SpeechInput":  session.Options().SpeechInput,
		"HasVoice":     h.voices.Selected() != nil,
	}

	if err := h.templates.ExecuteTemplate(w, "quiz.tmpl", data); err != nil {
		log.Printf("Error rendering quiz template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// SubmitAnswer records the typed answer and advances, or finishes the
// quiz after the last word.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	if session.Mode() != quiz.ModeActive {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	session.TypeInput(r.FormValue("answer"))
	feedback, immediate := session.SubmitNext()

	if immediate {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"isCorrect":   feedback.Correct,
			"correctWord": string(feedback.Word),
			"answer":      feedback.Answer,
			"finished":    session.Mode() == quiz.ModeSummary,
		})
		return
	}

	if session.Mode() == quiz.ModeSummary {
		http.Redirect(w, r, "/quiz/results", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// ReplayWord re-speaks the current word without touching session
// state, then reloads the quiz screen so its audio element refetches
// the word.
func (h *QuizHandler) ReplayWord(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	session.Replay()
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// ExitQuiz abandons the session back to the menu.
func (h *QuizHandler) ExitQuiz(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	session.BackToMenu()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RetryQuiz starts a fresh quiz from the summary screen.
func (h *QuizHandler) RetryQuiz(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	if err := session.Retry(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to restart quiz", "Error restarting quiz", err)
		return
	}
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// ShowResults renders the summary report.
func (h *QuizHandler) ShowResults(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	if session.Mode() != quiz.ModeSummary {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	entries, score, percentage := session.Summary()

	data := map[string]interface{}{
		"Title":      "Summary - SpellQuiz",
		"Entries":    entries,
		"Score":      score,
		"Total":      len(session.Words()),
		"Percentage": percentage,
	}

	if err := h.templates.ExecuteTemplate(w, "summary.tmpl", data); err != nil {
		log.Printf("Error rendering summary template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WordAudio streams the synthesized audio for the current word so the
// quiz screen's player can fetch it.
func (h *QuizHandler) WordAudio(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	word, ok := session.CurrentWord()
	if !ok {
		http.NotFound(w, r)
		return
	}

	path, err := h.speaker.AudioFile(r.Context(), string(word), h.voices.Selected())
	if err != nil {
		// No voice or no provider: the quiz stays playable without audio.
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// TranscriptAudio streams synthesized audio of a recorded transcript,
// for the summary screen's playback handles.
func (h *QuizHandler) TranscriptAudio(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid index", "", err)
		return
	}

	transcript, ok := session.TranscriptAt(index)
	if !ok {
		http.NotFound(w, r)
		return
	}

	path, err := h.speaker.AudioFile(r.Context(), transcript, h.voices.Selected())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}
