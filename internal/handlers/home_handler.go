package handlers

import (
	"html/template"
	"log"
	"net/http"

	"spellquiz/internal/quiz"
	"spellquiz/internal/voice"
	"spellquiz/internal/wordstore"
)

// HomeHandler renders the main menu.
type HomeHandler struct {
	registry  *Registry
	store     *wordstore.Store
	voices    *voice.Directory
	templates *template.Template
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(registry *Registry, store *wordstore.Store, voices *voice.Directory, templates *template.Template) *HomeHandler {
	return &HomeHandler{
		registry:  registry,
		store:     store,
		voices:    voices,
		templates: templates,
	}
}

// ShowMenu displays the main menu with the voice picker and the active
// list. A quiz still in progress gets a resume link rather than being
// abandoned by navigation.
func (h *HomeHandler) ShowMenu(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	session := h.registry.Get(w, r)

	var selectedName string
	if selected := h.voices.Selected(); selected != nil {
		selectedName = selected.Name
	}

	// A preview cue arrives as a query parameter after voice selection;
	// only names from the filtered catalog get an audio element.
	var previewName string
	if want := r.URL.Query().Get("preview"); want != "" {
		for _, v := range h.voices.Voices() {
			if v.Name == want {
				previewName = v.Name
				break
			}
		}
	}

	data := map[string]interface{}{
		"Title":         "SpellQuiz",
		"ActiveList":    h.store.ActiveName(),
		"WordCount":     len(h.store.Words()),
		"Voices":        h.voices.Voices(),
		"SelectedVoice": selectedName,
		"PreviewVoice":  previewName,
		"QuizActive":    session.Mode() == quiz.ModeActive,
	}

	if err := h.templates.ExecuteTemplate(w, "menu.tmpl", data); err != nil {
		log.Printf("Error rendering menu template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
