package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"spellquiz/internal/wordstore"
)

// ListHandler serves the word-list screens: view, edit and selection
// of the active list.
type ListHandler struct {
	registry  *Registry
	store     *wordstore.Store
	templates *template.Template
}

// NewListHandler creates a new list handler
func NewListHandler(registry *Registry, store *wordstore.Store, templates *template.Template) *ListHandler {
	return &ListHandler{
		registry:  registry,
		store:     store,
		templates: templates,
	}
}

// ShowWordList displays the active list read-only.
func (h *ListHandler) ShowWordList(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":    "Word List - SpellQuiz",
		"ListName": h.store.ActiveName(),
		"Words":    h.store.Words(),
	}
	if err := h.templates.ExecuteTemplate(w, "wordlist.tmpl", data); err != nil {
		log.Printf("Error rendering wordlist template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ShowEdit displays the list editing screen.
func (h *ListHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	h.renderEdit(w, "")
}

func (h *ListHandler) renderEdit(w http.ResponseWriter, errMsg string) {
	data := map[string]interface{}{
		"Title":    "Edit Word List - SpellQuiz",
		"ListName": h.store.ActiveName(),
		"Words":    h.store.Words(),
		"Error":    errMsg,
	}
	if err := h.templates.ExecuteTemplate(w, "edit.tmpl", data); err != nil {
		log.Printf("Error rendering edit template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// AddWord appends a new word to the active list.
func (h *ListHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	if err := h.store.AddWord(r.FormValue("word")); err != nil {
		// Validation failures are local: re-show the form with a message.
		h.renderEdit(w, validationMessage(err))
		return
	}
	http.Redirect(w, r, "/words/edit", http.StatusSeeOther)
}

// UpdateWord replaces the word at an index.
func (h *ListHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid word index", "", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	if err := h.store.UpdateWord(index, r.FormValue("word")); err != nil {
		h.renderEdit(w, validationMessage(err))
		return
	}
	http.Redirect(w, r, "/words/edit", http.StatusSeeOther)
}

// DeleteWord removes the word at an index.
func (h *ListHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid word index", "", err)
		return
	}

	if err := h.store.RemoveWord(index); err != nil {
		h.renderEdit(w, validationMessage(err))
		return
	}
	http.Redirect(w, r, "/words/edit", http.StatusSeeOther)
}

// ShowListSelect displays the named-list selection screen.
func (h *ListHandler) ShowListSelect(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Get(w, r)
	session.ShowListSelect()

	data := map[string]interface{}{
		"Title":      "Choose a List - SpellQuiz",
		"ListNames":  h.store.ListNames(),
		"ActiveList": h.store.ActiveName(),
	}
	if err := h.templates.ExecuteTemplate(w, "listselect.tmpl", data); err != nil {
		log.Printf("Error rendering listselect template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// SelectList switches the active list. A running quiz keeps its
// snapshot; the change applies from the next start.
func (h *ListHandler) SelectList(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	if err := h.store.SelectList(r.FormValue("name")); err != nil {
		respondWithError(w, http.StatusNotFound, "Unknown word list", "Error selecting list", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// validationMessage maps word-store failures to inline form messages.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, wordstore.ErrEmptyWord):
		return "Please enter a word."
	case errors.Is(err, wordstore.ErrDuplicateWord):
		return "That word is already in the list."
	case errors.Is(err, wordstore.ErrOutOfRange):
		return "That word no longer exists."
	default:
		return "Could not update the list."
	}
}
