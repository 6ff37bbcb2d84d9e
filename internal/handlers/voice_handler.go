package handlers

import (
	"net/http"
	"net/url"

	"spellquiz/internal/audio"
	"spellquiz/internal/voice"
)

// VoiceHandler exposes voice selection and audition.
type VoiceHandler struct {
	voices  *voice.Directory
	speaker *audio.Speaker
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(voices *voice.Directory, speaker *audio.Speaker) *VoiceHandler {
	return &VoiceHandler{
		voices:  voices,
		speaker: speaker,
	}
}

// SelectVoice sets the selected voice and sends the browser back to
// the menu with a preview cue, so the menu auditions the voice as it
// is chosen. Unknown names silently keep the prior selection.
func (h *VoiceHandler) SelectVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	h.voices.Select(r.FormValue("name"))
	selected := h.voices.Selected()
	if selected == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Pre-render the sample phrase so the menu's audio fetch hits the
	// cache instead of waiting on the provider.
	h.voices.Preview(*selected)
	http.Redirect(w, r, "/?preview="+url.QueryEscape(selected.Name), http.StatusSeeOther)
}

// PreviewVoice streams the sample phrase spoken by the named voice,
// for the menu's audio element.
func (h *VoiceHandler) PreviewVoice(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	for _, v := range h.voices.Voices() {
		if v.Name == name {
			path, err := h.speaker.AudioFile(r.Context(), audio.PreviewPhrase, &v)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			http.ServeFile(w, r, path)
			return
		}
	}
	http.NotFound(w, r)
}

// RefreshVoices re-queries the platform voice catalog.
func (h *VoiceHandler) RefreshVoices(w http.ResponseWriter, r *http.Request) {
	h.voices.Refresh()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
