package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"spellquiz/internal/audio"
	"spellquiz/internal/config"
	"spellquiz/internal/handlers"
	"spellquiz/internal/quiz"
	"spellquiz/internal/speech"
	"spellquiz/internal/voice"
	"spellquiz/internal/wordstore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Prepare the synthesized-audio cache
	if err := os.MkdirAll(cfg.AudioCachePath, 0o755); err != nil {
		log.Fatalf("Failed to create audio cache directory: %v", err)
	}

	// Initialize the text-to-speech provider
	provider, err := audio.NewProvider(&audio.Config{
		Provider:    cfg.TTSProvider,
		CacheDir:    cfg.AudioCachePath,
		OpenAIKey:   cfg.OpenAIKey,
		OpenAIModel: cfg.OpenAITTSModel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize audio provider: %v", err)
	}
	if err := provider.IsAvailable(); err != nil {
		log.Printf("Warning: audio provider %s unavailable, playback disabled: %v", provider.Name(), err)
	} else {
		log.Printf("Audio provider ready (type: %s)", provider.Name())
	}

	speaker := audio.NewSpeaker(provider)

	// Build the voice directory over the provider's catalog
	catalog := voice.NewStaticCatalog(provider.Voices())
	voices := voice.NewDirectory(catalog, cfg.VoicePolicy, speaker)

	// Speech recognition is optional: without an API key the quiz runs
	// with typed input only.
	var listener *speech.Listener
	if cfg.SpeechInput {
		transcriber, err := speech.NewWhisperTranscriber(cfg.OpenAIKey)
		if err != nil {
			log.Printf("Warning: speech input disabled: %v", err)
			listener = speech.NewListener(nil)
		} else {
			listener = speech.NewListener(transcriber)
			log.Println("Speech recognition enabled")
		}
	} else {
		listener = speech.NewListener(nil)
	}

	// Register word lists
	store, err := wordstore.New(cfg.Lists, cfg.ActiveList)
	if err != nil {
		log.Fatalf("Failed to initialize word lists: %v", err)
	}

	log.Printf("Word lists loaded (active: %s)", store.ActiveName())

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Each browser session gets its own quiz session
	registry := handlers.NewRegistry(func() *quiz.Session {
		return quiz.NewSession(store, speaker, voices, quiz.Options{
			ImmediateFeedback: cfg.ImmediateFeedback,
			SpeechInput:       cfg.SpeechInput,
		})
	})

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(registry, store, voices, templates)
	listHandler := handlers.NewListHandler(registry, store, templates)
	quizHandler := handlers.NewQuizHandler(registry, speaker, voices, templates)
	voiceHandler := handlers.NewVoiceHandler(voices, speaker)
	speechHandler := handlers.NewSpeechHandler(registry, listener)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Menu
	mux.HandleFunc("GET /", homeHandler.ShowMenu)

	// Word list routes
	mux.HandleFunc("GET /words", listHandler.ShowWordList)
	mux.HandleFunc("GET /words/edit", listHandler.ShowEdit)
	mux.HandleFunc("POST /words/add", listHandler.AddWord)
	mux.HandleFunc("POST /words/{index}/update", listHandler.UpdateWord)
	mux.HandleFunc("POST /words/{index}/delete", listHandler.DeleteWord)
	mux.HandleFunc("GET /lists", listHandler.ShowListSelect)
	mux.HandleFunc("POST /lists/select", listHandler.SelectList)

	// Quiz routes
	mux.HandleFunc("POST /quiz/start", quizHandler.StartQuiz)
	mux.HandleFunc("GET /quiz", quizHandler.ShowQuiz)
	mux.HandleFunc("POST /quiz/submit", quizHandler.SubmitAnswer)
	mux.HandleFunc("POST /quiz/replay", quizHandler.ReplayWord)
	mux.HandleFunc("POST /quiz/exit", quizHandler.ExitQuiz)
	mux.HandleFunc("POST /quiz/retry", quizHandler.RetryQuiz)
	mux.HandleFunc("GET /quiz/results", quizHandler.ShowResults)
	mux.HandleFunc("GET /quiz/audio", quizHandler.WordAudio)
	mux.HandleFunc("GET /quiz/transcript/{index}/audio", quizHandler.TranscriptAudio)

	// Voice routes
	mux.HandleFunc("POST /voices/select", voiceHandler.SelectVoice)
	mux.HandleFunc("GET /voices/preview", voiceHandler.PreviewVoice)
	mux.HandleFunc("POST /voices/refresh", voiceHandler.RefreshVoices)

	// Speech input
	mux.HandleFunc("POST /speech/transcribe", speechHandler.Transcribe)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(registry)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	tmpl, err := template.New("").ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// cleanupExpiredSessions periodically removes idle quiz sessions
func cleanupExpiredSessions(registry *handlers.Registry) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if removed := registry.CleanupExpired(); removed > 0 {
			log.Printf("Cleaned up %d expired quiz sessions", removed)
		}
	}
}
