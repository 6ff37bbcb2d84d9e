package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sashabaranov/go-openai"

	"spellquiz/internal/models"
)

// OpenAIProvider synthesizes speech with the OpenAI TTS API.
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	cacheDir string
}

// NewOpenAIProvider creates an OpenAI TTS provider.
func NewOpenAIProvider(cfg *Config) (*OpenAIProvider, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	model := cfg.OpenAIModel
	if model == "" {
		model = "tts-1"
	}
	return &OpenAIProvider{
		client:   openai.NewClient(cfg.OpenAIKey),
		model:    model,
		cacheDir: cfg.CacheDir,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return "openai" }

// IsAvailable reports whether the provider can be used.
func (p *OpenAIProvider) IsAvailable() error {
	if p.client == nil {
		return ErrUnavailable
	}
	return nil
}

// Voices lists the OpenAI speech voices. The API does not attach
// locales to its voices; they are multilingual with an en-US accent
// baseline, which is what the locale tag records.
func (p *OpenAIProvider) Voices() []models.Voice {
	names := []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
	voices := make([]models.Voice, len(names))
	for i, name := range names {
		voices[i] = models.Voice{Name: name, Locale: "en-US", Provider: "openai"}
	}
	return voices
}

// Synthesize renders text through the OpenAI speech endpoint and
// caches the MP3 on disk. Returns the cached file path.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text string, voice models.Voice, rate float64) (string, error) {
	filename := cacheName(text, voice)
	path := filepath.Join(p.cacheDir, filename)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice.Name),
		Speed:          rate,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	outFile, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, response); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}
