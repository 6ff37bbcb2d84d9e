package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/sony/gobreaker"

	"spellquiz/internal/models"
)

const ttsRequestTimeout = 10 * time.Second

// GoogleProvider synthesizes speech with the Google Translate TTS
// endpoint. It is free and needs no API key, which makes it the
// default provider.
type GoogleProvider struct {
	cacheDir string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewGoogleProvider creates a Google Translate TTS provider that
// caches MP3 files under cacheDir.
func NewGoogleProvider(cacheDir string) *GoogleProvider {
	return &GoogleProvider{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "google-tts",
			Timeout: 30 * time.Second,
		}),
	}
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string { return "google" }

// IsAvailable reports whether the provider can be used.
func (p *GoogleProvider) IsAvailable() error {
	if p.cacheDir == "" {
		return ErrUnavailable
	}
	return nil
}

// Voices lists the locales the translate endpoint can speak, as one
// voice per locale.
func (p *GoogleProvider) Voices() []models.Voice {
	return []models.Voice{
		{Name: "Google English (Singapore)", Locale: "en-SG", Provider: "google"},
		{Name: "Google English (United Kingdom)", Locale: "en-GB", Provider: "google"},
		{Name: "Google English (Australia)", Locale: "en-AU", Provider: "google"},
		{Name: "Google English (United States)", Locale: "en-US", Provider: "google"},
		{Name: "Google Chinese (Mandarin)", Locale: "zh-CN", Provider: "google"},
		{Name: "Google Chinese (Taiwan)", Locale: "zh-TW", Provider: "google"},
	}
}

// Synthesize fetches an MP3 for the text and caches it on disk.
// Returns the cached file path.
func (p *GoogleProvider) Synthesize(ctx context.Context, text string, voice models.Voice, rate float64) (string, error) {
	filename := cacheName(text, voice)
	path := filepath.Join(p.cacheDir, filename)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.fetch(ctx, text, voice, rate, path)
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return path, nil
}

// fetch calls the Google Translate TTS endpoint and writes the MP3 to
// outputPath.
func (p *GoogleProvider) fetch(ctx context.Context, text string, voice models.Voice, rate float64, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", voice.Locale)
	params.Set("client", "tw-ob")
	params.Set("ttsspeed", fmt.Sprintf("%.2f", rate))
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}
