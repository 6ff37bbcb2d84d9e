package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"spellquiz/internal/models"
	"spellquiz/internal/voice"
	"spellquiz/internal/wordstore"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	StaticFilesPath string
	TemplatesPath   string
	AudioCachePath  string

	// Text-to-speech provider: "google" (default, no key needed) or "openai".
	TTSProvider    string
	OpenAIKey      string
	OpenAITTSModel string

	// SpeechInput enables the dictation variant: speech-to-text answer
	// capture and punctuation in the input set.
	SpeechInput bool

	// ImmediateFeedback shows a per-word verdict instead of deferring
	// everything to the summary.
	ImmediateFeedback bool

	// VoicePolicy is the injected voice filter and default-selection
	// preference, overridable from the quiz config file.
	VoicePolicy voice.Policy

	// Lists are the named word lists registered at startup.
	Lists      []models.WordList
	ActiveList string
}

// fileConfig is the optional YAML quiz configuration.
type fileConfig struct {
	Voice      *voice.Policy `yaml:"voice"`
	ActiveList string        `yaml:"active_list"`
	Lists      []struct {
		Name  string   `yaml:"name"`
		Words []string `yaml:"words"`
	} `yaml:"lists"`
}

// Load reads configuration from the environment (with a .env file if
// present) and the optional YAML file named by QUIZ_CONFIG.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ServerPort:        getEnv("PORT", "8080"),
		StaticFilesPath:   getEnv("STATIC_PATH", "./static"),
		TemplatesPath:     getEnv("TEMPLATES_PATH", "./templates"),
		AudioCachePath:    getEnv("AUDIO_CACHE_PATH", "./static/audio"),
		TTSProvider:       getEnv("TTS_PROVIDER", "google"),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAITTSModel:    getEnv("OPENAI_TTS_MODEL", "tts-1"),
		SpeechInput:       getEnvBool("SPEECH_INPUT", false),
		ImmediateFeedback: getEnvBool("IMMEDIATE_FEEDBACK", false),
		Lists:             wordstore.DefaultLists(),
		ActiveList:        wordstore.DefaultListName,
	}

	if cfg.SpeechInput {
		cfg.VoicePolicy = voice.AdvancedPolicy()
	} else {
		cfg.VoicePolicy = voice.DefaultPolicy()
	}

	if path := getEnv("QUIZ_CONFIG", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, fmt.Errorf("failed to load quiz config %s: %w", path, err)
		}
	}

	return cfg, nil
}

// applyFile overlays the YAML quiz configuration onto the defaults.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	if fc.Voice != nil {
		c.VoicePolicy = *fc.Voice
	}
	if len(fc.Lists) > 0 {
		lists := make([]models.WordList, len(fc.Lists))
		for i, l := range fc.Lists {
			words := make([]models.Word, len(l.Words))
			for j, w := range l.Words {
				words[j] = models.Word(w)
			}
			lists[i] = models.WordList{Name: l.Name, Words: words}
		}
		c.Lists = lists
		c.ActiveList = lists[0].Name
	}
	if fc.ActiveList != "" {
		c.ActiveList = fc.ActiveList
	}

	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
