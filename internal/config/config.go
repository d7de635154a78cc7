// Package config loads the application configuration once at startup.
//
// WHY AN EXPLICIT CONFIG STRUCT?
// Reading os.Getenv ad hoc from deep inside the code makes components
// impossible to test in isolation — every test would need to mutate process
// state. Instead we build one Config value in main() and pass it down, so
// tests can construct whatever configuration they need directly.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// KeyPlaceholder is the value shipped in .env.example. If the operator never
// replaced it, the key is as good as missing and we fail fast before
// wasting a network round-trip.
const KeyPlaceholder = "your_api_key_here"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the server needs: the listen port, the deployment
// environment (which gates CORS and error detail), the completion-service
// credential, and the SQLite database path.
type Config struct {
	Port          int
	Env           string // "development" or "production"
	AllowedOrigin string // CORS origin allow-list entry, only used in production
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string // empty means the real OpenAI API
	DBPath        string
	StaticDir     string
}

// Load reads configuration from the environment, with .env support for
// local development (a missing .env file is not an error) and sensible
// defaults for everything except the API key.
func Load() (Config, error) {
	// Same pattern as the original tooling: .env values only fill in
	// variables that aren't already set in the real environment.
	_ = godotenv.Load(".env")

	cfg := Config{
		Port:          3001,
		Env:           EnvDevelopment,
		AllowedOrigin: "",
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   "gpt-4o-mini",
		DBPath:        "data/tweets.db",
		StaticDir:     "web/static",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT value %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		if v != EnvDevelopment && v != EnvProduction {
			return Config{}, fmt.Errorf("config: APP_ENV must be %q or %q, got %q",
				EnvDevelopment, EnvProduction, v)
		}
		cfg.Env = v
	}
	if v := os.Getenv("ALLOWED_ORIGIN"); v != "" {
		cfg.AllowedOrigin = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with the production policy:
// restricted CORS and no internal error detail in responses.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// HasUsableKey reports whether a real completion-service credential is
// configured (set, and not the .env.example placeholder).
func (c Config) HasUsableKey() bool {
	return c.OpenAIKey != "" && c.OpenAIKey != KeyPlaceholder
}
