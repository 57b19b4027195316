package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zchrono/internal/affiliation"
	"github.com/zarlcorp/zchrono/internal/roster"
)

const (
	configGemini = "gemini"
	configShare  = "share"
)

// configEnvelope wraps a JSON-encoded config value so we can store
// heterogeneous config types in a single zstore collection.
type configEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// GeminiSettings holds the Gemini API key and model for affiliation analysis.
type GeminiSettings struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// ShareSettings holds the base URL that share links are built on.
type ShareSettings struct {
	BaseURL string `json:"base_url"`
}

func (s GeminiSettings) Configured() bool {
	return s.APIKey != ""
}

// AffiliationConfig converts settings to an affiliation.Config, falling
// back to envKey when no key is stored.
func (s GeminiSettings) AffiliationConfig(envKey string) affiliation.Config {
	cfg := affiliation.Config{APIKey: s.APIKey, Model: s.Model}
	if cfg.APIKey == "" {
		cfg.APIKey = envKey
	}
	if cfg.Model == "" {
		cfg.Model = affiliation.DefaultModel
	}
	return cfg
}

// Link returns the share link for people, or the bare token when no base
// URL is configured or it does not parse.
func (s ShareSettings) Link(people []roster.Person) string {
	base := strings.TrimSpace(s.BaseURL)
	if base == "" {
		return roster.EncodeShare(people)
	}
	link, err := roster.ShareURL(base, people)
	if err != nil {
		return roster.EncodeShare(people)
	}
	return link
}

// loadConfig reads a typed config from the envelope collection.
func loadConfig[T any](col *zstore.Collection[configEnvelope], key string) T {
	var zero T
	if col == nil {
		return zero
	}

	env, err := col.Get(key)
	if err != nil {
		return zero
	}

	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return zero
	}

	return v
}

// saveConfig persists a typed config into the envelope collection.
func saveConfig[T any](col *zstore.Collection[configEnvelope], key string, v T) error {
	if col == nil {
		return fmt.Errorf("store not open")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return col.Put(key, configEnvelope{Data: data})
}
