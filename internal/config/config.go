// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/event"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	LLM      LLMConfig      `toml:"llm"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds the initial view settings.
type CalendarConfig struct {
	DefaultView string   `toml:"default_view"` // "month", "week" or "day"
	Categories  []string `toml:"categories"`   // initially enabled categories
}

// StorageConfig holds the event document and database settings.
type StorageConfig struct {
	EventsFile string `toml:"events_file"` // bootstrap document (json, toml, yaml or ics)
	DBPath     string `toml:"db_path"`     // SQLite DSN, ":memory:" by default
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "llama3"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	categories := make([]string, len(event.Categories))
	for i, c := range event.Categories {
		categories[i] = string(c)
	}
	return &Config{
		Calendar: CalendarConfig{
			DefaultView: string(calendar.ModeMonth),
			Categories:  categories,
		},
		Storage: StorageConfig{
			EventsFile: defaultEventsFile(),
			DBPath:     ":memory:",
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "rocinante")
}

func defaultEventsFile() string {
	return filepath.Join(configDir(), "events.json")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.EventsFile = expandPath(cfg.Storage.EventsFile)
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROCINANTE_DEFAULT_VIEW"); v != "" {
		cfg.Calendar.DefaultView = v
	}
	if v := os.Getenv("ROCINANTE_CATEGORIES"); v != "" {
		cfg.Calendar.Categories = splitList(v)
	}

	if v := os.Getenv("ROCINANTE_EVENTS_FILE"); v != "" {
		cfg.Storage.EventsFile = v
	}
	if v := os.Getenv("ROCINANTE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("ROCINANTE_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("ROCINANTE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("ROCINANTE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("ROCINANTE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands a leading ~ to the user's home directory. The path is
// returned unchanged when the home directory cannot be found.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := calendar.ParseViewMode(c.Calendar.DefaultView); err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	for _, name := range c.Calendar.Categories {
		if _, err := event.ParseCategory(name); err != nil {
			return fmt.Errorf("invalid category: %s", name)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// ViewMode returns the configured initial view mode.
func (c *Config) ViewMode() calendar.ViewMode {
	m, err := calendar.ParseViewMode(c.Calendar.DefaultView)
	if err != nil {
		return calendar.ModeMonth
	}
	return m
}

// CategoryFilter returns the configured initially enabled categories.
func (c *Config) CategoryFilter() calendar.CategoryFilter {
	var enabled []event.Category
	for _, name := range c.Calendar.Categories {
		if cat, err := event.ParseCategory(name); err == nil {
			enabled = append(enabled, cat)
		}
	}
	return calendar.NewCategoryFilter(enabled...)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
