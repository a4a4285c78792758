// Package config loads user settings from
// ~/.config/go-promptcraft/config.yaml with PROMPTCRAFT_* environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel errors.
var (
	// ErrUnknownKey indicates a key that is not a recognized setting.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue indicates a value rejected by the key's validator.
	ErrInvalidValue = errors.New("invalid config value")
)

// Config keys.
const (
	KeyCorrector       = "corrector"
	KeyRemote          = "remote"
	KeyRemoteTimeout   = "remote-timeout"
	KeyOpenAIModel     = "openai-model"
	KeyLanguageToolURL = "languagetool-url"
	KeyStore           = "store"
	KeyStorePath       = "store-path"
	KeyDebounce        = "debounce"
	KeyLogLevel        = "log-level"
)

// Remote corrector names.
const (
	RemoteNone         = "none"
	RemoteOpenAI       = "openai"
	RemoteLanguageTool = "languagetool"
)

// EnvPrefix prefixes environment overrides: remote-timeout is read from
// PROMPTCRAFT_REMOTE_TIMEOUT.
const EnvPrefix = "PROMPTCRAFT"

const (
	appDir   = "go-promptcraft"
	fileName = "config.yaml"
)

// Config holds resolved settings.
type Config struct {
	Corrector       string
	Remote          string
	RemoteTimeout   time.Duration
	OpenAIModel     string
	LanguageToolURL string
	Store           string
	StorePath       string
	Debounce        time.Duration
	LogLevel        string
}

// setting describes one key: its default and validator.
type setting struct {
	def      string
	validate func(string) error
}

var settings = map[string]setting{
	KeyCorrector:       {"variant", oneOf("variant", "distance", "both")},
	KeyRemote:          {RemoteNone, oneOf(RemoteNone, RemoteOpenAI, RemoteLanguageTool)},
	KeyRemoteTimeout:   {"3s", positiveDuration},
	KeyOpenAIModel:     {"gpt-4o-mini", nonEmpty},
	KeyLanguageToolURL: {"https://api.languagetool.org", httpURL},
	KeyStore:           {"file", oneOf("file", "sqlite", "memory")},
	KeyStorePath:       {"", func(string) error { return nil }},
	KeyDebounce:        {"500ms", positiveDuration},
	KeyLogLevel:        {"warn", oneOf("debug", "info", "warn", "error")},
}

// Keys returns every recognized key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Default returns the built-in value for key.
func Default(key string) (string, error) {
	s, ok := settings[key]
	if !ok {
		return "", unknownKey(key)
	}
	return s.def, nil
}

// Validate checks value against key's rules.
func Validate(key, value string) error {
	s, ok := settings[key]
	if !ok {
		return unknownKey(key)
	}
	if err := s.validate(value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("%q (valid: %s): %w", key, strings.Join(Keys(), ", "), ErrUnknownKey)
}

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

// Dir returns the configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-promptcraft.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}

// Path returns the config file path.
func Path() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, fileName), nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}

// StoreFile resolves where the configured store keeps its data.
// An explicit path is expanded; otherwise a default file in Dir is used.
func (c Config) StoreFile() (string, error) {
	if c.StorePath != "" {
		return filepath.Clean(ExpandPath(c.StorePath)), nil
	}
	d, err := Dir()
	if err != nil {
		return "", err
	}
	if c.Store == "sqlite" {
		return filepath.Join(d, "promptcraft.db"), nil
	}
	return filepath.Join(d, "store.json"), nil
}

// ---------------------------------------------------------------------------
// Load / Save / Get / List
// ---------------------------------------------------------------------------

// newViper reads the config file with defaults and, if env is true,
// environment overrides. A missing file is not an error.
func newViper(env bool) (*viper.Viper, string, error) {
	p, err := Path()
	if err != nil {
		return nil, "", err
	}

	v := viper.New()
	v.SetConfigFile(p)
	v.SetConfigType("yaml")
	if env {
		for k, s := range settings {
			v.SetDefault(k, s.def)
		}
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}
	return v, p, nil
}

// Load resolves every setting.
// Precedence: environment, then config file, then defaults.
// Invalid values are reported with ErrInvalidValue.
func Load() (Config, error) {
	v, _, err := newViper(true)
	if err != nil {
		return Config{}, err
	}

	for _, k := range Keys() {
		if err := Validate(k, v.GetString(k)); err != nil {
			return Config{}, fmt.Errorf("config %w", err)
		}
	}

	return Config{
		Corrector:       v.GetString(KeyCorrector),
		Remote:          v.GetString(KeyRemote),
		RemoteTimeout:   v.GetDuration(KeyRemoteTimeout),
		OpenAIModel:     v.GetString(KeyOpenAIModel),
		LanguageToolURL: v.GetString(KeyLanguageToolURL),
		Store:           v.GetString(KeyStore),
		StorePath:       v.GetString(KeyStorePath),
		Debounce:        v.GetDuration(KeyDebounce),
		LogLevel:        v.GetString(KeyLogLevel),
	}, nil
}

// Save validates and writes a single key to the config file, keeping the
// other keys already in the file. Creates the directory if needed.
func Save(key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}

	v, p, err := newViper(false)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	v.Set(key, value)
	if err := v.WriteConfigAs(p); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Get returns the resolved value of key.
func Get(key string) (string, error) {
	if _, ok := settings[key]; !ok {
		return "", unknownKey(key)
	}
	v, _, err := newViper(true)
	if err != nil {
		return "", err
	}
	return v.GetString(key), nil
}

// List returns the resolved value of every key.
func List() (map[string]string, error) {
	v, _, err := newViper(true)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for k := range settings {
		out[k] = v.GetString(k)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Validators
// ---------------------------------------------------------------------------

func oneOf(valid ...string) func(string) error {
	return func(s string) error {
		if slices.Contains(valid, s) {
			return nil
		}
		return fmt.Errorf("%q (valid: %s): %w", s, strings.Join(valid, ", "), ErrInvalidValue)
	}
}

func positiveDuration(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fmt.Errorf("%q is not a positive duration: %w", s, ErrInvalidValue)
	}
	return nil
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value cannot be empty: %w", ErrInvalidValue)
	}
	return nil
}

func httpURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an http(s) URL: %w", s, ErrInvalidValue)
	}
	return nil
}
