// Package config resolves runtime settings from defaults, an optional JSON
// config file, environment variables and command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/h0rv/kanban/internal/api"
	"github.com/h0rv/kanban/internal/prefs"
	"github.com/tailscale/hujson"
)

// ErrInvalidConfig indicates a setting that failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// appName names the per-user config and cache directories.
const appName = "kanban"

// Config holds all configuration options.
type Config struct {
	Endpoint  string `json:"endpoint,omitempty"`   // Data source URL
	PrefsPath string `json:"prefs_path,omitempty"` // Display preferences file
	LogFile   string `json:"log_file,omitempty"`   // Log destination; empty disables logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn or error
	TicketURL string `json:"ticket_url,omitempty"` // Template with {id}, used to open tickets in a browser

	// Source is the config file that was loaded, empty if none (not serialized).
	Source string `json:"-"`
}

// Environment variables consulted by Load.
const (
	EnvEndpoint  = "KANBAN_ENDPOINT"
	EnvLogFile   = "KANBAN_LOG_FILE"
	EnvLogLevel  = "KANBAN_LOG_LEVEL"
	EnvTicketURL = "KANBAN_TICKET_URL"
)

// LoadInput holds the inputs for Load.
type LoadInput struct {
	ConfigPath string            // --config flag value; empty means the default location
	Env        map[string]string // environment variables
	Overrides  Config            // flag values; empty fields are ignored
}

// Default returns the configuration used when nothing else is set.
// Paths follow the XDG base directory layout found in env.
func Default(env map[string]string) Config {
	cfg := Config{
		Endpoint: api.DefaultEndpoint,
		LogLevel: "info",
	}
	if dir := configDir(env); dir != "" {
		cfg.PrefsPath = filepath.Join(dir, appName, prefs.FileName)
	}
	if dir := cacheDir(env); dir != "" {
		cfg.LogFile = filepath.Join(dir, appName, appName+".log")
	}
	return cfg
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Config file (--config, or config.json in the user config directory if it exists)
// 3. Environment variables
// 4. Flag overrides
func Load(input LoadInput) (Config, error) {
	cfg := Default(input.Env)

	fileCfg, source, err := loadFile(input.ConfigPath, input.Env)
	if err != nil {
		return Config{}, err
	}
	cfg = merge(cfg, fileCfg)
	cfg.Source = source

	cfg = merge(cfg, Config{
		Endpoint:  input.Env[EnvEndpoint],
		LogFile:   input.Env[EnvLogFile],
		LogLevel:  input.Env[EnvLogLevel],
		TicketURL: input.Env[EnvTicketURL],
	})
	cfg = merge(cfg, input.Overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvMap converts os.Environ output to a map.
func EnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Validate checks that the endpoint is an absolute http(s) URL and the log level is known.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint %q", ErrInvalidConfig, c.Endpoint)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: endpoint %q must be an http(s) URL", ErrInvalidConfig, c.Endpoint)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// TicketLink returns the browser URL for a ticket, or "" when no template is set.
func (c Config) TicketLink(id string) string {
	if c.TicketURL == "" || id == "" {
		return ""
	}
	return strings.ReplaceAll(c.TicketURL, "{id}", url.PathEscape(id))
}

// loadFile reads the explicit config file, or the default one if it exists.
// An explicit path that does not exist is an error; a missing default is not.
func loadFile(explicit string, env map[string]string) (Config, string, error) {
	path := explicit
	if path == "" {
		dir := configDir(env)
		if dir == "" {
			return Config{}, "", nil
		}
		path = filepath.Join(dir, appName, "config.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit == "" && errors.Is(err, os.ErrNotExist) {
			return Config{}, "", nil
		}
		return Config{}, "", fmt.Errorf("cannot read config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, "", fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, path, nil
}

// merge overlays the non-empty fields of top onto base.
func merge(base, top Config) Config {
	if top.Endpoint != "" {
		base.Endpoint = top.Endpoint
	}
	if top.PrefsPath != "" {
		base.PrefsPath = top.PrefsPath
	}
	if top.LogFile != "" {
		base.LogFile = top.LogFile
	}
	if top.LogLevel != "" {
		base.LogLevel = top.LogLevel
	}
	if top.TicketURL != "" {
		base.TicketURL = top.TicketURL
	}
	return base
}

// configDir returns $XDG_CONFIG_HOME or ~/.config.
func configDir(env map[string]string) string {
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return dir
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

// cacheDir returns $XDG_CACHE_HOME or ~/.cache.
func cacheDir(env map[string]string) string {
	if dir := env["XDG_CACHE_HOME"]; dir != "" {
		return dir
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".cache")
	}
	return ""
}
