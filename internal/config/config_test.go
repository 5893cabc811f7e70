package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/h0rv/kanban/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(LoadInput{Env: map[string]string{"HOME": home}})

	require.NoError(t, err)
	assert.Equal(t, api.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, filepath.Join(home, ".config", "kanban", "prefs.json"), cfg.PrefsPath)
	assert.Equal(t, filepath.Join(home, ".cache", "kanban", "kanban.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Source)
}

func TestLoad_XDGDirectories(t *testing.T) {
	env := map[string]string{
		"HOME":            "/home/nobody",
		"XDG_CONFIG_HOME": "/xdg/config",
		"XDG_CACHE_HOME":  "/xdg/cache",
	}

	cfg := Default(env)

	assert.Equal(t, filepath.Join("/xdg/config", "kanban", "prefs.json"), cfg.PrefsPath)
	assert.Equal(t, filepath.Join("/xdg/cache", "kanban", "kanban.log"), cfg.LogFile)
}

func TestLoad_NoHome(t *testing.T) {
	cfg, err := Load(LoadInput{Env: map[string]string{}})

	require.NoError(t, err)
	assert.Empty(t, cfg.PrefsPath)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "kanban", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		// file values
		"endpoint": "https://file.example/tickets",
		"log_level": "debug",
		"ticket_url": "https://file.example/t/{id}",
	}`), 0o644))

	env := map[string]string{
		"XDG_CONFIG_HOME": dir,
		EnvEndpoint:       "https://env.example/tickets",
	}

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := Load(LoadInput{Env: map[string]string{"XDG_CONFIG_HOME": dir}})
		require.NoError(t, err)
		assert.Equal(t, "https://file.example/tickets", cfg.Endpoint)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, configPath, cfg.Source)
	})

	t.Run("env over file", func(t *testing.T) {
		cfg, err := Load(LoadInput{Env: env})
		require.NoError(t, err)
		assert.Equal(t, "https://env.example/tickets", cfg.Endpoint)
		assert.Equal(t, "https://file.example/t/{id}", cfg.TicketURL)
	})

	t.Run("flags over env", func(t *testing.T) {
		cfg, err := Load(LoadInput{
			Env:       env,
			Overrides: Config{Endpoint: "http://localhost:8080/data", LogLevel: "warn"},
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/data", cfg.Endpoint)
		assert.Equal(t, "warn", cfg.LogLevel)
	})
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	_, err := Load(LoadInput{
		ConfigPath: filepath.Join(t.TempDir(), "missing.json"),
		Env:        map[string]string{},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read config")
}

func TestLoad_MalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint": 42}`), 0o644))

	_, err := Load(LoadInput{ConfigPath: path, Env: map[string]string{}})

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Endpoint: "https://api.example/v1", LogLevel: "info"}, false},
		{"empty endpoint", Config{LogLevel: "info"}, true},
		{"relative endpoint", Config{Endpoint: "/v1/tickets", LogLevel: "info"}, true},
		{"ftp endpoint", Config{Endpoint: "ftp://example/v1", LogLevel: "info"}, true},
		{"bad level", Config{Endpoint: "https://api.example/v1", LogLevel: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	level, err := Config{LogLevel: "debug"}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestTicketLink(t *testing.T) {
	assert.Empty(t, Config{}.TicketLink("CAM-1"))

	cfg := Config{TicketURL: "https://tracker.example/browse/{id}"}
	assert.Equal(t, "https://tracker.example/browse/CAM-1", cfg.TicketLink("CAM-1"))
	assert.Equal(t, "https://tracker.example/browse/a%2Fb", cfg.TicketLink("a/b"))
	assert.Empty(t, cfg.TicketLink(""))
}

func TestEnvMap(t *testing.T) {
	env := EnvMap([]string{"A=1", "B=x=y", "broken"})

	assert.Equal(t, map[string]string{"A": "1", "B": "x=y"}, env)
}
