package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 256, cfg.QR.DefaultSize)
	assert.Equal(t, 16, cfg.Password.DefaultLength)
	assert.Equal(t, 25, cfg.Pomodoro.WorkMinutes)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
log_level = "debug"

[rate_limit]
per_second = 5
burst = 10

[units]
strict = true

[pomodoro]
work_minutes = 50
break_minutes = 10
long_break_minutes = 30
long_break_every = 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.RateLimit.PerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.True(t, cfg.Units.Strict)
	assert.Equal(t, 50, cfg.Pomodoro.WorkMinutes)
	assert.Equal(t, 2, cfg.Pomodoro.LongBreakEvery)
	// untouched sections keep defaults
	assert.Equal(t, 256, cfg.QR.DefaultSize)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
log_level: warn
qr:
  default_size: 512
dice:
  history_size: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 512, cfg.QR.DefaultSize)
	assert.Equal(t, 20, cfg.Dice.HistorySize)
	assert.Equal(t, 16, cfg.Password.DefaultLength)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "config.ini", "x=1")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.toml", "log_level = ")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		path := writeFile(t, dir, "range.toml", "[qr]\ndefault_size = 8\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DefaultSize")
	})

	t.Run("unknown log level", func(t *testing.T) {
		path := writeFile(t, dir, "level.yaml", "log_level: loud\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:    "DEBUG",
		EnvRateLimit:   "2.5",
		EnvRateBurst:   "3",
		EnvStrictUnits: "true",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2.5, cfg.RateLimit.PerSecond)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.True(t, cfg.Units.Strict)

	bad := Default()
	err := bad.ApplyEnv(func(k string) string {
		if k == EnvRateBurst {
			return "many"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "log_level = \"warn\"\n")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "log_level = \"info\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c }, func(error) {})
	}()

	// Keep rewriting until the watcher is up and reports the new level.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-changes:
			if c.LogLevel == "debug" {
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("log_level = \"debug\"\n"), 0o600))
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
