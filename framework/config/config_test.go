package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func setEnv(t *testing.T, key, val string) {
	t.Helper()
	t.Setenv(key, val) // automatically restored after test
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/empty.env")

	assert.Equal(t, "GoInject", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Env)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 60, cfg.Loop.FrameRate)
	assert.Equal(t, 50, cfg.Loop.FixedRate)
	assert.Zero(t, cfg.Loop.MaxFrames)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Inspect.Enabled)
	assert.Equal(t, ":8089", cfg.Inspect.Addr)
}

func TestLoad_FromEnv(t *testing.T) {
	setEnv(t, "APP_NAME", "Arcade")
	setEnv(t, "APP_DEBUG", "false")
	setEnv(t, "LOOP_FRAME_RATE", "30")
	setEnv(t, "LOOP_MAX_FRAMES", "120")
	setEnv(t, "LOG_FORMAT", "json")
	setEnv(t, "INSPECT_ENABLED", "true")

	cfg := config.Load("testdata/empty.env")

	assert.Equal(t, "Arcade", cfg.App.Name)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, 30, cfg.Loop.FrameRate)
	assert.Equal(t, 120, cfg.Loop.MaxFrames)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Inspect.Enabled)
}

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOOP_FIXED_RATE=100\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("LOOP_FIXED_RATE") })

	cfg := config.Load(path)
	assert.Equal(t, 100, cfg.Loop.FixedRate)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_ENV=production\n"), 0o600))
	setEnv(t, "APP_ENV", "testing")

	cfg := config.Load(path)
	assert.Equal(t, "testing", cfg.App.Env)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func TestGetInt_InvalidFallsBack(t *testing.T) {
	setEnv(t, "SOME_INT", "abc")
	assert.Equal(t, 7, config.GetInt("SOME_INT", 7))
}

func TestGetBool(t *testing.T) {
	setEnv(t, "SOME_BOOL", "1")
	assert.True(t, config.GetBool("SOME_BOOL", false))
	assert.True(t, config.GetBool("UNSET_BOOL_KEY", true))
}

func TestGet(t *testing.T) {
	setEnv(t, "SOME_KEY", "value")
	assert.Equal(t, "value", config.Get("SOME_KEY", "x"))
	assert.Equal(t, "x", config.Get("UNSET_KEY_123", "x"))
}

func TestLoopConfig_Intervals(t *testing.T) {
	l := config.LoopConfig{FrameRate: 50}
	assert.Equal(t, 20*time.Millisecond, l.FrameInterval())
	assert.Equal(t, 20*time.Millisecond, l.FixedInterval())

	l = config.LoopConfig{FrameRate: -1, FixedRate: 100}
	assert.Equal(t, time.Second/60, l.FrameInterval())
	assert.Equal(t, 10*time.Millisecond, l.FixedInterval())
}

func TestLoopConfig_IntervalsNeverZero(t *testing.T) {
	l := config.LoopConfig{FrameRate: 2_000_000_000, FixedRate: 5_000_000_000}
	assert.Equal(t, time.Nanosecond, l.FrameInterval())
	assert.Equal(t, time.Nanosecond, l.FixedInterval())
}
