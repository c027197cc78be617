package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Loop    LoopConfig
	Log     LogConfig
	Inspect InspectConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

// LoopConfig drives the host frame loop.
type LoopConfig struct {
	FrameRate int // frames per second
	FixedRate int // fixed steps per second
	MaxFrames int // 0 runs until the context is cancelled
}

// FrameInterval is the duration of one frame.
func (l LoopConfig) FrameInterval() time.Duration {
	return interval(l.FrameRate, 60)
}

// FixedInterval is the duration of one fixed step.
func (l LoopConfig) FixedInterval() time.Duration {
	return interval(l.FixedRate, 50)
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// InspectConfig controls the diagnostics HTTP server.
type InspectConfig struct {
	Enabled bool
	Addr    string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoInject"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
		},
		Loop: LoopConfig{
			FrameRate: GetInt("LOOP_FRAME_RATE", 60),
			FixedRate: GetInt("LOOP_FIXED_RATE", 50),
			MaxFrames: GetInt("LOOP_MAX_FRAMES", 0),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "console"),
		},
		Inspect: InspectConfig{
			Enabled: envBool("INSPECT_ENABLED", false),
			Addr:    env("INSPECT_ADDR", ":8089"),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func interval(rate, fallback int) time.Duration {
	if rate <= 0 {
		rate = fallback
	}
	// Rates above one per nanosecond round down to zero.
	return max(time.Second/time.Duration(rate), time.Nanosecond)
}
