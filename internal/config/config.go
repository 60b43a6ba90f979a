// Package config resolves runtime settings from defaults and SBFQUIZ_*
// environment variables. Command-line flags override both.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/sbfquiz/internal/logging"
	"github.com/abhisek/sbfquiz/internal/spacedrep"
)

// Scheduler policy names.
const (
	PolicyEasiness  = "easiness"
	PolicyCountOnly = "count"
)

// Config holds all runtime settings.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath().
	DBPath string

	// APIURL is the question bank API. Empty means the local SQLite bank.
	APIURL string

	// APITimeout bounds one question bank request. Default: 10s.
	APITimeout time.Duration

	// RedisAddr switches progress storage to Redis when set.
	RedisAddr string

	// PostgresDSN switches the served question bank to Postgres when set.
	PostgresDSN string

	// ListenAddr is the address of the question bank server. Default: ":8000".
	ListenAddr string

	// LogLevel is debug, info, warn or error. Default: "warn".
	LogLevel string

	Scheduler SchedulerConfig
}

// SchedulerConfig selects the review policy.
type SchedulerConfig struct {
	// Policy is "easiness" (default) or "count".
	Policy string

	// OnIncorrect is "reset" (default) or "decrement".
	OnIncorrect string

	// MasteryThreshold overrides the policy's threshold when positive.
	MasteryThreshold int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APITimeout: 10 * time.Second,
		ListenAddr: ":8000",
		LogLevel:   "warn",
		Scheduler: SchedulerConfig{
			Policy:      PolicyEasiness,
			OnIncorrect: string(spacedrep.ResetStreak),
		},
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("SBFQUIZ_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SBFQUIZ_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("SBFQUIZ_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("SBFQUIZ_API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}
	if v := os.Getenv("SBFQUIZ_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("SBFQUIZ_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("SBFQUIZ_LISTEN"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("SBFQUIZ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SBFQUIZ_SCHEDULER"); v != "" {
		cfg.Scheduler.Policy = v
	}
	if v := os.Getenv("SBFQUIZ_ON_INCORRECT"); v != "" {
		cfg.Scheduler.OnIncorrect = v
	}
	if v := os.Getenv("SBFQUIZ_MASTERY_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("SBFQUIZ_MASTERY_THRESHOLD: %w", err)
		}
		cfg.Scheduler.MasteryThreshold = n
	}

	return cfg, nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}

// NewScheduler builds the configured review scheduler.
func (c SchedulerConfig) NewScheduler() (*spacedrep.Scheduler, error) {
	var sc spacedrep.Config
	switch c.Policy {
	case "", PolicyEasiness:
		sc = spacedrep.DefaultConfig()
	case PolicyCountOnly:
		sc = spacedrep.CountOnlyConfig()
	default:
		return nil, fmt.Errorf("%w: unknown scheduler policy %q", spacedrep.ErrInvalidConfig, c.Policy)
	}

	policy, err := spacedrep.ParseIncorrectPolicy(c.OnIncorrect)
	if err != nil {
		return nil, err
	}
	sc.OnIncorrect = policy
	if c.MasteryThreshold > 0 {
		sc.MasteryThreshold = c.MasteryThreshold
	}
	return spacedrep.New(sc)
}
