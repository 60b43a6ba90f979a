package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/sbfquiz/internal/config"
	"github.com/abhisek/sbfquiz/internal/logging"
	"github.com/abhisek/sbfquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sbfquiz",
	Short: "Boating license quiz trainer",
	Long:  "sbfquiz — terminal trainer for the SBF boating license question banks with spaced repetition and timed mock exams.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, func(r *runtime) error {
			return runApp(r.deps.Home())
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides SBFQUIZ_DB env var)")
	pf.String("api", "", "Question bank API URL; empty uses the local database (overrides SBFQUIZ_API_URL)")
	pf.String("redis", "", "Redis address for progress storage (overrides SBFQUIZ_REDIS_ADDR)")
	pf.String("postgres", "", "Postgres DSN for the served question bank (overrides SBFQUIZ_POSTGRES_DSN)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides SBFQUIZ_LOG_LEVEL)")
	pf.String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(licensesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads SBFQUIZ_* env vars and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	overrides := map[string]*string{
		"db":        &cfg.DBPath,
		"api":       &cfg.APIURL,
		"redis":     &cfg.RedisAddr,
		"postgres":  &cfg.PostgresDSN,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range overrides {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
		}
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag or SBFQUIZ_DB
// (highest priority), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// setupLogging installs the colored handler as the default logger. TUI
// commands log next to the database unless --log-file is given, so log
// lines never land on the alternate screen.
func setupLogging(cmd *cobra.Command, cfg config.Config, tui bool) (io.Closer, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("log-file")
	if path == "" && tui {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = filepath.Join(filepath.Dir(dbPath), "sbfquiz.log")
	}
	if path == "" {
		slog.SetDefault(logging.New(os.Stderr, level))
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(logging.New(f, level))
	return f, nil
}
