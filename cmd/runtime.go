package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/sbfquiz/internal/app"
	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/config"
	"github.com/abhisek/sbfquiz/internal/screen"
	"github.com/abhisek/sbfquiz/internal/store"
	"github.com/abhisek/sbfquiz/internal/store/redisstore"
	"github.com/spf13/cobra"
)

// runtime holds the opened stores and the dependencies built from them.
type runtime struct {
	cfg   config.Config
	store *store.Store
	deps  app.Deps

	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// openRuntime opens the SQLite store and builds the question bank,
// progress store and scheduler selected by cfg.
func openRuntime(cmd *cobra.Command, cfg config.Config) (*runtime, error) {
	ctx := cmd.Context()
	r := &runtime{cfg: cfg}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	r.store = st
	r.closers = append(r.closers, func() { st.Close() })

	sched, err := cfg.Scheduler.NewScheduler()
	if err != nil {
		r.Close()
		return nil, err
	}

	var repo bank.Repository = st.QuestionRepo()
	if cfg.APIURL != "" {
		repo = bank.NewHTTPRepository(bank.HTTPConfig{
			BaseURL: cfg.APIURL,
			Timeout: cfg.APITimeout,
		})
	}

	var progress store.ProgressRepo = st.ProgressRepo()
	if cfg.RedisAddr != "" {
		rs, err := redisstore.Open(ctx, redisstore.Options{Addr: cfg.RedisAddr})
		if err != nil {
			r.Close()
			return nil, err
		}
		r.closers = append(r.closers, func() { rs.Close() })
		progress = rs
	}

	r.deps = app.Deps{
		Repo:      repo,
		Progress:  progress,
		Scheduler: sched,
		Logger:    slog.Default(),
	}
	slog.Debug("runtime ready",
		"db", dbPath,
		"api", cfg.APIURL,
		"redis", cfg.RedisAddr,
		"scheduler", cfg.Scheduler.Policy,
	)
	return r, nil
}

// runTUI sets up logging and stores, then runs fn.
func runTUI(cmd *cobra.Command, fn func(r *runtime) error) error {
	return withRuntime(cmd, true, fn)
}

func withRuntime(cmd *cobra.Command, tui bool, fn func(r *runtime) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logCloser, err := setupLogging(cmd, cfg, tui)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	r, err := openRuntime(cmd, cfg)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

func runApp(root screen.Screen) error {
	return app.Run(root)
}
