package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/server"
	"github.com/abhisek/sbfquiz/internal/store/pgstore"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question bank over HTTP",
	Long:  "Serve the question bank over HTTP. Questions come from Postgres when a DSN is configured, otherwise from the local database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withRuntime(cmd, false, func(r *runtime) error {
			repo, closeRepo, err := servedRepository(ctx, r)
			if err != nil {
				return err
			}
			defer closeRepo()

			addr, _ := cmd.Flags().GetString("listen")
			if addr == "" {
				addr = r.cfg.ListenAddr
			}
			media, _ := cmd.Flags().GetString("media")

			srv := server.New(repo, server.Config{
				Addr:     addr,
				MediaDir: media,
				Logger:   slog.Default(),
			})

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving question bank on %s\n", addr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			slog.Info("shutting down")
			if err := srv.Shutdown(); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		})
	},
}

// servedRepository picks Postgres when configured, else the SQLite bank.
// The HTTP API itself is never served from a remote API.
func servedRepository(ctx context.Context, r *runtime) (bank.Repository, func(), error) {
	if r.cfg.PostgresDSN == "" {
		return r.store.QuestionRepo(), func() {}, nil
	}
	pg, err := pgstore.NewStorage(ctx, r.cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}
	return pg, pg.Close, nil
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides SBFQUIZ_LISTEN, default :8000)")
	serveCmd.Flags().String("media", "", "Directory served under /media/ for question images")
}
