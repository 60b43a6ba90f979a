package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/store/pgstore"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the question bank with a JSON import file",
	Long: "Replace the question bank with a JSON import file. The local database is always written; " +
		"the Postgres bank is written too when a DSN is configured.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		qs, err := bank.ParseImport(raw)
		if err != nil {
			return err
		}

		return withRuntime(cmd, false, func(r *runtime) error {
			ctx := cmd.Context()
			if err := r.store.QuestionRepo().ReplaceAll(ctx, qs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions into the local database.\n", len(qs))

			if r.cfg.PostgresDSN == "" {
				return nil
			}
			pg, err := pgstore.NewStorage(ctx, r.cfg.PostgresDSN)
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := pg.Migrate(ctx); err != nil {
				return err
			}
			if err := pg.ReplaceAll(ctx, qs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions into Postgres.\n", len(qs))
			return nil
		})
	},
}
