package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/sbfquiz/internal/quiz"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <license> <category>",
	Short: "Show practice progress of one category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, title, err := lookupScope(args[0], args[1])
		if err != nil {
			return err
		}

		return withRuntime(cmd, false, func(r *runtime) error {
			ctrl := quiz.New(scope, quiz.Options{
				Repo:      r.deps.Repo,
				Progress:  r.deps.Progress,
				Scheduler: r.deps.Scheduler,
				Logger:    r.deps.Logger,
			})
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}

			s := ctrl.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, title)
			fmt.Fprintln(out, strings.Repeat("─", 40))
			fmt.Fprintf(out, "%-20s %5d / %d (%d%%)\n", "Gemeistert", s.Mastered, s.Total, s.Percent)
			fmt.Fprintf(out, "%-20s %5d\n", "Offen", s.Open)
			fmt.Fprintf(out, "%-20s %5d\n", "Noch nie gesehen", s.Unseen)
			fmt.Fprintf(out, "%-20s %5d\n", "Gesperrt", s.Locked)
			if !s.NextDue.IsZero() {
				fmt.Fprintf(out, "%-20s %s\n", "Nächste Wiederholung", s.NextDue.Local().Format("02.01.2006 15:04"))
			}
			return nil
		})
	},
}
