package cmd

import (
	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/spf13/cobra"
)

var examCmd = &cobra.Command{
	Use:   "exam <license> <exam>",
	Short: "Take a timed mock exam",
	Long:  "Take a timed mock exam. Run `sbfquiz licenses` to list the exam ids of each license.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := catalog.LookupExam(args[0], args[1])
		if err != nil {
			return err
		}
		return runTUI(cmd, func(r *runtime) error {
			return runApp(r.deps.Exam(args[0], cfg))
		})
	},
}
