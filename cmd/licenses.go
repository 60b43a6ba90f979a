package cmd

import (
	"fmt"

	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/spf13/cobra"
)

var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "List licenses with their categories and exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, lic := range catalog.Licenses() {
			fmt.Fprintf(out, "%s  (%s) — %s\n", lic.Name, lic.ID, lic.Description)

			cats, err := catalog.Categories(lic.ID)
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintf(out, "  category  %-24s  %-28s  %3d questions\n", c.ID, c.Name, c.ExpectedQuestionCount)
			}

			exams, err := catalog.Exams(lic.ID)
			if err != nil {
				return err
			}
			for _, e := range exams {
				fmt.Fprintf(out, "  exam      %-24s  %-28s  %3d questions, %d min\n",
					e.ID, e.Title, e.TotalQuestions(), e.DurationSeconds()/60)
			}
			if len(cats) == 0 && len(exams) == 0 {
				fmt.Fprintln(out, "  (no questions yet)")
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}
