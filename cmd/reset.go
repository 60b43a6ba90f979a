package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <license> <category>",
	Short: "Delete the practice progress of one category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, title, err := lookupScope(args[0], args[1])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Fortschritt für %s löschen? [y/N] ", title)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "j", "yes", "ja":
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Abgebrochen.")
				return nil
			}
		}

		return withRuntime(cmd, false, func(r *runtime) error {
			if err := r.deps.Progress.Delete(cmd.Context(), scope); err != nil {
				return fmt.Errorf("reset %s: %w", scope, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fortschritt für %s gelöscht.\n", title)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
