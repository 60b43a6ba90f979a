package cmd

import (
	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/abhisek/sbfquiz/internal/store"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <license> <category>",
	Short: "Practice one category with spaced repetition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, title, err := lookupScope(args[0], args[1])
		if err != nil {
			return err
		}
		return runTUI(cmd, func(r *runtime) error {
			return runApp(r.deps.Quiz(scope, title))
		})
	},
}

// lookupScope validates license and category ids against the catalog.
func lookupScope(licenseID, categoryID string) (store.Scope, string, error) {
	lic, err := catalog.LookupLicense(licenseID)
	if err != nil {
		return store.Scope{}, "", err
	}
	cat, err := catalog.LookupCategory(licenseID, categoryID)
	if err != nil {
		return store.Scope{}, "", err
	}
	return store.Scope{LicenseID: lic.ID, CategoryID: cat.ID}, lic.Name + " · " + cat.Name, nil
}
