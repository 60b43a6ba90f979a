package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/abhisek/sbfquiz/internal/store"
)

func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	for _, name := range []string{"db", "api", "redis", "postgres", "log-level", "log-file"} {
		c.Flags().String(name, "", "")
	}
	return c
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SBFQUIZ_API_URL", "http://env:8000")
	t.Setenv("SBFQUIZ_LOG_LEVEL", "info")

	c := testCommand(t)
	require.NoError(t, c.Flags().Set("api", "http://flag:9000"))
	require.NoError(t, c.Flags().Set("db", "/tmp/x.db"))

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9000", cfg.APIURL)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLookupScope(t *testing.T) {
	scope, title, err := lookupScope(catalog.SBFBinnen, "basisfragen")
	require.NoError(t, err)
	assert.Equal(t, store.Scope{LicenseID: catalog.SBFBinnen, CategoryID: "basisfragen"}, scope)
	assert.Equal(t, "SBF-Binnen · Basisfragen", title)

	_, _, err = lookupScope(catalog.SBFBinnen, "nope")
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	_, _, err = lookupScope("nope", "basisfragen")
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestLicensesCommand(t *testing.T) {
	var out bytes.Buffer
	licensesCmd.SetOut(&out)
	t.Cleanup(func() { licensesCmd.SetOut(nil) })

	require.NoError(t, licensesCmd.RunE(licensesCmd, nil))
	assert.Contains(t, out.String(), "motor-segel")
	assert.Contains(t, out.String(), "basisfragen")
	assert.Contains(t, out.String(), "(no questions yet)")
}

func TestResetCommand_DeclinedWithoutYes(t *testing.T) {
	var out bytes.Buffer
	resetCmd.SetOut(&out)
	resetCmd.SetIn(bytes.NewBufferString("n\n"))
	t.Cleanup(func() {
		resetCmd.SetOut(nil)
		resetCmd.SetIn(nil)
	})

	require.NoError(t, resetCmd.RunE(resetCmd, []string{catalog.SBFBinnen, "basisfragen"}))
	assert.Contains(t, out.String(), "Abgebrochen.")
}
