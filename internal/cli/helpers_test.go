package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/roach88/jmlgen/internal/config"
	"github.com/roach88/jmlgen/internal/engine"
)

// newTestOpts returns options with default config (no file lookup) and
// sequential run IDs run-1, run-2, ...
func newTestOpts(format string) *RootOptions {
	return &RootOptions{
		Format: format,
		cfg:    config.Default(),
		runIDs: engine.NewSequenceGenerator(),
	}
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
