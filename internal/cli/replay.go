package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jmlgen/internal/engine"
	"github.com/roach88/jmlgen/internal/ir"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Ledger string
}

// ReplayResult compares a recorded run with a fresh translation of the
// same source text.
type ReplayResult struct {
	RunID            string    `json:"run_id"`
	Source           string    `json:"source"`
	View             string    `json:"view"`
	RecordedHash     string    `json:"recorded_hash"`
	ReplayedHash     string    `json:"replayed_hash,omitempty"`
	Deterministic    bool      `json:"deterministic"`
	RecordedVersion  string    `json:"recorded_generator_version"`
	GeneratorVersion string    `json:"generator_version"`
	Error            *CLIError `json:"error,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-translate a recorded run and verify the output is unchanged",
		Long: `Re-translate the source text stored with a run and compare the output
hash with the recorded one. A run ID prefix of at least eight characters
is accepted.

A mismatch means the generator, its version, or the symbol table in the
config has changed the output for the same input.

Exit codes:
  0 - Output is byte-identical
  1 - Output differs, or the source no longer translates
  2 - Command error (ledger not found, unknown run, etc.)

Examples:
  jmlgen replay 0190a1b2 --ledger .jmlgen/ledger.db
  jmlgen replay 0190a1b2-aaaa --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to the SQLite ledger; default from config")

	return cmd
}

func runReplay(opts *ReplayOptions, runID string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	ledger, err := opts.openExistingLedger(opts.Ledger)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return err
	}
	defer ledger.Close()

	run, err := ledger.ReadRun(cmd.Context(), runID)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	cfg, err := opts.config()
	if err != nil {
		return err
	}

	result := ReplayResult{
		RunID:            run.ID,
		Source:           run.Source,
		View:             run.View,
		RecordedHash:     run.OutputHash,
		RecordedVersion:  run.GeneratorVersion,
		GeneratorVersion: ir.GeneratorVersion,
	}

	res, err := opts.newEngine(cfg, formatter.GetErrWriter()).Translate(run.SourceText, engine.View(run.View))
	if err != nil {
		result.Error = cliError(err)
	} else {
		result.ReplayedHash = res.OutputHash
		result.Deterministic = res.OutputHash == run.OutputHash
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result, RunID: run.ID}
		if !result.Deterministic {
			resp.Status = "error"
			resp.Error = &CLIError{Code: "E_DETERMINISM", Message: "replayed output differs from recorded output"}
		}
		if err := formatter.Respond(resp); err != nil {
			return err
		}
	} else {
		outputReplayText(formatter, result)
	}

	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

func outputReplayText(f *OutputFormatter, result ReplayResult) {
	w := f.Writer

	fmt.Fprintf(w, "Run %s (%s, %s view)\n", result.RunID, result.Source, result.View)
	fmt.Fprintf(w, "  recorded: %s %s\n", result.RecordedHash, f.Dim("generator "+result.RecordedVersion))
	if result.Error != nil {
		fmt.Fprintf(w, "%s Source no longer translates: [%s] %s\n", f.Fail(), result.Error.Code, result.Error.Message)
		return
	}
	fmt.Fprintf(w, "  replayed: %s %s\n", result.ReplayedHash, f.Dim("generator "+result.GeneratorVersion))

	if result.Deterministic {
		fmt.Fprintf(w, "%s Output unchanged\n", f.Pass())
		return
	}
	fmt.Fprintf(w, "%s Output differs from the recorded run\n", f.Fail())
}
