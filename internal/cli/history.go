package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/roach88/jmlgen/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Ledger string
	Source string
	View   string
	Limit  int
}

// HistoryEntry is one ledger row as reported by history.
type HistoryEntry struct {
	Seq              int64  `json:"seq"`
	RunID            string `json:"run_id"`
	Source           string `json:"source"`
	View             string `json:"view"`
	InputHash        string `json:"input_hash"`
	OutputHash       string `json:"output_hash"`
	Diagnostics      int    `json:"diagnostics"`
	GeneratorVersion string `json:"generator_version"`
}

// HistoryResult holds the history listing.
type HistoryResult struct {
	Runs  []HistoryEntry `json:"runs"`
	Total int            `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded translation runs",
		Long: `List runs recorded in the ledger, newest first.

Examples:
  jmlgen history --ledger .jmlgen/ledger.db
  jmlgen history --source stack.smt2 --limit 5
  jmlgen history --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to the SQLite ledger; default from config")
	cmd.Flags().StringVar(&opts.Source, "source", "", "only runs of this source name")
	cmd.Flags().StringVar(&opts.View, "view", "", "only runs of this view")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	ledger, err := opts.openExistingLedger(opts.Ledger)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return err
	}
	defer ledger.Close()

	runs, err := ledger.ListRuns(cmd.Context(), store.RunFilter{
		Source: opts.Source,
		View:   opts.View,
		Limit:  opts.Limit,
	})
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	result := HistoryResult{Runs: make([]HistoryEntry, len(runs)), Total: len(runs)}
	for i, r := range runs {
		result.Runs[i] = HistoryEntry{
			Seq:              r.Seq,
			RunID:            r.ID,
			Source:           r.Source,
			View:             r.View,
			InputHash:        r.InputHash,
			OutputHash:       r.OutputHash,
			Diagnostics:      len(r.Diagnostics),
			GeneratorVersion: r.GeneratorVersion,
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	rows := make([][]string, len(result.Runs))
	for i, e := range result.Runs {
		rows[i] = []string{
			strconv.FormatInt(e.Seq, 10),
			e.RunID,
			e.Source,
			e.View,
			strconv.Itoa(e.Diagnostics),
			shortHash(e.OutputHash),
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SEQ", "RUN", "SOURCE", "VIEW", "WARNINGS", "OUTPUT").
		Rows(rows...)
	fmt.Fprintln(formatter.Writer, t.Render())
	return nil
}

// openExistingLedger opens flagPath, or the config's ledger. Unlike
// translate it never creates one.
func (o *RootOptions) openExistingLedger(flagPath string) (*store.Store, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	path := firstNonEmpty(flagPath, cfg.Resolve(cfg.Ledger))
	if path == "" {
		return nil, NewExitError(ExitCommandError, "no ledger: pass --ledger or set ledger in the config file")
	}
	ledger, err := openLedger(path, false)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	return ledger, nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
