package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jmlgen/internal/compiler"
	"github.com/roach88/jmlgen/internal/engine"
	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
	"github.com/roach88/jmlgen/internal/store"
)

// OutputExt is the extension of files written with --output.
const OutputExt = ".java"

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	View          string
	OutputDir     string
	Ledger        string
	StrictSymbols bool
}

// FileResult is the outcome for one source document.
type FileResult struct {
	Source         string                `json:"source"`
	RunID          string                `json:"run_id,omitempty"`
	View           string                `json:"view,omitempty"`
	InputHash      string                `json:"input_hash,omitempty"`
	OutputHash     string                `json:"output_hash,omitempty"`
	Output         string                `json:"output,omitempty"`
	OutputPath     string                `json:"output_path,omitempty"`
	Entities       any                   `json:"entities,omitempty"`
	Diagnostics    []compiler.Diagnostic `json:"diagnostics,omitempty"`
	Skipped        []string              `json:"skipped,omitempty"`
	UnchangedSince string                `json:"unchanged_since,omitempty"`
	Error          *CLIError             `json:"error,omitempty"`
}

// TranslateResult holds the overall translate result.
type TranslateResult struct {
	Files      []FileResult `json:"files"`
	Translated int          `json:"translated"`
	Failed     int          `json:"failed"`
	Warnings   int          `json:"warnings"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <file-or-dir>",
		Short: "Translate Contract-LIB documents to JML",
		Long: `Translate Contract-LIB documents into JML-annotated Java interfaces.

A directory is searched recursively for files with the configured
extensions (default .smt2 and .cl) and translated concurrently.

Without --output the generated text is written to stdout. With --output
each document becomes <dir>/<name>` + OutputExt + `. With --ledger every
successful run is recorded in a SQLite ledger, and documents whose
content was already translated are reported as unchanged.

Exit codes:
  0 - All documents translated
  1 - A document failed to translate (or produced warnings with --strict)
  2 - Command error (invalid path, config or ledger)

Examples:
  jmlgen translate list.smt2
  jmlgen translate ./contracts --output ./gen --ledger .jmlgen/ledger.db
  jmlgen translate ./contracts --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.View, "view", "", "output view (outer|inner); default from config")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "write one file per document into this directory")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record runs in this SQLite ledger")
	cmd.Flags().BoolVar(&opts.StrictSymbols, "strict", false, "treat unknown-symbol warnings as failures")

	return cmd
}

func runTranslate(opts *TranslateOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	cfg, err := opts.config()
	if err != nil {
		return err
	}
	view, err := engine.ParseView(firstNonEmpty(opts.View, cfg.View))
	if err != nil {
		_ = formatter.Error(string(engine.ErrCodeUnknownView), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid view", err)
	}
	outputDir := firstNonEmpty(opts.OutputDir, cfg.Resolve(cfg.Output))
	strict := opts.StrictSymbols || cfg.StrictSymbols

	loaded, loadErrs := LoadSources(path, cfg, LoadModeFailFast)
	if len(loadErrs) > 0 {
		return firstLoadError(formatter, loadErrs)
	}
	formatter.VerboseLog("Found %d source file(s) in %s", loaded.FileCount, path)

	var ledger *store.Store
	if ledgerPath := firstNonEmpty(opts.Ledger, cfg.Resolve(cfg.Ledger)); ledgerPath != "" {
		ledger, err = openLedger(ledgerPath, true)
		if err != nil {
			_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open ledger", err)
		}
		defer ledger.Close()
	}

	eng := opts.newEngine(cfg, formatter.GetErrWriter())
	batch := eng.TranslateBatch(ctx, loaded.Sources, view)

	result := TranslateResult{Files: make([]FileResult, 0, len(batch))}
	textByName := make(map[string]string, len(loaded.Sources))
	for _, s := range loaded.Sources {
		textByName[s.Name] = s.Text
	}

	for _, br := range batch {
		fr := FileResult{Source: br.Name}
		if br.Err != nil {
			fr.Error = cliError(br.Err)
			result.Failed++
			result.Files = append(result.Files, fr)
			continue
		}

		res := br.Result
		fr.RunID = res.RunID
		fr.View = string(res.View)
		fr.InputHash = res.InputHash
		fr.OutputHash = res.OutputHash
		fr.Output = res.Output
		fr.Diagnostics = res.Diagnostics
		for _, sk := range res.Skipped {
			fr.Skipped = append(fr.Skipped, sk.Name)
		}
		if res.Document != nil {
			fr.Entities = jml.Canonical(res.Document)["entities"]
		}
		result.Warnings += len(res.Diagnostics)

		// A strict failure is a failure like any other: nothing is
		// recorded, written or printed.
		if strict && len(res.Diagnostics) > 0 {
			fr.Output, fr.Entities = "", nil
			fr.Error = &CLIError{
				Code:    compiler.WarnUnknownSymbol,
				Message: fmt.Sprintf("%d unknown-symbol warning(s) with --strict", len(res.Diagnostics)),
			}
			result.Failed++
			result.Files = append(result.Files, fr)
			continue
		}

		if ledger != nil {
			prev, err := recordRun(ctx, ledger, br.Name, textByName[br.Name], res)
			if err != nil {
				_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to record run", err)
			}
			fr.UnchangedSince = prev
		}

		if outputDir != "" {
			fr.OutputPath, err = writeOutput(outputDir, br.Name, res.Output)
			if err != nil {
				fr.Error = &CLIError{Code: ErrCodeWriteFailed, Message: err.Error()}
				result.Failed++
				result.Files = append(result.Files, fr)
				continue
			}
		}

		result.Translated++
		result.Files = append(result.Files, fr)
	}

	if opts.Format == "json" {
		return outputTranslateJSON(formatter, result)
	}
	return outputTranslateText(formatter, result, outputDir != "")
}

// recordRun writes res to the ledger and returns the ID of an earlier run
// of identical input, if any.
func recordRun(ctx context.Context, ledger *store.Store, name, text string, res *engine.Result) (string, error) {
	var previous string
	prev, err := ledger.LatestByInputHash(ctx, res.InputHash, string(res.View))
	switch {
	case err == nil:
		previous = prev.ID
	case !errors.Is(err, store.ErrRunNotFound):
		return "", err
	}

	_, err = ledger.WriteRun(ctx, store.Run{
		ID:               res.RunID,
		Source:           name,
		SourceText:       text,
		InputHash:        res.InputHash,
		View:             string(res.View),
		Output:           res.Output,
		OutputHash:       res.OutputHash,
		Diagnostics:      res.Diagnostics,
		IRVersion:        ir.IRVersion,
		GeneratorVersion: ir.GeneratorVersion,
	})
	return previous, err
}

func writeOutput(dir, name, output string) (string, error) {
	rel := strings.TrimSuffix(filepath.FromSlash(name), filepath.Ext(name)) + OutputExt
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// openLedger opens the ledger at path. With create false a missing file
// is an error rather than a new empty ledger.
func openLedger(path string, create bool) (*store.Store, error) {
	if !create {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("ledger not found: %s", path)
		}
	} else if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}
	return store.Open(path)
}

// cliError maps translation and runtime errors to a response error.
func cliError(err error) *CLIError {
	var ce *compiler.CompileError
	if errors.As(err, &ce) {
		return &CLIError{Code: ce.Code, Message: err.Error(), Details: map[string]any{"kind": ce.Kind}}
	}
	var re *engine.RuntimeError
	if errors.As(err, &re) {
		return &CLIError{Code: string(re.Code), Message: err.Error()}
	}
	return &CLIError{Code: ErrCodeGeneric, Message: err.Error()}
}

func outputTranslateJSON(formatter *OutputFormatter, result TranslateResult) error {
	resp := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    "E_TRANSLATE_FAILED",
			Message: fmt.Sprintf("%d document(s) failed", result.Failed),
		}
	}
	if len(result.Files) == 1 {
		resp.RunID = result.Files[0].RunID
	}
	if err := formatter.Respond(resp); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d document(s) failed", result.Failed))
	}
	return nil
}

// outputTranslateText prints generated text to Writer and everything else
// (warnings, ledger notes, summary) to ErrWriter, so stdout can be
// redirected straight into a .java file.
func outputTranslateText(f *OutputFormatter, result TranslateResult, wroteFiles bool) error {
	w, ew := f.Writer, f.GetErrWriter()
	multi := len(result.Files) > 1

	for _, fr := range result.Files {
		for _, d := range fr.Diagnostics {
			f.Warn("%s: %s", fr.Source, d)
		}
		if fr.UnchangedSince != "" {
			fmt.Fprintf(ew, "%s: unchanged since run %s\n", fr.Source, f.Dim(fr.UnchangedSince))
		}
		if fr.Error != nil && fr.Output == "" {
			fmt.Fprintf(ew, "%s %s: [%s] %s\n", f.Fail(), fr.Source, fr.Error.Code, fr.Error.Message)
			continue
		}
		if fr.Error != nil {
			fmt.Fprintf(ew, "%s %s: %s\n", f.Fail(), fr.Source, fr.Error.Message)
		}

		switch {
		case wroteFiles:
			if fr.OutputPath != "" {
				fmt.Fprintf(w, "%s %s -> %s\n", f.Pass(), fr.Source, fr.OutputPath)
			}
		case multi:
			fmt.Fprintf(w, "// source: %s\n%s\n", fr.Source, fr.Output)
		default:
			fmt.Fprint(w, fr.Output)
		}
		f.VerboseLog("%s: run %s, output %s", fr.Source, fr.RunID, fr.OutputHash)
	}

	if result.Failed > 0 {
		fmt.Fprintf(ew, "%s %d of %d document(s) failed\n", f.Fail(), result.Failed, len(result.Files))
		return NewExitError(ExitFailure, fmt.Sprintf("%d document(s) failed", result.Failed))
	}
	if multi || wroteFiles {
		fmt.Fprintf(ew, "%s %d document(s) translated, %d warning(s)\n", f.Pass(), result.Translated, result.Warnings)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
