package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jmlgen/internal/compiler"
	"github.com/roach88/jmlgen/internal/engine"
	"github.com/roach88/jmlgen/internal/parser"
)

// FileValidation holds the findings for one document.
type FileValidation struct {
	Source string                     `json:"source"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

func (r ValidationResult) errorCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Errors)
	}
	return n
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file-or-dir>",
		Short: "Check documents without generating output",
		Long: `Check Contract-LIB documents for structural errors and unsupported
constructs without generating output.

Unlike translate, which stops at the first error in a document, validate
reports every finding.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.config()
	if err != nil {
		return err
	}

	loaded, loadErrs := LoadSources(path, cfg, LoadModeCollectAll)
	if loaded == nil {
		return firstLoadError(formatter, loadErrs)
	}
	formatter.VerboseLog("Found %d source file(s) in %s", loaded.FileCount, path)

	result := ValidationResult{Files: make([]FileValidation, 0, loaded.FileCount)}
	for _, err := range loadErrs {
		var le *LoadError
		if errors.As(err, &le) {
			result.Files = append(result.Files, FileValidation{
				Source: le.Path,
				Errors: []compiler.ValidationError{{Field: "source", Message: le.Message, Code: le.Code}},
			})
		}
	}
	for _, src := range loaded.Sources {
		formatter.VerboseLog("Validating %s", src.Name)
		result.Files = append(result.Files, FileValidation{
			Source: src.Name,
			Errors: ValidateSource(src),
		})
	}
	result.Valid = result.errorCount() == 0

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// ValidateSource parses src and returns every validation finding. A
// syntax error is the only finding when the document does not parse.
func ValidateSource(src engine.Source) []compiler.ValidationError {
	script, err := parser.Parse(src.Text)
	if err != nil {
		ve := compiler.ValidationError{
			Field:   "source",
			Message: err.Error(),
			Code:    compiler.ErrMalformedInput,
			Kind:    compiler.KindMalformedInput,
		}
		var se *parser.SyntaxError
		if errors.As(err, &se) {
			ve.Message = se.Message
			ve.Line = se.Pos.Line
		}
		return []compiler.ValidationError{ve}
	}
	return compiler.Validate(script.Commands)
}

func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s All %d document(s) valid\n", formatter.Pass(), len(result.Files))
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	n := result.errorCount()
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", n))

	if formatter.Format == "json" {
		var first compiler.ValidationError
		for _, f := range result.Files {
			if len(f.Errors) > 0 {
				first = f.Errors[0]
				break
			}
		}
		if err := formatter.Respond(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: first.Code, Message: first.Message},
		}); err != nil {
			return err
		}
		return exitErr
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s Validation failed\n\n", formatter.Fail())
	for _, f := range result.Files {
		for _, e := range f.Errors {
			if e.Line > 0 {
				fmt.Fprintf(w, "%s:%d\n", f.Source, e.Line)
			} else {
				fmt.Fprintf(w, "%s\n", f.Source)
			}
			fmt.Fprintf(w, "  %s: %s\n", e.Code, e.Message)
			if formatter.Verbose && e.Field != "" {
				fmt.Fprintf(w, "  at %s\n", e.Field)
			}
			fmt.Fprintln(w)
		}
	}
	return exitErr
}
