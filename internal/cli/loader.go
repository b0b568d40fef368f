package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/roach88/jmlgen/internal/config"
	"github.com/roach88/jmlgen/internal/engine"
)

// LoadMode controls how errors are handled during source loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first unreadable file.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll reads every file and collects all errors.
	LoadModeCollectAll
)

// LoadResult contains the Contract-LIB sources found under a path.
type LoadResult struct {
	Root      string          // the path given on the command line
	Sources   []engine.Source // sorted by Name
	FileCount int             // files matching the configured extensions
}

// LoadError represents an error that occurred during source loading.
type LoadError struct {
	Code    string
	Message string
	Path    string // offending file, if any
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants shared by all CLI commands. Translation errors
// carry the compiler's own E2xx codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No source files found
	ErrCodeReadFailed  = "E004" // Source file unreadable
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeLedger      = "E006" // Ledger open/read/write error
	ErrCodeWriteFailed = "E007" // Output file write error
)

// LoadSources reads path, a single file or a directory walked
// recursively for files with cfg's extensions. A file named directly is
// read whatever its extension. Source names are paths relative to a
// directory root, or the base name for a single file.
func LoadSources(path string, cfg *config.Config, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}}
	}

	if !info.IsDir() {
		src, err := readSource(path, filepath.Base(path))
		if err != nil {
			return nil, []error{err}
		}
		return &LoadResult{Root: path, Sources: []engine.Source{src}, FileCount: 1}, nil
	}

	files, err := FindSourceFiles(path, cfg)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{
			Code:    ErrCodeNoFiles,
			Message: fmt.Sprintf("no source files (%v) found in %s", cfg.Extensions, path),
		}}
	}

	result := &LoadResult{Root: path, FileCount: len(files)}
	var errs []error
	for _, f := range files {
		rel, err := filepath.Rel(path, f)
		if err != nil {
			rel = f
		}
		src, err := readSource(f, filepath.ToSlash(rel))
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Sources = append(result.Sources, src)
	}
	return result, errs
}

// FindSourceFiles walks dir and returns files with cfg's extensions,
// sorted so batch output order is stable.
func FindSourceFiles(dir string, cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && cfg.HasExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func readSource(path, name string) (engine.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Source{}, &LoadError{Code: ErrCodeReadFailed, Message: err.Error(), Path: path}
	}
	return engine.Source{Name: name, Text: string(data)}, nil
}

// firstLoadError converts the first load error to an ExitError after
// reporting it through formatter.
func firstLoadError(formatter *OutputFormatter, errs []error) error {
	code, msg := ErrCodeGeneric, errs[0].Error()
	var le *LoadError
	if errors.As(errs[0], &le) {
		code, msg = le.Code, le.Message
		if le.Path != "" {
			msg = le.Path + ": " + msg
		}
	}
	_ = formatter.Error(code, msg, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, msg))
}
