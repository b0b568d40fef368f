// Package config loads jmlgen project settings from .jmlgen.yaml or
// jmlgen.toml and validates them against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/jmlgen/internal/compiler"
)

//go:embed schema.cue
var schemaCUE string

// File names searched by FindAndLoad, in priority order.
const (
	YAMLName = ".jmlgen.yaml"
	TOMLName = "jmlgen.toml"
)

// Symbol adds or overrides one symbol-table entry.
type Symbol struct {
	JML   string `yaml:"jml" toml:"jml" json:"jml"`
	Arity int    `yaml:"arity" toml:"arity" json:"arity"`
	Infix bool   `yaml:"infix" toml:"infix" json:"infix,omitempty"`
}

// Config holds project settings. Command-line flags take precedence.
type Config struct {
	View          string            `yaml:"view" toml:"view" json:"view,omitempty"`
	Output        string            `yaml:"output" toml:"output" json:"output,omitempty"`
	Ledger        string            `yaml:"ledger" toml:"ledger" json:"ledger,omitempty"`
	StrictSymbols bool              `yaml:"strict_symbols" toml:"strict_symbols" json:"strict_symbols,omitempty"`
	Workers       int               `yaml:"workers" toml:"workers" json:"workers,omitempty"`
	Extensions    []string          `yaml:"extensions" toml:"extensions" json:"extensions,omitempty"`
	Symbols       map[string]Symbol `yaml:"symbols" toml:"symbols" json:"symbols,omitempty"`

	// Path is the file the config was loaded from ("" for defaults).
	Path string `yaml:"-" toml:"-" json:"-"`
}

// Error reports an unreadable or invalid config file.
type Error struct {
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path == "" {
		return "config: " + msg
	}
	return fmt.Sprintf("config %s: %s", e.Path, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		View:       "outer",
		Extensions: []string{".smt2", ".cl"},
	}
}

// Load reads the config file at path. The format follows the extension:
// .toml is TOML, anything else is YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "cannot read file", Err: err}
	}

	var cfg *Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = ParseTOML(data)
	} else {
		cfg, err = ParseYAML(data)
	}
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// FindAndLoad walks up from startDir looking for .jmlgen.yaml, then
// jmlgen.toml, in each directory. Returns Default() if none is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range []string{YAMLName, TOMLName} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// ParseYAML decodes and validates a YAML config. Unknown keys are errors.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Message: "invalid YAML", Err: err}
	}
	return finish(&cfg)
}

// ParseTOML decodes and validates a TOML config. Unknown keys are errors.
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, &Error{Message: "invalid TOML", Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &Error{Message: fmt.Sprintf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	def := Default()
	if cfg.View == "" {
		cfg.View = def.View
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = def.Extensions
	}
	return cfg, nil
}

// Validate checks c against the #Config schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	val := ctx.Encode(c)
	if err := val.Err(); err != nil {
		return &Error{Path: c.Path, Message: "cannot encode config", Err: err}
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		details := strings.TrimSpace(cueerrors.Details(err, nil))
		return &Error{Path: c.Path, Message: "does not match schema", Err: errors.New(details)}
	}
	return nil
}

// SymbolTable returns the default symbol table overlaid with c.Symbols.
func (c *Config) SymbolTable() *compiler.SymbolTable {
	if len(c.Symbols) == 0 {
		return compiler.DefaultSymbols()
	}
	extra := make(map[string]compiler.Function, len(c.Symbols))
	for name, s := range c.Symbols {
		extra[name] = compiler.Function{Name: s.JML, Arity: s.Arity, Infix: s.Infix}
	}
	return compiler.DefaultSymbols().With(extra)
}

// Resolve interprets a path taken from the config file relative to the
// file's directory. Empty and absolute paths are returned unchanged, as
// is every path of a default config.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}

// HasExtension reports whether path has one of the configured source
// file extensions.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
