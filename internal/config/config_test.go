package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "outer", cfg.View)
	assert.Equal(t, "build/jml", cfg.Output)
	assert.Equal(t, ".jmlgen/ledger.db", cfg.Ledger)
	assert.True(t, cfg.StrictSymbols)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{".smt2"}, cfg.Extensions)
	assert.Equal(t, Symbol{JML: "+", Arity: 2, Infix: true}, cfg.Symbols["bvadd"])
	assert.Equal(t, filepath.Join("testdata", "valid.yaml"), cfg.Path)
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "valid.toml"))
	require.NoError(t, err)

	assert.Equal(t, "ledger.db", cfg.Ledger)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{".smt2", ".cl"}, cfg.Extensions, "defaults applied")
	assert.Equal(t, Symbol{JML: `\seq_reverse`, Arity: 1}, cfg.Symbols["seq.rev"])
}

func TestLoad_UnknownYAMLKey(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "unknown_key.yaml"))
	require.Error(t, err)

	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, filepath.Join("testdata", "unknown_key.yaml"), ce.Path)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad_SchemaViolation(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "bad_view.yaml"))
	require.Error(t, err)

	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Path, "bad_view.yaml")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseYAML_Empty(t *testing.T) {
	cfg, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseTOML_UnknownKey(t *testing.T) {
	_, err := ParseTOML([]byte("view = \"outer\"\nflavour = \"mint\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flavour")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"inner view", Config{View: "inner"}, false},
		{"bad view", Config{View: "sideways"}, true},
		{"workers in range", Config{Workers: 64}, false},
		{"too many workers", Config{Workers: 65}, true},
		{"negative workers", Config{Workers: -1}, true},
		{"extension without dot", Config{Extensions: []string{"smt2"}}, true},
		{"symbol ok", Config{Symbols: map[string]Symbol{"f": {JML: "g", Arity: 1}}}, false},
		{"symbol without name", Config{Symbols: map[string]Symbol{"f": {Arity: 1}}}, true},
		{"symbol negative arity", Config{Symbols: map[string]Symbol{"f": {JML: "g", Arity: -1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := FindAndLoad(nested)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "no config file anywhere")

	require.NoError(t, os.WriteFile(filepath.Join(root, TOMLName), []byte("workers = 3\n"), 0o644))
	cfg, err = FindAndLoad(nested)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)

	// YAML wins over TOML in the same directory.
	require.NoError(t, os.WriteFile(filepath.Join(root, YAMLName), []byte("workers: 5\n"), 0o644))
	cfg, err = FindAndLoad(nested)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, filepath.Join(root, YAMLName), cfg.Path)
}

func TestSymbolTable(t *testing.T) {
	cfg := &Config{Symbols: map[string]Symbol{
		"bvadd": {JML: "+", Arity: 2, Infix: true},
		"and":   {JML: "&", Arity: 2, Infix: true},
	}}

	table := cfg.SymbolTable()
	f, ok := table.Lookup("bvadd")
	require.True(t, ok)
	assert.Equal(t, "+", f.Name)

	f, ok = table.Lookup("and")
	require.True(t, ok)
	assert.Equal(t, "&", f.Name, "config overrides defaults")

	_, ok = table.Lookup("seq.unit")
	assert.True(t, ok, "defaults kept")

	d, _ := Default().SymbolTable().Lookup("and")
	assert.Equal(t, "&&", d.Name, "default table untouched")
}

func TestHasExtension(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.HasExtension("list.smt2"))
	assert.True(t, cfg.HasExtension("dir/list.CL"))
	assert.False(t, cfg.HasExtension("list.java"))
	assert.False(t, cfg.HasExtension("smt2"))
}

func TestResolve(t *testing.T) {
	cfg := &Config{Path: filepath.Join("proj", YAMLName)}
	assert.Equal(t, filepath.Join("proj", "build"), cfg.Resolve("build"))
	assert.Equal(t, "", cfg.Resolve(""))

	abs := filepath.Join(t.TempDir(), "ledger.db")
	assert.Equal(t, abs, cfg.Resolve(abs))
	assert.Equal(t, "ledger.db", Default().Resolve("ledger.db"))
}
