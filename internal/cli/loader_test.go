package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jmlgen/internal/config"
	"github.com/roach88/jmlgen/internal/testutil"
)

func TestLoadSources_Directory(t *testing.T) {
	loaded, errs := LoadSources(contractsDir, config.Default(), LoadModeFailFast)
	require.Empty(t, errs)
	require.NotNil(t, loaded)

	assert.Equal(t, 2, loaded.FileCount)
	require.Len(t, loaded.Sources, 2)
	assert.Equal(t, "linked_list.smt2", loaded.Sources[0].Name)
	assert.Equal(t, "nested/cache_stack.smt2", loaded.Sources[1].Name)
	assert.Contains(t, loaded.Sources[0].Text, "define-contract")
}

func TestLoadSources_SingleFileIgnoresExtension(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "list.txt", "(check-sat)")

	loaded, errs := LoadSources(path, config.Default(), LoadModeFailFast)
	require.Empty(t, errs)
	require.Len(t, loaded.Sources, 1)
	assert.Equal(t, "list.txt", loaded.Sources[0].Name)
}

func TestLoadSources_ConfiguredExtensions(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.smt2", "(check-sat)")
	testutil.WriteFile(t, dir, "b.cl", "(check-sat)")

	cfg := config.Default()
	cfg.Extensions = []string{".cl"}

	loaded, errs := LoadSources(dir, cfg, LoadModeFailFast)
	require.Empty(t, errs)
	require.Len(t, loaded.Sources, 1)
	assert.Equal(t, "b.cl", loaded.Sources[0].Name)
}

func TestLoadSources_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing path", filepath.Join(t.TempDir(), "missing"), ErrCodeNotFound},
		{"no matching files", t.TempDir(), ErrCodeNoFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, errs := LoadSources(tt.path, config.Default(), LoadModeCollectAll)
			assert.Nil(t, loaded)
			require.Len(t, errs, 1)

			var le *LoadError
			require.True(t, errors.As(errs[0], &le))
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestLoadError_Error(t *testing.T) {
	assert.Equal(t, "E003: nothing", (&LoadError{Code: ErrCodeNoFiles, Message: "nothing"}).Error())
	assert.Equal(t, "a.smt2: E004: denied", (&LoadError{Code: ErrCodeReadFailed, Message: "denied", Path: "a.smt2"}).Error())
}
