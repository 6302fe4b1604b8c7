package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Manifest:
// - Parse reads name, version and description
// - Non-string fields are left empty
// - Invalid JSON is an error
// - Read wraps fs.ErrNotExist for a missing manifest
// - WithDefaults substitutes placeholders, also on a nil manifest
// - ImportPaths returns sorted "import" targets without "./"

func TestParse(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`{"name": "@acme/core", "version": "1.2.3", "description": "Core", "private": true}`))
	require.NoError(t, err)
	assert.Equal(t, "@acme/core", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	assert.Equal(t, "Core", m.Description)
}

func TestParse_NonStringFields(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`{"name": 42, "version": ["1"], "description": null}`))
	require.NoError(t, err)
	assert.Empty(t, m.Name)
	assert.Empty(t, m.Version)
	assert.Empty(t, m.Description)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"name": `))
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"name": "pkg"}`), 0644))

	m, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "pkg", m.Name)

	_, err = Read(t.TempDir())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	name, version, description := (&Manifest{Description: "d"}).WithDefaults()
	assert.Equal(t, UnknownName, name)
	assert.Equal(t, UnknownVersion, version)
	assert.Equal(t, "d", description)

	var missing *Manifest
	name, version, description = missing.WithDefaults()
	assert.Equal(t, UnknownName, name)
	assert.Equal(t, UnknownVersion, version)
	assert.Empty(t, description)
}

func TestImportPaths(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`{
  "name": "x",
  "exports": {
    "./utils": {"import": "./src/utils.ts", "require": "./dist/utils.cjs"},
    ".": {"import": "src/index.ts"},
    "./types": {"types": "./dist/types.d.ts"},
    "./package.json": "./package.json"
  }
}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts", "src/utils.ts"}, m.ImportPaths())

	m, err = Parse([]byte(`{"name": "x", "exports": "./index.js"}`))
	require.NoError(t, err)
	assert.Empty(t, m.ImportPaths())
}
