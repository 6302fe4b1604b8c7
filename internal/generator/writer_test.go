package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/docgen/internal/config"
	"github.com/mvp-joe/docgen/internal/extraction"
)

// Test Plan for Writer:
// - All pages are written when every option is on and content exists
// - Types and functions pages are skipped when their content is empty
// - Changelog and README options are honored
// - API index is written to api/index.md and skipped when disabled
// - JSON dump round-trips the extracted docs
// - Existing pages are replaced and no temp files are left behind
// - Pages no longer produced are removed on regeneration
// - RemoveJSON deletes an earlier dump and tolerates its absence
// - Single-file pages create their parent directories

func allOptions() config.OutputConfig {
	return config.OutputConfig{Dir: "docs", APIReference: true, Changelog: true, PackageReadme: true}
}

func quietLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

func fullDocs() *extraction.ExtractedDocs {
	docs := sampleDocs(
		extraction.Export{Name: "Options", Kind: extraction.KindInterface},
		addExport(),
	)
	docs.Readme = "# @acme/core\n\nCore primitives.\n"
	docs.Changelog = "# Changelog\n\n## 1.0.0\n"
	return docs
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWritePackageDocs_AllPages(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out, allOptions(), quietLogger())

	written, err := w.WritePackageDocs("core", fullDocs())
	require.NoError(t, err)

	dir := filepath.Join(out, "api", "core")
	assert.Equal(t, []string{
		filepath.Join(dir, "index.md"),
		filepath.Join(dir, "types.md"),
		filepath.Join(dir, "functions.md"),
		filepath.Join(dir, "changelog.md"),
	}, written)

	assert.Contains(t, readFile(t, filepath.Join(dir, "index.md")), "Core primitives.")
	assert.Equal(t, "# Changelog\n\n## 1.0.0\n", readFile(t, filepath.Join(dir, "changelog.md")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "functions.md")), "### `add`")

	info, err := os.Stat(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWritePackageDocs_EmptyPackage(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out, allOptions(), quietLogger())

	written, err := w.WritePackageDocs("empty", sampleDocs())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "api", "empty", "index.md")}, written)

	assert.NoFileExists(t, filepath.Join(out, "api", "empty", "types.md"))
	assert.NoFileExists(t, filepath.Join(out, "api", "empty", "functions.md"))
}

func TestWritePackageDocs_NoFunctions(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out, allOptions(), quietLogger())

	_, err := w.WritePackageDocs("core", sampleDocs(extraction.Export{Name: "ID", Kind: extraction.KindType}))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "api", "core", "types.md"))
	assert.NoFileExists(t, filepath.Join(out, "api", "core", "functions.md"))
}

func TestWritePackageDocs_OptionsDisabled(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	opts := allOptions()
	opts.Changelog = false
	opts.PackageReadme = false
	w := NewWriter(out, opts, quietLogger())

	docs := fullDocs()
	_, err := w.WritePackageDocs("core", docs)
	require.NoError(t, err)

	dir := filepath.Join(out, "api", "core")
	assert.NoFileExists(t, filepath.Join(dir, "changelog.md"))
	assert.NotContains(t, readFile(t, filepath.Join(dir, "index.md")), "Core primitives.")

	// The caller's docs are left untouched.
	assert.NotEmpty(t, docs.Readme)
}

func TestWritePackageDocs_ReplacesExisting(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out, allOptions(), quietLogger())

	dir := w.PackageDir("core")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("stale"), 0644))

	_, err := w.WritePackageDocs("core", fullDocs())
	require.NoError(t, err)
	assert.NotContains(t, readFile(t, filepath.Join(dir, "index.md")), "stale")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestWritePackageDocs_RemovesStalePages(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out, allOptions(), quietLogger())
	dir := w.PackageDir("core")

	_, err := w.WritePackageDocs("core", fullDocs())
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "functions.md"))

	noFunctions := fullDocs()
	noFunctions.Package.Exports = extraction.FilterKind(noFunctions.Package.Exports, extraction.KindInterface)
	_, err = w.WritePackageDocs("core", noFunctions)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "functions.md"))
	assert.FileExists(t, filepath.Join(dir, "types.md"))
	assert.FileExists(t, filepath.Join(dir, "changelog.md"))

	empty := sampleDocs()
	_, err = w.WritePackageDocs("core", empty)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "types.md"))
	assert.NoFileExists(t, filepath.Join(dir, "changelog.md"))
	assert.FileExists(t, filepath.Join(dir, "index.md"))
}

func TestWritePackageDocs_ChangelogDisabledRemovesCopy(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	_, err := NewWriter(out, allOptions(), quietLogger()).WritePackageDocs("core", fullDocs())
	require.NoError(t, err)

	opts := allOptions()
	opts.Changelog = false
	_, err = NewWriter(out, opts, quietLogger()).WritePackageDocs("core", fullDocs())
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(out, "api", "core", "changelog.md"))
}

func TestRemoveJSON(t *testing.T) {
	t.Parallel()

	w := NewWriter(t.TempDir(), allOptions(), quietLogger())

	require.NoError(t, w.RemoveJSON("core"))

	path, err := w.WriteJSON("core", fullDocs())
	require.NoError(t, err)
	require.NoError(t, w.RemoveJSON("core"))
	assert.NoFileExists(t, path)
}

func TestWriteAPIIndex(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out, allOptions(), quietLogger())

	path, err := w.WriteAPIIndex(APIIndex{
		Title:    "API Reference",
		Packages: []config.PackageConfig{{Name: "@acme/core", Kind: config.KindCore}},
		Scope:    "@acme/",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "api", "index.md"), path)
	assert.Equal(t, "# API Reference\n\n## Core Packages\n\n- [@acme/core](./core/)\n\n", readFile(t, path))
}

func TestWriteAPIIndex_Disabled(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	opts := allOptions()
	opts.APIReference = false
	w := NewWriter(out, opts, quietLogger())

	path, err := w.WriteAPIIndex(APIIndex{Title: "API Reference"})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NoFileExists(t, filepath.Join(out, "api", "index.md"))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out, allOptions(), quietLogger())

	path, err := w.WriteJSON("core", fullDocs())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "api", "core", "docs.json"), path)

	var decoded extraction.ExtractedDocs
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &decoded))
	assert.Equal(t, "@acme/core", decoded.Package.Name)
	require.Len(t, decoded.Package.Exports, 2)
	assert.Equal(t, extraction.KindFunction, decoded.Package.Exports[1].Kind)
}

func TestWriteFileTypes(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "nested", "deeper", "types.md")
	require.NoError(t, WriteFileTypes(outPath, "src/index.ts", []extraction.Export{addExport()}))

	content := readFile(t, outPath)
	assert.Contains(t, content, "# Types from src/index.ts")
	assert.Contains(t, content, "## Functions")
}

func TestNewWriter_NilLogger(t *testing.T) {
	t.Parallel()

	w := NewWriter(t.TempDir(), allOptions(), nil)
	assert.NotNil(t, w.log)
}
