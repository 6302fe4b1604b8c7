package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/docgen/internal/config"
	"github.com/mvp-joe/docgen/internal/extraction"
)

// APIDir is the directory under the output root holding generated pages.
const APIDir = "api"

// dumpFile is the JSON dump written next to a package's pages.
const dumpFile = "docs.json"

// Writer writes rendered pages below an output directory.
// Every file is written to a temp file in its target directory and renamed
// into place, so readers never see a partially written page.
type Writer struct {
	outputDir string
	options   config.OutputConfig
	log       *logrus.Logger
}

// NewWriter creates a writer rooted at outputDir. A nil logger falls back to
// logrus.New().
func NewWriter(outputDir string, options config.OutputConfig, log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.New()
	}
	return &Writer{
		outputDir: outputDir,
		options:   options,
		log:       log,
	}
}

// PackageDir returns the directory a package's pages are written to.
func (w *Writer) PackageDir(slug string) string {
	return filepath.Join(w.outputDir, APIDir, slug)
}

// WritePackageDocs writes index.md, types.md (when the package has exports),
// functions.md (when it has functions) and changelog.md (when enabled and
// present) into the package directory. Pages that are not written this time
// are removed. It returns the written paths.
func (w *Writer) WritePackageDocs(slug string, docs *extraction.ExtractedDocs) ([]string, error) {
	dir := w.PackageDir(slug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create package directory: %w", err)
	}

	if !w.options.PackageReadme && docs.Readme != "" {
		trimmed := *docs
		trimmed.Readme = ""
		docs = &trimmed
	}

	pages := []struct {
		name    string
		enabled bool
		render  func() string
	}{
		{IndexPage, true, func() string { return RenderPackageIndex(docs) }},
		{TypesPage, len(docs.Package.Exports) > 0, func() string { return RenderTypes(docs) }},
		{FunctionsPage, len(docs.ExportsOfKind(extraction.KindFunction)) > 0, func() string {
			return RenderFunctions(docs.Package.Name, docs.ExportsOfKind(extraction.KindFunction))
		}},
		{ChangelogPage, w.options.Changelog && docs.Changelog != "", func() string { return docs.Changelog }},
	}

	var written []string
	for _, page := range pages {
		path := filepath.Join(dir, page.name)
		if !page.enabled {
			// A page from an earlier run would otherwise outlive its content.
			if err := removeIfExists(path); err != nil {
				return written, err
			}
			continue
		}
		if err := writeFileAtomic(path, []byte(page.render())); err != nil {
			return written, err
		}
		w.log.Infof("Generated %s", path)
		written = append(written, path)
	}

	return written, nil
}

// WriteAPIIndex writes api/index.md listing the given packages by kind.
// Nothing is written when the API reference output is disabled.
func (w *Writer) WriteAPIIndex(index APIIndex) (string, error) {
	if !w.options.APIReference {
		w.log.Debug("API reference index disabled, skipping")
		return "", nil
	}

	dir := filepath.Join(w.outputDir, APIDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create api directory: %w", err)
	}

	path := filepath.Join(dir, IndexPage)
	if err := writeFileAtomic(path, []byte(RenderAPIIndex(index))); err != nil {
		return "", err
	}
	w.log.Infof("Generated %s", path)
	return path, nil
}

// WriteJSON dumps the extracted docs as indented JSON next to the pages.
func (w *Writer) WriteJSON(slug string, docs *extraction.ExtractedDocs) (string, error) {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal extracted docs: %w", err)
	}

	dir := w.PackageDir(slug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create package directory: %w", err)
	}

	path := filepath.Join(dir, dumpFile)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	w.log.Debugf("Wrote %s", path)
	return path, nil
}

// RemoveJSON deletes a package's JSON dump left by an earlier run, if any.
func (w *Writer) RemoveJSON(slug string) error {
	return removeIfExists(filepath.Join(w.PackageDir(slug), dumpFile))
}

// WriteFileTypes renders the exports of one source file to outPath,
// creating parent directories as needed.
func WriteFileTypes(outPath, sourcePath string, exports []extraction.Export) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return writeFileAtomic(outPath, []byte(RenderFileTypes(sourcePath, exports)))
}

// writeFileAtomic writes data to a temp file beside path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	// Rename to final location (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove stale %s: %w", path, err)
	}
	return nil
}
