package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/docgen/internal/config"
	"github.com/mvp-joe/docgen/internal/extraction"
	"github.com/mvp-joe/docgen/internal/manifest"
	"github.com/mvp-joe/docgen/internal/parsers"
)

const (
	readmeFile    = "README.md"
	changelogFile = "CHANGELOG.md"
)

// Extractor builds ExtractedDocs for a package from its TypeScript sources.
type Extractor struct {
	scanner     *parsers.TypeScriptScanner
	log         *logrus.Logger
	concurrency int
}

// New creates an extractor. A nil logger falls back to logrus.New().
func New(log *logrus.Logger) *Extractor {
	if log == nil {
		log = logrus.New()
	}
	return &Extractor{
		scanner:     parsers.NewTypeScriptScanner(),
		log:         log,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// ExtractPackage scans the package at root: declared entry points first, then
// every other source file under the package's source directory. An entry
// point that exists but cannot be read fails the whole package.
func (x *Extractor) ExtractPackage(ctx context.Context, root string, cfg config.PackageConfig) (*extraction.ExtractedDocs, error) {
	log := x.log.WithField("package", cfg.Name)
	log.Infof("Extracting TypeScript documentation from %s", root)

	files := make(map[string][]extraction.Export)

	for _, entry := range cfg.EntryPoints {
		entryPath := filepath.Join(root, entry)
		if !isFile(entryPath) {
			log.Debugf("Entry point %s not found, skipping", entryPath)
			continue
		}

		exports, err := x.scanner.ScanFile(ctx, entryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to extract entry point %s: %w", entryPath, err)
		}
		files[entryPath] = exports
	}

	discovery, err := NewFileDiscovery(root, x.scanner.Extensions(), cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern for %s: %w", cfg.Name, err)
	}

	candidates, err := discovery.DiscoverFiles(filepath.Join(root, cfg.SourceRoot()))
	if err != nil {
		return nil, fmt.Errorf("failed to walk sources of %s: %w", cfg.Name, err)
	}

	var pending []string
	for _, path := range candidates {
		if _, scanned := files[path]; !scanned {
			pending = append(pending, path)
		}
	}

	walked, err := x.scanAll(ctx, log, pending)
	if err != nil {
		return nil, err
	}
	for path, exports := range walked {
		if len(exports) > 0 {
			files[path] = exports
		}
	}

	name, version, description := x.readMetadata(log, root)

	docs := &extraction.ExtractedDocs{
		Package: extraction.Package{
			Name:         name,
			Version:      version,
			Description:  description,
			Path:         root,
			Kind:         cfg.Kind,
			InternalDeps: []string{},
			Exports:      []extraction.Export{},
		},
		Files:     files,
		Readme:    readOptionalFile(filepath.Join(root, readmeFile)),
		Changelog: readOptionalFile(filepath.Join(root, changelogFile)),
	}

	for _, path := range docs.FilePaths() {
		docs.Package.Exports = append(docs.Package.Exports, files[path]...)
	}

	log.Debugf("Extracted %d exports from %d files", len(docs.Package.Exports), len(files))
	return docs, nil
}

// ExtractFile scans a single source file.
func (x *Extractor) ExtractFile(ctx context.Context, path string) ([]extraction.Export, error) {
	return x.scanner.ScanFile(ctx, path)
}

// scanAll scans paths concurrently. Files that cannot be read are logged and
// left out; only cancellation aborts the scan.
func (x *Extractor) scanAll(ctx context.Context, log *logrus.Entry, paths []string) (map[string][]extraction.Export, error) {
	results := make(map[string][]extraction.Export, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.concurrency)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			exports, err := x.scanner.ScanFile(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warnf("Skipping %s: %v", path, err)
				return nil
			}

			mu.Lock()
			results[path] = exports
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readMetadata reads name, version and description from package.json,
// falling back to placeholders when it is missing or malformed.
func (x *Extractor) readMetadata(log *logrus.Entry, root string) (string, string, string) {
	m, err := manifest.Read(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("No %s in %s, using default metadata", manifest.FileName, root)
		} else {
			log.Warnf("Ignoring unusable manifest: %v", err)
		}
		return manifest.UnknownName, manifest.UnknownVersion, ""
	}
	return m.WithDefaults()
}

// readOptionalFile returns the file content, or "" if it cannot be read.
func readOptionalFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
