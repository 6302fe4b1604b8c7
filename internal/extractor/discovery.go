package extractor

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds source files below a package root, honoring exclusion
// globs written relative to that root (e.g. "**/*.test.ts", "src/legacy/**").
type FileDiscovery struct {
	rootDir         string
	extensions      map[string]bool
	excludePatterns []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, extensions, excludePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir:    rootDir,
		extensions: make(map[string]bool, len(extensions)),
	}

	for _, ext := range extensions {
		fd.extensions[ext] = true
	}

	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.excludePatterns = append(fd.excludePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// DiscoverFiles walks dir and returns every file with a recognized extension
// that is not excluded, in lexical order. A missing dir yields no files.
// Entries that cannot be read below dir are skipped.
func (fd *FileDiscovery) DiscoverFiles(dir string) ([]string, error) {
	files := []string{}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}

		relPath := fd.relative(path)

		if d.IsDir() {
			if path != dir && fd.IsExcluded(relPath+"/**") {
				return filepath.SkipDir
			}
			return nil
		}

		if !fd.extensions[filepath.Ext(path)] {
			return nil
		}

		if fd.IsExcluded(relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// IsExcluded reports whether a slash-separated path relative to the package
// root matches any exclusion pattern.
func (fd *FileDiscovery) IsExcluded(relPath string) bool {
	for _, cp := range fd.excludePatterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}

	// A file in the package root has no slash, so "**/*.test.ts" would not
	// match "a.test.ts". Retry those patterns without the leading "**/".
	if !strings.Contains(relPath, "/") {
		for _, cp := range fd.excludePatterns {
			if !strings.HasPrefix(cp.pattern, "**/") {
				continue
			}
			simplified := strings.TrimPrefix(cp.pattern, "**/")
			if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(relPath) {
				return true
			}
		}
	}

	return false
}

// relative returns path relative to the package root, slash separated.
func (fd *FileDiscovery) relative(path string) string {
	rel, err := filepath.Rel(fd.rootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
