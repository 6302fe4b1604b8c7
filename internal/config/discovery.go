package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/docgen/internal/manifest"
)

// packagesDir is the monorepo directory scanned by auto-discovery.
const packagesDir = "packages"

// discoveryDepth bounds how far below packagesDir manifests are looked for.
const discoveryDepth = 2

// DiscoverPackages finds packages under root/packages (up to two levels deep)
// that carry a package.json with a non-empty name.
func DiscoverPackages(root string, log *logrus.Logger) ([]PackageConfig, error) {
	if log == nil {
		log = logrus.New()
	}

	base := filepath.Join(root, packagesDir)
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		log.Debugf("No %s directory under %s", packagesDir, root)
		return []PackageConfig{}, nil
	}

	packages := []PackageConfig{}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectories are skipped, the root must be readable.
			if path == base {
				return err
			}
			log.Warnf("Skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		depth := 0
		if rel != "." {
			depth = strings.Count(filepath.ToSlash(rel), "/") + 1
		}
		if depth > discoveryDepth {
			return filepath.SkipDir
		}
		if d.Name() == "node_modules" {
			return filepath.SkipDir
		}

		if !fileExists(filepath.Join(path, manifest.FileName)) {
			return nil
		}

		pkg, ok, err := packageFromManifest(root, path)
		if err != nil {
			log.Warnf("Skipping package at %s: %v", path, err)
			return nil
		}
		if ok {
			log.Debugf("Discovered package %s (%s) at %s", pkg.Name, pkg.Kind, pkg.Path)
			packages = append(packages, pkg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return packages, nil
}

// packageFromManifest builds a PackageConfig from dir/package.json.
// ok is false when the manifest has no name.
func packageFromManifest(root, dir string) (PackageConfig, bool, error) {
	m, err := manifest.Read(dir)
	if err != nil {
		return PackageConfig{}, false, err
	}
	if m.Name == "" {
		return PackageConfig{}, false, nil
	}

	relPath, err := filepath.Rel(root, dir)
	if err != nil {
		relPath = dir
	}

	entryPoints := []string{DefaultEntryPoint}
	for _, p := range m.ImportPaths() {
		if !contains(entryPoints, p) {
			entryPoints = append(entryPoints, p)
		}
	}

	return PackageConfig{
		Name:        m.Name,
		Path:        relPath,
		Kind:        InferKind(m.Name),
		EntryPoints: entryPoints,
		Exclude:     append([]string(nil), DefaultExclude...),
		SourceDir:   DefaultSourceDir,
	}, true, nil
}

// InferKind guesses the package kind from its name.
func InferKind(name string) PackageKind {
	switch {
	case containsAny(name, "adapter", "oracle", "drizzle", "mongodb"):
		return KindAdapter
	case containsAny(name, "sveltekit", "frontend"):
		return KindFrontend
	case containsAny(name, "swift", "ios", "kit"):
		return KindMobile
	default:
		return KindCore
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
