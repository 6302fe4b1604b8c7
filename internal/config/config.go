package config

import (
	"strings"
)

// PackageKind classifies a monorepo package for the API index.
type PackageKind string

const (
	// KindCore is a core backend package.
	KindCore PackageKind = "core"
	// KindAdapter is a database adapter.
	KindAdapter PackageKind = "adapter"
	// KindFrontend is a frontend integration.
	KindFrontend PackageKind = "frontend"
	// KindMobile is a mobile SDK.
	KindMobile PackageKind = "mobile"
)

// Kinds lists every package kind in API index order.
var Kinds = []PackageKind{KindCore, KindAdapter, KindFrontend, KindMobile}

// Valid reports whether k is one of the known kinds.
func (k PackageKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Config represents the complete docgen configuration.
// It can be loaded from docgen.yaml with environment variable overrides.
type Config struct {
	Title       string          `yaml:"title" mapstructure:"title"`             // API index heading
	Description string          `yaml:"description" mapstructure:"description"` // API index intro paragraph
	Scope       string          `yaml:"scope" mapstructure:"scope"`             // npm scope stripped from slugs, e.g. "@acme/"
	Packages    []PackageConfig `yaml:"packages" mapstructure:"packages"`
	Output      OutputConfig    `yaml:"output" mapstructure:"output"`
	Validate    ValidateConfig  `yaml:"validate" mapstructure:"validate"`
	Templates   string          `yaml:"templates,omitempty" mapstructure:"templates"`
}

// PackageConfig describes a single package to document.
type PackageConfig struct {
	Name        string      `yaml:"name" mapstructure:"name"`
	Path        string      `yaml:"path" mapstructure:"path"`
	Kind        PackageKind `yaml:"kind" mapstructure:"kind"`
	EntryPoints []string    `yaml:"entry_points" mapstructure:"entry_points"` // relative to Path
	Exclude     []string    `yaml:"exclude" mapstructure:"exclude"`           // glob patterns relative to Path
	SourceDir   string      `yaml:"source_dir,omitempty" mapstructure:"source_dir"`
}

// OutputConfig controls what gets written.
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	APIReference  bool   `yaml:"api_reference" mapstructure:"api_reference"`
	Changelog     bool   `yaml:"changelog" mapstructure:"changelog"`
	PackageReadme bool   `yaml:"package_readme" mapstructure:"package_readme"`
}

// ValidateConfig controls the documentation validator.
type ValidateConfig struct {
	RequiredFiles []string `yaml:"required_files" mapstructure:"required_files"` // relative to the docs dir
}

const (
	// DefaultSourceDir is walked when a package does not set source_dir.
	DefaultSourceDir = "src"

	// DefaultEntryPoint is added to every auto-discovered package.
	DefaultEntryPoint = "src/index.ts"
)

// DefaultExclude holds the exclusion globs applied to auto-discovered packages.
var DefaultExclude = []string{
	"**/*.test.ts",
	"**/*.spec.ts",
	"**/test/**",
	"**/tests/**",
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Title:       "API Reference",
		Description: "Complete API documentation for the packages in this repository.",
		Scope:       "",
		Packages:    []PackageConfig{},
		Output: OutputConfig{
			Dir:           "docs",
			APIReference:  true,
			Changelog:     true,
			PackageReadme: true,
		},
		Validate: ValidateConfig{
			RequiredFiles: []string{
				"index.md",
				"getting-started/installation.md",
				"getting-started/quickstart.md",
			},
		},
	}
}

// SourceRoot returns the directory walked for additional exports.
func (p PackageConfig) SourceRoot() string {
	if strings.TrimSpace(p.SourceDir) == "" {
		return DefaultSourceDir
	}
	return p.SourceDir
}

// Slug derives the output directory name for a package: the scope prefix is
// removed and hyphens become underscores. Any other npm scope ("@org/") is
// dropped as well so the slug is always a single path segment.
func Slug(name, scope string) string {
	if scope != "" {
		name = strings.TrimPrefix(name, scope)
	}
	if strings.HasPrefix(name, "@") {
		if _, rest, ok := strings.Cut(name, "/"); ok {
			name = rest
		}
	}
	return strings.ReplaceAll(name, "-", "_")
}

// FilterPackages returns packages whose name contains filter.
// An empty filter returns all packages.
func (c *Config) FilterPackages(filter string) []PackageConfig {
	if filter == "" {
		return c.Packages
	}
	var out []PackageConfig
	for _, p := range c.Packages {
		if strings.Contains(p.Name, filter) {
			out = append(out, p)
		}
	}
	return out
}
