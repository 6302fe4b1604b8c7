package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ConfigName is the base name of the configuration file searched in the root.
const ConfigName = "docgen"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins).
	// When no config file exists, packages are auto-discovered.
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
	log        *logrus.Logger
}

// NewLoader creates a configuration loader for the given root directory.
// configFile, when non-empty, names an explicit file that must exist.
func NewLoader(rootDir, configFile string, log *logrus.Logger) Loader {
	if log == nil {
		log = logrus.New()
	}
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
		log:        log,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DOCGEN_*)
// 2. Config file (docgen.yaml or docgen.yml in the root, or --config)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// DOCGEN_OUTPUT_DIR overrides output.dir, and so on.
	v.SetEnvPrefix("DOCGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("title")
	v.BindEnv("description")
	v.BindEnv("scope")
	v.BindEnv("output.dir")
	v.BindEnv("output.api_reference")
	v.BindEnv("output.changelog")
	v.BindEnv("output.package_readme")

	setDefaults(v)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fileFound = false
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if fileFound {
		l.log.Debugf("Using config file %s", v.ConfigFileUsed())
	} else {
		l.log.Infof("No %s.yaml found, auto-discovering packages...", ConfigName)
		packages, err := DiscoverPackages(l.rootDir, l.log)
		if err != nil {
			return nil, fmt.Errorf("failed to discover packages: %w", err)
		}
		cfg.Packages = packages
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("title", defaults.Title)
	v.SetDefault("description", defaults.Description)
	v.SetDefault("scope", defaults.Scope)

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.api_reference", defaults.Output.APIReference)
	v.SetDefault("output.changelog", defaults.Output.Changelog)
	v.SetDefault("output.package_readme", defaults.Output.PackageReadme)

	v.SetDefault("validate.required_files", defaults.Validate.RequiredFiles)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string, log *logrus.Logger) (*Config, error) {
	return NewLoader(rootDir, "", log).Load()
}

// ResolvePath returns the package directory, joining relative paths onto root.
func (p PackageConfig) ResolvePath(root string) string {
	if filepath.IsAbs(p.Path) {
		return p.Path
	}
	return filepath.Join(root, p.Path)
}

// ResolveOutputDir returns the output directory, joining relative paths onto root.
// An explicit override (e.g. from a flag) takes precedence when non-empty.
func (c *Config) ResolveOutputDir(root, override string) string {
	dir := c.Output.Dir
	if override != "" {
		dir = override
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
