package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyPackageName indicates a package entry without a name
	ErrEmptyPackageName = errors.New("empty package name")

	// ErrEmptyPackagePath indicates a package entry without a path
	ErrEmptyPackagePath = errors.New("empty package path")

	// ErrInvalidKind indicates an unsupported package kind
	ErrInvalidKind = errors.New("invalid package kind")

	// ErrInvalidExclude indicates an exclusion pattern that does not compile
	ErrInvalidExclude = errors.New("invalid exclude pattern")

	// ErrDuplicatePackage indicates two packages sharing a name
	ErrDuplicatePackage = errors.New("duplicate package")

	// ErrEmptyOutputDir indicates a missing output directory
	ErrEmptyOutputDir = errors.New("empty output directory")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: output.dir is required", ErrEmptyOutputDir))
	}

	seen := make(map[string]bool)
	for i := range cfg.Packages {
		if err := validatePackage(&cfg.Packages[i]); err != nil {
			errs = append(errs, err)
		}
		name := cfg.Packages[i].Name
		if name != "" && seen[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicatePackage, name))
		}
		seen[name] = true
	}

	return joinErrors(errs)
}

func validatePackage(p *PackageConfig) error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: package at path %q", ErrEmptyPackageName, p.Path))
	}

	if strings.TrimSpace(p.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: package %q", ErrEmptyPackagePath, p.Name))
	}

	// Kinds are matched case-insensitively; normalize so later comparisons are exact.
	p.Kind = PackageKind(strings.ToLower(string(p.Kind)))
	if !p.Kind.Valid() {
		errs = append(errs, fmt.Errorf("%w: package %q has kind %q (valid: core, adapter, frontend, mobile)", ErrInvalidKind, p.Name, p.Kind))
	}

	for _, pattern := range p.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: package %q pattern %q: %v", ErrInvalidExclude, p.Name, pattern, err))
		}
	}

	return joinErrors(errs)
}

// joinErrors combines multiple errors into a single error with clear formatting.
// Every input stays reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	verbs := make([]string, len(errs))
	args := make([]any, len(errs))
	for i, err := range errs {
		verbs[i] = "%w"
		args[i] = err
	}

	return fmt.Errorf("validation failed:\n  - "+strings.Join(verbs, "\n  - "), args...)
}
