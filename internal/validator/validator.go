// Package validator checks a generated documentation tree for structural
// problems: empty pages, missing titles, leftover TODOs, unbalanced code
// fences, missing required pages, broken internal links and an unusable
// mkdocs.yml.
package validator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MkdocsFile is the site configuration checked in the project root.
const MkdocsFile = "mkdocs.yml"

// ErrValidationFailed is returned by Check when the result did not pass.
var ErrValidationFailed = errors.New("documentation validation failed")

// Severity classifies an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding.
type Issue struct {
	Severity   Severity
	Message    string
	File       string
	Line       int // 1-based, 0 when the issue is not tied to a line
	Suggestion string
}

// Location formats the file and line for log output.
func (i Issue) Location() string {
	switch {
	case i.File != "" && i.Line > 0:
		return fmt.Sprintf(" at %s:%d", i.File, i.Line)
	case i.File != "":
		return fmt.Sprintf(" in %s", i.File)
	default:
		return ""
	}
}

// Result collects the findings of one run.
type Result struct {
	Passed   bool
	Errors   []Issue
	Warnings []Issue
	Info     []string
}

func (r *Result) addError(issue Issue) {
	issue.Severity = SeverityError
	r.Errors = append(r.Errors, issue)
	r.Passed = false
}

func (r *Result) addWarning(issue Issue) {
	issue.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, issue)
}

// Options configures a validation run.
type Options struct {
	DocsDir       string   // generated documentation root
	Root          string   // project root holding mkdocs.yml
	RequiredFiles []string // relative to DocsDir
	Strict        bool     // warnings fail the run
}

// Validator runs documentation checks.
type Validator struct {
	log *logrus.Logger
}

// New creates a validator. A nil logger falls back to logrus.New().
func New(log *logrus.Logger) *Validator {
	if log == nil {
		log = logrus.New()
	}
	return &Validator{log: log}
}

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// sourceLocation matches "path/to/file.ts:42" links that point into the
// source tree rather than the docs.
var sourceLocation = regexp.MustCompile(`\.tsx?:\d+$`)

// Validate runs every check and returns the findings. The returned error
// reports I/O failures only; findings never produce an error.
func (v *Validator) Validate(opts Options) (*Result, error) {
	v.log.Infof("Validating documentation in %s", opts.DocsDir)

	result := &Result{Passed: true}

	if info, err := os.Stat(opts.DocsDir); err != nil || !info.IsDir() {
		result.addError(Issue{
			Message:    "Documentation directory does not exist",
			File:       opts.DocsDir,
			Suggestion: "Run `docgen generate` to create documentation",
		})
		return v.finish(result, opts.Strict), nil
	}

	pages, err := markdownFiles(opts.DocsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", opts.DocsDir, err)
	}

	contents := make(map[string]string, len(pages))
	for _, page := range pages {
		data, err := os.ReadFile(page)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", page, err)
		}
		contents[page] = string(data)
		checkMarkdown(page, contents[page], result)
	}

	checkRequiredFiles(opts.DocsDir, opts.RequiredFiles, result)

	for _, page := range pages {
		checkLinks(opts.DocsDir, page, contents[page], result)
	}

	checkMkdocs(opts.Root, result)

	return v.finish(result, opts.Strict), nil
}

// Check runs Validate, logs the report and returns ErrValidationFailed when
// the run did not pass.
func (v *Validator) Check(opts Options) error {
	result, err := v.Validate(opts)
	if err != nil {
		return err
	}
	v.Report(result, opts.Strict)
	if !result.Passed {
		return ErrValidationFailed
	}
	return nil
}

func (v *Validator) finish(result *Result, strict bool) *Result {
	if strict && len(result.Warnings) > 0 {
		result.Passed = false
	}
	return result
}

// Report logs the findings grouped by severity followed by a summary.
func (v *Validator) Report(result *Result, strict bool) {
	if len(result.Errors) > 0 {
		v.log.Errorf("Errors (%d):", len(result.Errors))
		for _, issue := range result.Errors {
			v.log.Errorf("  • %s%s", issue.Message, issue.Location())
			if issue.Suggestion != "" {
				v.log.Errorf("    → %s", issue.Suggestion)
			}
		}
	}

	if len(result.Warnings) > 0 {
		label := "Warnings"
		if strict {
			label = "Warnings (strict)"
		}
		v.log.Warnf("%s (%d):", label, len(result.Warnings))
		for _, issue := range result.Warnings {
			v.log.Warnf("  • %s%s", issue.Message, issue.Location())
			if issue.Suggestion != "" {
				v.log.Warnf("    → %s", issue.Suggestion)
			}
		}
	}

	for _, msg := range result.Info {
		v.log.Infof("  %s", msg)
	}

	v.log.Infof("Summary: %d errors, %d warnings", len(result.Errors), len(result.Warnings))
	if result.Passed {
		v.log.Info("✓ Documentation validation passed")
	} else {
		v.log.Error("✗ Documentation validation failed")
	}
}

// markdownFiles lists every .md file under dir in lexical order.
func markdownFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".md" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func checkMarkdown(path, content string, result *Result) {
	lines := strings.Split(content, "\n")
	empty := strings.TrimSpace(content) == ""

	if empty {
		result.addWarning(Issue{
			Message:    "Empty documentation file",
			File:       path,
			Suggestion: "Add content or remove the file",
		})
	}

	hasTitle := false
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			hasTitle = true
			break
		}
	}
	if !hasTitle && !empty {
		result.addWarning(Issue{
			Message:    "Missing H1 title",
			File:       path,
			Suggestion: "Add a title starting with '# '",
		})
	}

	for i, line := range lines {
		if strings.Contains(line, "TODO") || strings.Contains(line, "FIXME") {
			result.addWarning(Issue{
				Message: fmt.Sprintf("Found TODO/FIXME: %s", strings.TrimSpace(line)),
				File:    path,
				Line:    i + 1,
			})
		}
	}

	if strings.Count(content, "```")%2 != 0 {
		result.addError(Issue{
			Message:    "Unmatched code block delimiter",
			File:       path,
			Suggestion: "Check that all ``` blocks are properly closed",
		})
	}
}

func checkRequiredFiles(docsDir string, required []string, result *Result) {
	for _, rel := range required {
		path := filepath.Join(docsDir, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err != nil {
			result.addError(Issue{
				Message:    fmt.Sprintf("Required file missing: %s", rel),
				File:       path,
				Suggestion: "Create the required documentation file",
			})
		}
	}
}

// checkLinks reports relative and root-relative links whose target does not
// exist. External links, pure anchors and source locations are skipped.
func checkLinks(docsDir, page, content string, result *Result) {
	for _, match := range linkPattern.FindAllStringSubmatch(content, -1) {
		link := match[2]
		if strings.HasPrefix(link, "http") || strings.HasPrefix(link, "#") {
			continue
		}
		if sourceLocation.MatchString(link) {
			continue
		}

		target, _, _ := strings.Cut(link, "#")
		var resolved string
		if strings.HasPrefix(target, "/") {
			resolved = filepath.Join(docsDir, filepath.FromSlash(target[1:]))
		} else {
			resolved = filepath.Join(filepath.Dir(page), filepath.FromSlash(target))
		}

		if !linkTargetExists(resolved) {
			result.addWarning(Issue{
				Message:    fmt.Sprintf("Broken internal link: %s", link),
				File:       page,
				Suggestion: fmt.Sprintf("Check that %s exists", resolved),
			})
		}
	}
}

// linkTargetExists accepts the path itself, the path with a .md extension,
// or a directory holding index.md.
func linkTargetExists(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	}
	withMD := strings.TrimSuffix(path, filepath.Ext(path)) + ".md"
	if _, err := os.Stat(withMD); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(path, "index.md")); err == nil {
		return true
	}
	return false
}

func checkMkdocs(root string, result *Result) {
	path := filepath.Join(root, MkdocsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		result.addError(Issue{
			Message:    fmt.Sprintf("%s not found", MkdocsFile),
			File:       path,
			Suggestion: fmt.Sprintf("Create %s configuration file", MkdocsFile),
		})
		return
	}

	// Decode to a node so custom tags such as !!python/name are accepted.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		result.addError(Issue{
			Message:    fmt.Sprintf("Invalid YAML in %s: %v", MkdocsFile, err),
			File:       path,
			Suggestion: "Fix YAML syntax errors",
		})
		return
	}

	result.Info = append(result.Info, fmt.Sprintf("%s validated successfully", MkdocsFile))
}
