package extraction

import (
	"sort"

	"github.com/mvp-joe/docgen/internal/config"
)

// ExportKind identifies the kind of exported declaration.
type ExportKind string

const (
	KindInterface ExportKind = "interface"
	KindType      ExportKind = "type"
	KindFunction  ExportKind = "function"
	KindClass     ExportKind = "class"
	KindEnum      ExportKind = "enum"
	KindConst     ExportKind = "const"
	KindVariable  ExportKind = "variable"
)

// UnknownType is the type annotation recorded for parameters without one.
const UnknownType = "unknown"

// Export represents one exported declaration found in a source file.
type Export struct {
	Name        string      `json:"name"`
	Kind        ExportKind  `json:"kind"`
	Description string      `json:"description,omitempty"` // doc comment text, one paragraph
	SourceFile  string      `json:"source_file"`
	Line        int         `json:"line"` // 1-based line of the export keyword
	Signature   string      `json:"signature,omitempty"`
	Params      []Parameter `json:"params"`
	Returns     string      `json:"returns,omitempty"` // return type annotation (functions only)

	// ReturnsDescription is the doc comment's @returns text.
	ReturnsDescription string   `json:"returns_description,omitempty"`
	Examples           []string `json:"examples"`

	// IsDeprecated is set by any @deprecated tag; Deprecated holds its text,
	// which may be empty.
	IsDeprecated bool   `json:"is_deprecated,omitempty"`
	Deprecated   string `json:"deprecated,omitempty"`
}

// Parameter represents a function parameter.
type Parameter struct {
	Name           string `json:"name"`
	TypeAnnotation string `json:"type_annotation"`
	Description    string `json:"description,omitempty"`
	Optional       bool   `json:"optional"`
	Default        string `json:"default,omitempty"`
}

// Package holds the metadata and exports of one monorepo package.
type Package struct {
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	Description  string             `json:"description"`
	Path         string             `json:"path"`
	Kind         config.PackageKind `json:"kind"`
	InternalDeps []string           `json:"internal_deps"`
	Exports      []Export           `json:"exports"`
}

// ExtractedDocs is everything extracted for one package.
type ExtractedDocs struct {
	Package   Package             `json:"package"`
	Files     map[string][]Export `json:"files"` // keyed by source path
	Readme    string              `json:"readme,omitempty"`
	Changelog string              `json:"changelog,omitempty"`
}

// FilePaths returns the keys of Files in lexicographic order.
func (d *ExtractedDocs) FilePaths() []string {
	paths := make([]string, 0, len(d.Files))
	for p := range d.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ExportsOfKind returns the package exports of the given kinds, in package order.
func (d *ExtractedDocs) ExportsOfKind(kinds ...ExportKind) []Export {
	return FilterKind(d.Package.Exports, kinds...)
}

// FilterKind returns the exports whose kind is one of kinds, preserving order.
func FilterKind(exports []Export, kinds ...ExportKind) []Export {
	var out []Export
	for _, e := range exports {
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
