// Package manifest reads the package.json fields docgen cares about.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the npm manifest file name.
const FileName = "package.json"

const (
	// UnknownName is used when the manifest has no name.
	UnknownName = "unknown"
	// UnknownVersion is used when the manifest has no version.
	UnknownVersion = "0.0.0"
)

// Manifest holds the subset of package.json read by docgen.
type Manifest struct {
	Name        string                     `json:"name"`
	Version     string                     `json:"version"`
	Description string                     `json:"description"`
	Exports     map[string]json.RawMessage `json:"-"`
}

// Read parses dir/package.json. Fields that are missing or not strings are
// left empty; the exports map is only populated when "exports" is an object.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	m := &Manifest{
		Name:        stringField(raw, "name"),
		Version:     stringField(raw, "version"),
		Description: stringField(raw, "description"),
	}

	if exports, ok := raw["exports"]; ok {
		var obj map[string]json.RawMessage
		if json.Unmarshal(exports, &obj) == nil {
			m.Exports = obj
		}
	}

	return m, nil
}

// WithDefaults returns name, version and description, substituting the
// placeholder values for empty fields.
func (m *Manifest) WithDefaults() (name, version, description string) {
	name, version, description = UnknownName, UnknownVersion, ""
	if m == nil {
		return
	}
	if m.Name != "" {
		name = m.Name
	}
	if m.Version != "" {
		version = m.Version
	}
	description = m.Description
	return
}

// ImportPaths returns the "import" target of each conditional export, with a
// leading "./" removed, in sorted key order.
func (m *Manifest) ImportPaths() []string {
	if m == nil || len(m.Exports) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m.Exports))
	for k := range m.Exports {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var paths []string
	for _, k := range keys {
		var cond struct {
			Import json.RawMessage `json:"import"`
		}
		if json.Unmarshal(m.Exports[k], &cond) != nil || len(cond.Import) == 0 {
			continue
		}
		var target string
		if json.Unmarshal(cond.Import, &target) != nil || target == "" {
			continue
		}
		paths = append(paths, strings.TrimPrefix(target, "./"))
	}
	return paths
}

func stringField(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) != nil {
		return ""
	}
	return s
}
