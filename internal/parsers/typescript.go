package parsers

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mvp-joe/docgen/internal/extraction"
)

// docPrefix matches an optional doc comment directly before a declaration.
// The comment body cannot contain "*/", so a match never spans code between
// an earlier comment and a later declaration.
const docPrefix = `(?m)^(?:/\*\*(?:[^*]|\*+[^*/])*\*+/\s*)?`

// Each pattern captures the declaration itself as "decl" so that line numbers
// and doc comment lookup start at the export keyword, not at the comment.
var (
	interfaceRe = regexp.MustCompile(docPrefix +
		`(?P<decl>export\s+interface\s+(?P<name>\w+)(?:<[^>]+>)?\s*\{(?P<body>[^}]*)\})`)

	typeAliasRe = regexp.MustCompile(docPrefix +
		`(?P<decl>export\s+type\s+(?P<name>\w+)(?:<[^>]+>)?\s*=\s*(?P<value>[^;]+);)`)

	functionRe = regexp.MustCompile(docPrefix +
		`(?P<decl>export\s+(?:async\s+)?function\s+(?P<name>\w+)\s*(?:<[^>]+>)?\s*\((?P<params>[^)]*)\)(?:\s*:\s*(?P<returns>[^{]+))?\s*\{)`)

	constRe = regexp.MustCompile(docPrefix +
		`(?P<decl>export\s+(?P<keyword>const|let|var)\s+(?P<name>\w+)(?:\s*:\s*(?P<type>[^=]+))?\s*=)`)

	classRe = regexp.MustCompile(docPrefix +
		`(?P<decl>export\s+class\s+(?P<name>\w+)(?:<[^>]+>)?(?:\s+extends\s+[^{]+)?(?:\s+implements\s+[^{]+)?\s*\{)`)

	enumRe = regexp.MustCompile(docPrefix +
		`(?P<decl>export\s+(?:const\s+)?enum\s+(?P<name>\w+)\s*\{)`)
)

// declMatch gives access to the named groups of one regexp match.
type declMatch struct {
	re      *regexp.Regexp
	content string
	loc     []int
}

// group returns the text of a named group, or "" when it did not participate.
func (m declMatch) group(name string) string {
	idx := m.re.SubexpIndex(name)
	if idx < 0 || m.loc[2*idx] < 0 {
		return ""
	}
	return m.content[m.loc[2*idx]:m.loc[2*idx+1]]
}

// start returns the byte offset of the export keyword.
func (m declMatch) start() int {
	return m.loc[2*m.re.SubexpIndex("decl")]
}

// declMatcher recognizes one declaration kind. build fills in the
// kind-specific fields of an export whose common fields are already set.
type declMatcher struct {
	kind  extraction.ExportKind
	re    *regexp.Regexp
	build func(m declMatch, doc DocComment, export *extraction.Export)
}

// matchers run in this order; their results are concatenated, not re-sorted.
var matchers = []declMatcher{
	{
		kind: extraction.KindInterface,
		re:   interfaceRe,
		build: func(m declMatch, _ DocComment, e *extraction.Export) {
			e.Signature = "interface " + e.Name
		},
	},
	{
		kind: extraction.KindType,
		re:   typeAliasRe,
		build: func(m declMatch, _ DocComment, e *extraction.Export) {
			e.Signature = fmt.Sprintf("type %s = %s", e.Name, strings.TrimSpace(m.group("value")))
		},
	},
	{
		kind: extraction.KindFunction,
		re:   functionRe,
		build: func(m declMatch, doc DocComment, e *extraction.Export) {
			params := m.group("params")
			e.Signature = fmt.Sprintf("function %s(%s)", e.Name, params)
			e.Params = parseFunctionParams(params, doc.Params)
			e.Returns = strings.TrimSpace(m.group("returns"))
			e.ReturnsDescription = doc.Returns
		},
	},
	{
		kind: extraction.KindConst,
		re:   constRe,
		build: func(m declMatch, _ DocComment, e *extraction.Export) {
			keyword := m.group("keyword")
			if keyword != "const" {
				e.Kind = extraction.KindVariable
			}
			if typ := strings.TrimSpace(m.group("type")); typ != "" {
				e.Signature = fmt.Sprintf("%s %s: %s", keyword, e.Name, typ)
			}
		},
	},
	{
		kind: extraction.KindClass,
		re:   classRe,
		build: func(m declMatch, _ DocComment, e *extraction.Export) {
			e.Signature = "class " + e.Name
		},
	},
	{
		kind: extraction.KindEnum,
		re:   enumRe,
		build: func(m declMatch, _ DocComment, e *extraction.Export) {
			e.Signature = "enum " + e.Name
		},
	},
}

// TypeScriptScanner extracts exported declarations from TypeScript source
// with one independent pattern per declaration kind.
type TypeScriptScanner struct{}

// NewTypeScriptScanner creates a new TypeScript scanner.
func NewTypeScriptScanner() *TypeScriptScanner {
	return &TypeScriptScanner{}
}

// Extensions lists the file extensions the scanner understands.
func (s *TypeScriptScanner) Extensions() []string {
	return []string{".ts", ".tsx"}
}

// ScanFile reads a source file and returns its exports.
func (s *TypeScriptScanner) ScanFile(ctx context.Context, filePath string) ([]extraction.Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	return s.Scan(filePath, string(source)), nil
}

// Scan returns the exports declared in content, attributed to filePath.
func (s *TypeScriptScanner) Scan(filePath, content string) []extraction.Export {
	exports := []extraction.Export{}

	for _, matcher := range matchers {
		for _, loc := range matcher.re.FindAllStringSubmatchIndex(content, -1) {
			m := declMatch{re: matcher.re, content: content, loc: loc}
			exports = append(exports, newExport(matcher, m, filePath))
		}
	}

	return exports
}

// newExport fills the fields shared by every kind, then the kind-specific ones.
func newExport(matcher declMatcher, m declMatch, filePath string) extraction.Export {
	start := m.start()
	doc := ParseDocComment(m.content, start)

	export := extraction.Export{
		Name:        m.group("name"),
		Kind:        matcher.kind,
		Description: doc.Description,
		SourceFile:  filePath,
		Line:        strings.Count(m.content[:start], "\n") + 1,
		Examples:    doc.Examples,

		IsDeprecated: doc.IsDeprecated,
		Deprecated:   doc.Deprecated,
	}
	matcher.build(m, doc, &export)

	return export
}
