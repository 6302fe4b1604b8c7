package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/docgen/internal/config"
	"github.com/mvp-joe/docgen/internal/extraction"
)

const (
	// TypesPage is the per-package types page file name.
	TypesPage = "types.md"
	// FunctionsPage is the per-package functions page file name.
	FunctionsPage = "functions.md"
	// IndexPage is the index file name used at every level.
	IndexPage = "index.md"
	// ChangelogPage is the per-package changelog copy.
	ChangelogPage = "changelog.md"
)

// RenderPackageIndex renders a package's index page: metadata, installation,
// export counts, links to the other pages and the package README.
func RenderPackageIndex(docs *extraction.ExtractedDocs) string {
	var b strings.Builder
	pkg := docs.Package

	b.WriteString(fmt.Sprintf("# %s\n\n", pkg.Name))

	if pkg.Description != "" {
		b.WriteString(fmt.Sprintf("%s\n\n", pkg.Description))
	}

	b.WriteString(fmt.Sprintf("**Version:** %s\n\n", pkg.Version))

	// Installation
	b.WriteString("## Installation\n\n")
	b.WriteString("```bash\n")
	b.WriteString(fmt.Sprintf("npm install %s\n", pkg.Name))
	b.WriteString("# or\n")
	b.WriteString(fmt.Sprintf("pnpm add %s\n", pkg.Name))
	b.WriteString("```\n\n")

	interfaces := docs.ExportsOfKind(extraction.KindInterface)
	types := docs.ExportsOfKind(extraction.KindType)
	functions := docs.ExportsOfKind(extraction.KindFunction)
	classes := docs.ExportsOfKind(extraction.KindClass)

	// Export summary
	b.WriteString("## Exports\n\n")
	b.WriteString("| Category | Count |\n")
	b.WriteString("|----------|-------|\n")
	writeCountRow(&b, "Interfaces", len(interfaces))
	writeCountRow(&b, "Types", len(types))
	writeCountRow(&b, "Functions", len(functions))
	writeCountRow(&b, "Classes", len(classes))
	b.WriteString("\n")

	// Links to the other pages
	b.WriteString("## Documentation\n\n")
	b.WriteString(fmt.Sprintf("- [Types Reference](./%s)\n", TypesPage))
	if len(functions) > 0 {
		b.WriteString(fmt.Sprintf("- [Functions Reference](./%s)\n", FunctionsPage))
	}
	b.WriteString("\n")

	if docs.Readme != "" {
		b.WriteString("---\n\n")
		b.WriteString(skipDuplicateHeading(docs.Readme, pkg.Name))
	}

	return b.String()
}

func writeCountRow(b *strings.Builder, category string, count int) {
	if count == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("| %s | %d |\n", category, count))
}

// RenderTypes renders the types page: interfaces, type aliases, enums and
// classes, each section only when it has entries.
func RenderTypes(docs *extraction.ExtractedDocs) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s - Types\n\n", docs.Package.Name))

	writeSection(&b, "## Interfaces", docs.ExportsOfKind(extraction.KindInterface))
	writeSection(&b, "## Type Aliases", docs.ExportsOfKind(extraction.KindType))
	writeSection(&b, "## Enums", docs.ExportsOfKind(extraction.KindEnum))
	writeSection(&b, "## Classes", docs.ExportsOfKind(extraction.KindClass))

	return b.String()
}

// RenderFunctions renders every given export in order under one title.
func RenderFunctions(packageName string, functions []extraction.Export) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s - Functions\n\n", packageName))

	for _, export := range functions {
		writeExport(&b, export)
	}

	return b.String()
}

// RenderFileTypes renders every export of a single source file grouped by kind.
func RenderFileTypes(sourcePath string, exports []extraction.Export) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Types from %s\n\n", sourcePath))

	writeSection(&b, "## Interfaces", extraction.FilterKind(exports, extraction.KindInterface))
	writeSection(&b, "## Types", extraction.FilterKind(exports, extraction.KindType))
	writeSection(&b, "## Functions", extraction.FilterKind(exports, extraction.KindFunction))
	writeSection(&b, "## Classes", extraction.FilterKind(exports, extraction.KindClass))
	writeSection(&b, "## Enums", extraction.FilterKind(exports, extraction.KindEnum))
	writeSection(&b, "## Constants", extraction.FilterKind(exports, extraction.KindConst, extraction.KindVariable))

	return b.String()
}

// APIIndex is the input of RenderAPIIndex.
type APIIndex struct {
	Title       string
	Description string
	Scope       string // stripped from package names to build link slugs
	Packages    []config.PackageConfig
}

// apiSections maps package kinds to their API index headings, in page order.
var apiSections = []struct {
	kind    config.PackageKind
	heading string
}{
	{config.KindCore, "Core Packages"},
	{config.KindAdapter, "Database Adapters"},
	{config.KindFrontend, "Frontend SDKs"},
	{config.KindMobile, "Mobile SDKs"},
}

// RenderAPIIndex renders the top-level API index, grouping packages by kind.
func RenderAPIIndex(index APIIndex) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", index.Title))
	if index.Description != "" {
		b.WriteString(fmt.Sprintf("%s\n\n", index.Description))
	}

	for _, section := range apiSections {
		var packages []config.PackageConfig
		for _, pkg := range index.Packages {
			if pkg.Kind == section.kind {
				packages = append(packages, pkg)
			}
		}
		if len(packages) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("## %s\n\n", section.heading))
		for _, pkg := range packages {
			b.WriteString(fmt.Sprintf("- [%s](./%s/)\n", pkg.Name, config.Slug(pkg.Name, index.Scope)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeSection(b *strings.Builder, heading string, exports []extraction.Export) {
	if len(exports) == 0 {
		return
	}
	b.WriteString(heading + "\n\n")
	for _, export := range exports {
		writeExport(b, export)
	}
}

// writeExport writes one export block. Every block ends with a rule.
func writeExport(b *strings.Builder, export extraction.Export) {
	b.WriteString(fmt.Sprintf("### `%s`\n\n", export.Name))

	if export.IsDeprecated {
		b.WriteString(strings.TrimRight(fmt.Sprintf("> ⚠️ **Deprecated:** %s", export.Deprecated), " "))
		b.WriteString("\n\n")
	}

	if export.Description != "" {
		b.WriteString(export.Description)
		b.WriteString("\n\n")
	}

	if export.Signature != "" {
		b.WriteString("```typescript\n")
		b.WriteString(export.Signature)
		b.WriteString("\n```\n\n")
	}

	// Source location
	b.WriteString(fmt.Sprintf("*Defined in [`%s`](%s:%d)*\n\n",
		filepath.Base(export.SourceFile), filepath.ToSlash(export.SourceFile), export.Line))

	if len(export.Params) > 0 {
		b.WriteString("**Parameters:**\n\n")
		b.WriteString("| Name | Type | Required | Description |\n")
		b.WriteString("|------|------|----------|-------------|\n")
		for _, param := range export.Params {
			required := "Yes"
			if param.Optional {
				required = "No"
			}
			desc := param.Description
			if desc == "" {
				desc = "-"
			}
			b.WriteString(fmt.Sprintf("| `%s` | `%s` | %s | %s |\n",
				param.Name, param.TypeAnnotation, required, desc))
		}
		b.WriteString("\n")
	}

	switch {
	case export.Returns != "" && export.ReturnsDescription != "":
		b.WriteString(fmt.Sprintf("**Returns:** `%s` - %s\n\n", export.Returns, export.ReturnsDescription))
	case export.Returns != "":
		b.WriteString(fmt.Sprintf("**Returns:** `%s`\n\n", export.Returns))
	case export.ReturnsDescription != "":
		b.WriteString(fmt.Sprintf("**Returns:** %s\n\n", export.ReturnsDescription))
	}

	if len(export.Examples) > 0 {
		b.WriteString("**Example:**\n\n")
		for _, example := range export.Examples {
			b.WriteString("```typescript\n")
			b.WriteString(example)
			b.WriteString("\n```\n\n")
		}
	}

	b.WriteString("---\n\n")
}

// skipDuplicateHeading drops the README's first line when it is a heading
// that contains, or is contained in, the package name.
func skipDuplicateHeading(readme, packageName string) string {
	lines := strings.Split(readme, "\n")
	first := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(first, "#") {
		return readme
	}

	heading := strings.TrimSpace(strings.TrimLeft(first, "#"))
	if strings.Contains(heading, packageName) || strings.Contains(packageName, heading) {
		return strings.TrimLeft(strings.Join(lines[1:], "\n"), " \t\r\n")
	}

	return readme
}
