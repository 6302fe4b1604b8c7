package parsers

import (
	"strings"
)

const (
	docOpen  = "/**"
	docClose = "*/"
)

// Doc comment tags recognized by ParseDocComment.
const (
	tagParam      = "@param"
	tagReturns    = "@returns"
	tagReturn     = "@return"
	tagExample    = "@example"
	tagDeprecated = "@deprecated"
)

// DocComment is the parsed content of a /** ... */ block.
type DocComment struct {
	Description string            // untagged lines joined with single spaces
	Params      map[string]string // @param name -> description
	Returns     string
	Examples    []string

	IsDeprecated bool
	Deprecated   string // may be empty even when IsDeprecated is set
}

// ParseDocComment finds the nearest /** ... */ block that ends before
// declStart and parses it. The block does not have to be adjacent to the
// declaration. A missing or unterminated block yields an empty DocComment.
func ParseDocComment(content string, declStart int) DocComment {
	if declStart > len(content) {
		declStart = len(content)
	}
	if declStart < 0 {
		declStart = 0
	}

	before := content[:declStart]
	end := strings.LastIndex(before, docClose)
	if end < 0 {
		return DocComment{Params: map[string]string{}}
	}
	start := strings.LastIndex(before[:end], docOpen)
	if start < 0 {
		return DocComment{Params: map[string]string{}}
	}

	return parseCommentBody(before[start+len(docOpen) : end])
}

// docParser accumulates state while walking the lines of one comment.
type docParser struct {
	doc         DocComment
	description []string
	inExample   bool
	example     []string
}

func parseCommentBody(body string) DocComment {
	p := &docParser{doc: DocComment{Params: map[string]string{}}}

	for _, raw := range strings.Split(body, "\n") {
		line := stripMarker(raw)

		if strings.HasPrefix(line, "@") {
			p.flushExample()
			p.handleTag(line)
			continue
		}

		if p.inExample {
			p.example = append(p.example, exampleLine(raw))
			continue
		}

		if line != "" {
			p.description = append(p.description, line)
		}
	}

	p.flushExample()

	if len(p.description) > 0 {
		p.doc.Description = strings.Join(p.description, " ")
	}
	return p.doc
}

// handleTag applies one tag line. Unknown tags only end example capture.
func (p *docParser) handleTag(line string) {
	tag, rest := splitTag(line)

	switch tag {
	case tagParam:
		name, desc := parseParamTag(rest)
		if name != "" {
			p.doc.Params[name] = desc
		}
	case tagReturns, tagReturn:
		p.doc.Returns = rest
	case tagExample:
		p.inExample = true
	case tagDeprecated:
		p.doc.IsDeprecated = true
		p.doc.Deprecated = rest
	}
}

// flushExample closes example capture, keeping the body if it has content.
func (p *docParser) flushExample() {
	if !p.inExample {
		return
	}
	body := strings.TrimSpace(strings.Join(p.example, "\n"))
	if body != "" {
		p.doc.Examples = append(p.doc.Examples, body)
	}
	p.inExample = false
	p.example = nil
}

// splitTag splits "@tag rest of line" into the tag word and the trimmed rest.
func splitTag(line string) (string, string) {
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

// parseParamTag handles "{Type} name description"; the braced type is optional.
func parseParamTag(rest string) (name, desc string) {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		if end := closingBrace(rest); end >= 0 {
			rest = strings.TrimSpace(rest[end+1:])
		}
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", ""
	}
	name = strings.Trim(fields[0], "{}")
	desc = strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
	return name, desc
}

// closingBrace returns the index of the brace closing s[0], or -1.
func closingBrace(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripMarker trims whitespace and leading '*' continuation markers.
func stripMarker(raw string) string {
	line := strings.TrimSpace(raw)
	line = strings.TrimLeft(line, "*")
	return strings.TrimSpace(line)
}

// exampleLine strips the continuation marker and the single space after it,
// keeping any further indentation of example code.
func exampleLine(raw string) string {
	line := strings.TrimRight(raw, " \t\r")
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "*") {
		trimmed = strings.TrimLeft(trimmed, "*")
		trimmed = strings.TrimPrefix(trimmed, " ")
	}
	return trimmed
}
