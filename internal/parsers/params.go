package parsers

import (
	"strings"

	"github.com/mvp-joe/docgen/internal/extraction"
)

// parseFunctionParams turns a raw parameter list into Parameters, attaching
// @param descriptions by exact name.
//
// The list is split on every comma with no bracket tracking, so a generic
// argument or default value containing a comma is split into extra
// parameters. Callers rely on this output shape; it is kept as is.
func parseFunctionParams(raw string, descriptions map[string]string) []extraction.Parameter {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var params []extraction.Parameter
	for _, segment := range strings.Split(raw, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		optional := strings.Contains(segment, "?")
		segment = strings.ReplaceAll(segment, "?", "")

		segment, defaultValue := cutDefault(segment)

		name, typeAnnotation, found := strings.Cut(segment, ":")
		name = strings.TrimSpace(name)
		typeAnnotation = strings.TrimSpace(typeAnnotation)
		if !found || typeAnnotation == "" {
			typeAnnotation = extraction.UnknownType
		}

		params = append(params, extraction.Parameter{
			Name:           name,
			TypeAnnotation: typeAnnotation,
			Description:    descriptions[name],
			Optional:       optional,
			Default:        defaultValue,
		})
	}

	return params
}

// cutDefault splits "name: T = value" at the first '=' that is not part of "=>".
func cutDefault(segment string) (string, string) {
	for i := 0; i < len(segment); i++ {
		if segment[i] != '=' {
			continue
		}
		if i+1 < len(segment) && segment[i+1] == '>' {
			i++
			continue
		}
		return strings.TrimSpace(segment[:i]), strings.TrimSpace(segment[i+1:])
	}
	return segment, ""
}
