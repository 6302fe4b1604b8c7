package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/docgen/internal/extraction"
)

// Test Plan for parseFunctionParams:
// - Empty and whitespace-only lists yield no parameters
// - name: type pairs are split on the first colon
// - The optional marker sets Optional and is removed from the name
// - Missing type annotations become "unknown"
// - Defaults are recorded; "=>" is not mistaken for a default
// - Descriptions attach by exact name
// - Commas inside generics split the parameter (known limitation)

func TestParseFunctionParams_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parseFunctionParams("", nil))
	assert.Empty(t, parseFunctionParams("   ", nil))
}

func TestParseFunctionParams_Basic(t *testing.T) {
	t.Parallel()

	params := parseFunctionParams("a: number, b: string", map[string]string{"a": "first"})
	assert.Equal(t, []extraction.Parameter{
		{Name: "a", TypeAnnotation: "number", Description: "first"},
		{Name: "b", TypeAnnotation: "string"},
	}, params)
}

func TestParseFunctionParams_Optional(t *testing.T) {
	t.Parallel()

	params := parseFunctionParams("opts?: Options", nil)
	require.Len(t, params, 1)
	assert.Equal(t, "opts", params[0].Name)
	assert.Equal(t, "Options", params[0].TypeAnnotation)
	assert.True(t, params[0].Optional)
}

func TestParseFunctionParams_UnknownType(t *testing.T) {
	t.Parallel()

	params := parseFunctionParams("value, other:", nil)
	require.Len(t, params, 2)
	assert.Equal(t, extraction.UnknownType, params[0].TypeAnnotation)
	assert.Equal(t, "value", params[0].Name)
	assert.Equal(t, extraction.UnknownType, params[1].TypeAnnotation)
	assert.Equal(t, "other", params[1].Name)
}

func TestParseFunctionParams_Default(t *testing.T) {
	t.Parallel()

	params := parseFunctionParams("retries: number = 3", nil)
	require.Len(t, params, 1)
	assert.Equal(t, "retries", params[0].Name)
	assert.Equal(t, "number", params[0].TypeAnnotation)
	assert.Equal(t, "3", params[0].Default)
	assert.False(t, params[0].Optional)
}

func TestCutDefault_SkipsArrow(t *testing.T) {
	t.Parallel()

	rest, def := cutDefault("handler: () => void = noop")
	assert.Equal(t, "handler: () => void", rest)
	assert.Equal(t, "noop", def)

	rest, def = cutDefault("handler: () => void")
	assert.Equal(t, "handler: () => void", rest)
	assert.Empty(t, def)
}

func TestParseFunctionParams_CommaInGenericSplits(t *testing.T) {
	t.Parallel()

	params := parseFunctionParams("m: Map<string, number>", nil)
	require.Len(t, params, 2)
	assert.Equal(t, "m", params[0].Name)
	assert.Equal(t, "Map<string", params[0].TypeAnnotation)
	assert.Equal(t, "number>", params[1].Name)
	assert.Equal(t, extraction.UnknownType, params[1].TypeAnnotation)
}
