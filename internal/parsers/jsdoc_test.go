package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for ParseDocComment:
// - No comment, or a closing delimiter without an opener, yields an empty result
// - An unterminated comment yields an empty result
// - The nearest preceding comment is used even when code sits in between
// - Description lines are joined with single spaces
// - @param strips braced types; last duplicate wins
// - @returns and @return set the return description
// - @example captures until the next tag or the comment end
// - Multiple @example tags give independent entries
// - Unknown tags end example capture and contribute nothing
// - @deprecated with and without text
// - Parsing is idempotent

func parseBefore(t *testing.T, src string) DocComment {
	t.Helper()
	idx := strings.Index(src, "export")
	require.GreaterOrEqual(t, idx, 0, "fixture must contain an export")
	return ParseDocComment(src, idx)
}

func TestParseDocComment_NoComment(t *testing.T) {
	t.Parallel()

	doc := parseBefore(t, "const a = 1;\nexport function f() {}")
	assert.Empty(t, doc.Description)
	assert.NotNil(t, doc.Params)
	assert.Empty(t, doc.Params)
	assert.Empty(t, doc.Examples)
	assert.False(t, doc.IsDeprecated)
}

func TestParseDocComment_CloseWithoutOpen(t *testing.T) {
	t.Parallel()

	doc := parseBefore(t, "/* plain block */\nexport function f() {}")
	assert.Empty(t, doc.Description)
	assert.NotNil(t, doc.Params)
}

func TestParseDocComment_Unterminated(t *testing.T) {
	t.Parallel()

	doc := parseBefore(t, "/** never closed\nexport function f() {}")
	assert.Empty(t, doc.Description)
	assert.Empty(t, doc.Params)
}

func TestParseDocComment_NearestPreceding(t *testing.T) {
	t.Parallel()

	src := "/** First. */\nconst a = 1;\n/** Second. */\nconst b = 2;\nexport function f() {}"
	doc := parseBefore(t, src)
	assert.Equal(t, "Second.", doc.Description)
}

func TestParseDocComment_OutOfRangeOffset(t *testing.T) {
	t.Parallel()

	src := "/** Doc. */"
	assert.Equal(t, "Doc.", ParseDocComment(src, len(src)+10).Description)
	assert.Empty(t, ParseDocComment(src, -1).Description)
}

func TestParseDocComment_Description(t *testing.T) {
	t.Parallel()

	src := `/**
 * Creates a session for the user.
 *
 * Sessions expire after one hour.
 */
export function createSession() {}`

	doc := parseBefore(t, src)
	assert.Equal(t, "Creates a session for the user. Sessions expire after one hour.", doc.Description)
}

func TestParseDocComment_Params(t *testing.T) {
	t.Parallel()

	src := `/**
 * @param {string} name The user name
 * @param age age in years
 * @param flag
 * @param age Age, overriding
 */
export function f() {}`

	doc := parseBefore(t, src)
	assert.Equal(t, map[string]string{
		"name": "The user name",
		"age":  "Age, overriding",
		"flag": "",
	}, doc.Params)
	assert.Empty(t, doc.Description)
}

func TestParseDocComment_NestedBraceType(t *testing.T) {
	t.Parallel()

	src := `/**
 * @param {{ id: string }} user The user
 */
export function f() {}`

	doc := parseBefore(t, src)
	assert.Equal(t, "The user", doc.Params["user"])
}

func TestParseDocComment_Returns(t *testing.T) {
	t.Parallel()

	doc := parseBefore(t, "/**\n * @returns the sum\n */\nexport function f() {}")
	assert.Equal(t, "the sum", doc.Returns)

	doc = parseBefore(t, "/**\n * @return first\n * @returns second\n */\nexport function f() {}")
	assert.Equal(t, "second", doc.Returns)
}

func TestParseDocComment_ExampleClosesAtCommentEnd(t *testing.T) {
	t.Parallel()

	src := `/**
 * Adds numbers.
 * @example
 * const x = add(1, 2);
 * console.log(x);
 */
export function add() {}`

	doc := parseBefore(t, src)
	require.Len(t, doc.Examples, 1)
	assert.Equal(t, "const x = add(1, 2);\nconsole.log(x);", doc.Examples[0])
	assert.Equal(t, "Adds numbers.", doc.Description)
}

func TestParseDocComment_ExampleKeepsIndentation(t *testing.T) {
	t.Parallel()

	src := `/**
 * @example
 * if (ok) {
 *   run();
 * }
 */
export function f() {}`

	doc := parseBefore(t, src)
	require.Len(t, doc.Examples, 1)
	assert.Equal(t, "if (ok) {\n  run();\n}", doc.Examples[0])
}

func TestParseDocComment_ExampleKeepsBlankLines(t *testing.T) {
	t.Parallel()

	src := `/**
 * @example
 * const a = 1;
 *
 * const b = 2;
 */
export function f() {}`

	doc := parseBefore(t, src)
	require.Len(t, doc.Examples, 1)
	assert.Equal(t, "const a = 1;\n\nconst b = 2;", doc.Examples[0])
}

func TestParseDocComment_MultipleExamples(t *testing.T) {
	t.Parallel()

	src := `/**
 * @example
 * first();
 * @example
 * second();
 */
export function f() {}`

	doc := parseBefore(t, src)
	assert.Equal(t, []string{"first();", "second();"}, doc.Examples)
}

func TestParseDocComment_EmptyExampleDropped(t *testing.T) {
	t.Parallel()

	doc := parseBefore(t, "/**\n * @example\n * @returns x\n */\nexport function f() {}")
	assert.Empty(t, doc.Examples)
	assert.Equal(t, "x", doc.Returns)
}

func TestParseDocComment_UnknownTagEndsExample(t *testing.T) {
	t.Parallel()

	src := `/**
 * @example
 * run();
 * @since 1.2.0
 * Trailing text.
 */
export function f() {}`

	doc := parseBefore(t, src)
	assert.Equal(t, []string{"run();"}, doc.Examples)
	assert.Equal(t, "Trailing text.", doc.Description)
}

func TestParseDocComment_Deprecated(t *testing.T) {
	t.Parallel()

	doc := parseBefore(t, "/**\n * @deprecated Use createSession instead\n */\nexport function f() {}")
	assert.True(t, doc.IsDeprecated)
	assert.Equal(t, "Use createSession instead", doc.Deprecated)

	doc = parseBefore(t, "/**\n * Old.\n * @deprecated\n */\nexport function f() {}")
	assert.True(t, doc.IsDeprecated)
	assert.Empty(t, doc.Deprecated)
	assert.Equal(t, "Old.", doc.Description)
}

func TestParseDocComment_SingleLine(t *testing.T) {
	t.Parallel()

	doc := parseBefore(t, "/** Short and sweet. */\nexport const a = 1;")
	assert.Equal(t, "Short and sweet.", doc.Description)
}

func TestParseDocComment_Idempotent(t *testing.T) {
	t.Parallel()

	src := `/**
 * Does things.
 * @param a first
 * @returns nothing
 * @example
 * doThings(1);
 * @deprecated gone soon
 */
export function doThings(a: number): void {}`

	idx := strings.Index(src, "export")
	first := ParseDocComment(src, idx)
	second := ParseDocComment(src, idx)
	assert.Equal(t, first, second)
}
