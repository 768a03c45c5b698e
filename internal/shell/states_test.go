package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStates(t *testing.T, input string, caseSensitive bool) string {
	t.Helper()
	var out bytes.Buffer
	err := NewStateSearch(strings.NewReader(input), &out, caseSensitive).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestStatesText(t *testing.T) {
	text := StatesText()
	assert.Len(t, strings.Split(text, "\n"), 50)
	assert.True(t, strings.HasPrefix(text, "Alabama\nAlaska\n"))
	assert.True(t, strings.HasSuffix(text, "Wisconsin\nWyoming"))
}

func TestStateSearchSession(t *testing.T) {
	out := runStates(t, "1\n2\nnew\n2\nzzz\n4\n3\n", false)

	assert.Contains(t, out, "--- TEXT CONTENT (50 U.S. States) ---\nAlabama\n")
	assert.Contains(t, out, "  Occurrence count : 4\n")
	assert.Contains(t, out, "  Start indices    : [243, 257, 268, 279]\n")
	assert.Contains(t, out, "    @243 ...ebraska Nevada New Hampshire New ...\n")
	assert.Contains(t, out, "    @279 ...sey New Mexico New York North Car...\n")
	assert.Contains(t, out, "  No occurrences found.\n")
	assert.Contains(t, out, "Please choose 1, 2, or 3.\n")
	assert.True(t, strings.HasSuffix(out, "Exiting program. Goodbye!\n"))
}

func TestStateSearchCaseSensitivity(t *testing.T) {
	insensitive := runStates(t, "2\nDAKOTA\n3\n", false)
	assert.Contains(t, insensitive, "  Start indices    : [309, 384]\n")
	assert.Contains(t, insensitive, "    @309 ...Carolina North Dakota Ohio Oklahoma ...\n")

	sensitive := runStates(t, "2\nDAKOTA\n3\n", true)
	assert.Contains(t, sensitive, "  No occurrences found.\n")
}

func TestStateSearchEndOfInput(t *testing.T) {
	out := runStates(t, "2\n", false)
	assert.NotContains(t, out, "Results:")
	assert.NotContains(t, out, "Goodbye!")
}

func TestSnippet(t *testing.T) {
	text := "abc\ndef"
	assert.Equal(t, "abc def", Snippet(text, 4, 3))
	assert.Equal(t, "", Snippet(text, 40, 3))
	assert.Equal(t, "[]", FormatIndices(nil))
	assert.Equal(t, "[1, 2]", FormatIndices([]int{1, 2}))
}

func TestStateSearchSnippetAfterFolding(t *testing.T) {
	s := NewStateSearch(strings.NewReader(""), &bytes.Buffer{}, false)
	s.text = strings.Repeat("İ", 30) + "\nNew York"
	var out bytes.Buffer
	s.out = &out

	s.report("YORK")
	assert.Contains(t, out.String(), "Occurrence count : 1")
	assert.Contains(t, out.String(), "new york...")
}
