package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyBasicReplace(t *testing.T) {
	res := Apply("line1\nfoo\nline3\n", "foo\n", "bar\n")
	require.Empty(t, res.Err)
	require.Equal(t, "line1\nbar\nline3\n", res.Content)
}

func TestApplyAmbiguityRefused(t *testing.T) {
	res := Apply("a\nb\na\n", "a\n", "x\n")
	require.Equal(t, Ambiguous, res.Err)
}

func TestApplyWhitespaceTolerance(t *testing.T) {
	content := "    if(x){\n        y();\n    }\n"
	target := "if(x){\ny();\n}\n"
	replacement := "if(x){\n    y2();\n}\n"

	res := Apply(content, target, replacement)
	require.Empty(t, res.Err)
	// Only the first replacement line is re-indented to match the matched
	// region; subsequent replacement lines are kept verbatim, so the
	// closing brace keeps the replacement's own (lack of) indentation.
	require.Equal(t, "    if(x){\n    y2();\n}\n", res.Content)
}

func TestApplyWholeFileReplace(t *testing.T) {
	res := Apply("anything\n", "", "hello\n")
	require.Empty(t, res.Err)
	require.Equal(t, "hello\n", res.Content)
}

func TestApplyExactPreferredOverWhitespace(t *testing.T) {
	// Both an exact match and a whitespace-insensitive match exist; the
	// exact one must win.
	content := "foo\n  foo  \n"
	res := Apply(content, "foo\n", "bar\n")
	require.Empty(t, res.Err)
	require.Equal(t, "bar\n  foo  \n", res.Content)
}

func TestApplyExactAmbiguityNeverFallsBackToWhitespace(t *testing.T) {
	content := "foo\nfoo\n"
	res := Apply(content, "foo\n", "bar\n")
	require.Equal(t, Ambiguous, res.Err)
}

func TestApplyEllipsisExpansion(t *testing.T) {
	content := "func A() {\n  old1()\n}\n\nfunc B() {\n  old2()\n}\n"
	target := "old1()\n...\nold2()\n"
	replacement := "new1()\n...\nnew2()\n"

	res := Apply(content, target, replacement)
	require.Empty(t, res.Err)
	require.Contains(t, res.Content, "new1()")
	require.Contains(t, res.Content, "new2()")
	require.NotContains(t, res.Content, "old1()")
	require.NotContains(t, res.Content, "old2()")
}

func TestApplyEllipsisAsymmetricNoOpWarns(t *testing.T) {
	content := "keep this\nother\n"
	target := "keep this\n...\n"
	replacement := "...\n"

	res := Apply(content, target, replacement)
	require.Empty(t, res.Err)
	require.Contains(t, res.Content, "keep this")
	require.NotEmpty(t, res.Warning)
}

func TestApplyLeadingBlankLineStillResolvesViaWhitespaceMatch(t *testing.T) {
	// The whitespace-insensitive match strips blank edges from the target
	// before comparing, so a spurious
	// leading blank line in the model's before_text does not by itself
	// block a match.
	content := "foo\nbar\n"
	target := "\nfoo\n"
	replacement := "\nbaz\n"

	res := Apply(content, target, replacement)
	require.Empty(t, res.Err)
	require.Contains(t, res.Content, "baz")
}

func TestApplySpuriousBlankLineRetryStillNoMatchWhenCoreTextAbsent(t *testing.T) {
	// Exercises the blank-line retry: target begins with a blank line and the
	// non-blank core ("missing123") genuinely doesn't exist in content, so
	// every stage, including the post-strip retry, still reports NoMatch.
	content := "foo\nbar\n"
	target := "\nmissing123\n"
	replacement := "\nx\n"

	res := Apply(content, target, replacement)
	require.Equal(t, NoMatch, res.Err)
}

func TestApplyInverseRestoresOriginal(t *testing.T) {
	content := "a\nb\nc\n"
	forward := Apply(content, "b\n", "B\n")
	require.Empty(t, forward.Err)

	back := Apply(forward.Content, "B\n", "b\n")
	require.Empty(t, back.Err)
	require.Equal(t, content, back.Content)
}

func TestApplyNoMatch(t *testing.T) {
	res := Apply("line1\n", "nope\n", "x\n")
	require.Equal(t, NoMatch, res.Err)
}
