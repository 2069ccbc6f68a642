package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSingleBlock(t *testing.T) {
	input := "<<<<< SEARCH main.go\n" +
		"foo\n" +
		"===== main.go\n" +
		"bar\n" +
		">>>>> REPLACE main.go\n"

	result := Parse(input)
	require.Empty(t, result.ParseError)
	require.Len(t, result.Blocks, 1)
	require.Equal(t, "main.go", result.Blocks[0].Filename)
	require.Equal(t, "foo\n", result.Blocks[0].BeforeText)
	require.Equal(t, "bar\n", result.Blocks[0].AfterText)
}

func TestParseIgnoresProseBetweenBlocks(t *testing.T) {
	input := "Here's the fix:\n\n" +
		"<<<<< SEARCH a.go\n" +
		"x\n" +
		"===== a.go\n" +
		"y\n" +
		">>>>> REPLACE a.go\n" +
		"\nDone.\n"

	result := Parse(input)
	require.Empty(t, result.ParseError)
	require.Len(t, result.Blocks, 1)
}

func TestParseMultipleBlocksDifferentFiles(t *testing.T) {
	input := "<<<<< SEARCH a.go\n" +
		"x\n" +
		"===== a.go\n" +
		"y\n" +
		">>>>> REPLACE a.go\n" +
		"<<<<< SEARCH b.go\n" +
		"p\n" +
		"===== b.go\n" +
		"q\n" +
		">>>>> REPLACE b.go\n"

	result := Parse(input)
	require.Empty(t, result.ParseError)
	require.Len(t, result.Blocks, 2)
	require.Equal(t, "a.go", result.Blocks[0].Filename)
	require.Equal(t, "b.go", result.Blocks[1].Filename)
}

func TestParseMismatchedFilenameTreatedAsContent(t *testing.T) {
	// A divider line naming a different file is just content of the before
	// buffer; the filename token must repeat identically across all three
	// fence lines of one block.
	input := "<<<<< SEARCH a.go\n" +
		"x\n" +
		"===== b.go\n" +
		"still before\n" +
		"===== a.go\n" +
		"y\n" +
		">>>>> REPLACE a.go\n"

	result := Parse(input)
	require.Empty(t, result.ParseError)
	require.Len(t, result.Blocks, 1)
	require.Equal(t, "x\n===== b.go\nstill before\n", result.Blocks[0].BeforeText)
}

func TestParseUnterminatedBlockReportsError(t *testing.T) {
	input := "<<<<< SEARCH a.go\n" +
		"x\n" +
		"===== a.go\n" +
		"y\n"

	result := Parse(input)
	require.NotEmpty(t, result.ParseError)
	require.Empty(t, result.Blocks)
}

func TestParsePartialBlocksRetainedBeforeFault(t *testing.T) {
	input := "<<<<< SEARCH a.go\n" +
		"x\n" +
		"===== a.go\n" +
		"y\n" +
		">>>>> REPLACE a.go\n" +
		"<<<<< SEARCH b.go\n" +
		"p\n"

	result := Parse(input)
	require.NotEmpty(t, result.ParseError)
	require.Len(t, result.Blocks, 1)
	require.Equal(t, "a.go", result.Blocks[0].Filename)
}

func TestParseEmptyBeforeTextMeansCreate(t *testing.T) {
	input := "<<<<< SEARCH new.txt\n" +
		"===== new.txt\n" +
		"hello\n" +
		">>>>> REPLACE new.txt\n"

	result := Parse(input)
	require.Empty(t, result.ParseError)
	require.Len(t, result.Blocks, 1)
	require.Equal(t, "", result.Blocks[0].BeforeText)
	require.Equal(t, "hello\n", result.Blocks[0].AfterText)
}

func TestParseShellBlock(t *testing.T) {
	input := "<<<<< SHELL\n" +
		"go test ./...\n" +
		">>>>> SHELL\n"

	result := Parse(input)
	require.Empty(t, result.ParseError)
	require.Len(t, result.Blocks, 1)
	require.True(t, result.Blocks[0].IsShell())
	require.Equal(t, "go test ./...\n", result.Blocks[0].ShellCommand)
}
