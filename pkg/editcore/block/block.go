// Package block parses model-emitted text for SEARCH/REPLACE fence blocks
// and emits typed SearchReplaceBlock records. A block is three fence lines
// (head, divider, terminator) carrying the same filename token; the repeated
// token is what lets the parser pick blocks out of surrounding prose and
// nested code fences. Parsing is a single pass over lines with an explicit
// out/in-before/in-after state machine.
package block

import (
	"strings"
	"unicode/utf8"
)

// kind distinguishes a fence line's role while scanning.
type kind int

const (
	kindNone kind = iota
	kindHead
	kindDivider
	kindReplace
)

// SearchReplaceBlock is the parsed record for one SEARCH/REPLACE or
// shell-command block. Exactly one of (Filename + the two text fields) or
// ShellCommand is populated. Both texts end with a newline unless empty.
type SearchReplaceBlock struct {
	Filename     string
	BeforeText   string
	AfterText    string
	ShellCommand string
}

// IsShell reports whether this block carries a shell command rather than a
// file edit.
func (b SearchReplaceBlock) IsShell() bool {
	return b.ShellCommand != ""
}

// ParseResult is the ordered output of Parse: the blocks recognized before
// any fault, plus an optional description of the first unterminated block.
type ParseResult struct {
	Blocks    []SearchReplaceBlock
	ParseError string
}

type state int

const (
	stateOut state = iota
	stateInBefore
	stateInAfter
)

// classify inspects one line and reports which fence role it plays, along
// with the filename token that followed the fence run (for divider lines
// this is the whole remainder; for head/replace lines it follows the
// SEARCH/REPLACE keyword; SHELL lines report a fixed sentinel instead).
func classify(line string) (k kind, filename string) {
	trimmed := strings.TrimLeft(line, " \t")
	// A fence line opens with a run of 5-9 identical characters.
	_, size := utf8.DecodeRuneInString(trimmed)
	end := 0
	for size > 0 && end < 9*size && strings.HasPrefix(trimmed[end:], trimmed[:size]) {
		end += size
	}
	if size == 0 || end < 5*size {
		return kindNone, ""
	}
	rest := strings.TrimSpace(trimmed[end:])

	switch {
	case strings.HasPrefix(rest, "SEARCH"):
		return kindHead, strings.TrimSpace(strings.TrimPrefix(rest, "SEARCH"))
	case strings.HasPrefix(rest, "REPLACE"):
		return kindReplace, strings.TrimSpace(strings.TrimPrefix(rest, "REPLACE"))
	case strings.HasPrefix(rest, "SHELL"):
		// Shell blocks reuse the fence shape with the SHELL keyword in
		// place of a filename token, and close with a second SHELL line.
		return kindHead, "\x00shell"
	case rest == "":
		return kindNone, ""
	default:
		return kindDivider, rest
	}
}

// isShellClose reports whether a fence line closes a SHELL block; it
// reuses classify's head detection since SHELL blocks have no divider.
func isShellClose(line string) bool {
	k, fn := classify(line)
	return k == kindHead && fn == "\x00shell"
}

// Parse scans text for SEARCH/REPLACE and SHELL blocks. Unrelated lines
// between blocks are ignored; an unmatched divider or terminator is treated
// as plain content. ParseError is set only when input ends mid-block, and
// all blocks completed before that point are still returned.
func Parse(text string) ParseResult {
	lines := strings.Split(text, "\n")

	var result ParseResult
	st := stateOut
	var filename string
	var shell bool
	var before, after, shellBody []string

	emit := func() {
		if shell {
			result.Blocks = append(result.Blocks, SearchReplaceBlock{
				ShellCommand: joinWithTrailingNewline(shellBody),
			})
			return
		}
		result.Blocks = append(result.Blocks, SearchReplaceBlock{
			Filename:   filename,
			BeforeText: joinWithTrailingNewline(before),
			AfterText:  joinWithTrailingNewline(after),
		})
	}

	for _, line := range lines {
		k, fn := classify(line)

		switch st {
		case stateOut:
			switch {
			case k == kindHead && fn == "\x00shell":
				st = stateInAfter
				shell = true
				shellBody = nil
				filename = ""
			case k == kindHead:
				st = stateInBefore
				filename = fn
				shell = false
				before = nil
				after = nil
			}
			// any other line, including divider/replace-shaped ones, is ignored

		case stateInBefore:
			if k == kindDivider && fn == filename {
				st = stateInAfter
				continue
			}
			before = append(before, line)

		case stateInAfter:
			if shell {
				if isShellClose(line) {
					emit()
					st = stateOut
					shell = false
					continue
				}
				shellBody = append(shellBody, line)
				continue
			}
			if k == kindReplace && fn == filename {
				emit()
				st = stateOut
				continue
			}
			after = append(after, line)
		}
	}

	if st != stateOut {
		expected := "a matching divider line"
		if st == stateInAfter {
			expected = "a matching replace/terminator line"
		}
		result.ParseError = "unterminated block: expected " + expected + " for filename \"" + filename + "\""
	}

	return result
}

func joinWithTrailingNewline(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
