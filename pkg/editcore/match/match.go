// Package match locates a target text inside file content and splices in a
// replacement, using an ordered cascade of strategies: whole-file replace
// for an empty target, exact line match, whitespace-insensitive match with
// reindentation, ellipsis expansion, and a final retry with one spurious
// leading blank line stripped. Every strategy either succeeds on a unique
// hit or defers; none picks an arbitrary hit when the match is ambiguous.
package match

import (
	"strings"
)

// Reason names why the cascade failed. Only NO_MATCH and AMBIGUOUS_MATCH
// originate here; resolution and I/O failures are attached by callers at a
// different layer.
type Reason string

const (
	NoMatch   Reason = "NO_MATCH"
	Ambiguous Reason = "AMBIGUOUS_MATCH"
)

// Result is the outcome of Apply: either Content holds the spliced result,
// or Err names why no unique match could be produced. Warning is set
// (without failing the match) when an ellipsis piece had target text but an
// empty replacement, which is applied as a no-op rather than a deletion.
type Result struct {
	Content string
	Err     Reason
	Warning string
}

// Apply runs the cascade against content, trying to locate target and
// splice in replacement. Both target and replacement arrive with trailing
// newlines enforced; an empty target means whole-file replace.
func Apply(content, target, replacement string) Result {
	if target == "" {
		return Result{Content: replacement}
	}

	if res, ok := tryExactAndWhitespace(content, target, replacement); ok {
		return res
	}

	if res, ok := tryEllipsis(content, target, replacement); ok {
		return res
	}

	// Models often add a blank line right under the SEARCH marker. Strip
	// exactly one and retry the exact match and the ellipsis expansion.
	if startsWithBlankLine(target) {
		strippedTarget := stripOneLeadingBlankLine(target)
		strippedReplacement := stripOneLeadingBlankLine(replacement)

		if res, matched := exactLineMatch(content, strippedTarget, strippedReplacement); matched {
			return res
		}
		if res, ok := tryEllipsis(content, strippedTarget, strippedReplacement); ok {
			return res
		}
	}

	return Result{Err: NoMatch}
}

func startsWithBlankLine(s string) bool {
	lines := splitLines(s)
	return len(lines) > 0 && strings.TrimSpace(lines[0]) == ""
}

func stripOneLeadingBlankLine(s string) string {
	lines := splitLines(s)
	if len(lines) == 0 {
		return s
	}
	return strings.Join(lines[1:], "\n")
}

// splitLines splits on "\n" preserving empty trailing elements the way
// strings.Split does, which is what the cascade's line-for-line comparisons
// need (content and target both end with "\n" by contract, producing one
// trailing empty element that every step must treat as "no line").
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// tryExactAndWhitespace attempts the exact line match then, on zero hits,
// the whitespace-insensitive match. ok is false only when both found zero
// candidates (the caller tries ellipsis expansion next); a found-but-
// ambiguous outcome at either stage is terminal (ok=true, Err=Ambiguous).
func tryExactAndWhitespace(content, target, replacement string) (Result, bool) {
	if res, matched := exactLineMatch(content, target, replacement); matched {
		return res, true
	}
	if res, matched := whitespaceInsensitiveMatch(content, target, replacement); matched {
		return res, true
	}
	return Result{}, false
}

// exactLineMatch finds target by consecutive-line string equality.
func exactLineMatch(content, target, replacement string) (Result, bool) {
	contentLines := splitLines(content)
	targetLines := trimTrailingEmpty(splitLines(target))
	if len(targetLines) == 0 {
		return Result{}, false
	}

	var hits []int
	for i := 0; i+len(targetLines) <= len(contentLines); i++ {
		if linesEqual(contentLines[i:i+len(targetLines)], targetLines) {
			hits = append(hits, i)
		}
	}

	switch len(hits) {
	case 0:
		return Result{}, false
	case 1:
		return Result{Content: spliceLines(contentLines, hits[0], len(targetLines), replacement)}, true
	default:
		return Result{Err: Ambiguous}, true
	}
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// whitespaceInsensitiveMatch strips leading/trailing blank lines from
// target, then compares candidate windows with all whitespace removed
// from each corresponding line pair. On a unique hit, the first replacement
// line is reindented to match the matched region's original indentation.
func whitespaceInsensitiveMatch(content, target, replacement string) (Result, bool) {
	contentLines := splitLines(content)
	targetLines := trimTrailingEmpty(splitLines(target))
	targetLines = trimBlankEdges(targetLines)
	if len(targetLines) == 0 {
		return Result{}, false
	}

	strippedTarget := make([]string, len(targetLines))
	for i, l := range targetLines {
		strippedTarget[i] = stripAllWhitespace(l)
	}

	var hits []int
	for i := 0; i+len(targetLines) <= len(contentLines); i++ {
		match := true
		for j, want := range strippedTarget {
			if stripAllWhitespace(contentLines[i+j]) != want {
				match = false
				break
			}
		}
		if match {
			hits = append(hits, i)
		}
	}

	switch len(hits) {
	case 0:
		return Result{}, false
	case 1:
		i := hits[0]
		indent := leadingWhitespace(contentLines[i])
		replLines := trimTrailingEmpty(splitLines(replacement))
		adjusted := make([]string, len(replLines))
		copy(adjusted, replLines)
		if len(adjusted) > 0 {
			adjusted[0] = indent + strings.TrimSpace(adjusted[0])
		}
		adjustedText := strings.Join(adjusted, "\n")
		if len(adjusted) > 0 {
			adjustedText += "\n"
		}
		return Result{Content: spliceLines(contentLines, i, len(targetLines), adjustedText)}, true
	default:
		return Result{Err: Ambiguous}, true
	}
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

func stripAllWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// trimTrailingEmpty drops the single trailing "" element strings.Split
// leaves behind when s ends with "\n"; both target and content are
// contractually newline-terminated.
func trimTrailingEmpty(lines []string) []string {
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	return lines
}

// spliceLines replaces contentLines[start:start+count] with replacement
// (already newline-terminated or empty) and rejoins into a single string.
func spliceLines(contentLines []string, start, count int, replacement string) string {
	var b strings.Builder
	for _, l := range contentLines[:start] {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(replacement)
	for i := start + count; i < len(contentLines); i++ {
		b.WriteString(contentLines[i])
		if i != len(contentLines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
