package match

import "strings"

const ellipsisMarker = "..."

// tryEllipsis performs ellipsis expansion. ok is false only when neither
// target nor content contains a whole-line "..." marker, meaning expansion
// doesn't apply and the cascade should fall through to the blank-line
// retry.
func tryEllipsis(content, target, replacement string) (Result, bool) {
	if !containsEllipsisLine(target) && !containsEllipsisLine(content) {
		return Result{}, false
	}

	targetPieces := splitOnEllipsis(target)
	replacementPieces := splitOnEllipsis(replacement)

	if len(targetPieces) != len(replacementPieces) {
		// Mismatched piece counts make the pieces impossible to align.
		return Result{Err: NoMatch}, true
	}

	running := content
	var warning string

	for i, t := range targetPieces {
		r := replacementPieces[i]

		switch {
		case t == "" && r == "":
			// no-op piece

		case t == "" && r != "":
			running += r

		case t != "" && r == "":
			// A non-empty piece with no corresponding replacement text is
			// a no-op, not a deletion. Flag it so the console sink can
			// surface the asymmetry.
			warning = "ellipsis piece has no replacement text; left unchanged rather than deleted"

		default:
			idx := strings.Index(running, t)
			if idx == -1 {
				return Result{Err: NoMatch}, true
			}
			running = running[:idx] + r + running[idx+len(t):]
		}
	}

	return Result{Content: running, Warning: warning}, true
}

func containsEllipsisLine(s string) bool {
	for _, line := range splitLines(s) {
		if strings.TrimSpace(line) == ellipsisMarker {
			return true
		}
	}
	return false
}

// splitOnEllipsis splits s into pieces around whole-line "..." markers,
// preserving each piece's own trailing newline (or lack of one) so a piece
// can be used directly as a literal search/replacement string.
func splitOnEllipsis(s string) []string {
	lines := splitLines(s)
	var pieces []string
	var cur []string
	for _, line := range lines {
		if strings.TrimSpace(line) == ellipsisMarker {
			pieces = append(pieces, joinPiece(cur))
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	pieces = append(pieces, joinPiece(cur))
	return pieces
}

// joinPiece rejoins lines captured between ellipsis markers, restoring the
// "\n" separators lost by splitLines and dropping the single trailing empty
// element that a newline-terminated input leaves behind.
func joinPiece(lines []string) string {
	lines = trimTrailingEmpty(lines)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
