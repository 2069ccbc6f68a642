// Package resolve maps a possibly partial or misspelled filename token to a
// concrete ProjectFile. It tries, in order: the exact path relative to the
// project root, a case-insensitive basename match among editable files, a
// substring match over tracked files (retried by basename on ties), and a
// project-wide basename match, stopping at the first unique hit. Basename
// comparisons use Unicode case folding rather than strings.EqualFold so
// non-ASCII filenames compare consistently regardless of locale.
package resolve

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/chainlaunch/editcore/pkg/editcore/project"
)

var folder = cases.Fold()

func foldEqual(a, b string) bool {
	return folder.String(a) == folder.String(b)
}

// Outcome is the result classification of a resolve attempt.
type Outcome int

const (
	Resolved Outcome = iota
	NotFound
	Ambiguous
)

// Result is the outcome of Resolve: either a single resolved ProjectFile,
// or a NotFound/Ambiguous classification with no usable file.
type Result struct {
	Outcome Outcome
	File    project.ProjectFile
}

// Resolve runs the cascade against ctx for the given filename token.
// createNew should be true iff the originating block's before text is blank
// after trimming (a file-creation block); the exact-path step then accepts
// the path whether or not the file exists yet.
func Resolve(ctx project.Context, filename string, createNew bool) Result {
	base := filepath.Base(filepath.ToSlash(filename))

	// Step 1: exact path, relative to project root.
	candidate := ctx.ToFile(filename)
	if candidate.Exists() || createNew {
		return Result{Outcome: Resolved, File: candidate}
	}

	// Step 2: editable basename match, case-insensitive on last segment.
	if r, stop := uniqueBasenameMatch(ctx.EditableFiles(), base); stop {
		return r
	}

	// Step 3: tracked-file substring match, retried by basename on ties.
	tracked := ctx.TrackedFiles()
	var substringMatches []project.ProjectFile
	for _, f := range tracked {
		if strings.Contains(f.RelativePath(), filename) {
			substringMatches = append(substringMatches, f)
		}
	}
	if len(substringMatches) == 1 {
		return Result{Outcome: Resolved, File: substringMatches[0]}
	}
	if len(substringMatches) >= 2 {
		if r, stop := uniqueBasenameMatch(substringMatches, base); stop {
			return r
		}
		return Result{Outcome: Ambiguous}
	}

	// Step 4: project-wide basename match, case-insensitive.
	if r, stop := uniqueBasenameMatch(ctx.AllFiles(), base); stop {
		return r
	}

	// Step 5: nothing found.
	return Result{Outcome: NotFound}
}

// uniqueBasenameMatch filters candidates to those whose basename fold-equals
// base. stop is true when the cascade should end here, either a unique
// match (Outcome Resolved) or two-or-more matches (Outcome Ambiguous); stop
// is false only when there were zero matches, meaning the caller should try
// the next cascade step.
func uniqueBasenameMatch(candidates []project.ProjectFile, base string) (r Result, stop bool) {
	var matches []project.ProjectFile
	for _, f := range candidates {
		if foldEqual(f.FileName(), base) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return Result{}, false
	case 1:
		return Result{Outcome: Resolved, File: matches[0]}, true
	default:
		return Result{Outcome: Ambiguous}, true
	}
}
