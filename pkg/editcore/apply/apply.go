// Package apply drives a parsed block list through path resolution and the
// match cascade, writing results back through the project's file I/O with
// per-file transactional rollback: each file's content is snapshotted on
// first touch, and a failure against that file restores it to the snapshot
// immediately, with a final pass catching any file a later block re-dirtied
// so every failed file ends the batch on its snapshot. Failures are data,
// not errors: Run always returns a complete EditResult.
package apply

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"

	"github.com/chainlaunch/editcore/pkg/editcore/block"
	"github.com/chainlaunch/editcore/pkg/editcore/match"
	"github.com/chainlaunch/editcore/pkg/editcore/project"
	"github.com/chainlaunch/editcore/pkg/editcore/resolve"
	"github.com/chainlaunch/editcore/pkg/logger"
)

// Reason names why a block could not be applied.
type Reason string

const (
	NoFilename     Reason = "NO_FILENAME"
	FileNotFound   Reason = "FILE_NOT_FOUND"
	NoMatch        Reason = "NO_MATCH"
	AmbiguousMatch Reason = "AMBIGUOUS_MATCH"
	IOError        Reason = "IO_ERROR"
)

// FailedBlock pairs a block with the reason it could not be applied.
type FailedBlock struct {
	Block  block.SearchReplaceBlock
	Reason Reason
}

// EditResult is the batch applier's complete output: the pre-batch
// snapshots, the blocks that failed with their reasons, a BatchID for log
// correlation, and any non-fatal warnings surfaced by the match engine.
type EditResult struct {
	BatchID          string
	OriginalContents map[string]string // keyed by ProjectFile.Key()
	Files            map[string]project.ProjectFile
	FailedBlocks     []FailedBlock
	Warnings         []string
	// RolledBackKeys holds the ProjectFile.Key() of every file restored to
	// its pre-batch snapshot, so callers don't have to reverse-match
	// FailedBlocks' filename tokens (which may be partial or misspelled)
	// back to a resolved file.
	RolledBackKeys map[string]bool
}

// ShellObserver receives shell-command blocks; this package never executes
// them.
type ShellObserver interface {
	Observe(command string)
}

// Options bundles the batch applier's collaborators.
type Options struct {
	Context       project.Context
	Stager        project.GitStager // may be nil
	ShellObserver ShellObserver     // may be nil
	Sink          project.ConsoleSink
	Log           *logger.Logger
	BatchID       string
}

// Run applies blocks in input order against opts.Context. A failure against
// one file never stops blocks targeting other files.
func Run(opts Options, blocks []block.SearchReplaceBlock) EditResult {
	result := EditResult{
		BatchID:          opts.BatchID,
		OriginalContents: map[string]string{},
		Files:            map[string]project.ProjectFile{},
		RolledBackKeys:   map[string]bool{},
	}

	failedFiles := map[string]bool{}
	redirtied := map[string]bool{}
	newFiles := map[string]bool{}
	var newlyCreated []project.ProjectFile
	var rollbackErr *multierror.Error

	fail := func(blk block.SearchReplaceBlock, reason Reason) {
		result.FailedBlocks = append(result.FailedBlocks, FailedBlock{Block: blk, Reason: reason})
	}

	// failFile records a per-file failure and restores the file to its
	// snapshot right away, so blocks later in the batch read pre-batch
	// content rather than partially applied state.
	failFile := func(key string) {
		failedFiles[key] = true
		delete(redirtied, key)
		result.RolledBackKeys[key] = true
		if file, ok := result.Files[key]; ok {
			rollbackErr = multierror.Append(rollbackErr, restore(file, result.OriginalContents[key]))
		}
	}

	for _, blk := range blocks {
		if blk.IsShell() {
			if opts.ShellObserver != nil {
				opts.ShellObserver.Observe(blk.ShellCommand)
			}
			continue
		}

		if blk.Filename == "" {
			fail(blk, NoFilename)
			continue
		}

		createNew := strings.TrimSpace(blk.BeforeText) == ""
		res := resolve.Resolve(opts.Context, blk.Filename, createNew)
		if res.Outcome != resolve.Resolved {
			fail(blk, FileNotFound)
			continue
		}
		file := res.File
		key := file.Key()

		if _, touched := result.OriginalContents[key]; !touched {
			if file.Exists() {
				content, err := file.Read()
				if err != nil {
					fail(blk, IOError)
					continue
				}
				result.OriginalContents[key] = content
			} else {
				result.OriginalContents[key] = ""
				newFiles[key] = true
			}
			result.Files[key] = file
		}

		current := ""
		if file.Exists() {
			c, err := file.Read()
			if err != nil {
				fail(blk, IOError)
				failFile(key)
				continue
			}
			current = c
		}

		matchResult := match.Apply(current, blk.BeforeText, blk.AfterText)
		if matchResult.Warning != "" {
			result.Warnings = append(result.Warnings, matchResult.Warning)
			if opts.Sink != nil {
				opts.Sink.SystemOutput("%s: %s", file, matchResult.Warning)
			}
		}

		if matchResult.Err != "" {
			var reason Reason
			switch matchResult.Err {
			case match.Ambiguous:
				reason = AmbiguousMatch
			default:
				reason = NoMatch
			}
			fail(blk, reason)
			failFile(key)
			continue
		}

		if err := file.Write(matchResult.Content); err != nil {
			fail(blk, IOError)
			failFile(key)
			continue
		}

		if failedFiles[key] {
			redirtied[key] = true
		}
		if newFiles[key] && !containsFile(newlyCreated, file) {
			newlyCreated = append(newlyCreated, file)
		}
	}

	// A block can still succeed against a file that already failed earlier
	// in the batch; put any such file back on its snapshot so the batch
	// ends all-or-nothing per file.
	for key := range redirtied {
		if file, ok := result.Files[key]; ok {
			rollbackErr = multierror.Append(rollbackErr, restore(file, result.OriginalContents[key]))
		}
	}
	if rollbackErr != nil {
		if err := rollbackErr.ErrorOrNil(); err != nil {
			if opts.Log != nil {
				opts.Log.Errorf("rollback failures: %v", err)
			}
			if opts.Sink != nil {
				opts.Sink.ToolError("rollback failures: %v", err)
			}
		}
	}

	if opts.Stager != nil && len(newlyCreated) > 0 {
		var staged []project.ProjectFile
		for _, f := range newlyCreated {
			if !failedFiles[f.Key()] {
				staged = append(staged, f)
			}
		}
		if len(staged) > 0 {
			if err := opts.Stager.Add(staged); err != nil {
				if opts.Log != nil {
					opts.Log.Warnf("git add failed (non-fatal): %v", err)
				}
				if opts.Sink != nil {
					opts.Sink.ToolError("git add failed: %v", err)
				}
			}
		}
	}

	return result
}

// restore writes snapshot back to file, returning a wrapped error carrying
// a stack trace that the caller folds into the batch's aggregate rollback
// error for the console sink.
func restore(file project.ProjectFile, snapshot string) error {
	if err := file.Write(snapshot); err != nil {
		return pkgerrors.Wrapf(err, "rollback failed for %s", file)
	}
	return nil
}

func containsFile(files []project.ProjectFile, f project.ProjectFile) bool {
	for _, existing := range files {
		if existing.Equal(f) {
			return true
		}
	}
	return false
}
