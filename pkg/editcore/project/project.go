// Package project defines the external interfaces the edit engine consumes
// (a file I/O abstraction, a project-file enumeration context, git staging,
// and a console sink) plus ProjectFile, the (root, relative path) ownership
// pair the resolver and applier pass around as a single, already-validated
// handle.
package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileIO abstracts exists/read/write/basename over UTF-8 text, line endings
// preserved as read.
type FileIO interface {
	Exists(path string) bool
	Read(path string) (string, error)
	Write(path string, text string) error
	Basename(path string) string
}

// ProjectFile is an ownership pair of project root and relative path.
// The root is immutable once constructed; RelativePath is normalized with
// filepath.Clean and is always expressed with forward slashes so it can be
// compared and printed independent of host OS.
type ProjectFile struct {
	root         string
	relativePath string
	io           FileIO
}

// New builds a ProjectFile rooted at root, normalizing relativePath.
func New(root, relativePath string, io FileIO) ProjectFile {
	clean := filepath.ToSlash(filepath.Clean(relativePath))
	clean = strings.TrimPrefix(clean, "./")
	return ProjectFile{root: root, relativePath: clean, io: io}
}

// Zero reports whether this ProjectFile was never constructed via New (the
// resolver returns this to mean "no file").
func (f ProjectFile) Zero() bool {
	return f.io == nil && f.relativePath == ""
}

// Root returns the project root this file is scoped to.
func (f ProjectFile) Root() string { return f.root }

// RelativePath returns the normalized path relative to Root.
func (f ProjectFile) RelativePath() string { return f.relativePath }

// AbsPath returns the OS-native absolute path.
func (f ProjectFile) AbsPath() string {
	return filepath.Join(f.root, filepath.FromSlash(f.relativePath))
}

// Exists reports whether the file currently exists on disk.
func (f ProjectFile) Exists() bool {
	return f.io.Exists(f.AbsPath())
}

// Read returns the file's current UTF-8 content.
func (f ProjectFile) Read() (string, error) {
	return f.io.Read(f.AbsPath())
}

// Write overwrites the file's content, creating it (and any parent
// directories, per the FileIO implementation) if necessary.
func (f ProjectFile) Write(text string) error {
	return f.io.Write(f.AbsPath(), text)
}

// FileName returns the last path segment (the basename).
func (f ProjectFile) FileName() string {
	return f.io.Basename(f.relativePath)
}

// String renders the file as its root-relative path, for logs and
// console-sink messages.
func (f ProjectFile) String() string {
	return f.relativePath
}

// Equal compares two ProjectFiles by root and normalized relative path.
func (f ProjectFile) Equal(other ProjectFile) bool {
	return f.root == other.root && f.relativePath == other.relativePath
}

func (f ProjectFile) key() string {
	return fmt.Sprintf("%s\x00%s", f.root, f.relativePath)
}

// Key returns an opaque comparable key suitable for use as a map key (e.g.
// the batch applier's snapshot table).
func (f ProjectFile) Key() string { return f.key() }

// Context enumerates a project's files: the editable set, the tracked-files
// sequence, the full project enumeration, and a constructor from a relative
// path string.
type Context interface {
	EditableFiles() []ProjectFile
	TrackedFiles() []ProjectFile
	AllFiles() []ProjectFile
	ToFile(relativePath string) ProjectFile
}

// GitStager stages files with the hosting repository. Staging failures are
// non-fatal; callers should log rather than abort on error.
type GitStager interface {
	Add(files []ProjectFile) error
}

// ConsoleSink carries user-visible status output on structured channels,
// never control flow.
type ConsoleSink interface {
	ToolOutput(format string, args ...interface{})
	ToolError(format string, args ...interface{})
	SystemOutput(format string, args ...interface{})
}
