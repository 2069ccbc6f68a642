package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	apperrors "github.com/chainlaunch/editcore/pkg/errors"
)

// skipDirs lists directories a working-tree scan never descends into.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
}

// LocalFileIO implements FileIO against the local filesystem, scoped to a
// project root fixed at construction time.
type LocalFileIO struct {
	root string
}

// NewLocalFileIO returns a FileIO rooted at root; root must be an absolute,
// already-resolved directory.
func NewLocalFileIO(root string) *LocalFileIO {
	return &LocalFileIO{root: root}
}

// sanitize rejects any path that, once resolved, escapes root. Callers are
// expected to build paths via ProjectFile.AbsPath; this guard catches the
// ones that don't.
func (io *LocalFileIO) sanitize(path string) (string, error) {
	absRoot, err := filepath.Abs(io.root)
	if err != nil {
		return "", apperrors.Wrap(apperrors.IOError, "invalid project root", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.IOError, "invalid file path", err)
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", apperrors.New(apperrors.ValidationError, "file path is outside the project scope")
	}
	return absPath, nil
}

func (io *LocalFileIO) Exists(path string) bool {
	abs, err := io.sanitize(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

func (io *LocalFileIO) Read(path string) (string, error) {
	abs, err := io.sanitize(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", apperrors.Wrap(apperrors.IOError, "read failed", err)
	}
	return string(data), nil
}

func (io *LocalFileIO) Write(path string, text string) error {
	abs, err := io.sanitize(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return apperrors.Wrap(apperrors.IOError, "mkdir failed", err)
	}
	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		return apperrors.Wrap(apperrors.IOError, "write failed", err)
	}
	return nil
}

func (io *LocalFileIO) Basename(path string) string {
	return filepath.Base(path)
}

// LocalContext implements Context by walking a local working tree. Tracked
// files are sourced from go-git when the root is inside a git repository;
// otherwise TrackedFiles falls back to AllFiles.
type LocalContext struct {
	root string
	io   FileIO
	repo *git.Repository
}

// NewLocalContext opens root (optionally a git working tree) and returns a
// Context enumerating its files.
func NewLocalContext(root string) (*LocalContext, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.IOError, "invalid project root", err)
	}

	ctx := &LocalContext{root: absRoot, io: NewLocalFileIO(absRoot)}

	repo, err := git.PlainOpenWithOptions(absRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		ctx.repo = repo
	}

	return ctx, nil
}

// ToFile builds a ProjectFile for relativePath under this context's root.
func (c *LocalContext) ToFile(relativePath string) ProjectFile {
	return New(c.root, relativePath, c.io)
}

// AllFiles walks the working tree, skipping VCS and dependency directories.
func (c *LocalContext) AllFiles() []ProjectFile {
	var out []ProjectFile
	_ = filepath.Walk(c.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if _, skip := skipDirs[info.Name()]; skip && path != c.root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return nil
		}
		out = append(out, c.ToFile(rel))
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].relativePath < out[j].relativePath })
	return out
}

// EditableFiles is, absent a richer notion of "open buffers" supplied by a
// host IDE, the same set as AllFiles: every file the engine could in
// principle target.
func (c *LocalContext) EditableFiles() []ProjectFile {
	return c.AllFiles()
}

// TrackedFiles lists the paths git knows about (staged, committed, or
// otherwise indexed), falling back to AllFiles when root isn't a git
// working tree.
func (c *LocalContext) TrackedFiles() []ProjectFile {
	if c.repo == nil {
		return c.AllFiles()
	}

	wt, err := c.repo.Worktree()
	if err != nil {
		return c.AllFiles()
	}

	status, err := wt.Status()
	if err != nil {
		return c.AllFiles()
	}

	head, err := c.repo.Head()
	var tracked []ProjectFile
	seen := map[string]struct{}{}
	if err == nil {
		commit, err := c.repo.CommitObject(head.Hash())
		if err == nil {
			tree, err := commit.Tree()
			if err == nil {
				_ = tree.Files().ForEach(func(f *object.File) error {
					if _, ok := seen[f.Name]; !ok {
						seen[f.Name] = struct{}{}
						tracked = append(tracked, c.ToFile(f.Name))
					}
					return nil
				})
			}
		}
	}

	for path, s := range status {
		// The HEAD tree already covers committed paths; the status pass only
		// adds staged-but-uncommitted ones. Untracked files are not tracked.
		if s.Staging == git.Untracked || s.Worktree == git.Untracked {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		tracked = append(tracked, c.ToFile(path))
	}

	sort.Slice(tracked, func(i, j int) bool { return tracked[i].relativePath < tracked[j].relativePath })
	return tracked
}

// GoGitStager implements GitStager by staging files with go-git's worktree
// Add.
type GoGitStager struct {
	ctx *LocalContext
}

// NewGoGitStager builds a GitStager bound to ctx's repository; it is a
// no-op Add if ctx's root is not a git working tree.
func NewGoGitStager(ctx *LocalContext) *GoGitStager {
	return &GoGitStager{ctx: ctx}
}

func (s *GoGitStager) Add(files []ProjectFile) error {
	if s.ctx.repo == nil {
		return nil
	}
	wt, err := s.ctx.repo.Worktree()
	if err != nil {
		return fmt.Errorf("git worktree: %w", err)
	}
	for _, f := range files {
		if _, err := wt.Add(f.RelativePath()); err != nil {
			return fmt.Errorf("git add %s: %w", f, err)
		}
	}
	return nil
}
