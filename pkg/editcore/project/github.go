package project

import (
	"context"
	"sort"
	"strings"

	"github.com/google/go-github/v45/github"

	apperrors "github.com/chainlaunch/editcore/pkg/errors"
)

// GitHubFileIO implements FileIO against a remote GitHub repository. Reads
// fetch blobs through the API; writes accumulate in an in-memory buffer the
// embedding host turns into a commit through its own integration.
type GitHubFileIO struct {
	ctx    context.Context
	client *github.Client
	owner  string
	repo   string
	ref    string

	buf writeBuffer
}

type writeBuffer struct {
	pending map[string]string
}

// NewGitHubFileIO builds a FileIO that reads blobs from owner/repo at ref
// via the given authenticated client.
func NewGitHubFileIO(ctx context.Context, client *github.Client, owner, repo, ref string) *GitHubFileIO {
	return &GitHubFileIO{
		ctx: ctx, client: client, owner: owner, repo: repo, ref: ref,
		buf: writeBuffer{pending: map[string]string{}},
	}
}

func (io *GitHubFileIO) Exists(path string) bool {
	_, _, _, err := io.client.Repositories.GetContents(io.ctx, io.owner, io.repo, path, &github.RepositoryContentGetOptions{Ref: io.ref})
	return err == nil
}

func (io *GitHubFileIO) Read(path string) (string, error) {
	if content, ok := io.buf.pending[path]; ok {
		return content, nil
	}
	fileContent, _, _, err := io.client.Repositories.GetContents(io.ctx, io.owner, io.repo, path, &github.RepositoryContentGetOptions{Ref: io.ref})
	if err != nil {
		return "", apperrors.Wrap(apperrors.IOError, "github read failed", err)
	}
	text, err := fileContent.GetContent()
	if err != nil {
		return "", apperrors.Wrap(apperrors.IOError, "github content decode failed", err)
	}
	return text, nil
}

// Write stages the new content in memory; editcore never pushes a commit on
// the host's behalf. A host embedding GitHubFileIO is expected to read
// Pending afterwards and create a commit through its own integration.
func (io *GitHubFileIO) Write(path string, text string) error {
	io.buf.pending[path] = text
	return nil
}

// Pending returns the path->content map of files written but not yet
// committed upstream.
func (io *GitHubFileIO) Pending() map[string]string {
	return io.buf.pending
}

func (io *GitHubFileIO) Basename(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// GitHubContext implements Context by listing a repository's git tree, an
// alternate source of project files alongside LocalContext.
type GitHubContext struct {
	ctx   context.Context
	io    *GitHubFileIO
	owner string
	repo  string
	ref   string

	client *github.Client
}

// NewGitHubContext builds a Context enumerating owner/repo at ref.
func NewGitHubContext(ctx context.Context, client *github.Client, owner, repo, ref string) *GitHubContext {
	return &GitHubContext{
		ctx: ctx, client: client, owner: owner, repo: repo, ref: ref,
		io: NewGitHubFileIO(ctx, client, owner, repo, ref),
	}
}

func (c *GitHubContext) ToFile(relativePath string) ProjectFile {
	return New("", relativePath, c.io)
}

func (c *GitHubContext) AllFiles() []ProjectFile {
	tree, _, err := c.client.Git.GetTree(c.ctx, c.owner, c.repo, c.ref, true)
	if err != nil {
		return nil
	}
	var out []ProjectFile
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		out = append(out, c.ToFile(entry.GetPath()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelativePath() < out[j].RelativePath() })
	return out
}

// EditableFiles and TrackedFiles both coincide with AllFiles for a remote
// GitHub source: there is no local working-copy distinction to draw.
func (c *GitHubContext) EditableFiles() []ProjectFile { return c.AllFiles() }
func (c *GitHubContext) TrackedFiles() []ProjectFile  { return c.AllFiles() }

var _ Context = (*GitHubContext)(nil)
