package apply_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainlaunch/editcore/pkg/editcore/apply"
	"github.com/chainlaunch/editcore/pkg/editcore/block"
	"github.com/chainlaunch/editcore/pkg/editcore/project"
)

// memFileIO is an in-memory FileIO for tests, avoiding any touch of the real
// filesystem while exercising the same interface LocalFileIO implements.
type memFileIO struct {
	files map[string]string
}

func newMemFileIO() *memFileIO { return &memFileIO{files: map[string]string{}} }

func (m *memFileIO) Exists(path string) bool { _, ok := m.files[path]; return ok }
func (m *memFileIO) Read(path string) (string, error) {
	v, ok := m.files[path]
	if !ok {
		return "", nil
	}
	return v, nil
}
func (m *memFileIO) Write(path string, text string) error { m.files[path] = text; return nil }
func (m *memFileIO) Basename(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

type memContext struct {
	root string
	io   *memFileIO
}

func (c *memContext) ToFile(relativePath string) project.ProjectFile {
	return project.New(c.root, relativePath, c.io)
}
func (c *memContext) EditableFiles() []project.ProjectFile { return c.allFiles() }
func (c *memContext) TrackedFiles() []project.ProjectFile  { return c.allFiles() }
func (c *memContext) AllFiles() []project.ProjectFile      { return c.allFiles() }
func (c *memContext) allFiles() []project.ProjectFile {
	var out []project.ProjectFile
	for path := range c.io.files {
		out = append(out, c.ToFile(path))
	}
	return out
}

func newMemContext() (*memContext, *memFileIO) {
	io := newMemFileIO()
	return &memContext{root: "", io: io}, io
}

func TestRunBasicReplace(t *testing.T) {
	ctx, io := newMemContext()
	io.files["main.go"] = "line1\nfoo\nline3\n"

	result := apply.Run(apply.Options{Context: ctx}, []block.SearchReplaceBlock{
		{Filename: "main.go", BeforeText: "foo\n", AfterText: "bar\n"},
	})

	require.Empty(t, result.FailedBlocks)
	require.Equal(t, "line1\nbar\nline3\n", io.files["main.go"])
}

func TestRunAmbiguityRefused(t *testing.T) {
	ctx, io := newMemContext()
	io.files["main.go"] = "a\nb\na\n"

	result := apply.Run(apply.Options{Context: ctx}, []block.SearchReplaceBlock{
		{Filename: "main.go", BeforeText: "a\n", AfterText: "x\n"},
	})

	require.Len(t, result.FailedBlocks, 1)
	require.Equal(t, apply.AmbiguousMatch, result.FailedBlocks[0].Reason)
	require.Equal(t, "a\nb\na\n", io.files["main.go"])
}

func TestRunFileCreation(t *testing.T) {
	ctx, io := newMemContext()

	var staged []project.ProjectFile
	stager := stagerFunc(func(files []project.ProjectFile) error {
		staged = append(staged, files...)
		return nil
	})

	result := apply.Run(apply.Options{Context: ctx, Stager: stager}, []block.SearchReplaceBlock{
		{Filename: "new.txt", BeforeText: "", AfterText: "hello\n"},
	})

	require.Empty(t, result.FailedBlocks)
	require.Equal(t, "hello\n", io.files["new.txt"])
	require.Len(t, staged, 1)
}

func TestRunTransactionalRollback(t *testing.T) {
	ctx, io := newMemContext()
	io.files["f.txt"] = "start\n"

	result := apply.Run(apply.Options{Context: ctx}, []block.SearchReplaceBlock{
		{Filename: "f.txt", BeforeText: "start\n", AfterText: "middle\n"},
		{Filename: "f.txt", BeforeText: "middle\n", AfterText: "end\n"},
		{Filename: "f.txt", BeforeText: "nope\n", AfterText: "unreachable\n"},
	})

	require.Len(t, result.FailedBlocks, 1)
	require.Equal(t, apply.NoMatch, result.FailedBlocks[0].Reason)
	require.Equal(t, "start\n", io.files["f.txt"])

	key := ctx.ToFile("f.txt").Key()
	require.True(t, result.RolledBackKeys[key])
}

func TestRunFailureRestoresImmediately(t *testing.T) {
	ctx, io := newMemContext()
	io.files["f.txt"] = "start\n"

	result := apply.Run(apply.Options{Context: ctx}, []block.SearchReplaceBlock{
		{Filename: "f.txt", BeforeText: "start\n", AfterText: "middle\n"},
		{Filename: "f.txt", BeforeText: "nope\n", AfterText: "unreachable\n"},
		// The failure above restored the snapshot, so this block matches the
		// pre-batch content, not "middle".
		{Filename: "f.txt", BeforeText: "start\n", AfterText: "again\n"},
	})

	require.Len(t, result.FailedBlocks, 1)
	require.Equal(t, apply.NoMatch, result.FailedBlocks[0].Reason)
	// The file failed once, so the batch still ends on the snapshot even
	// though the last block applied cleanly after the restore.
	require.Equal(t, "start\n", io.files["f.txt"])
	require.True(t, result.RolledBackKeys[ctx.ToFile("f.txt").Key()])
}

func TestRunNoFilenameSkipped(t *testing.T) {
	ctx, _ := newMemContext()

	result := apply.Run(apply.Options{Context: ctx}, []block.SearchReplaceBlock{
		{Filename: "", BeforeText: "x\n", AfterText: "y\n"},
	})

	require.Len(t, result.FailedBlocks, 1)
	require.Equal(t, apply.NoFilename, result.FailedBlocks[0].Reason)
}

func TestRunShellBlockObserved(t *testing.T) {
	ctx, _ := newMemContext()

	var observed []string
	obs := shellObserverFunc(func(cmd string) { observed = append(observed, cmd) })

	result := apply.Run(apply.Options{Context: ctx, ShellObserver: obs}, []block.SearchReplaceBlock{
		{ShellCommand: "go test ./...\n"},
	})

	require.Empty(t, result.FailedBlocks)
	require.Equal(t, []string{"go test ./...\n"}, observed)
}

type stagerFunc func([]project.ProjectFile) error

func (f stagerFunc) Add(files []project.ProjectFile) error { return f(files) }

type shellObserverFunc func(string)

func (f shellObserverFunc) Observe(command string) { f(command) }
