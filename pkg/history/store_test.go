package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chainlaunch/editcore/pkg/editcore/apply"
	"github.com/chainlaunch/editcore/pkg/editcore/project"
)

func TestStoreRecordAndListBatches(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx, err := project.NewLocalContext(t.TempDir())
	require.NoError(t, err)
	file := ctx.ToFile("a.go")

	result := apply.EditResult{
		BatchID: "batch-1",
		Files:   map[string]project.ProjectFile{file.Key(): file},
	}

	now := time.Now()
	require.NoError(t, store.RecordBatch(now, now.Add(time.Second), result))

	batches, err := store.ListBatches(10)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Equal(t, "batch-1", batches[0].ID)
	require.Equal(t, 1, batches[0].UpdatedFiles)
	require.Equal(t, 0, batches[0].RolledBack)
}
