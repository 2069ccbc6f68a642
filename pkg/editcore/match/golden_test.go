package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// TestGoldenCascadeFixtures runs every testdata/*.txtar fixture through
// Apply, comparing against its "want" section. Each archive holds
// "content"/"target"/"replacement"/"want" files, the larger-scenario
// counterpart to match_test.go's hand-written table literals, for the
// cascade steps (reindentation, ellipsis expansion) that read more
// clearly as whole before/after documents than as inline strings.
func TestGoldenCascadeFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)

			archive := txtar.Parse(data)
			sections := map[string]string{}
			for _, f := range archive.Files {
				sections[f.Name] = string(f.Data)
			}

			res := Apply(sections["content"], sections["target"], sections["replacement"])
			require.Empty(t, res.Err)
			require.Equal(t, sections["want"], res.Content)
		})
	}
}
