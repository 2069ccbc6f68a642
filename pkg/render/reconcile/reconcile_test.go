package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainlaunch/editcore/pkg/render/component"
	"github.com/chainlaunch/editcore/pkg/render/ids"
	"github.com/chainlaunch/editcore/pkg/render/markdown"
	"github.com/chainlaunch/editcore/pkg/render/reconcile"
)

func TestDiffFirstPassAllCreate(t *testing.T) {
	r := reconcile.New()
	next := []component.Descriptor{
		component.Markdown{IDValue: 1, HTML: "<p>a</p>"},
		component.CodeFence{IDValue: 2, Language: "go", Content: "x"},
	}
	ops := r.Diff(next)
	require.Len(t, ops, 2)
	require.Equal(t, reconcile.Create, ops[0].Kind)
	require.Equal(t, reconcile.Create, ops[1].Kind)
}

func TestDiffUnchangedIsNoOp(t *testing.T) {
	r := reconcile.New()
	d := component.Markdown{IDValue: 1, HTML: "<p>a</p>"}
	r.Diff([]component.Descriptor{d})

	ops := r.Diff([]component.Descriptor{d})
	require.Len(t, ops, 1)
	require.Equal(t, reconcile.NoOp, ops[0].Kind)
}

func TestDiffChangedFingerprintIsUpdate(t *testing.T) {
	r := reconcile.New()
	r.Diff([]component.Descriptor{component.Markdown{IDValue: 1, HTML: "<p>a</p>"}})

	ops := r.Diff([]component.Descriptor{component.Markdown{IDValue: 1, HTML: "<p>a, more</p>"}})
	require.Len(t, ops, 1)
	require.Equal(t, reconcile.Update, ops[0].Kind)
}

func TestDiffMissingIDIsRemove(t *testing.T) {
	r := reconcile.New()
	r.Diff([]component.Descriptor{
		component.Markdown{IDValue: 1, HTML: "<p>a</p>"},
		component.Markdown{IDValue: 2, HTML: "<p>b</p>"},
	})

	ops := r.Diff([]component.Descriptor{component.Markdown{IDValue: 1, HTML: "<p>a</p>"}})
	require.Len(t, ops, 2)
	require.Equal(t, reconcile.NoOp, ops[0].Kind)
	require.Equal(t, reconcile.Remove, ops[1].Kind)
	require.Equal(t, int64(2), ops[1].ID)
}

func TestDiffEditBlockPlaceholderFingerprintIgnoresFilename(t *testing.T) {
	r := reconcile.New()
	r.Diff([]component.Descriptor{
		component.EditBlockPlaceholder{IDValue: 1, Filename: "a.go", Adds: 1, Dels: 0, Status: "pending"},
	})

	ops := r.Diff([]component.Descriptor{
		component.EditBlockPlaceholder{IDValue: 1, Filename: "a.go", Adds: 1, Dels: 0, Status: "applied"},
	})
	require.Len(t, ops, 1)
	require.Equal(t, reconcile.Update, ops[0].Kind)

	// A filename change alone leaves the fingerprint unchanged.
	ops = r.Diff([]component.Descriptor{
		component.EditBlockPlaceholder{IDValue: 1, Filename: "b.go", Adds: 1, Dels: 0, Status: "applied"},
	})
	require.Len(t, ops, 1)
	require.Equal(t, reconcile.NoOp, ops[0].Kind)
}

// TestDiffGrowingPrefixKeepsEarlierNodes drives two successive prefixes of
// a streaming document through the full parse-flatten-diff pipeline and
// asserts that appending content never re-creates the earlier components:
// their IDs survive the re-parse and diff to NO-OP, not REMOVE/CREATE.
func TestDiffGrowingPrefixKeepsEarlierNodes(t *testing.T) {
	md := markdown.New()
	counter := ids.NewCounter()
	r := reconcile.New()

	prefix := "# Title\n\nhello\n"
	extended := prefix + "\n```py\nprint(1)\n```\n"

	elements, err := md.ParseElements([]byte(prefix))
	require.NoError(t, err)
	first := component.Parse(elements, counter)
	// The heading and the paragraph are separate descriptors, each with its
	// own stable ID.
	require.Len(t, first, 2)
	r.Diff(first)

	elements, err = md.ParseElements([]byte(extended))
	require.NoError(t, err)
	second := component.Parse(elements, counter)
	require.Len(t, second, 3)
	require.Equal(t, first[0].ID(), second[0].ID())
	require.Equal(t, first[1].ID(), second[1].ID())

	ops := r.Diff(second)
	counts := map[reconcile.OpKind]int{}
	for _, op := range ops {
		counts[op.Kind]++
	}
	require.Equal(t, 0, counts[reconcile.Remove])
	require.Equal(t, 0, counts[reconcile.Update])
	require.Equal(t, 1, counts[reconcile.Create]) // only the appended fence
	require.Equal(t, 2, counts[reconcile.NoOp])
}

func TestDiffReorderWithoutFingerprintChangeIsNoOpPerID(t *testing.T) {
	r := reconcile.New()
	a := component.Markdown{IDValue: 1, HTML: "<p>a</p>"}
	b := component.Markdown{IDValue: 2, HTML: "<p>b</p>"}
	r.Diff([]component.Descriptor{a, b})

	ops := r.Diff([]component.Descriptor{b, a})
	require.Len(t, ops, 2)
	require.Equal(t, reconcile.NoOp, ops[0].Kind)
	require.Equal(t, int64(2), ops[0].ID)
	require.Equal(t, 0, ops[0].Index)
	require.Equal(t, reconcile.NoOp, ops[1].Kind)
	require.Equal(t, int64(1), ops[1].ID)
	require.Equal(t, 1, ops[1].Index)
}
