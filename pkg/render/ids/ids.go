// Package ids derives stable integer IDs for rendered markdown nodes: a
// deterministic function from (source byte offset, node kind), plus a
// separate monotonic counter for synthesized Composite descriptors. Stable
// IDs are what let re-parses of a growing streaming prefix reuse existing
// view components instead of rebuilding them.
package ids

import (
	"hash/fnv"

	"go.uber.org/atomic"
)

// Kind tags what sort of node an offset-derived ID was generated for.
type Kind string

const (
	KindMarkdown  Kind = "markdown"
	KindCodeFence Kind = "code_fence"
	KindEditBlock Kind = "edit_block"
)

func kindHash(k Kind) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(k))
	return int64(h.Sum32())
}

// FromOffset derives a stable ID from a source byte offset and node kind.
// Two parses that see a node at the same offset with the same kind always
// produce the same ID.
func FromOffset(offset int, kind Kind) int64 {
	v := 31*int64(offset) + kindHash(kind)
	if v < 0 {
		v = -v
	}
	return v
}

// Counter hands out IDs for Composite descriptors, which are synthesized by
// the mini-parser rather than derived from a source position. Composite IDs
// live in their own namespace (bit 62 set) so they can never collide with
// an offset-derived ID.
type Counter struct {
	next *atomic.Int64
}

const compositeNamespace = int64(1) << 62

// NewCounter returns a Counter starting just above the composite namespace
// marker.
func NewCounter() *Counter {
	c := &Counter{next: atomic.NewInt64(compositeNamespace)}
	return c
}

// Next returns the next monotonically-increasing composite ID.
func (c *Counter) Next() int64 {
	return c.next.Add(1)
}
