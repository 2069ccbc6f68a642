// Package reconcile diffs a freshly parsed descriptor list against the
// previously rendered one, by ID rather than position, and emits the
// CREATE/UPDATE/REMOVE/NO-OP set a view needs to patch itself without
// losing caret, selection, or scroll state as streaming content grows.
package reconcile

import (
	"fmt"

	"github.com/chainlaunch/editcore/pkg/render/component"
)

// OpKind identifies what the reconciler decided to do with one descriptor.
type OpKind int

const (
	Create OpKind = iota
	Update
	Remove
	NoOp
)

// MarshalJSON renders the kind as its string name so CLI/websocket
// consumers of Op don't have to know the underlying enum ordinals.
func (k OpKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k OpKind) String() string {
	switch k {
	case Create:
		return "CREATE"
	case Update:
		return "UPDATE"
	case Remove:
		return "REMOVE"
	default:
		return "NO-OP"
	}
}

// Op is one reconciliation operation, in new-list order (REMOVE ops for IDs
// dropped entirely are appended after, since they have no new position).
type Op struct {
	Kind       OpKind
	ID         int64
	Descriptor component.Descriptor // zero value for Remove
	Index      int                  // position in the new list; -1 for Remove
}

// Fingerprint summarizes a descriptor's visible content for cheap change
// detection: the HTML string for Markdown, the language plus content for
// CodeFence, "adds|dels|status" for EditBlockPlaceholder. Composite fingerprints are
// the concatenation of their children's fingerprints, so a change anywhere
// inside one still surfaces as an UPDATE at the Composite's own ID.
func Fingerprint(d component.Descriptor) string {
	switch v := d.(type) {
	case component.Markdown:
		return v.HTML
	case component.CodeFence:
		return v.Language + "\x00" + v.Content
	case component.EditBlockPlaceholder:
		return fmt.Sprintf("%d|%d|%s", v.Adds, v.Dels, v.Status)
	case component.Composite:
		fp := ""
		for _, c := range v.Children {
			fp += Fingerprint(c) + "\x01"
		}
		return fp
	default:
		return ""
	}
}

// Reconciler owns the ID-to-descriptor map for one live view. The map
// belongs to the view's dispatch thread; a Reconciler is not safe for
// concurrent use from more than one goroutine at a time.
type Reconciler struct {
	prev map[int64]component.Descriptor
}

// New returns a Reconciler with no prior render.
func New() *Reconciler {
	return &Reconciler{prev: map[int64]component.Descriptor{}}
}

// Diff compares next against the last list passed to Diff (or against
// nothing, on the first call), updates the reconciler's snapshot to next,
// and returns the ops in new-index order, then REMOVE ops for vanished IDs.
func (r *Reconciler) Diff(next []component.Descriptor) []Op {
	var ops []Op
	seen := map[int64]bool{}

	for i, d := range next {
		id := d.ID()
		seen[id] = true
		old, existed := r.prev[id]
		switch {
		case !existed:
			ops = append(ops, Op{Kind: Create, ID: id, Descriptor: d, Index: i})
		case Fingerprint(old) != Fingerprint(d):
			ops = append(ops, Op{Kind: Update, ID: id, Descriptor: d, Index: i})
		default:
			ops = append(ops, Op{Kind: NoOp, ID: id, Descriptor: d, Index: i})
		}
	}

	for id := range r.prev {
		if !seen[id] {
			ops = append(ops, Op{Kind: Remove, ID: id, Index: -1})
		}
	}

	newPrev := make(map[int64]component.Descriptor, len(next))
	for _, d := range next {
		newPrev[d.ID()] = d
	}
	r.prev = newPrev

	return ops
}
