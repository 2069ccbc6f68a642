// Package component defines the descriptor data model for renderable units
// of model output, plus the mini-parser that walks rendered HTML into an
// ordered descriptor list. The four descriptor kinds form a closed sum type
// via an unexported marker method and a Kind enum for switches, rather than
// a polymorphic hierarchy; operations on a Descriptor (like fingerprinting
// in package reconcile) switch over the variants instead of dispatching
// through an interface method.
package component

// Kind identifies which of the four descriptor variants a Descriptor holds.
type Kind int

const (
	KindMarkdown Kind = iota
	KindCodeFence
	KindEditBlockPlaceholder
	KindComposite
)

// Descriptor is one of Markdown, CodeFence, EditBlockPlaceholder, or
// Composite, always carrying a stable ID.
type Descriptor interface {
	ID() int64
	Kind() Kind

	isDescriptor()
}

// Markdown is rendered HTML for ordinary prose, with ID derived from source
// offset.
type Markdown struct {
	IDValue int64
	HTML    string
}

func (d Markdown) ID() int64 { return d.IDValue }
func (d Markdown) Kind() Kind { return KindMarkdown }
func (d Markdown) isDescriptor() {}

// CodeFence is a top-level fenced code block, carried as language+content
// rather than rendered HTML so the view can syntax-highlight it itself.
type CodeFence struct {
	IDValue  int64
	Language string
	Content  string
}

func (d CodeFence) ID() int64 { return d.IDValue }
func (d CodeFence) Kind() Kind { return KindCodeFence }
func (d CodeFence) isDescriptor() {}

// EditBlockPlaceholder represents a recognized SEARCH/REPLACE block while
// it streams in, before or after application.
type EditBlockPlaceholder struct {
	IDValue  int64
	Filename string
	Adds     int
	Dels     int
	Changed  bool
	Status   string
}

func (d EditBlockPlaceholder) ID() int64 { return d.IDValue }
func (d EditBlockPlaceholder) Kind() Kind { return KindEditBlockPlaceholder }
func (d EditBlockPlaceholder) isDescriptor() {}

// Composite groups descriptors produced while walking one top-level element
// when more than one child descriptor resulted; its ID is freshly generated
// since composites are synthesized, not parsed.
type Composite struct {
	IDValue  int64
	Children []Descriptor
}

func (d Composite) ID() int64 { return d.IDValue }
func (d Composite) Kind() Kind { return KindComposite }
func (d Composite) isDescriptor() {}
