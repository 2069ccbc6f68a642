// Package markdown wires a custom goldmark block parser and node renderer
// together, turning streaming markdown source into an HTML-like tree
// carrying placeholder tags for top-level code fences and edit blocks. The
// placeholders keep their payload in data attributes so the component
// parser can flatten the tree without re-rendering anything.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/chainlaunch/editcore/pkg/render/component"
	"github.com/chainlaunch/editcore/pkg/render/ids"
)

// Markdown parses streaming source into both a raw AST and the
// placeholder-tagged HTML string goldmark's renderer emits.
type Markdown struct {
	md goldmark.Markdown
}

// New constructs the flex parser/renderer pair: default goldmark block
// parsers plus the edit-block companion parser, default renderers minus
// the two kinds placeholderRenderer intercepts.
func New() *Markdown {
	blockParsers := append([]util.PrioritizedValue{}, parser.DefaultBlockParsers()...)
	blockParsers = append(blockParsers, util.Prioritized(NewEditBlockParser(), 100))

	p := parser.NewParser(
		parser.WithBlockParsers(blockParsers...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)

	r := renderer.NewRenderer(
		renderer.WithNodeRenderers(
			util.Prioritized(html.NewRenderer(html.WithUnsafe()), 1000),
			util.Prioritized(newPlaceholderRenderer(), 100),
		),
	)

	return &Markdown{md: goldmark.New(goldmark.WithParser(p), goldmark.WithRenderer(r))}
}

// Parse runs source through the flex parser and returns both the AST and
// the whole document's rendered placeholder HTML.
func (m *Markdown) Parse(source []byte) (gast.Node, []byte, error) {
	doc := m.md.Parser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, nil, err
	}
	return doc, buf.Bytes(), nil
}

// ParseElements parses source and renders each top-level block of the
// document separately, pairing the rendered HTML with the block's source
// byte offset. Appending to a streaming document never moves an earlier
// block's offset, so the descriptor IDs component.Parse derives from these
// elements stay stable across re-parses of a growing prefix.
func (m *Markdown) ParseElements(source []byte) ([]component.Element, error) {
	doc := m.md.Parser().Parse(text.NewReader(source))

	var out []component.Element
	prev := -1
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		offset, ok := nodeOffset(c)
		if !ok {
			// Blocks with no text of their own (a thematic break, say)
			// still need a deterministic position.
			offset = prev + 1
		}
		prev = offset

		var buf bytes.Buffer
		if err := m.md.Renderer().Render(&buf, source, c); err != nil {
			return nil, err
		}
		out = append(out, component.Element{Offset: offset, HTML: buf.String()})
	}
	return out, nil
}

// nodeOffset reports the source byte offset of n's first line, descending
// into children for container blocks that carry no lines themselves.
func nodeOffset(n gast.Node) (int, bool) {
	if n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := nodeOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}

// offsetID derives a stable ID from the node's first source segment.
func offsetID(n gast.Node) int64 {
	var offset int
	switch v := n.(type) {
	case *gast.FencedCodeBlock:
		if v.Lines().Len() > 0 {
			offset = v.Lines().At(0).Start
		}
		return ids.FromOffset(offset, ids.KindCodeFence)
	case *EditBlockNode:
		if v.Lines().Len() > 0 {
			offset = v.Lines().At(0).Start
		}
		return ids.FromOffset(offset, ids.KindEditBlock)
	}
	return 0
}
