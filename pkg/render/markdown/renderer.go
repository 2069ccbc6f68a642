// renderer.go holds the goldmark renderer.NodeRenderer that turns fenced
// code blocks and EditBlockNodes into placeholder HTML tags instead of
// syntax-highlighted output.
package markdown

import (
	"fmt"

	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// placeholderRenderer replaces goldmark's default HTML renderer only for the
// two node kinds the Edit-Block Engine cares about; every other node kind
// falls back to goldmark's built-in html.Renderer, registered at a lower
// priority so it still runs for everything this renderer doesn't claim.
type placeholderRenderer struct {
	html.Config
}

func newPlaceholderRenderer() renderer.NodeRenderer {
	return &placeholderRenderer{Config: html.NewConfig()}
}

func (r *placeholderRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(editBlockKind, r.renderEditBlock)
}

// renderFencedCodeBlock emits a placeholder tag for a top-level fenced
// code block only (direct child of the document); fences nested inside a
// list item or blockquote are prose context and fall through to ordinary
// <pre><code> rendering.
func (r *placeholderRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	fence := n.(*gast.FencedCodeBlock)

	lang := ""
	if fence.Info != nil {
		lang = string(fence.Info.Segment.Value(source))
	}

	if fence.Parent() == nil || fence.Parent().Kind() != gast.KindDocument {
		return r.renderPlainFence(w, source, fence, lang)
	}

	var content []byte
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content = append(content, seg.Value(source)...)
	}

	id := offsetID(fence)
	fmt.Fprintf(w, `<div data-id="%d" data-kind="code_fence" data-lang="%s" data-content="%s"></div>`+"\n",
		id, util.EscapeHTML([]byte(lang)), util.EscapeHTML(content))
	return gast.WalkSkipChildren, nil
}

func (r *placeholderRenderer) renderPlainFence(w util.BufWriter, source []byte, fence *gast.FencedCodeBlock, lang string) (gast.WalkStatus, error) {
	_, _ = w.WriteString(`<pre><code class="language-`)
	_, _ = w.Write(util.EscapeHTML([]byte(lang)))
	_, _ = w.WriteString("\">")
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(seg.Value(source)))
	}
	_, _ = w.WriteString("</code></pre>\n")
	return gast.WalkSkipChildren, nil
}

// renderEditBlock emits a placeholder tag for a recognized SEARCH/REPLACE
// block, carrying the fields the view needs to draw a diff summary without
// re-parsing the block text itself.
func (r *placeholderRenderer) renderEditBlock(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	block := n.(*EditBlockNode)
	id := offsetID(block)
	fmt.Fprintf(w, `<div data-id="%d" data-kind="edit_block" data-file="%s" data-adds="%d" data-dels="%d" data-changed="%t" data-status="%s"></div>`+"\n",
		id, util.EscapeHTML([]byte(block.Filename)), block.Adds, block.Dels, block.Changed, util.EscapeHTML([]byte(block.Status)))
	return gast.WalkSkipChildren, nil
}
