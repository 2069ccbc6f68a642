// editblock.go holds a goldmark parser.BlockParser recognizing the same
// SEARCH/REPLACE fence grammar pkg/editcore/block parses from completed
// model text, but incrementally, line by line, through the BlockParser
// Open/Continue/Close lifecycle.
package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// editBlockKind is the ast.NodeKind for an EditBlockNode.
var editBlockKind = ast.NewNodeKind("EditBlock")

// EditBlockNode is the AST node a recognized SEARCH/REPLACE block parses
// into; it carries the fields the placeholder renderer emits as data
// attributes (data-file, data-adds, data-dels, data-status).
type EditBlockNode struct {
	ast.BaseBlock
	Filename string
	Adds     int
	Dels     int
	Status   string
	// Changed reports whether the accumulated before/after text actually
	// differs; a block whose SEARCH and REPLACE bodies are byte-identical
	// (a no-op edit some models emit when "confirming" a region) renders
	// data-changed="false" so the view doesn't flag it as a pending diff.
	Changed bool

	state  editBlockState
	before strings.Builder
	after  strings.Builder
}

type editBlockState int

const (
	stateBefore editBlockState = iota
	stateAfter
	stateDone
)

func (n *EditBlockNode) Kind() ast.NodeKind { return editBlockKind }
func (n *EditBlockNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Filename": n.Filename,
	}, nil)
}

var editHeadRe = regexp.MustCompile(`^(.)\1{4,8}\s*SEARCH\s+(.+?)\s*$`)
var editDividerRe = regexp.MustCompile(`^(.)\1{4,8}\s*(.+?)\s*$`)
var editReplaceRe = regexp.MustCompile(`^(.)\1{4,8}\s*REPLACE\s+(.+?)\s*$`)

// editBlockParser implements goldmark's parser.BlockParser.
type editBlockParser struct{}

// NewEditBlockParser returns the BlockParser to register alongside the
// fenced-code placeholder renderer.
func NewEditBlockParser() parser.BlockParser {
	return &editBlockParser{}
}

func (p *editBlockParser) Trigger() []byte {
	// Fence characters vary (see pkg/editcore/block), so this parser must
	// inspect every line; returning nil makes goldmark call Open for every
	// line rather than gating on a fixed first byte.
	return nil
}

func (p *editBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	trimmed := strings.TrimLeft(string(line), " \t")
	m := editHeadRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, parser.NoChildren
	}

	node := &EditBlockNode{Filename: m[2], Status: "pending", state: stateBefore}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *editBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*EditBlockNode)
	if n.state == stateDone {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	trimmed := strings.TrimLeft(string(line), " \t")

	switch n.state {
	case stateBefore:
		if m := editDividerRe.FindStringSubmatch(trimmed); m != nil && m[2] == n.Filename {
			n.state = stateAfter
			n.Lines().Append(segment)
			reader.Advance(segment.Len() - 1)
			return parser.Continue | parser.NoChildren
		}
		n.Dels++
		n.before.WriteString(string(line))
	case stateAfter:
		if m := editReplaceRe.FindStringSubmatch(trimmed); m != nil && m[2] == n.Filename {
			n.state = stateDone
			n.Lines().Append(segment)
			reader.Advance(segment.Len() - 1)
			return parser.Close
		}
		n.Adds++
		n.after.WriteString(string(line))
	}

	n.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *editBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	n := node.(*EditBlockNode)
	if n.state != stateDone {
		// Unterminated at end of input. Rendering still proceeds; the
		// placeholder just reports the block as incomplete.
		n.Status = "incomplete"
	} else {
		n.Status = "parsed"
	}
	n.Changed = n.before.String() != n.after.String()
}

func (p *editBlockParser) CanInterruptParagraph() bool { return true }
func (p *editBlockParser) CanAcceptIndentedLine() bool { return true }
