// parse.go walks the rendered HTML of each top-level element the markdown
// renderer produced, buffering ordinary HTML between placeholder tags into
// Markdown descriptors and turning each placeholder tag into its
// corresponding CodeFence or EditBlockPlaceholder descriptor. Operating on
// the rendered placeholder markup (rather than re-walking the goldmark AST)
// keeps this package decoupled from goldmark's node types; the placeholder
// tags are a fixed, self-describing wire format between the two stages.
package component

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/chainlaunch/editcore/pkg/render/ids"
)

// Element is one top-level block of rendered output fed to Parse: its
// placeholder-tagged HTML and the source byte offset its descriptors'
// stable IDs derive from.
type Element struct {
	Offset int
	HTML   string
}

var placeholderRe = regexp.MustCompile(
	`(?s)<div data-id="(\d+)" data-kind="(code_fence|edit_block)"((?:\s+data-[\w-]+="[^"]*")*)></div>\n?`,
)
var attrRe = regexp.MustCompile(`data-([\w-]+)="([^"]*)"`)

// Parse turns rendered top-level elements into an ordered descriptor list,
// one descriptor per element: prose becomes a Markdown descriptor keyed by
// the element's source offset, a placeholder becomes its typed descriptor,
// and an element that produced more than one descriptor is wrapped in a
// Composite with a freshly generated ID. Zero elements yield nil.
func Parse(elements []Element, counter *ids.Counter) []Descriptor {
	var out []Descriptor
	for _, el := range elements {
		switch ds := parseElement(el); len(ds) {
		case 0:
		case 1:
			out = append(out, ds[0])
		default:
			out = append(out, Composite{IDValue: counter.Next(), Children: ds})
		}
	}
	return out
}

// parseElement splits one element's HTML into descriptors. Markdown chunk
// IDs are derived from the element's source offset plus the chunk's local
// position, so re-parsing an unchanged element reproduces the same IDs.
func parseElement(el Element) []Descriptor {
	var out []Descriptor
	var buf strings.Builder
	bufStart := 0

	flush := func() {
		if strings.TrimSpace(buf.String()) == "" {
			buf.Reset()
			return
		}
		out = append(out, Markdown{
			IDValue: ids.FromOffset(el.Offset+bufStart, ids.KindMarkdown),
			HTML:    buf.String(),
		})
		buf.Reset()
	}

	pos := 0
	matches := placeholderRe.FindAllStringSubmatchIndex(el.HTML, -1)
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > pos {
			if buf.Len() == 0 {
				bufStart = pos
			}
			buf.WriteString(el.HTML[pos:start])
		}
		flush()

		idStr := el.HTML[m[2]:m[3]]
		kind := el.HTML[m[4]:m[5]]
		attrsRaw := ""
		if m[6] >= 0 {
			attrsRaw = el.HTML[m[6]:m[7]]
		}
		attrs := map[string]string{}
		for _, am := range attrRe.FindAllStringSubmatch(attrsRaw, -1) {
			attrs[am[1]] = html.UnescapeString(am[2])
		}

		id, _ := strconv.ParseInt(idStr, 10, 64)
		switch kind {
		case "code_fence":
			out = append(out, CodeFence{
				IDValue:  id,
				Language: attrs["lang"],
				Content:  attrs["content"],
			})
		case "edit_block":
			out = append(out, EditBlockPlaceholder{
				IDValue:  id,
				Filename: attrs["file"],
				Adds:     atoiSafe(attrs["adds"]),
				Dels:     atoiSafe(attrs["dels"]),
				Changed:  attrs["changed"] == "true",
				Status:   attrs["status"],
			})
		}
		pos = end
	}

	if pos < len(el.HTML) {
		if buf.Len() == 0 {
			bufStart = pos
		}
		buf.WriteString(el.HTML[pos:])
	}
	flush()

	return out
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
