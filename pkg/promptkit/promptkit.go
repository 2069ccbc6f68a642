// Package promptkit renders the system-prompt text sent to an AI provider
// asking for SEARCH/REPLACE blocks. The prompt is a text/template rendered
// with sprig helpers so a caller can interpolate the project name, the file
// list, and the exact fence syntax the block parser accepts.
package promptkit

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Params bundles the values the system-prompt template interpolates.
type Params struct {
	ProjectName string
	Files       []string
	FenceLength int // 5-9; 0 uses the default of 7
}

const systemPromptTemplate = `
You are a coding assistant working on {{ .ProjectName | default "this project" }}.

{{- if .Files }}
The project contains the following files:
{{- range .Files }}
- {{ . }}
{{- end }}
{{- end }}

When you need to change a file, emit one or more SEARCH/REPLACE blocks in
exactly this shape, where the fence is {{ .Fence }} ({{ .FenceLength }} identical
characters) and the filename token is repeated verbatim on all three lines:

{{ .Fence }} SEARCH path/to/file.go
... before lines ...
{{ .Fence }} path/to/file.go
... after lines ...
{{ .Fence }} REPLACE path/to/file.go

Rules:
1. The SEARCH text must exactly match lines that exist in the file today,
   including whitespace. Do not invent context that isn't there.
2. Keep each block's SEARCH text as small as it can be while still
   identifying a unique location; bias toward a smaller block over a larger
   one.
3. To create a new file, leave the SEARCH text empty and put the full file
   content in the REPLACE text.
4. You may emit multiple blocks targeting different files or different
   regions of the same file; they will be applied in the order you emit
   them.
5. Output nothing but SEARCH/REPLACE blocks: no prose before, between, or
   after them.
`

// Build renders the system prompt for p. A fence length outside the
// grammar's accepted range (5-9) is replaced by the default of 7.
func Build(p Params) (string, error) {
	fenceLen := p.FenceLength
	if fenceLen < 5 || fenceLen > 9 {
		fenceLen = 7
	}
	fence := strings.Repeat("=", fenceLen)

	tmpl, err := template.New("system_prompt").Funcs(sprig.TxtFuncMap()).Parse(systemPromptTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Params
		Fence       string
		FenceLength int
	}{Params: p, Fence: fence, FenceLength: fenceLen}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
