// Package markdown renders list files for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	internalstrings "github.com/amonks/mdtodo/internal/strings"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// SafeRender formats markdown text for terminal output. If the renderer
// fails or panics, the input is returned as written.
func SafeRender(width, indent int, input []byte) (out []byte) {
	value := prepare(input)
	if value == "" {
		return nil
	}
	defer func() {
		if recover() != nil {
			out = []byte(indentBlock(value, indent))
		}
	}()
	return Render(width, indent, input)
}

// Render formats markdown text for terminal output.
func Render(width, indent int, input []byte) []byte {
	value := prepare(input)
	if value == "" {
		return nil
	}
	width = max(width, 1)
	indent = max(indent, 0)
	renderWidth := max(width-indent, 1)

	rendered := value
	if r := markdownRenderer(renderWidth); r != nil {
		formatted, err := r.Render(value)
		if err == nil {
			rendered = formatted
		}
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	return []byte(indentBlock(rendered, indent))
}

func prepare(input []byte) string {
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	style.Task.Ticked = "[x] "
	style.Task.Unticked = "[ ] "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

func indentBlock(value string, spaces int) string {
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
