package invoiceprint

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// noteRenderer turns brand notes written in Markdown into HTML.
// Raw HTML in notes is not rendered (goldmark's default, no WithUnsafe).
type noteRenderer struct {
	md goldmark.Markdown
}

func newNoteRenderer() *noteRenderer {
	return &noteRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithXHTML(),
			),
		),
	}
}

// Render converts a note to HTML. An empty note renders to nothing.
func (n *noteRenderer) Render(note string) (template.HTML, error) {
	if strings.TrimSpace(note) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := n.md.Convert([]byte(note), &buf); err != nil {
		return "", fmt.Errorf("%w: brand note: %v", ErrTemplateRender, err)
	}
	// #nosec G203 -- goldmark escapes raw HTML without WithUnsafe
	return template.HTML(buf.String()), nil
}
