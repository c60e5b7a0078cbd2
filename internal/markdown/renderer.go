package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown-authored blog bodies into stored HTML. It is
// stateless, so a single instance can be shared across requests.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds a renderer with GFM extensions, auto heading ids, and
// raw HTML passthrough. Admin authors are trusted; sanitisation happens at
// the editing surface, not here.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts markdown source into HTML.
func (r *Renderer) Render(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}
