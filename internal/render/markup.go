package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markup converts body markup into an HTML fragment. Implementations must be
// deterministic and side-effect-free for a given input.
type Markup interface {
	Convert(src []byte) ([]byte, error)
}

// GoldmarkConverter is the default Markup implementation, backed by Goldmark
// with GFM extensions. Raw HTML is allowed since blog bodies embed it freely.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmark creates the default Markdown converter.
func NewGoldmark() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Convert renders Markdown into an HTML fragment.
func (g *GoldmarkConverter) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
