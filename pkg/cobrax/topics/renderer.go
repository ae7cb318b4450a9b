package topics

import "github.com/charmbracelet/glamour"

// Renderer formats topic content for display. format is the file extension
// of the topic, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	Style string // "auto", a glamour style name ("dark", "light", "notty") or a style file path
	Width int    // word wrap width, 0 leaves glamour's default
}

// NewGlamourRenderer creates a renderer that detects the terminal style
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// NewGlamourRendererFor creates a renderer for colored or plain output
func NewGlamourRendererFor(color bool) *GlamourRenderer {
	if !color {
		return &GlamourRenderer{Style: "notty"}
	}
	return NewGlamourRenderer()
}

// Render renders markdown and returns other formats unchanged. Rendering
// errors fall back to the raw content.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
