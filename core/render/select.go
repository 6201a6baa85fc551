package render

import (
	"fmt"

	"github.com/gaurav-prasanna/wpimport/core"
)

// Output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// New returns the renderer for format. ext only applies to the HTML
// renderer, whose output is a template for the site generator. site is the
// origin relative links resolve against in Markdown output.
func New(format, ext, site string) (core.Renderer, error) {
	switch format {
	case "", FormatHTML:
		return NewHTMLRenderer(ext), nil
	case FormatMarkdown:
		return NewMarkdownRenderer(site), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatHTML, FormatMarkdown)
	}
}
