// Package render provides output renderers for the wpimport pipeline.
// This file implements the HTML renderer used for Nunjucks templates.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wpimport/core"
	"golang.org/x/net/html"
)

// Block classes of the post body.
const (
	TitleClass         = "post__title"
	FeaturedImageClass = "post__featured-image"
	ContentClass       = "post__content"
)

// HTMLRenderer writes the post body as three nested blocks: title,
// featured image and content.
type HTMLRenderer struct {
	ext string
}

// NewHTMLRenderer creates an HTMLRenderer. An empty ext defaults to ".njk".
func NewHTMLRenderer(ext string) *HTMLRenderer {
	if ext == "" {
		ext = ".njk"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &HTMLRenderer{ext: ext}
}

// Render builds the body HTML and pretty prints it. The content is
// entity-decoded before it is embedded.
func (r *HTMLRenderer) Render(post core.Post) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "<div class=\"%s\">%s</div>\n", TitleClass, post.DisplayTitle)

	if img := post.FeaturedImage; img != nil {
		fmt.Fprintf(&b, "<div class=\"%s\">\n", FeaturedImageClass)
		fmt.Fprintf(&b,
			"<img src=\"%s\" loading=\"lazy\" alt=\"\" width=\"%d\" height=\"%d\" />\n",
			html.EscapeString(img.SourceURL), img.Width, img.Height,
		)
		b.WriteString("</div>\n")
	}

	fmt.Fprintf(&b, "<div class=\"%s\">\n%s\n</div>\n", ContentClass, html.UnescapeString(post.ContentHTML))

	return []byte(Pretty(b.String())), nil
}

// Extension returns the template extension, e.g. ".njk".
func (r *HTMLRenderer) Extension() string {
	return r.ext
}
