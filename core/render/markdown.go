// Package render — Markdown renderer.
// Converts the transformed post content into Markdown for generators that
// read .md sources.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wpimport/core"
	"github.com/gaurav-prasanna/wpimport/core/normalize"
)

// MarkdownRenderer writes the title as a heading, the featured image as a
// Markdown image, and the content converted to Markdown.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer. Relative URLs in the
// content resolve against site, which may be empty.
func NewMarkdownRenderer(site string) *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New(site)}
}

// Render converts the post body to Markdown.
func (r *MarkdownRenderer) Render(post core.Post) ([]byte, error) {
	content, err := r.normalizer.Normalize(post.ContentHTML)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", post.DisplayTitle)
	if img := post.FeaturedImage; img != nil {
		fmt.Fprintf(&b, "![](%s)\n\n", img.SourceURL)
	}
	b.WriteString(content)
	b.WriteString("\n")

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
