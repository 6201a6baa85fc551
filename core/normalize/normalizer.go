// Package normalize converts rewritten post content into Markdown for the
// Markdown output format.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// MarkdownNormalizer converts post HTML to Markdown using html-to-markdown.
// Relative links and image sources are resolved against Site.
type MarkdownNormalizer struct {
	Site string
}

// New creates a MarkdownNormalizer for the given site origin
// (e.g. "https://www.domain.com"). site may be empty.
func New(site string) *MarkdownNormalizer {
	return &MarkdownNormalizer{Site: strings.TrimSuffix(site, "/")}
}

// Normalize converts an HTML fragment into Markdown. Runs of blank lines
// are collapsed and the result carries no surrounding whitespace.
func (n *MarkdownNormalizer) Normalize(fragment string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if n.Site != "" {
		opts = append(opts, converter.WithDomain(n.Site))
	}

	markdown, err := htmltomarkdown.ConvertString(fragment, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = blankRuns.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}
