// Package taxonomy formats category and tag slugs for the front-matter block.
package taxonomy

import (
	"strings"

	"github.com/gaurav-prasanna/wpimport/core"
)

// Format renders slugs as a YAML block sequence fragment. The result starts
// with a newline and has one "- slug" line per term, with no trailing
// newline. An empty list yields "". The first argument names the list at
// call sites, e.g. Format("tags", slugs), and does not affect the output.
func Format(_ string, slugs []string) string {
	if len(slugs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, slug := range slugs {
		b.WriteString("\n- ")
		b.WriteString(slug)
	}
	return b.String()
}

// Slugs returns the slug of every term, in API order.
func Slugs(terms []core.Term) []string {
	if len(terms) == 0 {
		return nil
	}
	slugs := make([]string, 0, len(terms))
	for _, t := range terms {
		slugs = append(slugs, t.Slug)
	}
	return slugs
}

// FromEmbedded returns the slugs of the taxonomy at index (0 = categories,
// 1 = tags). Missing embeds or taxonomies yield nil.
func FromEmbedded(embedded *core.Embedded, index int) []string {
	if embedded == nil || index < 0 || index >= len(embedded.Terms) {
		return nil
	}
	return Slugs(embedded.Terms[index])
}
