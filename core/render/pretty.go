package render

import (
	"strings"

	"github.com/yosssi/gohtml"
)

// inlineTags stay on the line of the surrounding text.
var inlineTags = []string{
	"a", "abbr", "b", "cite", "code", "del", "em", "i", "ins", "kbd",
	"mark", "q", "s", "small", "span", "strong", "sub", "sup", "time", "u",
}

func init() {
	gohtml.Condense = true
	// WordPress permalinks easily exceed the default of 40.
	gohtml.InlineTagMaxLength = 1024
	for _, tag := range inlineTags {
		gohtml.InlineTags[tag] = true
	}
}

// Pretty indents an HTML fragment one block element per line and ends it
// with a single newline. Inline elements and text stay together, so no
// whitespace is added inside a run of text.
func Pretty(fragment string) string {
	out := strings.TrimSpace(gohtml.Format(fragment))
	if out == "" {
		return ""
	}
	return out + "\n"
}
