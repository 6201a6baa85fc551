package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// AdaptImage returns the canonical tag for img:
//
//	<img class="C" src="S" loading="lazy" alt="A" width="W" height="H" />
//
// The query string is stripped from src. Missing attributes become empty
// values. img is not modified.
func AdaptImage(img *goquery.Selection, class string) string {
	src := StripQuery(img.AttrOr("src", ""))
	alt := img.AttrOr("alt", "")
	width := img.AttrOr("width", "")
	height := img.AttrOr("height", "")

	return fmt.Sprintf(
		`<img class="%s" src="%s" loading="lazy" alt="%s" width="%s" height="%s" />`,
		html.EscapeString(class),
		html.EscapeString(src),
		html.EscapeString(alt),
		html.EscapeString(width),
		html.EscapeString(height),
	)
}

// StripQuery drops everything from the first "?" on.
func StripQuery(src string) string {
	before, _, _ := strings.Cut(src, "?")
	return before
}
