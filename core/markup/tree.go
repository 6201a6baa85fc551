// Package markup rewrites WordPress post HTML into the site's canonical markup.
//
// A Tree is parsed once per post and owned by the caller for the duration of
// the transformation. Stages mutate it in place by replacing matched nodes in
// their parent's child list, then the caller serializes it with HTML.
package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Canonical class names. They double as markers: markup carrying one of
// them is never matched again by the stage that produced it.
const (
	ImageClass        = "post__image"
	GalleryClass      = "post__gallery"
	GalleryItemClass  = "post__gallery-item"
	GalleryImageClass = "post__gallery-image"
)

// Tree is a parsed post content fragment.
type Tree struct {
	doc *goquery.Document
}

// Parse builds a Tree from an HTML fragment. The fragment is parsed in a
// body context, so leading style, script and comment nodes stay in place.
func Parse(fragment string) (*Tree, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return &Tree{doc: goquery.NewDocumentFromNode(body)}, nil
}

// Root returns the selection holding the fragment's top-level nodes.
func (t *Tree) Root() *goquery.Selection {
	return t.doc.Selection
}

// HTML serializes the fragment. Entities are left encoded.
func (t *Tree) HTML() (string, error) {
	out, err := t.Root().Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return out, nil
}

// Stage is one in-place pass over a Tree. Run reports how many
// constructs it matched.
type Stage struct {
	Name string
	Run  func(t *Tree) int
}

// Stages is the fixed pass order. Galleries go first: their images leave
// with the gallery image class, which the lazy-image pass skips.
var Stages = []Stage{
	{Name: "galleries", Run: func(t *Tree) int { return RewriteGalleries(t).Length() }},
	{Name: "lazy-images", Run: NormalizeLazyImages},
}

// StageResult records what a stage matched.
type StageResult struct {
	Name    string
	Matched int
}

// Transform runs every stage in Stages order.
func (t *Tree) Transform() []StageResult {
	results := make([]StageResult, 0, len(Stages))
	for _, stage := range Stages {
		results = append(results, StageResult{Name: stage.Name, Matched: stage.Run(t)})
	}
	return results
}
