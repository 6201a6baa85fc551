// Package document turns raw WordPress posts into site source files: YAML
// front matter followed by a rendered body.
package document

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wpimport/core"
	"github.com/gaurav-prasanna/wpimport/core/markup"
	"github.com/gaurav-prasanna/wpimport/core/taxonomy"
	"golang.org/x/net/html"
)

// moreMarker is the read-more comment WordPress leaves in rendered content.
const moreMarker = "<!--more-->"

// FeaturedImagePolicy decides what happens to a post without a featured image.
type FeaturedImagePolicy string

const (
	// FeaturedImageAbort fails the post and, through the caller, the run.
	FeaturedImageAbort FeaturedImagePolicy = "abort"
	// FeaturedImageSkip drops the post and lets the run continue.
	FeaturedImageSkip FeaturedImagePolicy = "skip"
	// FeaturedImageOmit writes the post without the featured image block.
	FeaturedImageOmit FeaturedImagePolicy = "omit"
)

// ParseFeaturedImagePolicy validates a policy name. Empty means abort.
func ParseFeaturedImagePolicy(s string) (FeaturedImagePolicy, error) {
	switch p := FeaturedImagePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return FeaturedImageAbort, nil
	case FeaturedImageAbort, FeaturedImageSkip, FeaturedImageOmit:
		return p, nil
	default:
		return "", fmt.Errorf("unknown featured image policy %q (want abort, skip or omit)", s)
	}
}

// Options configures the front matter and the missing-image policy.
type Options struct {
	PermalinkPrefix string // default "blog/"
	Layout          string // default "post.njk"
	FeaturedImage   FeaturedImagePolicy
}

// Builder assembles output documents. It is safe for sequential reuse
// across posts; no state crosses post boundaries.
type Builder struct {
	renderer core.Renderer
	opts     Options
}

// NewBuilder creates a Builder rendering bodies with renderer.
func NewBuilder(renderer core.Renderer, opts Options) *Builder {
	if opts.PermalinkPrefix == "" {
		opts.PermalinkPrefix = "blog/"
	}
	if opts.Layout == "" {
		opts.Layout = "post.njk"
	}
	if opts.FeaturedImage == "" {
		opts.FeaturedImage = FeaturedImageAbort
	}
	return &Builder{renderer: renderer, opts: opts}
}

// Extension returns the extension of the files the builder produces.
func (b *Builder) Extension() string {
	return b.renderer.Extension()
}

// Build transforms raw and renders the final document.
func (b *Builder) Build(raw core.RawPost) (*core.OutputDocument, error) {
	post, err := b.Transform(raw)
	if err != nil {
		return nil, err
	}

	body, err := b.renderer.Render(post)
	if err != nil {
		return nil, &TransformError{PostID: raw.ID, Slug: raw.Slug, Err: fmt.Errorf("render: %w", err)}
	}

	var data strings.Builder
	data.WriteString(FrontMatter(post))
	data.WriteString("\n")
	data.Write(body)

	return &core.OutputDocument{
		Name: FileName(post.Date, post.Slug, b.renderer.Extension()),
		Data: []byte(data.String()),
	}, nil
}

// Transform derives the renderer-ready post from raw. Content markup is
// rewritten through every markup stage in order.
func (b *Builder) Transform(raw core.RawPost) (core.Post, error) {
	fail := func(err error, skip bool) (core.Post, error) {
		return core.Post{}, &TransformError{PostID: raw.ID, Slug: raw.Slug, Skip: skip, Err: err}
	}

	if raw.Date == "" {
		return fail(ErrMissingDate, false)
	}
	if raw.Slug == "" {
		return fail(ErrMissingSlug, false)
	}

	featured := FeaturedImage(raw.Embedded)
	if featured == nil {
		switch b.opts.FeaturedImage {
		case FeaturedImageSkip:
			return fail(ErrMissingFeaturedImage, true)
		case FeaturedImageAbort:
			return fail(ErrMissingFeaturedImage, false)
		}
	}

	tree, err := markup.Parse(strings.ReplaceAll(raw.Content.Rendered, moreMarker, ""))
	if err != nil {
		return fail(err, false)
	}
	tree.Transform()
	content, err := tree.HTML()
	if err != nil {
		return fail(err, false)
	}

	return core.Post{
		Date:          DateOnly(raw.Date),
		Slug:          raw.Slug,
		Title:         raw.Title.Rendered,
		DisplayTitle:  html.UnescapeString(raw.Title.Rendered),
		Permalink:     b.opts.PermalinkPrefix + raw.Slug + "/",
		Layout:        b.opts.Layout,
		Categories:    taxonomy.FromEmbedded(raw.Embedded, 0),
		Tags:          taxonomy.FromEmbedded(raw.Embedded, 1),
		FeaturedImage: featured,
		ContentHTML:   content,
	}, nil
}

// FeaturedImage returns the full-size rendition of the first embedded
// featured media item, or nil when there is none.
func FeaturedImage(embedded *core.Embedded) *core.ImageSize {
	if embedded == nil || len(embedded.FeaturedMedia) == 0 {
		return nil
	}
	full, ok := embedded.FeaturedMedia[0].MediaDetails.Sizes["full"]
	if !ok || full.SourceURL == "" {
		return nil
	}
	return &full
}

// DateOnly returns the part of an ISO8601 timestamp before the "T".
func DateOnly(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}

// FileName returns "<date>-<slug><ext>".
func FileName(date, slug, ext string) string {
	return date + "-" + slug + ext
}

// FrontMatter renders the metadata block read by the site generator,
// including both "---" delimiters and a trailing newline.
func FrontMatter(post core.Post) string {
	title := strings.Join(strings.Fields(post.Title), " ")

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: >\n    %s\n", title)
	fmt.Fprintf(&b, "date: %s\n", post.Date)
	fmt.Fprintf(&b, "permalink: %s\n", post.Permalink)
	fmt.Fprintf(&b, "layout: %s\n", post.Layout)
	fmt.Fprintf(&b, "categories: %s\n", taxonomy.Format("categories", post.Categories))
	fmt.Fprintf(&b, "tags: %s\n", taxonomy.Format("tags", post.Tags))
	b.WriteString("---\n")
	return b.String()
}
