// Package core defines the pipeline types and interfaces for wpimport.
// Each stage of the import pipeline is a clean, testable interface.
package core

import "context"

// Rendered is a WordPress field that carries server-rendered HTML.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Term is a taxonomy term (category or tag) embedded in a post.
type Term struct {
	ID       int    `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
}

// ImageSize is one rendition of a media item.
type ImageSize struct {
	SourceURL string `json:"source_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// MediaDetails holds the renditions WordPress generated for a media item.
type MediaDetails struct {
	Sizes map[string]ImageSize `json:"sizes"`
}

// Media is an embedded wp:featuredmedia object.
type Media struct {
	ID           int          `json:"id"`
	SourceURL    string       `json:"source_url"`
	MediaDetails MediaDetails `json:"media_details"`
}

// Embedded holds linked resources inlined by the `_embed` query flag.
// Terms is indexed by taxonomy: 0 = categories, 1 = tags.
type Embedded struct {
	FeaturedMedia []Media  `json:"wp:featuredmedia"`
	Terms         [][]Term `json:"wp:term"`
}

// RawPost is a single post as returned by /wp-json/wp/v2/posts.
type RawPost struct {
	ID       int       `json:"id"`
	Date     string    `json:"date"` // ISO8601, site local time
	Slug     string    `json:"slug"`
	Title    Rendered  `json:"title"`
	Content  Rendered  `json:"content"`
	Embedded *Embedded `json:"_embedded,omitempty"`
}

// PostPage is one page of posts plus the pagination headers WordPress sent.
type PostPage struct {
	URL        string
	Page       int
	Posts      []RawPost
	Total      int // X-WP-Total, 0 when absent
	TotalPages int // X-WP-TotalPages, 0 when absent
}

// Post is a transformed post, ready to be rendered.
type Post struct {
	Date          string // YYYY-MM-DD
	Slug          string
	Title         string // title.rendered as sent by the API
	DisplayTitle  string // entity-decoded title for the body
	Permalink     string
	Layout        string
	Categories    []string
	Tags          []string
	FeaturedImage *ImageSize // nil when omitted
	ContentHTML   string     // serialized content tree, not entity-decoded
}

// OutputDocument is the final file for a post. It is not mutated after
// the builder returns it.
type OutputDocument struct {
	Name string // <date>-<slug><ext>
	Data []byte
}

// Fetcher retrieves one page of posts.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (*PostPage, error)
}

// Renderer turns a transformed post into the body of an output file.
type Renderer interface {
	Render(post Post) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".njk", ".md").
	Extension() string
}
