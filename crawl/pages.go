// Package crawl walks the paginated posts endpoint for wpimport.
// One page is fetched at a time and its posts are handed to the caller in
// API order before the next page is requested.
package crawl

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/wpimport/core"
	"github.com/gaurav-prasanna/wpimport/core/fetch"
)

// VisitFunc handles one post. Returning an error stops the walk.
type VisitFunc func(page *core.PostPage, post core.RawPost) error

// Stats summarizes a walk.
type Stats struct {
	Pages      int
	Posts      int
	Duplicates int
}

// Walk fetches the page at start and visits each post. With loop set it
// keeps requesting the next page until the API reports the page is out of
// range, returns an empty page, or the last page per X-WP-TotalPages has
// been processed. Without loop, an out-of-range page is an error.
func Walk(ctx context.Context, start *PageURL, fetcher core.Fetcher, loop bool, visit VisitFunc) (Stats, error) {
	var stats Stats
	seen := NewSeen()

	for u := start; ; u = u.Next() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		page, err := fetcher.FetchPage(ctx, u.String())
		if err != nil {
			if loop && errors.Is(err, fetch.ErrPageOutOfRange) {
				return stats, nil
			}
			return stats, fmt.Errorf("page %d: %w", u.Page, err)
		}
		page.Page = u.Page
		stats.Pages++

		for _, post := range page.Posts {
			if !seen.Add(post.ID) {
				stats.Duplicates++
				continue
			}
			stats.Posts++
			if err := visit(page, post); err != nil {
				return stats, err
			}
		}

		if !loop || len(page.Posts) == 0 {
			return stats, nil
		}
		if page.TotalPages > 0 && u.Page >= page.TotalPages {
			return stats, nil
		}
	}
}
