// Package crawl — page URL rules.
// Validates the posts endpoint URL and derives the URL of each page.
package crawl

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// embedParam asks WordPress to inline linked resources (media, terms).
const embedParam = "_embed"

// URL validation errors.
var (
	ErrInvalidURL        = errors.New("url must include scheme and host, e.g. https://example.com/wp-json/wp/v2/posts?page=1&per_page=10")
	ErrMissingPageParams = errors.New("'page' and 'per_page' query params are required")
	ErrInvalidPageParams = errors.New("'page' and 'per_page' must be positive integers")
)

// PageURL is a posts endpoint URL positioned on one page.
type PageURL struct {
	base    *url.URL
	Page    int
	PerPage int
}

// ParsePageURL validates raw and returns it positioned on its own page.
// The page and per_page query params must be present and numeric.
func ParsePageURL(raw string) (*PageURL, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidURL, raw)
	}

	query := parsed.Query()
	pageStr, perPageStr := query.Get("page"), query.Get("per_page")
	if pageStr == "" || perPageStr == "" {
		return nil, fmt.Errorf("%w; page: %q, per_page: %q", ErrMissingPageParams, pageStr, perPageStr)
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return nil, fmt.Errorf("%w; page: %q", ErrInvalidPageParams, pageStr)
	}
	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		return nil, fmt.Errorf("%w; per_page: %q", ErrInvalidPageParams, perPageStr)
	}

	return &PageURL{base: parsed, Page: page, PerPage: perPage}, nil
}

// String returns the request URL: the original URL with page set and the
// embed flag appended.
func (p *PageURL) String() string {
	u := *p.base
	query := u.Query()
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("per_page", strconv.Itoa(p.PerPage))
	if !query.Has(embedParam) {
		query.Set(embedParam, "")
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// Next returns the URL of the following page.
func (p *PageURL) Next() *PageURL {
	return &PageURL{base: p.base, Page: p.Page + 1, PerPage: p.PerPage}
}

// Origin returns the scheme and host of the site, e.g.
// "https://www.domain.com".
func (p *PageURL) Origin() string {
	return p.base.Scheme + "://" + p.base.Host
}
