package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/gaurav-prasanna/wpimport/core"
	"github.com/gaurav-prasanna/wpimport/core/fetch"
)

func TestParsePageURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "valid", raw: "https://example.com/wp-json/wp/v2/posts?page=2&per_page=5"},
		{name: "relative", raw: "/wp-json/wp/v2/posts?page=1&per_page=1", wantErr: ErrInvalidURL},
		{name: "empty", raw: "", wantErr: ErrInvalidURL},
		{name: "no page", raw: "https://example.com/wp-json/wp/v2/posts?per_page=1", wantErr: ErrMissingPageParams},
		{name: "no per_page", raw: "https://example.com/wp-json/wp/v2/posts?page=1", wantErr: ErrMissingPageParams},
		{name: "non numeric", raw: "https://example.com/wp-json/wp/v2/posts?page=one&per_page=1", wantErr: ErrInvalidPageParams},
		{name: "zero per_page", raw: "https://example.com/wp-json/wp/v2/posts?page=1&per_page=0", wantErr: ErrInvalidPageParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePageURL(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Page != 2 || p.PerPage != 5 {
				t.Errorf("Page = %d, PerPage = %d", p.Page, p.PerPage)
			}
		})
	}
}

func TestPageURL_StringAndNext(t *testing.T) {
	p, err := ParsePageURL("https://example.com/wp-json/wp/v2/posts?page=1&per_page=10&categories=4")
	if err != nil {
		t.Fatal(err)
	}

	next, err := url.Parse(p.Next().String())
	if err != nil {
		t.Fatal(err)
	}
	q := next.Query()
	if q.Get("page") != "2" || q.Get("per_page") != "10" || q.Get("categories") != "4" {
		t.Errorf("unexpected query: %s", next.RawQuery)
	}
	if !q.Has("_embed") {
		t.Errorf("embed flag missing: %s", next.RawQuery)
	}
	if p.Page != 1 {
		t.Error("Next mutated the receiver")
	}
	if got := p.Origin(); got != "https://example.com" {
		t.Errorf("Origin() = %q", got)
	}
}

func TestSeen(t *testing.T) {
	s := NewSeen()
	if !s.Add(1) || s.Add(1) {
		t.Error("duplicate ID not detected")
	}
	if !s.Add(0) || !s.Add(0) {
		t.Error("zero IDs must always be new")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

// pagedFetcher serves totalPages pages of perPage posts and then reports
// the page as out of range.
type pagedFetcher struct {
	totalPages int
	perPage    int
	headers    bool
	requests   []int
}

func (f *pagedFetcher) FetchPage(_ context.Context, raw string) (*core.PostPage, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	page, _ := strconv.Atoi(u.Query().Get("page"))
	f.requests = append(f.requests, page)

	if page > f.totalPages {
		return nil, &fetch.APIError{URL: raw, StatusCode: 400, Code: "rest_post_invalid_page_number"}
	}

	result := &core.PostPage{URL: raw}
	if f.headers {
		result.TotalPages = f.totalPages
	}
	for i := 0; i < f.perPage; i++ {
		id := (page-1)*f.perPage + i + 1
		result.Posts = append(result.Posts, core.RawPost{ID: id, Slug: fmt.Sprintf("post-%d", id)})
	}
	return result, nil
}

func startURL(t *testing.T) *PageURL {
	t.Helper()
	p, err := ParsePageURL("https://example.com/wp-json/wp/v2/posts?page=1&per_page=2")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestWalk_SinglePage(t *testing.T) {
	f := &pagedFetcher{totalPages: 3, perPage: 2}
	var slugs []string

	stats, err := Walk(context.Background(), startURL(t), f, false, func(_ *core.PostPage, post core.RawPost) error {
		slugs = append(slugs, post.Slug)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(f.requests) != 1 || stats.Pages != 1 || len(slugs) != 2 {
		t.Errorf("requests = %v, stats = %+v, slugs = %v", f.requests, stats, slugs)
	}
}

func TestWalk_LoopUntilOutOfRange(t *testing.T) {
	f := &pagedFetcher{totalPages: 3, perPage: 2}
	var pages []int

	stats, err := Walk(context.Background(), startURL(t), f, true, func(page *core.PostPage, _ core.RawPost) error {
		pages = append(pages, page.Page)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if stats.Pages != 3 || stats.Posts != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if len(f.requests) != 4 {
		t.Errorf("expected 4 requests (last out of range), got %v", f.requests)
	}
	if want := []int{1, 1, 2, 2, 3, 3}; fmt.Sprint(pages) != fmt.Sprint(want) {
		t.Errorf("pages = %v, want %v", pages, want)
	}
}

func TestWalk_LoopStopsAtTotalPages(t *testing.T) {
	f := &pagedFetcher{totalPages: 2, perPage: 2, headers: true}

	stats, err := Walk(context.Background(), startURL(t), f, true, func(*core.PostPage, core.RawPost) error { return nil })
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(f.requests) != 2 || stats.Posts != 4 {
		t.Errorf("requests = %v, stats = %+v", f.requests, stats)
	}
}

func TestWalk_OutOfRangeWithoutLoopFails(t *testing.T) {
	f := &pagedFetcher{totalPages: 0, perPage: 2}

	_, err := Walk(context.Background(), startURL(t), f, false, func(*core.PostPage, core.RawPost) error { return nil })
	if !errors.Is(err, fetch.ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestWalk_VisitErrorStops(t *testing.T) {
	f := &pagedFetcher{totalPages: 3, perPage: 2}
	boom := errors.New("boom")

	stats, err := Walk(context.Background(), startURL(t), f, true, func(*core.PostPage, core.RawPost) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected visit error, got %v", err)
	}
	if stats.Posts != 1 || len(f.requests) != 1 {
		t.Errorf("walk continued after error: stats = %+v, requests = %v", stats, f.requests)
	}
}

func TestWalk_SkipsDuplicates(t *testing.T) {
	f := fetcherFunc(func(_ context.Context, raw string) (*core.PostPage, error) {
		u, _ := url.Parse(raw)
		switch u.Query().Get("page") {
		case "1":
			return &core.PostPage{Posts: []core.RawPost{{ID: 1}, {ID: 2}}}, nil
		case "2":
			return &core.PostPage{Posts: []core.RawPost{{ID: 2}, {ID: 3}}}, nil
		default:
			return &core.PostPage{}, nil
		}
	})

	var ids []int
	stats, err := Walk(context.Background(), startURL(t), f, true, func(_ *core.PostPage, post core.RawPost) error {
		ids = append(ids, post.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if fmt.Sprint(ids) != "[1 2 3]" || stats.Duplicates != 1 || stats.Pages != 3 {
		t.Errorf("ids = %v, stats = %+v", ids, stats)
	}
}

func TestWalk_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !r.URL.Query().Has("_embed") {
			t.Errorf("request without _embed: %s", r.URL)
		}
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(`[{"id": 1, "date": "2023-05-01T10:00:00", "slug": "a"}]`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"rest_post_invalid_page_number","message":"too far"}`))
	}))
	defer srv.Close()

	start, err := ParsePageURL(srv.URL + "/wp-json/wp/v2/posts?page=1&per_page=1")
	if err != nil {
		t.Fatal(err)
	}

	stats, err := Walk(context.Background(), start, fetch.New(), true, func(*core.PostPage, core.RawPost) error { return nil })
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if stats.Pages != 1 || stats.Posts != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

type fetcherFunc func(ctx context.Context, url string) (*core.PostPage, error)

func (f fetcherFunc) FetchPage(ctx context.Context, url string) (*core.PostPage, error) {
	return f(ctx, url)
}
