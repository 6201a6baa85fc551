package document

import (
	"errors"
	"fmt"
)

// Transform errors.
var (
	ErrMissingDate          = errors.New("post has no date")
	ErrMissingSlug          = errors.New("post has no slug")
	ErrMissingFeaturedImage = errors.New("post has no embedded full-size featured image")
)

// TransformError reports a post that could not be turned into a document.
// Skip is set when the configured policy says the run should carry on
// without this post.
type TransformError struct {
	PostID int
	Slug   string
	Skip   bool
	Err    error
}

func (e *TransformError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("post %d (%s): %v", e.PostID, e.Slug, e.Err)
	}
	return fmt.Sprintf("post %d: %v", e.PostID, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
