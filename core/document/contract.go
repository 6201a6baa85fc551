package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// Front-matter contract violations.
var (
	ErrNoFrontMatter    = errors.New("no front matter block")
	ErrMissingTitle     = errors.New("front matter: title is required")
	ErrInvalidDate      = errors.New("front matter: date must be YYYY-MM-DD")
	ErrInvalidPermalink = errors.New("front matter: permalink must end with a slash")
	ErrMissingLayout    = errors.New("front matter: layout is required")
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FrontMatterFields are the keys the site generator reads from a post file.
type FrontMatterFields struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Permalink  string   `yaml:"permalink"`
	Layout     string   `yaml:"layout"`
	Categories []string `yaml:"categories"`
	Tags       []string `yaml:"tags"`
}

// ParseFrontMatter reads the front matter of a generated file and returns
// it with the body that follows.
func ParseFrontMatter(source []byte) (FrontMatterFields, []byte, error) {
	var fields FrontMatterFields

	body, err := frontmatter.MustParse(bytes.NewReader(source), &fields)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return FrontMatterFields{}, nil, ErrNoFrontMatter
		}
		return FrontMatterFields{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fields.Title = strings.TrimSpace(fields.Title)
	return fields, body, nil
}

// Validate checks the fields against what the site generator needs.
func (f FrontMatterFields) Validate() error {
	var errs []error
	if f.Title == "" {
		errs = append(errs, ErrMissingTitle)
	}
	if !dateRegex.MatchString(f.Date) {
		errs = append(errs, ErrInvalidDate)
	}
	if f.Permalink == "" || !strings.HasSuffix(f.Permalink, "/") {
		errs = append(errs, ErrInvalidPermalink)
	}
	if f.Layout == "" {
		errs = append(errs, ErrMissingLayout)
	}
	return errors.Join(errs...)
}

// CheckFile parses and validates the front matter of the file at path.
func CheckFile(path string) (FrontMatterFields, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FrontMatterFields{}, fmt.Errorf("reading %s: %w", path, err)
	}

	fields, _, err := ParseFrontMatter(source)
	if err != nil {
		return FrontMatterFields{}, err
	}
	return fields, fields.Validate()
}
