// Package output handles writing generated post files.
// Every post maps to its own file, so writes never contend and can run
// alongside the fetch loop.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gaurav-prasanna/wpimport/core"
	"golang.org/x/sync/errgroup"
)

// Writer writes documents to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores doc under the output directory and returns its path.
func (w *Writer) Write(doc *core.OutputDocument) (string, error) {
	name := filepath.Base(doc.Name)
	if name != doc.Name || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", doc.Name)
	}

	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, doc.Data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Result reports the outcome of one asynchronous write.
type Result struct {
	Name string
	Path string
	Err  error
}

// AsyncWriter runs writes in the background, at most limit at a time.
// A failed write is reported through the callback and counted; it never
// stops other writes.
type AsyncWriter struct {
	writer   *Writer
	group    errgroup.Group
	onResult func(Result)
	failed   atomic.Int64
	written  atomic.Int64
}

// NewAsync wraps w. onResult is called from the writing goroutine and must
// be safe for concurrent use; it may be nil.
func NewAsync(w *Writer, limit int, onResult func(Result)) *AsyncWriter {
	if limit <= 0 {
		limit = 4
	}
	a := &AsyncWriter{writer: w, onResult: onResult}
	a.group.SetLimit(limit)
	return a
}

// Submit queues doc for writing. It blocks only while limit writes are
// already in flight.
func (a *AsyncWriter) Submit(doc *core.OutputDocument) {
	a.group.Go(func() error {
		path, err := a.writer.Write(doc)
		if err != nil {
			a.failed.Add(1)
		} else {
			a.written.Add(1)
		}
		if a.onResult != nil {
			a.onResult(Result{Name: doc.Name, Path: path, Err: err})
		}
		return nil
	})
}

// Wait blocks until every submitted write has finished and returns the
// number of files written and the number of failures.
func (a *AsyncWriter) Wait() (written, failed int) {
	_ = a.group.Wait()
	return int(a.written.Load()), int(a.failed.Load())
}
