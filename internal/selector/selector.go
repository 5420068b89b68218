package selector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"library-admin/internal/form"
	"library-admin/internal/models"
)

var ErrStaleSelection = errors.New("selected book was not found among the loaded books")

// Option is one dropdown entry.
type Option struct {
	ID    int
	Label string
}

// Options turns a loaded collection into dropdown entries keyed by id.
func Options[T models.Record](items []T, label func(T) string) []Option {
	out := make([]Option, 0, len(items))
	for _, item := range items {
		out = append(out, Option{ID: item.GetID(), Label: label(item)})
	}
	return out
}

// BookFinder looks a book up in an already loaded collection.
type BookFinder interface {
	Find(id int) (models.Book, bool)
}

// BookSnapshots resolves a selected book id against the books currently
// loaded and embeds a copy of that record. Nothing is fetched; an id missing
// from the collection is a stale selection.
func BookSnapshots(books BookFinder) form.Resolver {
	return func(raw string) (any, error) {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrStaleSelection, raw)
		}
		book, ok := books.Find(id)
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrStaleSelection, id)
		}
		return book.Snapshot(), nil
	}
}

// Refresher is a collection that can reload itself.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Source names a collection for error reporting.
type Source struct {
	Name string
	View Refresher
}

// LoadError reports which collection failed to load.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadAll refreshes every source concurrently. A failure does not cancel the
// others, so some collections may be fresh while others are not; every
// failure is returned.
func LoadAll(ctx context.Context, sources ...Source) []*LoadError {
	errs := make([]*LoadError, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			if err := src.View.Refresh(ctx); err != nil {
				errs[i] = &LoadError{Source: src.Name, Err: err}
			}
			return nil
		})
	}
	_ = g.Wait()

	var failed []*LoadError
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return failed
}
