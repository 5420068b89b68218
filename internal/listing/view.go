package listing

import (
	"context"
	"strings"
	"sync"

	"library-admin/internal/models"
)

// Lister fetches a whole collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Option configures a View.
type Option[T models.Record] func(*View[T])

// FilterOn sets the display field the filter term is matched against.
func FilterOn[T models.Record](field func(T) string) Option[T] {
	return func(v *View[T]) {
		v.field = field
	}
}

// Hide drops rows for which hidden returns true, whatever the filter term.
func Hide[T models.Record](hidden func(T) bool) Option[T] {
	return func(v *View[T]) {
		v.hidden = append(v.hidden, hidden)
	}
}

// View owns the last fetched collection of one entity kind. A successful
// Refresh replaces it wholesale; a failed one leaves it untouched.
type View[T models.Record] struct {
	mu     sync.RWMutex
	lister Lister[T]
	items  []T
	loaded bool
	term   string
	field  func(T) string
	hidden []func(T) bool
}

// New creates a view fed by lister.
func New[T models.Record](lister Lister[T], opts ...Option[T]) *View[T] {
	v := &View[T]{lister: lister}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Refresh fetches the collection and replaces the held one on success.
func (v *View[T]) Refresh(ctx context.Context) error {
	items, err := v.lister.List(ctx)
	if err != nil {
		return err
	}
	v.Replace(items)
	return nil
}

// Replace swaps in a new collection.
func (v *View[T]) Replace(items []T) {
	v.mu.Lock()
	v.items = items
	v.loaded = true
	v.mu.Unlock()
}

// Loaded reports whether any fetch has succeeded yet.
func (v *View[T]) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

// SetFilter stores the search term. It is applied on every Rows call.
func (v *View[T]) SetFilter(term string) {
	v.mu.Lock()
	v.term = term
	v.mu.Unlock()
}

// Filter returns the current search term.
func (v *View[T]) Filter() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.term
}

// Items returns the unfiltered collection.
func (v *View[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Rows returns the visible rows: hidden rows removed, then rows whose
// display field contains the term, ignoring case.
func (v *View[T]) Rows() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Apply(v.items, v.term, v.field, v.hidden...)
}

// Find returns the loaded item with the given id.
func (v *View[T]) Find(id int) (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, item := range v.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Len is the size of the unfiltered collection.
func (v *View[T]) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

// Apply is the pure filter behind Rows.
func Apply[T any](items []T, term string, field func(T) string, hidden ...func(T) bool) []T {
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, h := range hidden {
			if h(item) {
				continue next
			}
		}
		if needle != "" && field != nil && !strings.Contains(strings.ToLower(field(item)), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}
