package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"library-admin/internal/models"
)

const apiPrefix = "/api/v1"

// Resource exposes the list/get/create/update/delete contract of one entity
// kind mounted at a fixed path.
type Resource[T any] struct {
	client  *Client
	name    string
	path    string
	withGet bool
}

func newResource[T any](c *Client, name, segment string, withGet bool) *Resource[T] {
	return &Resource[T]{
		client:  c,
		name:    name,
		path:    apiPrefix + "/" + segment,
		withGet: withGet,
	}
}

// NewPublishers binds /api/v1/publishers.
func NewPublishers(c *Client) *Resource[models.Publisher] {
	return newResource[models.Publisher](c, "publishers", "publishers", true)
}

// NewCategories binds /api/v1/categories.
func NewCategories(c *Client) *Resource[models.Category] {
	return newResource[models.Category](c, "categories", "categories", true)
}

// NewBooks binds /api/v1/books.
func NewBooks(c *Client) *Resource[models.Book] {
	return newResource[models.Book](c, "books", "books", true)
}

// NewAuthors binds /api/v1/authors. The API has no get-by-id for authors.
func NewAuthors(c *Client) *Resource[models.Author] {
	return newResource[models.Author](c, "authors", "authors", false)
}

// NewBorrowings binds /api/v1/borrows.
func NewBorrowings(c *Client) *Resource[models.Borrowing] {
	return newResource[models.Borrowing](c, "borrowings", "borrows", true)
}

// Name is the resource's human readable plural, used in messages.
func (r *Resource[T]) Name() string {
	return r.name
}

// Path is the collection path relative to the API origin.
func (r *Resource[T]) Path() string {
	return r.path
}

// SupportsGet reports whether the API exposes GET {path}/{id}.
func (r *Resource[T]) SupportsGet() bool {
	return r.withGet
}

func (r *Resource[T]) item(id int) string {
	return r.path + "/" + strconv.Itoa(id)
}

// List fetches the whole collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, "list "+r.name, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one entity by id.
func (r *Resource[T]) Get(ctx context.Context, id int) (T, error) {
	var item T
	if !r.withGet {
		return item, ErrUnsupported
	}
	if err := r.client.do(ctx, "get "+r.name, http.MethodGet, r.item(id), nil, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Create posts a new entity. payload is sent as-is; its id is expected to be 0.
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var created T
	if err := r.client.do(ctx, "create "+r.name, http.MethodPost, r.path, payload, &created); err != nil {
		return created, err
	}
	return created, nil
}

// Update replaces the entity with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int, payload any) (T, error) {
	var updated T
	if err := r.client.do(ctx, "update "+r.name, http.MethodPut, r.item(id), payload, &updated); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes the entity with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int) error {
	return r.client.do(ctx, "delete "+r.name, http.MethodDelete, r.item(id), nil, nil)
}
