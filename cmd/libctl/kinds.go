package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"library-admin/internal/handlers"
	"library-admin/internal/models"
	"library-admin/internal/page"
)

var errUnknownKind = errors.New("unknown kind")

var kindNames = []string{"publishers", "categories", "books", "authors", "borrowings"}

// kind is a page with its type parameter erased so commands can pick one
// by name.
type kind interface {
	Mount(ctx context.Context) error
	SetFilter(term string)
	SetField(name, value string) error
	Edit(ctx context.Context, id int) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context, id int, confirm page.Confirmer) error
	Print(w io.Writer) error
}

type entityKind[T models.Record] struct {
	*page.Page[T]
	columns []handlers.Column[T]
}

func newKind[T models.Record](ws *page.Workspace, e handlers.Entity[T]) kind {
	return &entityKind[T]{Page: e.Page(ws), columns: e.Columns}
}

func (k *entityKind[T]) Submit(ctx context.Context) error {
	_, err := k.Page.Submit(ctx)
	return err
}

// Print writes the visible rows as an aligned table.
func (k *entityKind[T]) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"ID"}
	for _, c := range k.columns {
		header = append(header, strings.ToUpper(c.Title))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, record := range k.State().Rows {
		cells := []string{fmt.Sprint(record.GetID())}
		for _, c := range k.columns {
			cells = append(cells, c.Value(record))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func (c *cli) kind(name string) (kind, error) {
	switch strings.ToLower(name) {
	case "publishers", "publisher":
		return newKind(c.ws, handlers.PublisherEntity), nil
	case "categories", "category":
		return newKind(c.ws, handlers.CategoryEntity), nil
	case "books", "book":
		return newKind(c.ws, handlers.BookEntity), nil
	case "authors", "author":
		return newKind(c.ws, handlers.AuthorEntity), nil
	case "borrowings", "borrowing":
		return newKind(c.ws, handlers.BorrowingEntity), nil
	}
	return nil, fmt.Errorf("%w %q, want one of: %s", errUnknownKind, name, strings.Join(kindNames, ", "))
}
