package page

import (
	"github.com/rs/zerolog"

	"library-admin/internal/apiclient"
	"library-admin/internal/form"
	"library-admin/internal/listing"
	"library-admin/internal/models"
	"library-admin/internal/notify"
	"library-admin/internal/selector"
)

// Workspace holds one page per entity kind. Every page owns its collections;
// the Books and Borrowings pages load their own copies of the collections
// their forms select from.
type Workspace struct {
	Publishers *Page[models.Publisher]
	Categories *Page[models.Category]
	Authors    *Page[models.Author]
	Books      *Page[models.Book]
	Borrowings *Page[models.Borrowing]

	// Dropdown sources of the Books and Borrowings forms.
	BookAuthors    *listing.View[models.Author]
	BookPublishers *listing.View[models.Publisher]
	BookCategories *listing.View[models.Category]
	BorrowingBooks *listing.View[models.Book]
}

// NewWorkspace wires pages to the API client.
func NewWorkspace(c *apiclient.Client, sink notify.Sink, log zerolog.Logger) *Workspace {
	publishers := apiclient.NewPublishers(c)
	categories := apiclient.NewCategories(c)
	authors := apiclient.NewAuthors(c)
	books := apiclient.NewBooks(c)
	borrowings := apiclient.NewBorrowings(c)

	ws := &Workspace{
		BookAuthors:    listing.New[models.Author](authors, listing.AuthorOptions()...),
		BookPublishers: listing.New[models.Publisher](publishers, listing.PublisherOptions()...),
		BookCategories: listing.New[models.Category](categories, listing.CategoryOptions()...),
		BorrowingBooks: listing.New[models.Book](books, listing.BookOptions()...),
	}

	ws.Publishers = New[models.Publisher](publishers, form.PublisherSchema,
		listing.New[models.Publisher](publishers, listing.PublisherOptions()...), sink,
		WithLogger[models.Publisher](log))

	ws.Categories = New[models.Category](categories, form.CategorySchema,
		listing.New[models.Category](categories, listing.CategoryOptions()...), sink,
		WithLogger[models.Category](log))

	ws.Authors = New[models.Author](authors, form.AuthorSchema,
		listing.New[models.Author](authors, listing.AuthorOptions()...), sink,
		WithLogger[models.Author](log))

	ws.Books = New[models.Book](books, form.BookSchema,
		listing.New[models.Book](books, listing.BookOptions()...), sink,
		WithLogger[models.Book](log),
		WithDependencies[models.Book](
			selector.Source{Name: authors.Name(), View: ws.BookAuthors},
			selector.Source{Name: publishers.Name(), View: ws.BookPublishers},
			selector.Source{Name: categories.Name(), View: ws.BookCategories},
		))

	ws.Borrowings = New[models.Borrowing](borrowings, form.BorrowingSchema,
		listing.New[models.Borrowing](borrowings, listing.BorrowingOptions()...), sink,
		WithLogger[models.Borrowing](log),
		WithDependencies[models.Borrowing](selector.Source{Name: books.Name(), View: ws.BorrowingBooks}),
		WithResolver[models.Borrowing]("bookId", selector.BookSnapshots(ws.BorrowingBooks)))

	return ws
}
