package handlers

import (
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"library-admin/internal/form"
	"library-admin/internal/models"
	"library-admin/internal/page"
	"library-admin/internal/selector"
)

var PublisherEntity = Entity[models.Publisher]{
	Title:       "Publishers",
	Path:        "/publishers",
	FilterLabel: "name",
	Schema:      form.PublisherSchema,
	Page:        func(ws *page.Workspace) *page.Page[models.Publisher] { return ws.Publishers },
	Columns: []Column[models.Publisher]{
		{Title: "Name", Value: func(p models.Publisher) string { return p.Name }},
		{Title: "Address", Value: func(p models.Publisher) string { return p.Address }},
		{Title: "Established", Value: func(p models.Publisher) string { return strconv.Itoa(p.EstablishmentYear) }},
	},
	Label: func(p models.Publisher) string { return p.Name },
}

var CategoryEntity = Entity[models.Category]{
	Title:       "Categories",
	Path:        "/categories",
	FilterLabel: "name",
	Schema:      form.CategorySchema,
	Page:        func(ws *page.Workspace) *page.Page[models.Category] { return ws.Categories },
	Columns: []Column[models.Category]{
		{Title: "Name", Value: func(c models.Category) string { return c.Name }},
		{Title: "Description", Value: func(c models.Category) string { return c.Description }},
	},
	Label: func(c models.Category) string { return c.Name },
}

var AuthorEntity = Entity[models.Author]{
	Title:       "Authors",
	Path:        "/authors",
	FilterLabel: "name",
	Schema:      form.AuthorSchema,
	Page:        func(ws *page.Workspace) *page.Page[models.Author] { return ws.Authors },
	Columns: []Column[models.Author]{
		{Title: "Name", Value: func(a models.Author) string { return a.Name }},
		{Title: "Birth date", Value: func(a models.Author) string { return a.BirthDate }},
		{Title: "Country", Value: func(a models.Author) string { return a.Country }},
	},
	Label: func(a models.Author) string { return a.Name },
}

var BookEntity = Entity[models.Book]{
	Title:       "Books",
	Path:        "/books",
	FilterLabel: "name",
	Schema:      form.BookSchema,
	Page:        func(ws *page.Workspace) *page.Page[models.Book] { return ws.Books },
	Columns: []Column[models.Book]{
		{Title: "Name", Value: func(b models.Book) string { return b.Name }},
		{Title: "Publication year", Value: func(b models.Book) string { return strconv.Itoa(b.PublicationYear) }},
		{Title: "Stock", Value: func(b models.Book) string { return strconv.Itoa(b.Stock) }},
		{Title: "Available", Value: func(b models.Book) string { return yesNo(b.IsAvailable()) }},
		{Title: "Author", Value: models.Book.AuthorName},
		{Title: "Publisher", Value: models.Book.PublisherName},
		{Title: "Category", Value: models.Book.CategoryName},
	},
	Label: func(b models.Book) string { return b.Name },
	Choices: func(ws *page.Workspace) map[string][]selector.Option {
		return map[string][]selector.Option{
			"authorId":    selector.Options(ws.BookAuthors.Rows(), func(a models.Author) string { return a.Name }),
			"publisherId": selector.Options(ws.BookPublishers.Rows(), func(p models.Publisher) string { return p.Name }),
			"categoryId":  selector.Options(ws.BookCategories.Rows(), func(c models.Category) string { return c.Name }),
		}
	},
}

var BorrowingEntity = Entity[models.Borrowing]{
	Title:       "Borrowings",
	Path:        "/borrowings",
	FilterLabel: "borrower name",
	Schema:      form.BorrowingSchema,
	Page:        func(ws *page.Workspace) *page.Page[models.Borrowing] { return ws.Borrowings },
	Columns: []Column[models.Borrowing]{
		{Title: "Borrower", Value: func(b models.Borrowing) string { return b.BorrowerName }},
		{Title: "Mail", Value: func(b models.Borrowing) string { return b.BorrowerMail }},
		{Title: "Borrowed", Value: func(b models.Borrowing) string { return b.BorrowingDate }},
		{Title: "Return date", Value: func(b models.Borrowing) string { return b.ReturnDate }},
		{Title: "Book", Value: func(b models.Borrowing) string { return b.Book.Name }},
	},
	Label: func(b models.Borrowing) string { return b.BorrowerName + ": " + b.Book.Name },
	Choices: func(ws *page.Workspace) map[string][]selector.Option {
		return map[string][]selector.Option{
			"bookId": selector.Options(ws.BorrowingBooks.Rows(), func(b models.Book) string { return b.Name }),
		}
	},
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// RegisterEntities mounts the five entity pages.
func RegisterEntities(r chi.Router, log zerolog.Logger) {
	r.Route(PublisherEntity.Path, NewEntityHandler(PublisherEntity, log).Routes)
	r.Route(CategoryEntity.Path, NewEntityHandler(CategoryEntity, log).Routes)
	r.Route(BookEntity.Path, NewEntityHandler(BookEntity, log).Routes)
	r.Route(AuthorEntity.Path, NewEntityHandler(AuthorEntity, log).Routes)
	r.Route(BorrowingEntity.Path, NewEntityHandler(BorrowingEntity, log).Routes)
}
