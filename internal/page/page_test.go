package page

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/form"
	"library-admin/internal/models"
	"library-admin/internal/notify"
	"library-admin/internal/selector"
)

var ctx = context.Background()

func confirmWith(answer bool) ConfirmFunc {
	return func(context.Context, string) (bool, error) { return answer, nil }
}

func fill(t *testing.T, set func(string, string) error, values map[string]string) {
	t.Helper()
	for name, value := range values {
		require.NoError(t, set(name, value))
	}
}

func TestBlankRequiredFieldNeverReachesNetwork(t *testing.T) {
	ws, api, queue := newTestWorkspace(t)

	type entity struct {
		schema form.Schema
		set    func(string, string) error
		submit func() error
	}
	entities := []entity{
		{form.PublisherSchema, ws.Publishers.SetField, func() error { _, err := ws.Publishers.Submit(ctx); return err }},
		{form.CategorySchema, ws.Categories.SetField, func() error { _, err := ws.Categories.Submit(ctx); return err }},
		{form.AuthorSchema, ws.Authors.SetField, func() error { _, err := ws.Authors.Submit(ctx); return err }},
		{form.BorrowingSchema, ws.Borrowings.SetField, func() error { _, err := ws.Borrowings.Submit(ctx); return err }},
	}

	for _, e := range entities {
		for _, blank := range e.schema.Required() {
			t.Run(e.schema.Entity+"/"+blank, func(t *testing.T) {
				for _, name := range e.schema.Names() {
					require.NoError(t, e.set(name, "1"))
				}
				require.NoError(t, e.set(blank, ""))

				err := e.submit()
				var verr *form.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Zero(t, api.Total(), "no request may be issued")
				assert.Equal(t, []notify.Level{notify.LevelWarning}, levels(queue.Drain()))
			})
		}
	}
}

func TestCreateAuthorRefetchesOnce(t *testing.T) {
	ws, api, queue := newTestWorkspace(t)
	require.NoError(t, ws.Authors.Mount(ctx))
	require.Equal(t, 1, api.Count(http.MethodGet, "/api/v1/authors"))

	fill(t, ws.Authors.SetField, map[string]string{
		"name":      "Orhan Pamuk",
		"birthDate": "1952-06-07",
		"country":   "Turkey",
	})
	created, err := ws.Authors.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, api.Count(http.MethodPost, "/api/v1/authors"))
	assert.Equal(t, 2, api.Count(http.MethodGet, "/api/v1/authors"), "exactly one re-fetch after create")
	assert.Equal(t, float64(0), api.LastBody(http.MethodPost, "/api/v1/authors")["id"])

	state := ws.Authors.State()
	require.Len(t, state.Rows, 1)
	assert.Equal(t, "Orhan Pamuk", state.Rows[0].Name)
	assert.NotZero(t, state.Rows[0].ID, "server assigns the id")
	assert.Equal(t, created.ID, state.Rows[0].ID)
	assert.Zero(t, state.EditingID)
	assert.Equal(t, "", state.Draft["name"], "form is reset after success")
	assert.Equal(t, []notify.Level{notify.LevelSuccess}, levels(queue.Drain()))
}

func TestEditPublisherKeepsLoadedAddress(t *testing.T) {
	ws, api, _ := newTestWorkspace(t)
	api.Seed("publishers", models.Publisher{ID: 4, Name: "Can", Address: "Istanbul", EstablishmentYear: 1981})
	require.NoError(t, ws.Publishers.Mount(ctx))

	require.NoError(t, ws.Publishers.Edit(ctx, 4))
	fill(t, ws.Publishers.SetField, map[string]string{"name": "Can Yayinlari", "address": ""})

	_, err := ws.Publishers.Submit(ctx)
	require.NoError(t, err)

	body := api.LastBody(http.MethodPut, "/api/v1/publishers/4")
	want := map[string]any{
		"id":                float64(4),
		"name":              "Can Yayinlari",
		"address":           "Istanbul",
		"establishmentYear": float64(1981),
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("update body mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, api.Count(http.MethodGet, "/api/v1/publishers"), "exactly one re-fetch after update")
}

func TestEditFallsBackToGet(t *testing.T) {
	ws, api, queue := newTestWorkspace(t)
	api.Seed("categories", models.Category{ID: 2, Name: "Poetry", Description: "Verse"})

	require.NoError(t, ws.Categories.Edit(ctx, 2))
	assert.Equal(t, 1, api.Count(http.MethodGet, "/api/v1/categories/2"))
	assert.Equal(t, "Poetry", ws.Categories.State().Draft["name"])

	// Authors have no get endpoint; an unloaded id is simply not found.
	err := ws.Authors.Edit(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, api.Count(http.MethodGet, "/api/v1/authors/9"))
	assert.Contains(t, levels(queue.Drain()), notify.LevelWarning)
}

func TestCreateBorrowingEmbedsBookSnapshot(t *testing.T) {
	ws, api, _ := newTestWorkspace(t)
	api.Seed("books", models.Book{ID: 3, Name: "Dune", PublicationYear: 1965, Stock: 2, Author: &models.Author{ID: 1, Name: "Frank Herbert"}})
	require.NoError(t, ws.Borrowings.Mount(ctx))

	fill(t, ws.Borrowings.SetField, map[string]string{
		"borrowerName":  "Ada",
		"borrowerMail":  "ada@example.com",
		"borrowingDate": "2024-01-02",
		"returnDate":    "2024-02-02",
		"bookId":        "3",
	})
	_, err := ws.Borrowings.Submit(ctx)
	require.NoError(t, err)

	body := api.LastBody(http.MethodPost, "/api/v1/borrows")
	wantBook := map[string]any{
		"id":              float64(3),
		"name":            "Dune",
		"publicationYear": float64(1965),
		"stock":           float64(2),
	}
	if diff := cmp.Diff(wantBook, body["bookForBorrowingRequest"]); diff != "" {
		t.Fatalf("embedded snapshot mismatch (-want +got):\n%s", diff)
	}

	// Editing the book afterwards leaves the recorded borrowing alone.
	require.NoError(t, ws.Books.Mount(ctx))
	require.NoError(t, ws.Books.Edit(ctx, 3))
	fill(t, ws.Books.SetField, map[string]string{"name": "Dune (revised)", "stock": "0"})
	_, err = ws.Books.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, ws.Borrowings.Mount(ctx))
	rows := ws.Borrowings.State().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, models.BookSnapshot{ID: 3, Name: "Dune", PublicationYear: 1965, Stock: 2}, rows[0].Book)
}

func TestUpdateBorrowingWithStaleBook(t *testing.T) {
	ws, api, queue := newTestWorkspace(t)
	api.Seed("books", models.Book{ID: 3, Name: "Dune"})
	api.Seed("borrows", models.Borrowing{
		ID: 7, BorrowerName: "Ada", BorrowerMail: "ada@example.com",
		BorrowingDate: "2024-01-02", ReturnDate: "2024-02-02",
		Book: models.BookSnapshot{ID: 3, Name: "Dune"},
	})
	require.NoError(t, ws.Borrowings.Mount(ctx))
	require.NoError(t, ws.Borrowings.Edit(ctx, 7))
	queue.Drain()

	require.NoError(t, ws.Borrowings.SetField("bookId", "42"))
	before := api.Total()

	_, err := ws.Borrowings.Submit(ctx)
	assert.ErrorIs(t, err, selector.ErrStaleSelection)
	assert.Equal(t, before, api.Total(), "no request may be issued")
	assert.Equal(t, []notify.Level{notify.LevelError}, levels(queue.Drain()))
	assert.Equal(t, "42", ws.Borrowings.State().Draft["bookId"], "draft is kept for correction")
}

func TestBookPayloadSendsBareReferences(t *testing.T) {
	ws, api, _ := newTestWorkspace(t)
	api.Seed("authors", models.Author{ID: 1, Name: "Frank Herbert"})
	api.Seed("publishers", models.Publisher{ID: 2, Name: "Chilton"})
	api.Seed("categories", models.Category{ID: 5, Name: "Science fiction"})
	require.NoError(t, ws.Books.Mount(ctx))
	assert.Equal(t, 1, ws.BookAuthors.Len())
	assert.Equal(t, 1, ws.BookCategories.Len())

	fill(t, ws.Books.SetField, map[string]string{
		"name": "Dune", "publicationYear": "1965", "stock": "2",
		"authorId": "1", "publisherId": "2", "categoryId": "5",
	})
	_, err := ws.Books.Submit(ctx)
	require.NoError(t, err)

	body := api.LastBody(http.MethodPost, "/api/v1/books")
	assert.Equal(t, map[string]any{"id": float64(1)}, body["author"])
	assert.Equal(t, map[string]any{"id": float64(2)}, body["publisher"])
	assert.Equal(t, []any{map[string]any{"id": float64(5)}}, body["categories"])
}

func TestBooksMountToleratesPartialFailure(t *testing.T) {
	ws, api, queue := newTestWorkspace(t)
	api.Seed("books", models.Book{ID: 3, Name: "Dune"})
	api.Seed("publishers", models.Publisher{ID: 2, Name: "Chilton"})
	api.FailOn(http.MethodGet, "/api/v1/authors", http.StatusInternalServerError)

	err := ws.Books.Mount(ctx)
	require.Error(t, err)

	var loadErr *selector.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "authors", loadErr.Source)

	assert.Len(t, ws.Books.State().Rows, 1, "books still loaded")
	assert.Equal(t, 1, ws.BookPublishers.Len(), "publishers still loaded")
	assert.False(t, ws.BookAuthors.Loaded())
	assert.Equal(t, []notify.Level{notify.LevelError}, levels(queue.Drain()))
}

func TestTransportFailureLeavesStateUntouched(t *testing.T) {
	ws, api, queue := newTestWorkspace(t)
	api.Seed("categories", models.Category{ID: 1, Name: "Poetry", Description: "Verse"})
	require.NoError(t, ws.Categories.Mount(ctx))
	api.FailOn(http.MethodPost, "/api/v1/categories", http.StatusBadGateway)

	fill(t, ws.Categories.SetField, map[string]string{"name": "Drama", "description": "Plays"})
	_, err := ws.Categories.Submit(ctx)
	require.Error(t, err)

	state := ws.Categories.State()
	assert.Equal(t, "Drama", state.Draft["name"])
	assert.Len(t, state.Rows, 1)
	assert.Equal(t, 1, api.Count(http.MethodGet, "/api/v1/categories"), "no re-fetch after a failure")
	assert.Equal(t, []notify.Level{notify.LevelError}, levels(queue.Drain()))
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	ws, api, queue := newTestWorkspace(t)
	api.Seed("publishers", models.Publisher{ID: 4, Name: "Can", Address: "Istanbul"})
	require.NoError(t, ws.Publishers.Mount(ctx))

	err := ws.Publishers.Delete(ctx, 4, confirmWith(false))
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Zero(t, api.Count(http.MethodDelete, "/api/v1/publishers/4"))
	assert.Empty(t, queue.Drain())

	require.NoError(t, ws.Publishers.Delete(ctx, 4, confirmWith(true)))
	assert.Equal(t, 1, api.Count(http.MethodDelete, "/api/v1/publishers/4"))
	assert.Equal(t, 2, api.Count(http.MethodGet, "/api/v1/publishers"))
	assert.Empty(t, ws.Publishers.State().Rows)
	assert.Equal(t, []notify.Level{notify.LevelSuccess}, levels(queue.Drain()))
}

func TestDeleteConfirmerError(t *testing.T) {
	ws, api, _ := newTestWorkspace(t)
	boom := errors.New("terminal closed")

	err := ws.Authors.Delete(ctx, 1, ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, api.Total())
}
