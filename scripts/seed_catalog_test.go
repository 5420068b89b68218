package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/apiclient"
	"library-admin/internal/apitest"
	"library-admin/internal/notify"
	"library-admin/internal/page"
)

func newSeedWorkspace(t *testing.T) (*page.Workspace, *apitest.API) {
	t.Helper()
	api, srv := apitest.NewServer(t)
	client := apiclient.New(srv.URL, apiclient.WithHTTPClient(srv.Client()))
	return page.NewWorkspace(client, &notify.Queue{}, zerolog.Nop()), api
}

func idsByName(api *apitest.API, kind string) map[string]float64 {
	out := map[string]float64{}
	for _, rec := range api.Records(kind) {
		name, _ := rec["name"].(string)
		out[name] = float64(apitest.IDOf(rec))
	}
	return out
}

func TestSeedResolvesIDsOfBodylessCreates(t *testing.T) {
	ws, api := newSeedWorkspace(t)
	api.BareCreate("publishers")
	api.BareCreate("categories")
	api.BareCreate("authors")

	res := seedCatalog(context.Background(), ws, zerolog.Nop())
	assert.Equal(t, seedResult{Books: len(books)}, res)

	publisherIDs := idsByName(api, "publishers")
	categoryIDs := idsByName(api, "categories")
	authorIDs := idsByName(api, "authors")

	// The last book seeded is Kahneman's.
	body := api.LastBody(http.MethodPost, "/api/v1/books")
	require.NotNil(t, body)
	assert.Equal(t, "Thinking, Fast and Slow", body["name"])
	assert.Equal(t, map[string]any{"id": authorIDs["Daniel Kahneman"]}, body["author"])
	assert.Equal(t, map[string]any{"id": publisherIDs["Penguin Books"]}, body["publisher"])
	assert.Equal(t, []any{map[string]any{"id": categoryIDs["Psychology"]}}, body["categories"])
	assert.NotZero(t, authorIDs["Daniel Kahneman"])
}

func TestSeedSkipsBooksWithUnseededReferences(t *testing.T) {
	ws, api := newSeedWorkspace(t)
	api.FailOn(http.MethodPost, "/api/v1/publishers", http.StatusInternalServerError)

	res := seedCatalog(context.Background(), ws, zerolog.Nop())
	assert.Equal(t, len(publishers), res.Failed)
	assert.Equal(t, len(books), res.Skipped)
	assert.Zero(t, res.Books)
	assert.Zero(t, api.Count(http.MethodPost, "/api/v1/books"))
}
