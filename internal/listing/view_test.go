package listing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/models"
)

type stubLister[T any] struct {
	items []T
	err   error
	calls int
}

func (s *stubLister[T]) List(context.Context) ([]T, error) {
	s.calls++
	return s.items, s.err
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, name(item))
	}
	return out
}

func TestFilterIgnoresCase(t *testing.T) {
	lister := &stubLister[models.Author]{items: []models.Author{
		{ID: 1, Name: "Orhan Pamuk"},
		{ID: 2, Name: "Elif Shafak"},
		{ID: 3, Name: "Yasar Kemal"},
	}}
	v := New[models.Author](lister, AuthorOptions()...)
	require.NoError(t, v.Refresh(context.Background()))

	authorName := func(a models.Author) string { return a.Name }
	for _, term := range []string{"pamuk", "AR", "e", "", "zzz"} {
		v.SetFilter(term)
		lower := names(v.Rows(), authorName)
		v.SetFilter(strings.ToUpper(term))
		upper := names(v.Rows(), authorName)
		assert.Equal(t, lower, upper, "term %q", term)

		// Filtering twice is the same as filtering once.
		again := Apply(v.Rows(), term, authorName)
		assert.Equal(t, lower, names(again, authorName))
	}

	v.SetFilter("pamuk")
	assert.Equal(t, []string{"Orhan Pamuk"}, names(v.Rows(), authorName))
}

func TestPlaceholderRowsAreHidden(t *testing.T) {
	publishers := New[models.Publisher](&stubLister[models.Publisher]{items: []models.Publisher{
		{ID: 1, Name: "string", Address: "Ankara"},
		{ID: 2, Name: "Iletisim", Address: "string"},
		{ID: 3, Name: "Can", Address: "Istanbul"},
		{ID: 4, Name: "Strings Press", Address: "Izmir"},
	}}, PublisherOptions()...)
	require.NoError(t, publishers.Refresh(context.Background()))

	categories := New[models.Category](&stubLister[models.Category]{items: []models.Category{
		{ID: 1, Name: "string"},
		{ID: 2, Name: "Novel"},
	}}, CategoryOptions()...)
	require.NoError(t, categories.Refresh(context.Background()))

	for _, term := range []string{"", "string", "STRING", "s"} {
		publishers.SetFilter(term)
		for _, p := range publishers.Rows() {
			assert.NotEqual(t, Placeholder, p.Name)
			assert.NotEqual(t, Placeholder, p.Address)
		}
		categories.SetFilter(term)
		for _, c := range categories.Rows() {
			assert.NotEqual(t, Placeholder, c.Name)
		}
	}

	publishers.SetFilter("")
	assert.Len(t, publishers.Rows(), 2)
	assert.Equal(t, 4, publishers.Len(), "hidden rows stay in the collection")
}

func TestRefreshFailureKeepsCollection(t *testing.T) {
	lister := &stubLister[models.Category]{items: []models.Category{{ID: 1, Name: "Poetry"}}}
	v := New[models.Category](lister, CategoryOptions()...)
	assert.False(t, v.Loaded())
	require.NoError(t, v.Refresh(context.Background()))

	lister.items = nil
	lister.err = errors.New("boom")
	assert.Error(t, v.Refresh(context.Background()))

	assert.Equal(t, []models.Category{{ID: 1, Name: "Poetry"}}, v.Items())
	found, ok := v.Find(1)
	assert.True(t, ok)
	assert.Equal(t, "Poetry", found.Name)
	_, ok = v.Find(2)
	assert.False(t, ok)
}
