package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/notify"
	"library-admin/internal/page"
	"library-admin/internal/session"
)

func newManager(limit int) *session.Manager {
	return session.NewManager(func(notify.Sink) *page.Workspace {
		return &page.Workspace{}
	}, session.WithLimit(limit))
}

func TestSessionsReusesCookie(t *testing.T) {
	m := newManager(10)
	var seen []*session.Session
	h := Sessions(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, GetSessionFromContext(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Len(t, seen, 2)
	require.NotNil(t, seen[0])
	assert.Same(t, seen[0], seen[1])
	assert.Empty(t, rec.Result().Cookies(), "known session is not re-issued")
	assert.Equal(t, 1, m.Len())
}

func TestCookielessRequestsStayWithinLimit(t *testing.T) {
	m := newManager(3)
	h := Sessions(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, GetSessionFromContext(r.Context()))
	}))

	for i := 0; i < 50; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/categories", nil))
	}
	assert.Equal(t, 3, m.Len())
}
