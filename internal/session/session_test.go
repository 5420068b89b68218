package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/notify"
	"library-admin/internal/page"
)

func emptyWorkspace(notify.Sink) *page.Workspace {
	return &page.Workspace{}
}

func TestCreateAndResolve(t *testing.T) {
	m := NewManager(emptyWorkspace)
	sess := m.CreateSession()
	require.NotEmpty(t, sess.ID)
	require.NotNil(t, sess.Notices)

	rec := httptest.NewRecorder()
	SetSessionCookie(rec, sess.ID)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	got, ok := m.FromRequest(req)
	require.True(t, ok)
	assert.Same(t, sess, got)

	m.DeleteSession(sess.ID)
	_, ok = m.GetSession(sess.ID)
	assert.False(t, ok)
}

func TestExpiredSessionsAreIgnoredAndRemoved(t *testing.T) {
	m := NewManager(emptyWorkspace)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	sess := m.CreateSession()
	now = now.Add(sessionDuration + time.Minute)

	_, ok := m.GetSession(sess.ID)
	assert.False(t, ok)

	m.removeExpired()
	assert.Zero(t, m.Len())
}

func TestUnknownCookie(t *testing.T) {
	m := NewManager(emptyWorkspace)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "nope"})

	_, ok := m.FromRequest(req)
	assert.False(t, ok)
}

func TestLimitEvictsOldestSession(t *testing.T) {
	m := NewManager(emptyWorkspace, WithLimit(2))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	first := m.CreateSession()
	second := m.CreateSession()
	third := m.CreateSession()

	assert.Equal(t, 2, m.Len())
	_, ok := m.GetSession(first.ID)
	assert.False(t, ok, "oldest session is evicted")
	_, ok = m.GetSession(second.ID)
	assert.True(t, ok)
	_, ok = m.GetSession(third.ID)
	assert.True(t, ok)
}

func TestLimitPrefersExpiredSessions(t *testing.T) {
	m := NewManager(emptyWorkspace, WithLimit(2))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	stale := m.CreateSession()
	now = now.Add(sessionDuration + time.Minute)
	live := m.CreateSession()
	fresh := m.CreateSession()

	assert.Equal(t, 2, m.Len())
	_, ok := m.GetSession(stale.ID)
	assert.False(t, ok)
	_, ok = m.GetSession(live.ID)
	assert.True(t, ok)
	_, ok = m.GetSession(fresh.ID)
	assert.True(t, ok)
}
