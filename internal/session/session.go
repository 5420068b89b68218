package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-admin/internal/notify"
	"library-admin/internal/page"
)

const (
	sessionCookieName = "panel_session"
	sessionDuration   = 8 * time.Hour
	cleanupInterval   = time.Hour
	defaultLimit      = 1000
)

// Session is one browser's view state: the pages it has open and the
// notifications waiting to be shown.
type Session struct {
	ID        string
	Workspace *page.Workspace
	Notices   *notify.Queue
	CreatedAt time.Time
	ExpiresAt time.Time
}

// WorkspaceFactory builds the pages of a new session around its sink.
type WorkspaceFactory func(sink notify.Sink) *page.Workspace

// Manager keeps sessions in memory. At most limit sessions are stored; a
// new session beyond that evicts the oldest one.
type Manager struct {
	sessions     map[string]*Session
	mu           sync.RWMutex
	newWorkspace WorkspaceFactory
	limit        int
	now          func() time.Time
}

// ManagerOption customises a Manager.
type ManagerOption func(*Manager)

// WithLimit caps the number of stored sessions. Values below 1 are ignored.
func WithLimit(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// NewManager creates a manager building workspaces with factory.
func NewManager(factory WorkspaceFactory, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:     make(map[string]*Session),
		newWorkspace: factory,
		limit:        defaultLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession starts a fresh session.
func (m *Manager) CreateSession() *Session {
	queue := &notify.Queue{}
	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Workspace: m.newWorkspace(queue),
		Notices:   queue,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionDuration),
	}

	m.mu.Lock()
	if len(m.sessions) >= m.limit {
		m.removeExpiredLocked(now)
	}
	for len(m.sessions) >= m.limit {
		m.evictOldestLocked()
	}
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess
}

func (m *Manager) evictOldestLocked() {
	var oldest *Session
	for _, sess := range m.sessions {
		if oldest == nil || sess.CreatedAt.Before(oldest.CreatedAt) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(m.sessions, oldest.ID)
	}
}

// GetSession returns a live session by id.
func (m *Manager) GetSession(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[id]
	if !exists || m.now().After(sess.ExpiresAt) {
		return nil, false
	}
	return sess, true
}

// DeleteSession forgets a session.
func (m *Manager) DeleteSession(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len is the number of stored sessions, expired or not.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// FromRequest resolves the session named by the request cookie.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, false
	}
	return m.GetSession(cookie.Value)
}

// RunCleanup drops expired sessions every hour until ctx is done.
func (m *Manager) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Manager) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeExpiredLocked(m.now())
}

func (m *Manager) removeExpiredLocked(now time.Time) {
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}

// SetSessionCookie writes the session cookie.
func SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
