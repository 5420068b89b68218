// Package apitest provides an in-memory stand-in for the library API.
package apitest

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// API assigns ids from 101 upwards, records every call and can be told to
// fail specific requests. Collections are keyed by path segment, e.g.
// "publishers" or "borrows".
type API struct {
	t      testing.TB
	mu     sync.Mutex
	nextID int
	data   map[string][]map[string]any
	fail   map[string]int
	calls  []string
	bodies map[string]map[string]any
	bare   map[string]bool
}

// NewServer starts a fake API that is closed when the test ends.
func NewServer(t testing.TB) (*API, *httptest.Server) {
	t.Helper()
	api := &API{
		t:      t,
		nextID: 100,
		data:   make(map[string][]map[string]any),
		fail:   make(map[string]int),
		bodies: make(map[string]map[string]any),
		bare:   make(map[string]bool),
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

// Seed stores records as their JSON form.
func (a *API) Seed(kind string, records ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			a.t.Fatalf("seed %s: %v", kind, err)
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			a.t.Fatalf("seed %s: %v", kind, err)
		}
		a.data[kind] = append(a.data[kind], m)
	}
}

// FailOn makes every method+path request answer with status.
func (a *API) FailOn(method, path string, status int) {
	a.mu.Lock()
	a.fail[method+" "+path] = status
	a.mu.Unlock()
}

// BareCreate makes creates in kind answer 201 with an empty body. The
// record is still stored.
func (a *API) BareCreate(kind string) {
	a.mu.Lock()
	a.bare[kind] = true
	a.mu.Unlock()
}

// Count is how many method+path requests were served.
func (a *API) Count(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c == method+" "+path {
			n++
		}
	}
	return n
}

// Total is the number of requests served.
func (a *API) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

// LastBody is the decoded body of the latest method+path request.
func (a *API) LastBody(method, path string) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bodies[method+" "+path]
}

// Records returns a copy of the stored collection.
func (a *API) Records(kind string) []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]map[string]any, 0, len(a.data[kind]))
	for _, rec := range a.data[kind] {
		out = append(out, maps.Clone(rec))
	}
	return out
}

// IDOf reads the id of a stored record.
func IDOf(rec map[string]any) int {
	v, _ := rec["id"].(float64)
	return int(v)
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	a.calls = append(a.calls, key)
	if status := a.fail[key]; status != 0 {
		http.Error(w, "injected failure", status)
		return
	}

	var body map[string]any
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a.bodies[key] = maps.Clone(body)
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/v1/"), "/")
	kind := parts[0]
	w.Header().Set("Content-Type", "application/json")

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			items := a.data[kind]
			if items == nil {
				items = []map[string]any{}
			}
			_ = json.NewEncoder(w).Encode(items)
		case http.MethodPost:
			a.nextID++
			body["id"] = float64(a.nextID)
			a.data[kind] = append(a.data[kind], body)
			w.WriteHeader(http.StatusCreated)
			if !a.bare[kind] {
				_ = json.NewEncoder(w).Encode(body)
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	idx := -1
	for i, rec := range a.data[kind] {
		if IDOf(rec) == id {
			idx = i
		}
	}
	if idx < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(a.data[kind][idx])
	case http.MethodPut:
		body["id"] = float64(id)
		a.data[kind][idx] = body
		_ = json.NewEncoder(w).Encode(body)
	case http.MethodDelete:
		a.data[kind] = append(a.data[kind][:idx], a.data[kind][idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
