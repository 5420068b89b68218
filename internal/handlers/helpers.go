package handlers

import (
	"html"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"library-admin/internal/notify"
	"library-admin/internal/session"
)

// TemplateData holds the values every template can read.
type TemplateData map[string]interface{}

// NavLink is one entry of the top navigation.
type NavLink struct {
	Title string
	Path  string
}

// Navigation lists the entity pages in menu order.
var Navigation = []NavLink{
	{Title: "Publishers", Path: "/publishers"},
	{Title: "Categories", Path: "/categories"},
	{Title: "Books", Path: "/books"},
	{Title: "Authors", Path: "/authors"},
	{Title: "Borrowings", Path: "/borrowings"},
}

// NewTemplateData starts the data for one render and hands over the
// session's pending notifications.
func NewTemplateData(sess *session.Session, active string) TemplateData {
	data := TemplateData{
		"Nav":    Navigation,
		"Active": active,
	}
	if sess != nil {
		data["Notices"] = sess.Notices.Drain()
	} else {
		data["Notices"] = []notify.Message(nil)
	}
	return data
}

// Set stores a value in the template data.
func (t TemplateData) Set(key string, value interface{}) TemplateData {
	t[key] = value
	return t
}

// isHTMX reports whether htmx issued the request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// idParam reads the {id} route parameter.
func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// sanitizer strips every tag from free-text input.
var sanitizer = bluemonday.StrictPolicy()

const maxSanitizePasses = 8

// sanitize removes markup but keeps plain characters such as "&" as typed;
// the API stores text, not HTML. Entities are decoded before stripping and
// the strip repeats until nothing changes, so encoded or nested tags cannot
// survive as markup.
func sanitize(value string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(sanitizer.Sanitize(html.UnescapeString(value)))
		if next == value {
			return value
		}
		value = next
	}
	// Still changing: hand back bluemonday's escaped form, which holds no tags.
	return sanitizer.Sanitize(value)
}
