package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"library-admin/internal/middleware"
	"library-admin/internal/notify"
	"library-admin/internal/page"
	"library-admin/internal/selector"
	"library-admin/internal/templates"
)

// Count is one dashboard card.
type Count struct {
	Title  string
	Path   string
	Total  int
	Loaded bool
}

type counter interface {
	selector.Refresher
	Len() int
	Loaded() bool
}

// IndexHandler serves the dashboard.
type IndexHandler struct {
	homeTemplate *template.Template
	log          zerolog.Logger
}

// NewIndexHandler parses the dashboard template.
func NewIndexHandler(log zerolog.Logger) *IndexHandler {
	homeTmpl, err := templates.Parse("home.html")
	if err != nil {
		log.Error().Err(err).Msg("failed to load home template")
	}

	return &IndexHandler{
		homeTemplate: homeTmpl,
		log:          log,
	}
}

// ServeHTTP handles GET /: it loads every collection concurrently and shows
// how many records each holds.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.homeTemplate == nil {
		http.Error(w, "Home template is not loaded", http.StatusInternalServerError)
		return
	}

	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil || sess.Workspace == nil {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}

	views := dashboardViews(sess.Workspace)
	sources := make([]selector.Source, 0, len(views))
	for i, v := range views {
		sources = append(sources, selector.Source{Name: Navigation[i].Title, View: v})
	}
	for _, failed := range selector.LoadAll(r.Context(), sources...) {
		h.log.Error().Err(failed.Err).Str("collection", failed.Source).Msg("fetch failed")
		notify.Error(sess.Notices, "Could not load %s.", failed.Source)
	}

	counts := make([]Count, 0, len(views))
	for i, v := range views {
		counts = append(counts, Count{
			Title:  Navigation[i].Title,
			Path:   Navigation[i].Path,
			Total:  v.Len(),
			Loaded: v.Loaded(),
		})
	}

	data := NewTemplateData(sess, "home").Set("Counts", counts)
	if err := h.homeTemplate.Execute(w, data); err != nil {
		h.log.Error().Err(err).Msg("failed to render home page")
		http.Error(w, "Could not render page", http.StatusInternalServerError)
		return
	}
}

// dashboardViews returns the page collections in Navigation order.
func dashboardViews(ws *page.Workspace) []counter {
	return []counter{
		ws.Publishers.View(),
		ws.Categories.View(),
		ws.Books.View(),
		ws.Authors.View(),
		ws.Borrowings.View(),
	}
}

// Health answers GET /healthz.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
