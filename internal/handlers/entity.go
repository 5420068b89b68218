package handlers

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"library-admin/internal/apiclient"
	"library-admin/internal/form"
	"library-admin/internal/middleware"
	"library-admin/internal/models"
	"library-admin/internal/page"
	"library-admin/internal/selector"
	"library-admin/internal/session"
	"library-admin/internal/templates"
)

// Column is one table column of an entity list.
type Column[T models.Record] struct {
	Title string
	Value func(T) string
}

// Entity describes how one kind of record is listed and edited.
type Entity[T models.Record] struct {
	Title       string
	Path        string
	FilterLabel string
	Schema      form.Schema
	Page        func(*page.Workspace) *page.Page[T]
	Columns     []Column[T]
	// Label names a record on the delete confirmation page.
	Label func(T) string
	// Choices returns the dropdown entries of the form's select fields.
	Choices func(*page.Workspace) map[string][]selector.Option
}

// Row is one rendered table row.
type Row struct {
	ID    int
	Cells []string
}

// FormField is one rendered form input.
type FormField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Required bool
	Options  []selector.Option
}

// EntityHandler serves the list, form and delete flow of one entity.
type EntityHandler[T models.Record] struct {
	entity          Entity[T]
	listTemplate    *template.Template
	confirmTemplate *template.Template
	log             zerolog.Logger
}

// NewEntityHandler parses the entity templates. A template that fails to
// parse is logged and its pages answer 500.
func NewEntityHandler[T models.Record](entity Entity[T], log zerolog.Logger) *EntityHandler[T] {
	listTmpl, err := templates.Parse("entity.html")
	if err != nil {
		log.Error().Err(err).Msg("failed to load entity template")
	}

	confirmTmpl, err := templates.Parse("confirm.html")
	if err != nil {
		log.Error().Err(err).Msg("failed to load confirm template")
	}

	return &EntityHandler[T]{
		entity:          entity,
		listTemplate:    listTmpl,
		confirmTemplate: confirmTmpl,
		log:             log,
	}
}

// Routes registers the handler under its entity path.
func (h *EntityHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Submit)
	r.Post("/cancel", h.Cancel)
	r.Get("/{id}/edit", h.Edit)
	r.Get("/{id}/delete", h.ConfirmDelete)
	r.Post("/{id}/delete", h.Delete)
}

// List fetches the collections of the page and renders it (GET /x).
func (h *EntityHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	sess, p, ok := h.page(w, r)
	if !ok {
		return
	}

	p.SetFilter(r.URL.Query().Get("q"))
	// Load failures are reported through the session's notifications.
	_ = p.Mount(r.Context())

	h.render(w, sess, p, http.StatusOK)
}

// Submit merges the posted form into the draft and saves it (POST /x).
func (h *EntityHandler[T]) Submit(w http.ResponseWriter, r *http.Request) {
	sess, p, ok := h.page(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Could not parse form", http.StatusBadRequest)
		return
	}

	for _, f := range h.entity.Schema.Fields {
		if !r.PostForm.Has(f.Name) {
			continue
		}
		value := r.PostForm.Get(f.Name)
		if f.Kind == form.Text {
			value = sanitize(value)
		}
		if err := p.SetField(f.Name, value); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	_, err := p.Submit(r.Context())
	h.render(w, sess, p, statusFor(err))
}

// Edit loads a record into the form (GET /x/{id}/edit).
func (h *EntityHandler[T]) Edit(w http.ResponseWriter, r *http.Request) {
	sess, p, ok := h.page(w, r)
	if !ok {
		return
	}

	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	// Opened directly by URL: load the page first.
	if !p.View().Loaded() {
		_ = p.Mount(r.Context())
	}

	err := p.Edit(r.Context(), id)
	h.render(w, sess, p, statusFor(err))
}

// Cancel drops the draft (POST /x/cancel).
func (h *EntityHandler[T]) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, p, ok := h.page(w, r)
	if !ok {
		return
	}

	p.Cancel()
	h.render(w, sess, p, http.StatusOK)
}

// ConfirmDelete asks before deleting (GET /x/{id}/delete).
func (h *EntityHandler[T]) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sess, p, ok := h.page(w, r)
	if !ok {
		return
	}

	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if h.confirmTemplate == nil {
		http.Error(w, "Confirmation template is not loaded", http.StatusInternalServerError)
		return
	}

	label := ""
	if record, found := p.View().Find(id); found && h.entity.Label != nil {
		label = h.entity.Label(record)
	}

	data := NewTemplateData(sess, h.entity.Path).
		Set("Entity", p.Entity()).
		Set("Path", h.entity.Path).
		Set("ID", id).
		Set("Label", label)

	h.execute(w, h.confirmTemplate, data, http.StatusOK)
}

// Delete removes a record when the request carries confirm=yes
// (POST /x/{id}/delete). Anything else is treated as declined.
func (h *EntityHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	sess, p, ok := h.page(w, r)
	if !ok {
		return
	}

	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Could not parse form", http.StatusBadRequest)
		return
	}
	confirmed := r.PostForm.Get("confirm") == "yes"

	err := p.Delete(r.Context(), id, page.ConfirmFunc(func(context.Context, string) (bool, error) {
		return confirmed, nil
	}))
	if errors.Is(err, page.ErrDeclined) {
		err = nil
	} else if err == nil && isHTMX(r) {
		w.Header().Set("HX-Trigger", p.Entity()+"Deleted")
	}

	h.render(w, sess, p, statusFor(err))
}

// page resolves the session's page for this entity.
func (h *EntityHandler[T]) page(w http.ResponseWriter, r *http.Request) (*session.Session, *page.Page[T], bool) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil || sess.Workspace == nil {
		http.Error(w, "No session", http.StatusInternalServerError)
		return nil, nil, false
	}
	return sess, h.entity.Page(sess.Workspace), true
}

func (h *EntityHandler[T]) render(w http.ResponseWriter, sess *session.Session, p *page.Page[T], status int) {
	if h.listTemplate == nil {
		http.Error(w, "Entity template is not loaded", http.StatusInternalServerError)
		return
	}

	st := p.State()

	titles := make([]string, 0, len(h.entity.Columns))
	for _, c := range h.entity.Columns {
		titles = append(titles, c.Title)
	}

	rows := make([]Row, 0, len(st.Rows))
	for _, record := range st.Rows {
		cells := make([]string, 0, len(h.entity.Columns))
		for _, c := range h.entity.Columns {
			cells = append(cells, c.Value(record))
		}
		rows = append(rows, Row{ID: record.GetID(), Cells: cells})
	}

	data := NewTemplateData(sess, h.entity.Path).
		Set("Title", h.entity.Title).
		Set("Entity", st.Entity).
		Set("Path", h.entity.Path).
		Set("FilterLabel", h.entity.FilterLabel).
		Set("Filter", st.Filter).
		Set("Total", st.Total).
		Set("EditingID", st.EditingID).
		Set("Columns", titles).
		Set("Rows", rows).
		Set("Fields", h.fields(sess.Workspace, st.Draft))

	h.execute(w, h.listTemplate, data, status)
}

func (h *EntityHandler[T]) fields(ws *page.Workspace, draft map[string]string) []FormField {
	var choices map[string][]selector.Option
	if h.entity.Choices != nil {
		choices = h.entity.Choices(ws)
	}

	out := make([]FormField, 0, len(h.entity.Schema.Fields))
	for _, f := range h.entity.Schema.Fields {
		out = append(out, FormField{
			Name:     f.Name,
			Label:    f.Label,
			Type:     inputType(f.Kind),
			Value:    draft[f.Name],
			Required: f.Required,
			Options:  choices[f.Name],
		})
	}
	return out
}

// execute renders into a buffer first so a template error can still become
// a clean 500.
func (h *EntityHandler[T]) execute(w http.ResponseWriter, tmpl *template.Template, data TemplateData, status int) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		h.log.Error().Err(err).Str("entity", h.entity.Path).Msg("render failed")
		http.Error(w, "Could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func inputType(k form.Kind) string {
	switch k {
	case form.Int:
		return "number"
	case form.Date:
		return "date"
	case form.Ref, form.RefList, form.Snapshot:
		return "select"
	default:
		return "text"
	}
}

// statusFor maps a page operation's outcome to the response status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case form.IsValidation(err), errors.Is(err, selector.ErrStaleSelection):
		return http.StatusUnprocessableEntity
	case errors.Is(err, page.ErrNotFound):
		return http.StatusNotFound
	case apiclient.IsTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
