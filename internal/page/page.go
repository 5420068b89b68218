package page

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"library-admin/internal/form"
	"library-admin/internal/listing"
	"library-admin/internal/models"
	"library-admin/internal/notify"
	"library-admin/internal/selector"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrDeclined = errors.New("deletion was not confirmed")
)

// Resource is the remote contract a page drives. apiclient.Resource
// satisfies it.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id int, payload any) (T, error)
	Delete(ctx context.Context, id int) error
	SupportsGet() bool
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Page is one entity view: its collection, its form and the collections its
// form selects from. All operations are serialised.
type Page[T models.Record] struct {
	mu       sync.Mutex
	entity   string
	resource Resource[T]
	form     *form.Controller
	view     *listing.View[T]
	deps     []selector.Source
	sink     notify.Sink
	log      zerolog.Logger
}

// Option configures a Page.
type Option[T models.Record] func(*Page[T])

// WithDependencies loads the given collections alongside the page's own on
// every mount.
func WithDependencies[T models.Record](sources ...selector.Source) Option[T] {
	return func(p *Page[T]) {
		p.deps = append(p.deps, sources...)
	}
}

// WithResolver registers a resolver for one of the form's Snapshot fields.
func WithResolver[T models.Record](field string, r form.Resolver) Option[T] {
	return func(p *Page[T]) {
		p.form.SetResolver(field, r)
	}
}

// WithLogger sets the logger transport failures are recorded to.
func WithLogger[T models.Record](log zerolog.Logger) Option[T] {
	return func(p *Page[T]) {
		p.log = log
	}
}

// New builds a page over resource. view must be fed by the same resource.
func New[T models.Record](resource Resource[T], schema form.Schema, view *listing.View[T], sink notify.Sink, opts ...Option[T]) *Page[T] {
	p := &Page[T]{
		entity:   schema.Entity,
		resource: resource,
		form:     form.NewController(schema),
		view:     view,
		sink:     sink,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Entity is the singular entity name, e.g. "publisher".
func (p *Page[T]) Entity() string {
	return p.entity
}

// Mount fetches the page's collection and its dependencies concurrently.
// Each failure is reported on its own; whatever loaded stays loaded.
func (p *Page[T]) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sources := append([]selector.Source{{Name: p.entity + " list", View: p.view}}, p.deps...)
	failed := selector.LoadAll(ctx, sources...)

	errs := make([]error, 0, len(failed))
	for _, f := range failed {
		p.log.Error().Err(f.Err).Str("collection", f.Source).Msg("fetch failed")
		notify.Error(p.sink, "Could not load the %s.", f.Source)
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// SetFilter updates the list search term.
func (p *Page[T]) SetFilter(term string) {
	p.view.SetFilter(term)
}

// SetField merges one value into the form draft.
func (p *Page[T]) SetField(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form.SetField(name, value)
}

// Edit loads the record with id into the form. The loaded collection is used
// first; resources with a get endpoint are asked when it is missing.
func (p *Page[T]) Edit(ctx context.Context, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	record, ok := p.view.Find(id)
	if !ok && p.resource.SupportsGet() {
		fetched, err := p.resource.Get(ctx, id)
		if err != nil {
			p.log.Error().Err(err).Str("entity", p.entity).Int("id", id).Msg("get failed")
			notify.Error(p.sink, "Could not load %s #%d.", p.entity, id)
			return err
		}
		record, ok = fetched, true
	}
	if !ok {
		notify.Warning(p.sink, "%s #%d was not found.", capitalize(p.entity), id)
		return fmt.Errorf("%w: %s %d", ErrNotFound, p.entity, id)
	}

	p.form.Load(record)
	return nil
}

// Cancel drops the draft and leaves edit mode.
func (p *Page[T]) Cancel() {
	p.mu.Lock()
	p.form.Reset()
	p.mu.Unlock()
}

// Submit validates the draft, creates or updates the record and re-fetches
// the collection once on success. Validation and selection failures never
// reach the network. On a transport failure the draft and collection are
// left as they were.
func (p *Page[T]) Submit(ctx context.Context) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var saved T
	if err := p.form.Validate(); err != nil {
		notify.Warning(p.sink, "%s", err)
		return saved, err
	}
	payload, err := p.form.BuildPayload()
	if err != nil {
		if form.IsValidation(err) {
			notify.Warning(p.sink, "%s", err)
		} else {
			notify.Error(p.sink, "Could not save %s: %s.", p.entity, err)
		}
		return saved, err
	}

	verb := "created"
	if id, editing := p.form.EditingID(); editing {
		verb = "updated"
		saved, err = p.resource.Update(ctx, id, payload)
	} else {
		saved, err = p.resource.Create(ctx, payload)
	}
	if err != nil {
		p.log.Error().Err(err).Str("entity", p.entity).Msg("save failed")
		notify.Error(p.sink, "Could not save %s.", p.entity)
		return saved, err
	}

	p.form.Reset()
	p.refresh(ctx)
	notify.Success(p.sink, "%s %s.", capitalize(p.entity), verb)
	return saved, nil
}

// Delete asks for confirmation and removes the record. Declining issues no
// request.
func (p *Page[T]) Delete(ctx context.Context, id int, confirm Confirmer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ok, err := confirm.Confirm(ctx, fmt.Sprintf("Delete %s #%d?", p.entity, id))
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}

	if err := p.resource.Delete(ctx, id); err != nil {
		p.log.Error().Err(err).Str("entity", p.entity).Int("id", id).Msg("delete failed")
		notify.Error(p.sink, "Could not delete %s #%d.", p.entity, id)
		return err
	}

	if editing, _ := p.form.EditingID(); editing == id {
		p.form.Reset()
	}
	p.refresh(ctx)
	notify.Success(p.sink, "%s #%d deleted.", capitalize(p.entity), id)
	return nil
}

func (p *Page[T]) refresh(ctx context.Context) {
	if err := p.view.Refresh(ctx); err != nil {
		p.log.Error().Err(err).Str("entity", p.entity).Msg("re-fetch failed")
		notify.Error(p.sink, "Could not reload the %s list.", p.entity)
	}
}

// State is a consistent copy of what a view renders.
type State[T models.Record] struct {
	Entity    string
	Rows      []T
	Total     int
	Filter    string
	Draft     map[string]string
	EditingID int
	Loaded    bool
}

// State snapshots the page for rendering.
func (p *Page[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, _ := p.form.EditingID()
	return State[T]{
		Entity:    p.entity,
		Rows:      p.view.Rows(),
		Total:     p.view.Len(),
		Filter:    p.view.Filter(),
		Draft:     p.form.Draft(),
		EditingID: id,
		Loaded:    p.view.Loaded(),
	}
}

// View exposes the page's collection, e.g. as a dependency of another page.
func (p *Page[T]) View() *listing.View[T] {
	return p.view
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
