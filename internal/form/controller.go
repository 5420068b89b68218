package form

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"library-admin/internal/models"
)

// Payload is the JSON object sent to the API.
type Payload map[string]any

// Resolver turns a Snapshot field's raw draft value into the value embedded
// in the payload.
type Resolver func(raw string) (any, error)

// Controller keeps the draft of one entity being created or edited. It is not
// safe for concurrent use; the owning page serialises access.
type Controller struct {
	schema    Schema
	draft     map[string]string
	snapshot  map[string]string
	editingID int
	resolvers map[string]Resolver
}

// NewController returns an empty controller for schema.
func NewController(schema Schema) *Controller {
	c := &Controller{
		schema:    schema,
		resolvers: make(map[string]Resolver),
	}
	c.Reset()
	return c
}

// Schema returns the controller's field description.
func (c *Controller) Schema() Schema {
	return c.schema
}

// SetResolver registers the resolver for a Snapshot field.
func (c *Controller) SetResolver(name string, r Resolver) {
	c.resolvers[name] = r
}

// Load seeds the draft from a persisted record and switches to edit mode.
// The record's values are also kept as the snapshot blank edits fall back to.
func (c *Controller) Load(r models.Record) {
	fields := r.DraftFields()
	c.draft = make(map[string]string, len(c.schema.Fields))
	c.snapshot = make(map[string]string, len(c.schema.Fields))
	for _, name := range c.schema.Names() {
		c.draft[name] = fields[name]
		c.snapshot[name] = fields[name]
	}
	c.editingID = r.GetID()
}

// SetField merges one value into the draft.
func (c *Controller) SetField(name, value string) error {
	if _, ok := c.schema.Field(name); !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, c.schema.Entity, name)
	}
	c.draft[name] = value
	return nil
}

// Value returns the current draft value of name.
func (c *Controller) Value(name string) string {
	return c.draft[name]
}

// Draft returns a copy of the draft.
func (c *Controller) Draft() map[string]string {
	return maps.Clone(c.draft)
}

// EditingID returns the id of the record being edited, if any.
func (c *Controller) EditingID() (int, bool) {
	return c.editingID, c.editingID != 0
}

// IsEditing reports whether the controller is in update mode.
func (c *Controller) IsEditing() bool {
	return c.editingID != 0
}

// candidate is what would be submitted, before type coercion.
func (c *Controller) candidate() map[string]string {
	if !c.IsEditing() {
		return maps.Clone(c.draft)
	}
	return Patch(c.draft, c.snapshot, c.schema.Names())
}

// Validate fails when a required field is blank in the candidate. When
// editing, a blank draft value counts as filled if the snapshot has it.
func (c *Controller) Validate() error {
	values := c.candidate()
	verr := &ValidationError{Entity: c.schema.Entity}
	for _, f := range c.schema.Fields {
		if f.Required && isBlank(values[f.Name]) {
			verr.Missing = append(verr.Missing, f.label())
		}
	}
	if verr.empty() {
		return nil
	}
	return verr
}

// BuildPayload produces the wire object: draft patched over the snapshot,
// numbers coerced, references wrapped and snapshots resolved. id is the
// editing id on update and 0 on create.
func (c *Controller) BuildPayload() (Payload, error) {
	values := c.candidate()
	payload := Payload{"id": c.editingID}
	verr := &ValidationError{Entity: c.schema.Entity}

	for _, f := range c.schema.Fields {
		raw := values[f.Name]
		switch f.Kind {
		case Int:
			n, err := toInt(raw)
			if err != nil {
				verr.invalid(f.label(), "must be a whole number")
				continue
			}
			payload[f.wireName()] = n
		case Ref, RefList:
			n, err := toInt(raw)
			if err != nil {
				verr.invalid(f.label(), "invalid selection")
				continue
			}
			if f.Kind == Ref {
				payload[f.wireName()] = models.Ref{ID: n}
			} else {
				payload[f.wireName()] = []models.Ref{{ID: n}}
			}
		case Snapshot:
			resolve, ok := c.resolvers[f.Name]
			if !ok {
				return nil, fmt.Errorf("no resolver registered for %s.%s", c.schema.Entity, f.Name)
			}
			v, err := resolve(raw)
			if err != nil {
				return nil, err
			}
			payload[f.wireName()] = v
		default:
			payload[f.wireName()] = raw
		}
	}

	if !verr.empty() {
		return nil, verr
	}
	return payload, nil
}

// Reset clears the draft and leaves edit mode.
func (c *Controller) Reset() {
	c.draft = make(map[string]string, len(c.schema.Fields))
	for _, name := range c.schema.Names() {
		c.draft[name] = ""
	}
	c.snapshot = nil
	c.editingID = 0
}

// toInt treats a blank value as 0, the way an empty number input is sent.
func toInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (e *ValidationError) invalid(field, msg string) {
	if e.Invalid == nil {
		e.Invalid = make(map[string]string)
	}
	e.Invalid[field] = msg
}
