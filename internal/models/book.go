package models

import "strconv"

// Book is a catalog title. Author, Publisher and Categories are references;
// on the wire only their id is authoritative.
type Book struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	PublicationYear int        `json:"publicationYear"`
	Stock           int        `json:"stock"`
	Author          *Author    `json:"author,omitempty"`
	Publisher       *Publisher `json:"publisher,omitempty"`
	Categories      []Category `json:"categories,omitempty"`
}

// GetID returns the server-assigned id.
func (b Book) GetID() int { return b.ID }

// DraftFields exposes the book in form terms. Only the first category is
// surfaced, since the form selects a single one.
func (b Book) DraftFields() map[string]string {
	fields := map[string]string{
		"name":            b.Name,
		"publicationYear": strconv.Itoa(b.PublicationYear),
		"stock":           strconv.Itoa(b.Stock),
		"authorId":        "",
		"publisherId":     "",
		"categoryId":      "",
	}
	if b.Author != nil {
		fields["authorId"] = idString(b.Author.ID)
	}
	if b.Publisher != nil {
		fields["publisherId"] = idString(b.Publisher.ID)
	}
	if c, ok := b.FirstCategory(); ok {
		fields["categoryId"] = idString(c.ID)
	}
	return fields
}

// FirstCategory returns the category shown in lists and forms.
func (b Book) FirstCategory() (Category, bool) {
	if len(b.Categories) == 0 {
		return Category{}, false
	}
	return b.Categories[0], true
}

// AuthorName is a nil-safe accessor for templates.
func (b Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}

// PublisherName is a nil-safe accessor for templates.
func (b Book) PublisherName() string {
	if b.Publisher == nil {
		return ""
	}
	return b.Publisher.Name
}

// CategoryName returns the name of the first category, if any.
func (b Book) CategoryName() string {
	c, _ := b.FirstCategory()
	return c.Name
}

// Snapshot copies the fields a borrowing embeds at creation time.
func (b Book) Snapshot() BookSnapshot {
	return BookSnapshot{
		ID:              b.ID,
		Name:            b.Name,
		PublicationYear: b.PublicationYear,
		Stock:           b.Stock,
	}
}

// IsAvailable reports whether any copy is in stock.
func (b Book) IsAvailable() bool {
	return b.Stock > 0
}

func idString(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}
