package form

// Kind tells BuildPayload how to turn a draft string into its wire value.
type Kind int

const (
	Text Kind = iota
	Int
	Date
	// Ref is sent as {"id": n}.
	Ref
	// RefList is sent as [{"id": n}].
	RefList
	// Snapshot is handed to the field's Resolver.
	Snapshot
)

// Field describes one form input.
type Field struct {
	Name     string
	Wire     string
	Label    string
	Kind     Kind
	Required bool
}

func (f Field) wireName() string {
	if f.Wire != "" {
		return f.Wire
	}
	return f.Name
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Schema lists an entity's form fields in display order.
type Schema struct {
	Entity string
	Fields []Field
}

// Field looks up a field by its draft name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns every draft field name.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Required returns the names that must be non-blank at submission.
func (s Schema) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

var (
	PublisherSchema = Schema{
		Entity: "publisher",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: Text, Required: true},
			{Name: "address", Label: "Address", Kind: Text, Required: true},
			{Name: "establishmentYear", Label: "Establishment year", Kind: Int, Required: true},
		},
	}

	CategorySchema = Schema{
		Entity: "category",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: Text, Required: true},
			{Name: "description", Label: "Description", Kind: Text, Required: true},
		},
	}

	AuthorSchema = Schema{
		Entity: "author",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: Text, Required: true},
			{Name: "birthDate", Label: "Birth date", Kind: Date, Required: true},
			{Name: "country", Label: "Country", Kind: Text, Required: true},
		},
	}

	// BookSchema has no required fields. Books have never been blank-checked
	// before submission; whether they should be is an open product question.
	BookSchema = Schema{
		Entity: "book",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: Text},
			{Name: "publicationYear", Label: "Publication year", Kind: Int},
			{Name: "stock", Label: "Stock", Kind: Int},
			{Name: "authorId", Wire: "author", Label: "Author", Kind: Ref},
			{Name: "publisherId", Wire: "publisher", Label: "Publisher", Kind: Ref},
			{Name: "categoryId", Wire: "categories", Label: "Category", Kind: RefList},
		},
	}

	BorrowingSchema = Schema{
		Entity: "borrowing",
		Fields: []Field{
			{Name: "borrowerName", Label: "Borrower name", Kind: Text, Required: true},
			{Name: "borrowerMail", Label: "Borrower mail", Kind: Text, Required: true},
			{Name: "borrowingDate", Label: "Borrowing date", Kind: Date, Required: true},
			{Name: "returnDate", Label: "Return date", Kind: Date, Required: true},
			{Name: "bookId", Wire: "bookForBorrowingRequest", Label: "Book", Kind: Snapshot, Required: true},
		},
	}
)
