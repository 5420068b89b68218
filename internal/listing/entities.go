package listing

import "library-admin/internal/models"

// Placeholder is the literal left behind by upstream seed data. Rows carrying
// it are hidden rather than deleted.
const Placeholder = "string"

func PublisherOptions() []Option[models.Publisher] {
	return []Option[models.Publisher]{
		FilterOn(func(p models.Publisher) string { return p.Name }),
		Hide(func(p models.Publisher) bool { return p.Name == Placeholder || p.Address == Placeholder }),
	}
}

func CategoryOptions() []Option[models.Category] {
	return []Option[models.Category]{
		FilterOn(func(c models.Category) string { return c.Name }),
		Hide(func(c models.Category) bool { return c.Name == Placeholder }),
	}
}

func AuthorOptions() []Option[models.Author] {
	return []Option[models.Author]{
		FilterOn(func(a models.Author) string { return a.Name }),
	}
}

func BookOptions() []Option[models.Book] {
	return []Option[models.Book]{
		FilterOn(func(b models.Book) string { return b.Name }),
	}
}

func BorrowingOptions() []Option[models.Borrowing] {
	return []Option[models.Borrowing]{
		FilterOn(func(b models.Borrowing) string { return b.BorrowerName }),
	}
}
