package models

import "strconv"

// BookSnapshot is the copy of a book embedded in a borrowing when it is
// recorded. It is never refreshed from the catalog afterwards.
type BookSnapshot struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	PublicationYear int    `json:"publicationYear"`
	Stock           int    `json:"stock"`
}

// Borrowing records a book lent to a borrower.
type Borrowing struct {
	ID            int          `json:"id"`
	BorrowerName  string       `json:"borrowerName"`
	BorrowerMail  string       `json:"borrowerMail"`
	BorrowingDate string       `json:"borrowingDate"`
	ReturnDate    string       `json:"returnDate"`
	Book          BookSnapshot `json:"bookForBorrowingRequest"`
}

func (b Borrowing) GetID() int { return b.ID }

func (b Borrowing) DraftFields() map[string]string {
	bookID := ""
	if b.Book.ID != 0 {
		bookID = strconv.Itoa(b.Book.ID)
	}
	return map[string]string{
		"borrowerName":  b.BorrowerName,
		"borrowerMail":  b.BorrowerMail,
		"borrowingDate": b.BorrowingDate,
		"returnDate":    b.ReturnDate,
		"bookId":        bookID,
	}
}
