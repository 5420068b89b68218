package models

import "strconv"

// Record is implemented by every entity the panel manages.
type Record interface {
	GetID() int
	DraftFields() map[string]string
}

// Ref is the bare reference form sent for cross-entity fields; the server
// resolves the full object.
type Ref struct {
	ID int `json:"id"`
}

// Publisher is a publishing house.
type Publisher struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	EstablishmentYear int    `json:"establishmentYear"`
}

func (p Publisher) GetID() int { return p.ID }

func (p Publisher) DraftFields() map[string]string {
	return map[string]string{
		"name":              p.Name,
		"address":           p.Address,
		"establishmentYear": strconv.Itoa(p.EstablishmentYear),
	}
}

// Category groups books by subject.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c Category) GetID() int { return c.ID }

func (c Category) DraftFields() map[string]string {
	return map[string]string{
		"name":        c.Name,
		"description": c.Description,
	}
}

// Author of one or more books. BirthDate is kept as the YYYY-MM-DD string
// the API uses.
type Author struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Country   string `json:"country"`
}

func (a Author) GetID() int { return a.ID }

func (a Author) DraftFields() map[string]string {
	return map[string]string{
		"name":      a.Name,
		"birthDate": a.BirthDate,
		"country":   a.Country,
	}
}
