package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonebook/phonebook/internal/domain"
)

// NewTestPerson creates a test person with default values.
func NewTestPerson() *domain.Person {
	now := time.Now().UTC()
	return &domain.Person{
		ID:        uuid.New(),
		Name:      "Arto Hellas",
		Number:    "040-123456",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestPersonNamed creates a test person with the given name and number.
func NewTestPersonNamed(name, number string) *domain.Person {
	p := NewTestPerson()
	p.Name = name
	p.Number = number
	return p
}
