package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
)

// Person is a phonebook entry
type Person struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PersonInput is the body of create and full-replace update requests.
// Number is optional on create and defaults to the empty string.
type PersonInput struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number"`
}

// NewPerson builds a person with a fresh identifier from input
func NewPerson(in PersonInput, now time.Time) *Person {
	return &Person{
		ID:        uuid.New(),
		Name:      in.Name,
		Number:    in.Number,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Replace overwrites every mutable field of p with input
func (p *Person) Replace(in PersonInput, now time.Time) {
	p.Name = in.Name
	p.Number = in.Number
	p.UpdatedAt = now
}

// canonicalIDLen is the length of the dashed xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form
const canonicalIDLen = 36

// ParsePersonID parses a client supplied identifier.
// Anything other than a canonical UUID yields a CAST_ERROR.
func ParsePersonID(raw string) (uuid.UUID, error) {
	if len(raw) != canonicalIDLen {
		return uuid.Nil, apperrors.Cast(raw)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Cast(raw)
	}
	return id, nil
}
