package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phonebook/phonebook/internal/domain"
	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
	"github.com/phonebook/phonebook/internal/validator"
)

// PersonRepository defines the person store operations
type PersonRepository interface {
	List(ctx context.Context) ([]domain.Person, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)
	// Create must fail with a DUPLICATE error when the name is already taken
	Create(ctx context.Context, person *domain.Person) error
	// Update must fail with a NOT_FOUND error when the id does not exist
	Update(ctx context.Context, person *domain.Person) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PersonService handles person operations
type PersonService struct {
	personRepo PersonRepository
	now        func() time.Time
}

// NewPersonService creates a new person service
func NewPersonService(personRepo PersonRepository) *PersonService {
	return &PersonService{
		personRepo: personRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List returns every person
func (s *PersonService) List(ctx context.Context) ([]domain.Person, error) {
	people, err := s.personRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if people == nil {
		people = []domain.Person{}
	}
	return people, nil
}

// Count returns the number of persons
func (s *PersonService) Count(ctx context.Context) (int, error) {
	return s.personRepo.Count(ctx)
}

// Get retrieves a person by its raw identifier
func (s *PersonService) Get(ctx context.Context, rawID string) (*domain.Person, error) {
	id, err := domain.ParsePersonID(rawID)
	if err != nil {
		return nil, err
	}
	return s.personRepo.GetByID(ctx, id)
}

// Create validates input and stores a new person
func (s *PersonService) Create(ctx context.Context, input domain.PersonInput) (*domain.Person, error) {
	if err := validatePersonInput(&input); err != nil {
		return nil, err
	}

	person := domain.NewPerson(input, s.now())
	if err := s.personRepo.Create(ctx, person); err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	return person, nil
}

// Update replaces name and number of the person with the given identifier.
// The name is not re-checked for uniqueness.
func (s *PersonService) Update(ctx context.Context, rawID string, input domain.PersonInput) (*domain.Person, error) {
	id, err := domain.ParsePersonID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validatePersonInput(&input); err != nil {
		return nil, err
	}

	person := &domain.Person{ID: id}
	person.Replace(input, s.now())

	if err := s.personRepo.Update(ctx, person); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	return person, nil
}

// Delete removes the person with the given identifier. Absent ids are not an error.
func (s *PersonService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParsePersonID(rawID)
	if err != nil {
		return err
	}
	return s.personRepo.Delete(ctx, id)
}

func validatePersonInput(input *domain.PersonInput) error {
	if err := validator.Validate(input); err != nil {
		if validator.IsValidationError(err) {
			return apperrors.Validation(err.Error()).WithError(err)
		}
		return err
	}
	return nil
}
