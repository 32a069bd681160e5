package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/phonebook/phonebook/internal/domain"
	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
)

// MemoryPersonRepository is an in-memory person store with the same
// uniqueness and not-found behavior as the Postgres repository.
type MemoryPersonRepository struct {
	mu     sync.Mutex
	people map[uuid.UUID]domain.Person
	order  []uuid.UUID
}

// NewMemoryPersonRepository creates an empty in-memory store.
func NewMemoryPersonRepository() *MemoryPersonRepository {
	return &MemoryPersonRepository{people: make(map[uuid.UUID]domain.Person)}
}

func (r *MemoryPersonRepository) List(_ context.Context) ([]domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Person, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.people[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryPersonRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.people), nil
}

func (r *MemoryPersonRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.people[id]
	if !ok {
		return nil, apperrors.NotFound("person")
	}
	return &p, nil
}

func (r *MemoryPersonRepository) Create(_ context.Context, person *domain.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.people {
		if p.Name == person.Name {
			return apperrors.Duplicate(apperrors.MessageNameNotUnique)
		}
	}
	r.people[person.ID] = *person
	r.order = append(r.order, person.ID)
	return nil
}

func (r *MemoryPersonRepository) Update(_ context.Context, person *domain.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.people[person.ID]
	if !ok {
		return apperrors.NotFound("person")
	}
	person.CreatedAt = existing.CreatedAt
	r.people[person.ID] = *person
	return nil
}

func (r *MemoryPersonRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.people[id]; !ok {
		return nil
	}
	delete(r.people, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
