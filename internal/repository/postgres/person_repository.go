package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/phonebook/phonebook/internal/domain"
	"github.com/phonebook/phonebook/internal/pkg/database"
	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
	"github.com/phonebook/phonebook/internal/pkg/metrics"
)

const personColumns = `id, name, number, created_at, updated_at`

// PersonRepository handles person data operations in PostgreSQL
type PersonRepository struct {
	db *database.PostgresDB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *database.PostgresDB) *PersonRepository {
	return &PersonRepository{db: db}
}

// List returns every person in creation order
func (r *PersonRepository) List(ctx context.Context) (people []domain.Person, err error) {
	defer metrics.ObserveDB("postgres", "persons.list", time.Now(), &err)

	query := `SELECT ` + personColumns + ` FROM persons ORDER BY created_at, id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	people = make([]domain.Person, 0)
	for rows.Next() {
		var p domain.Person
		if err := scanPerson(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}

	return people, nil
}

// Count returns the number of stored persons
func (r *PersonRepository) Count(ctx context.Context) (count int, err error) {
	defer metrics.ObserveDB("postgres", "persons.count", time.Now(), &err)

	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM persons`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return count, nil
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (_ *domain.Person, err error) {
	defer metrics.ObserveDB("postgres", "persons.get", time.Now(), &err)

	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`

	var p domain.Person
	if err := scanPerson(r.db.Pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("person")
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return &p, nil
}

// Create inserts a person unless another person already has the same name.
// The name check and the insert run in one transaction that holds an advisory
// lock on the name, so two concurrent creates of one name cannot both succeed.
func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) (err error) {
	defer metrics.ObserveDB("postgres", "persons.create", time.Now(), &err)

	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, person.Name); err != nil {
			return fmt.Errorf("failed to lock person name: %w", err)
		}

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM persons WHERE name = $1)`, person.Name,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check person name: %w", err)
		}
		if exists {
			return apperrors.Duplicate(apperrors.MessageNameNotUnique)
		}

		query := `
			INSERT INTO persons (id, name, number, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, query,
			person.ID,
			person.Name,
			person.Number,
			person.CreatedAt,
			person.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create person: %w", err)
		}

		return nil
	})
}

// Update replaces name and number of an existing person
func (r *PersonRepository) Update(ctx context.Context, person *domain.Person) (err error) {
	defer metrics.ObserveDB("postgres", "persons.update", time.Now(), &err)

	query := `
		UPDATE persons
		SET name = $2, number = $3, updated_at = $4
		WHERE id = $1
		RETURNING created_at
	`

	if err := r.db.Pool.QueryRow(ctx, query,
		person.ID,
		person.Name,
		person.Number,
		person.UpdatedAt,
	).Scan(&person.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("person")
		}
		return fmt.Errorf("failed to update person: %w", err)
	}

	return nil
}

// Delete removes a person. Deleting an absent id is not an error.
func (r *PersonRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer metrics.ObserveDB("postgres", "persons.delete", time.Now(), &err)

	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

func scanPerson(row pgx.Row, p *domain.Person) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Number,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}
