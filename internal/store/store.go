// Package store persists resort entities. Services depend on the interfaces
// here; NewGorm and NewMemory provide the backends.
package store

import (
	"context"
	"errors"

	"github.com/skistation/resort/internal/models"
)

// ErrConflict reports a unique-constraint violation at the storage layer.
var ErrConflict = errors.New("store: unique constraint violated")

// Store is the generic per-entity contract.
// FindByID returns (nil, nil) when id does not resolve; DeleteByID on a
// missing id is a no-op.
type Store[T any] interface {
	Save(ctx context.Context, v *T) (*T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	DeleteByID(ctx context.Context, id uint) error
}

type RegistrationStore interface {
	Store[models.Registration]

	// CountByWeekAndSkierAndCourse counts registrations matching the triple.
	CountByWeekAndSkierAndCourse(ctx context.Context, week int, skierID, courseID uint) (int64, error)
	// WeeksOfInstructorBySupport lists the distinct weeks, ascending, in which
	// a course of the given support taught by the instructor has registrations.
	WeeksOfInstructorBySupport(ctx context.Context, instructorID uint, support models.Support) ([]int, error)
	FindBySkier(ctx context.Context, skierID uint) ([]models.Registration, error)
}

// Repos bundles the stores of one unit of work.
type Repos struct {
	Pistes        Store[models.Piste]
	Skiers        Store[models.Skier]
	Courses       Store[models.Course]
	Instructors   Store[models.Instructor]
	Registrations RegistrationStore
}

type Transactor interface {
	// WithinTx runs fn against stores bound to a single transaction. A non-nil
	// error from fn rolls the transaction back and is returned unchanged.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

// Backend is what cmd/server wires into the services.
type Backend interface {
	Transactor
	Repos() Repos
	Ping(ctx context.Context) error
	Close() error
}
