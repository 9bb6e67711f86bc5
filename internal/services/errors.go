package services

import (
	"errors"
	"fmt"

	"github.com/skistation/resort/internal/store"
)

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateRegistration: the skier already holds a registration for
	// this course in this week.
	ErrDuplicateRegistration = errors.New("skier already registered for this course and week")
)

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// registrationSaveErr turns a storage unique violation into ErrDuplicateRegistration.
func registrationSaveErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("%w (%v)", ErrDuplicateRegistration, err)
	}
	return fmt.Errorf("save registration: %w", err)
}
