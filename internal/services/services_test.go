package services_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skistation/resort/internal/config"
	"github.com/skistation/resort/internal/db"
	"github.com/skistation/resort/internal/logger"
	"github.com/skistation/resort/internal/models"
	"github.com/skistation/resort/internal/store"
)

var testLog = logger.Nop()

func openSQLite(t *testing.T) store.Backend {
	t.Helper()
	conn, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "services.db"),
	})
	require.NoError(t, err, "open test db")
	require.NoError(t, db.Migrate(conn), "migrate test db")
	g := store.NewGorm(conn)
	t.Cleanup(func() { g.Close() })
	return g
}

func eachBackend(t *testing.T, fn func(t *testing.T, b store.Backend)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, openSQLite(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, store.NewMemory()) })
}

func mustSkier(t *testing.T, b store.Backend, first string) *models.Skier {
	t.Helper()
	s, err := b.Repos().Skiers.Save(context.Background(), &models.Skier{
		FirstName:   first,
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		City:        "Paris",
	})
	require.NoError(t, err)
	return s
}

func mustCourse(t *testing.T, b store.Backend, support models.Support) *models.Course {
	t.Helper()
	c, err := b.Repos().Courses.Save(context.Background(), &models.Course{
		Level:      1,
		TypeCourse: models.TypeCourseIndividual,
		Support:    support,
		Price:      100,
	})
	require.NoError(t, err)
	return c
}

// countingBackend counts registration writes, inside and outside transactions.
type countingBackend struct {
	store.Backend
	saves atomic.Int64
}

func (b *countingBackend) wrap(r store.Repos) store.Repos {
	r.Registrations = countingRegistrations{RegistrationStore: r.Registrations, saves: &b.saves}
	return r
}

func (b *countingBackend) Repos() store.Repos { return b.wrap(b.Backend.Repos()) }

func (b *countingBackend) WithinTx(ctx context.Context, fn func(r store.Repos) error) error {
	return b.Backend.WithinTx(ctx, func(r store.Repos) error { return fn(b.wrap(r)) })
}

type countingRegistrations struct {
	store.RegistrationStore
	saves *atomic.Int64
}

func (c countingRegistrations) Save(ctx context.Context, r *models.Registration) (*models.Registration, error) {
	c.saves.Add(1)
	return c.RegistrationStore.Save(ctx, r)
}

// staleCountBackend reports no existing registrations, so the unique index is
// the only thing standing between two bookings of the same slot.
type staleCountBackend struct {
	store.Backend
}

func (b staleCountBackend) wrap(r store.Repos) store.Repos {
	r.Registrations = staleCount{r.Registrations}
	return r
}

func (b staleCountBackend) Repos() store.Repos { return b.wrap(b.Backend.Repos()) }

func (b staleCountBackend) WithinTx(ctx context.Context, fn func(r store.Repos) error) error {
	return b.Backend.WithinTx(ctx, func(r store.Repos) error { return fn(b.wrap(r)) })
}

type staleCount struct {
	store.RegistrationStore
}

func (staleCount) CountByWeekAndSkierAndCourse(context.Context, int, uint, uint) (int64, error) {
	return 0, nil
}
