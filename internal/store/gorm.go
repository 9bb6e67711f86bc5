package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/skistation/resort/internal/models"
)

type Gorm struct {
	db *gorm.DB
}

func NewGorm(conn *gorm.DB) *Gorm {
	return &Gorm{db: conn}
}

func (g *Gorm) Repos() Repos {
	return gormRepos(g.db)
}

func (g *Gorm) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormRepos(tx))
	})
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormRepos(conn *gorm.DB) Repos {
	return Repos{
		Pistes:        &gormStore[models.Piste]{db: conn},
		Skiers:        &gormStore[models.Skier]{db: conn, preloads: []string{"Pistes"}},
		Courses:       &gormStore[models.Course]{db: conn},
		Instructors:   &gormStore[models.Instructor]{db: conn, preloads: []string{"Courses"}},
		Registrations: &gormRegistrations{gormStore[models.Registration]{db: conn, preloads: []string{"Skier", "Course"}}},
	}
}

type gormStore[T any] struct {
	db       *gorm.DB
	preloads []string
}

func (s *gormStore[T]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}
	return q
}

func (s *gormStore[T]) Save(ctx context.Context, v *T) (*T, error) {
	if err := s.db.WithContext(ctx).Save(v).Error; err != nil {
		return nil, translate(err)
	}
	return v, nil
}

func (s *gormStore[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var v T
	err := s.query(ctx).First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (s *gormStore[T]) FindAll(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := s.query(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *gormStore[T]) DeleteByID(ctx context.Context, id uint) error {
	return translate(s.db.WithContext(ctx).Delete(new(T), id).Error)
}

type gormRegistrations struct {
	gormStore[models.Registration]
}

func (s *gormRegistrations) CountByWeekAndSkierAndCourse(ctx context.Context, week int, skierID, courseID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("num_week = ? AND skier_id = ? AND course_id = ?", week, skierID, courseID).
		Count(&n).Error
	return n, err
}

func (s *gormRegistrations) WeeksOfInstructorBySupport(ctx context.Context, instructorID uint, support models.Support) ([]int, error) {
	weeks := []int{}
	err := s.db.WithContext(ctx).Table("registrations r").
		Joins("JOIN courses c ON c.id = r.course_id").
		Joins("JOIN instructor_courses ic ON ic.course_id = c.id").
		Where("ic.instructor_id = ? AND c.support = ?", instructorID, string(support)).
		Distinct().
		Order("r.num_week asc").
		Pluck("r.num_week", &weeks).Error
	if err != nil {
		return nil, err
	}
	return weeks, nil
}

func (s *gormRegistrations) FindBySkier(ctx context.Context, skierID uint) ([]models.Registration, error) {
	out := []models.Registration{}
	if err := s.query(ctx).Where("skier_id = ?", skierID).Order("num_week asc, id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// translate maps unique violations to ErrConflict. TranslateError covers the
// drivers that support it; the message check catches the rest.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	le := strings.ToLower(err.Error())
	if strings.Contains(le, "unique constraint") || strings.Contains(le, "duplicate key") {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
