package services

import (
	"context"
	"fmt"

	"github.com/skistation/resort/internal/logger"
	"github.com/skistation/resort/internal/models"
	"github.com/skistation/resort/internal/store"
)

// RegistrationService binds registrations to skiers and courses.
// Every write goes through one transaction that also covers its checks, and
// a rejected call leaves the store untouched.
type RegistrationService struct {
	backend store.Backend
	log     *logger.Logger
}

func NewRegistrationService(b store.Backend, log *logger.Logger) *RegistrationService {
	return &RegistrationService{backend: b, log: log.With("service", "RegistrationService")}
}

// AddRegistrationAndAssignToSkier saves reg bound to the skier.
// A missing skier is ErrNotFound and nothing is written; reg is then left
// as the caller passed it.
func (s *RegistrationService) AddRegistrationAndAssignToSkier(ctx context.Context, reg *models.Registration, skierID uint) (*models.Registration, error) {
	before := *reg
	var saved *models.Registration
	err := s.backend.WithinTx(ctx, func(r store.Repos) error {
		skier, err := r.Skiers.FindByID(ctx, skierID)
		if err != nil {
			return fmt.Errorf("find skier: %w", err)
		}
		if skier == nil {
			return notFound("skier", skierID)
		}
		reg.BindSkier(skier)
		saved, err = r.Registrations.Save(ctx, reg)
		return registrationSaveErr(err)
	})
	if err != nil {
		*reg = before
		s.log.Warn("add registration to skier rejected", "skier_id", skierID, "week", reg.NumWeek, "error", err)
		return nil, err
	}
	s.log.Info("registration assigned to skier", "registration_id", saved.ID, "skier_id", skierID)
	return saved, nil
}

// AssignRegistrationToCourse binds an existing registration to a course.
func (s *RegistrationService) AssignRegistrationToCourse(ctx context.Context, registrationID, courseID uint) (*models.Registration, error) {
	var saved *models.Registration
	err := s.backend.WithinTx(ctx, func(r store.Repos) error {
		reg, err := r.Registrations.FindByID(ctx, registrationID)
		if err != nil {
			return fmt.Errorf("find registration: %w", err)
		}
		if reg == nil {
			return notFound("registration", registrationID)
		}
		course, err := r.Courses.FindByID(ctx, courseID)
		if err != nil {
			return fmt.Errorf("find course: %w", err)
		}
		if course == nil {
			return notFound("course", courseID)
		}
		reg.BindCourse(course)
		saved, err = r.Registrations.Save(ctx, reg)
		return registrationSaveErr(err)
	})
	if err != nil {
		s.log.Warn("assign registration to course rejected", "registration_id", registrationID, "course_id", courseID, "error", err)
		return nil, err
	}
	s.log.Info("registration assigned to course", "registration_id", registrationID, "course_id", courseID)
	return saved, nil
}

// AddRegistrationAndAssignToSkierAndCourse saves reg bound to both the skier
// and the course. It is rejected, with no write, when either id does not
// resolve (ErrNotFound) or the skier already holds a registration for that
// course in reg.NumWeek (ErrDuplicateRegistration). The unique index on
// (num_week, skier_id, course_id) backs the count check against racing
// writers; a violation there is reported the same way. On any failure reg is
// left as the caller passed it.
func (s *RegistrationService) AddRegistrationAndAssignToSkierAndCourse(ctx context.Context, reg *models.Registration, skierID, courseID uint) (*models.Registration, error) {
	before := *reg
	var saved *models.Registration
	err := s.backend.WithinTx(ctx, func(r store.Repos) error {
		skier, err := r.Skiers.FindByID(ctx, skierID)
		if err != nil {
			return fmt.Errorf("find skier: %w", err)
		}
		if skier == nil {
			return notFound("skier", skierID)
		}
		course, err := r.Courses.FindByID(ctx, courseID)
		if err != nil {
			return fmt.Errorf("find course: %w", err)
		}
		if course == nil {
			return notFound("course", courseID)
		}

		n, err := r.Registrations.CountByWeekAndSkierAndCourse(ctx, reg.NumWeek, skierID, courseID)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if n > 0 {
			return ErrDuplicateRegistration
		}

		reg.BindSkier(skier)
		reg.BindCourse(course)
		saved, err = r.Registrations.Save(ctx, reg)
		return registrationSaveErr(err)
	})
	if err != nil {
		*reg = before
		s.log.Warn("registration rejected",
			"skier_id", skierID, "course_id", courseID, "week", reg.NumWeek, "error", err)
		return nil, err
	}
	s.log.Info("registration created",
		"registration_id", saved.ID, "code", saved.Code, "skier_id", skierID, "course_id", courseID, "week", saved.NumWeek)
	return saved, nil
}

// NumWeeksCourseOfInstructorBySupport returns the aggregation result as is.
func (s *RegistrationService) NumWeeksCourseOfInstructorBySupport(ctx context.Context, instructorID uint, support models.Support) ([]int, error) {
	return s.backend.Repos().Registrations.WeeksOfInstructorBySupport(ctx, instructorID, support)
}

// RetrieveRegistration returns (nil, nil) when id does not resolve.
func (s *RegistrationService) RetrieveRegistration(ctx context.Context, id uint) (*models.Registration, error) {
	return s.backend.Repos().Registrations.FindByID(ctx, id)
}

// RetrieveRegistrationsBySkier returns an empty slice for unknown skiers.
func (s *RegistrationService) RetrieveRegistrationsBySkier(ctx context.Context, skierID uint) ([]models.Registration, error) {
	return s.backend.Repos().Registrations.FindBySkier(ctx, skierID)
}
