package services

import (
	"context"
	"fmt"

	"github.com/skistation/resort/internal/logger"
	"github.com/skistation/resort/internal/models"
	"github.com/skistation/resort/internal/store"
)

type InstructorService struct {
	backend store.Backend
	log     *logger.Logger
}

func NewInstructorService(b store.Backend, log *logger.Logger) *InstructorService {
	return &InstructorService{backend: b, log: log.With("service", "InstructorService")}
}

func (s *InstructorService) AddInstructor(ctx context.Context, i *models.Instructor) (*models.Instructor, error) {
	ensureCourses(i)
	return s.backend.Repos().Instructors.Save(ctx, i)
}

// AddInstructorAndAssignToCourse links the course to the instructor when it
// resolves and saves the instructor either way. An unknown course leaves the
// instructor's courses as they were; it is not an error.
func (s *InstructorService) AddInstructorAndAssignToCourse(ctx context.Context, i *models.Instructor, courseID uint) (*models.Instructor, error) {
	var saved *models.Instructor
	err := s.backend.WithinTx(ctx, func(r store.Repos) error {
		course, err := r.Courses.FindByID(ctx, courseID)
		if err != nil {
			return fmt.Errorf("find course: %w", err)
		}
		ensureCourses(i)
		if course != nil {
			i.AddCourse(*course)
		} else {
			s.log.Warn("course not found, saving instructor unassigned", "course_id", courseID)
		}
		saved, err = r.Instructors.Save(ctx, i)
		if err != nil {
			return fmt.Errorf("save instructor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("instructor saved", "instructor_id", saved.ID, "courses", len(saved.Courses))
	return saved, nil
}

func (s *InstructorService) UpdateInstructor(ctx context.Context, i *models.Instructor) (*models.Instructor, error) {
	ensureCourses(i)
	return s.backend.Repos().Instructors.Save(ctx, i)
}

// RetrieveInstructor returns (nil, nil) when id does not resolve.
func (s *InstructorService) RetrieveInstructor(ctx context.Context, id uint) (*models.Instructor, error) {
	return s.backend.Repos().Instructors.FindByID(ctx, id)
}

func (s *InstructorService) RetrieveAllInstructors(ctx context.Context) ([]models.Instructor, error) {
	return s.backend.Repos().Instructors.FindAll(ctx)
}

func ensureCourses(i *models.Instructor) {
	if i.Courses == nil {
		i.Courses = []models.Course{}
	}
}
