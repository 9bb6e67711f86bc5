package services

import (
	"context"

	"github.com/skistation/resort/internal/models"
	"github.com/skistation/resort/internal/store"
)

// SkierService and CourseService are plain CRUD over the store. Single
// lookups are caller-facing and fail with ErrNotFound.
type SkierService struct {
	skiers store.Store[models.Skier]
}

func NewSkierService(b store.Backend) *SkierService {
	return &SkierService{skiers: b.Repos().Skiers}
}

func (s *SkierService) AddSkier(ctx context.Context, sk *models.Skier) (*models.Skier, error) {
	return s.skiers.Save(ctx, sk)
}

func (s *SkierService) RetrieveSkier(ctx context.Context, id uint) (*models.Skier, error) {
	sk, err := s.skiers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sk == nil {
		return nil, notFound("skier", id)
	}
	return sk, nil
}

func (s *SkierService) RetrieveAllSkiers(ctx context.Context) ([]models.Skier, error) {
	return s.skiers.FindAll(ctx)
}

func (s *SkierService) RemoveSkier(ctx context.Context, id uint) error {
	return s.skiers.DeleteByID(ctx, id)
}

type CourseService struct {
	courses store.Store[models.Course]
}

func NewCourseService(b store.Backend) *CourseService {
	return &CourseService{courses: b.Repos().Courses}
}

// AddCourse normalises and validates the course's enumerations before saving.
func (s *CourseService) AddCourse(ctx context.Context, c *models.Course) (*models.Course, error) {
	tc, err := models.ParseTypeCourse(string(c.TypeCourse))
	if err != nil {
		return nil, err
	}
	sup, err := models.ParseSupport(string(c.Support))
	if err != nil {
		return nil, err
	}
	c.TypeCourse, c.Support = tc, sup
	return s.courses.Save(ctx, c)
}

func (s *CourseService) RetrieveCourse(ctx context.Context, id uint) (*models.Course, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("course", id)
	}
	return c, nil
}

func (s *CourseService) RetrieveAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses.FindAll(ctx)
}

func (s *CourseService) RemoveCourse(ctx context.Context, id uint) error {
	return s.courses.DeleteByID(ctx, id)
}
