package models

import "time"

type Piste struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name   string `gorm:"not null" json:"name"`
	Color  Color  `gorm:"type:varchar(16);not null" json:"color"`
	Length int    `json:"length"` // meters
	Slope  int    `json:"slope"`
}

type Skier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	City        string    `json:"city"`

	Pistes []Piste `gorm:"many2many:skier_pistes;constraint:OnDelete:CASCADE" json:"pistes,omitempty"`
}

type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Level      int        `json:"level"`
	TypeCourse TypeCourse `gorm:"type:varchar(24);not null" json:"typeCourse"`
	Support    Support    `gorm:"type:varchar(16);not null;index" json:"support"`
	Price      float64    `json:"price"`
}

// Instructor teaches zero or more courses. Courses is kept non-nil by
// AddCourse so callers can range over it without a nil check.
type Instructor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	DateOfHire time.Time `json:"dateOfHire"`

	Courses []Course `gorm:"many2many:instructor_courses;constraint:OnDelete:CASCADE" json:"courses"`
}

// AddCourse links c to the instructor. Linking the same course twice is a no-op.
func (i *Instructor) AddCourse(c Course) {
	if i.Courses == nil {
		i.Courses = []Course{}
	}
	for _, have := range i.Courses {
		if have.ID != 0 && have.ID == c.ID {
			return
		}
	}
	i.Courses = append(i.Courses, c)
}

// Registration books a skier into a course for one week of the season.
// Skier and Course start out empty and are bound by the assignment engine.
// (num_week, skier_id, course_id) is unique; see db.Migrate.
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	NumWeek int    `gorm:"not null" json:"numWeek"`
	Code    string `gorm:"uniqueIndex" json:"code"` // e.g., REG-1A2B3C4D

	SkierID  *uint   `json:"-"`
	Skier    *Skier  `gorm:"constraint:OnDelete:SET NULL" json:"skier,omitempty"`
	CourseID *uint   `json:"-"`
	Course   *Course `gorm:"constraint:OnDelete:SET NULL" json:"course,omitempty"`
}

// BindSkier sets both the association and its foreign key.
func (r *Registration) BindSkier(s *Skier) {
	id := s.ID
	r.Skier = s
	r.SkierID = &id
}

// BindCourse sets both the association and its foreign key.
func (r *Registration) BindCourse(c *Course) {
	id := c.ID
	r.Course = c
	r.CourseID = &id
}
