package handlers

import (
	"net/http"

	"github.com/skistation/resort/internal/models"
)

type instructorInput struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	DateOfHire Date   `json:"dateOfHire"`
}

func (in instructorInput) model() *models.Instructor {
	return &models.Instructor{
		ID:         in.ID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		DateOfHire: in.DateOfHire.Time,
	}
}

func (h *Handlers) ListInstructors(w http.ResponseWriter, r *http.Request) {
	all, err := h.Instructors.RetrieveAllInstructors(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, all)
}

func (h *Handlers) CreateInstructor(w http.ResponseWriter, r *http.Request) {
	var in instructorInput
	if !h.decode(w, r, &in) {
		return
	}
	in.ID = 0
	i, err := h.Instructors.AddInstructor(r.Context(), in.model())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, i)
}

// UpdateInstructor replaces the instructor's own fields and keeps its courses.
func (h *Handlers) UpdateInstructor(w http.ResponseWriter, r *http.Request) {
	var in instructorInput
	if !h.decode(w, r, &in) {
		return
	}
	if in.ID == 0 {
		h.respondError(w, http.StatusBadRequest, "validation_error", "id is required")
		return
	}
	current, err := h.Instructors.RetrieveInstructor(r.Context(), in.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if current == nil {
		h.respondError(w, http.StatusNotFound, "not_found", "instructor not found")
		return
	}
	next := in.model()
	next.CreatedAt = current.CreatedAt
	next.Courses = current.Courses
	i, err := h.Instructors.UpdateInstructor(r.Context(), next)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, i)
}

func (h *Handlers) GetInstructor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	i, err := h.Instructors.RetrieveInstructor(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if i == nil {
		h.respondError(w, http.StatusNotFound, "not_found", "instructor not found")
		return
	}
	h.respondJSON(w, http.StatusOK, i)
}

// POST /api/instructors/course/{courseID}
func (h *Handlers) CreateInstructorForCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseID")
	if !ok {
		return
	}
	var in instructorInput
	if !h.decode(w, r, &in) {
		return
	}
	in.ID = 0
	i, err := h.Instructors.AddInstructorAndAssignToCourse(r.Context(), in.model(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, i)
}
