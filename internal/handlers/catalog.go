package handlers

import (
	"net/http"

	"github.com/skistation/resort/internal/models"
	"github.com/skistation/resort/internal/services"
)

// Pistes

func (h *Handlers) ListPistes(w http.ResponseWriter, r *http.Request) {
	all, err := h.Pistes.RetrieveAllPistes(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, all)
}

func (h *Handlers) CreatePiste(w http.ResponseWriter, r *http.Request) {
	var in services.PisteInput
	if !h.decode(w, r, &in) {
		return
	}
	p, err := h.Pistes.AddPiste(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, p)
}

func (h *Handlers) GetPiste(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Pistes.RetrievePiste(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeletePiste(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Pistes.RemovePiste(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Skiers

type skierInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth Date   `json:"dateOfBirth"`
	City        string `json:"city"`
}

func (h *Handlers) ListSkiers(w http.ResponseWriter, r *http.Request) {
	all, err := h.Skiers.RetrieveAllSkiers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, all)
}

func (h *Handlers) CreateSkier(w http.ResponseWriter, r *http.Request) {
	var in skierInput
	if !h.decode(w, r, &in) {
		return
	}
	s, err := h.Skiers.AddSkier(r.Context(), &models.Skier{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth.Time,
		City:        in.City,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, s)
}

func (h *Handlers) GetSkier(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	s, err := h.Skiers.RetrieveSkier(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, s)
}

func (h *Handlers) DeleteSkier(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Skiers.RemoveSkier(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Courses

func (h *Handlers) ListCourses(w http.ResponseWriter, r *http.Request) {
	all, err := h.Courses.RetrieveAllCourses(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, all)
}

func (h *Handlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var c models.Course
	if !h.decode(w, r, &c) {
		return
	}
	c.ID = 0
	saved, err := h.Courses.AddCourse(r.Context(), &c)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, saved)
}

func (h *Handlers) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Courses.RetrieveCourse(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Courses.RemoveCourse(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
