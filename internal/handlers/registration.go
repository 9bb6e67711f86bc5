package handlers

import (
	"net/http"

	"github.com/skistation/resort/internal/models"
)

type registrationInput struct {
	NumWeek int `json:"numWeek"`
}

func (h *Handlers) decodeRegistration(w http.ResponseWriter, r *http.Request) (*models.Registration, bool) {
	var in registrationInput
	if !h.decode(w, r, &in) {
		return nil, false
	}
	return &models.Registration{NumWeek: in.NumWeek}, true
}

// POST /api/registrations/skier/{skierID}
func (h *Handlers) RegisterSkier(w http.ResponseWriter, r *http.Request) {
	skierID, ok := h.idParam(w, r, "skierID")
	if !ok {
		return
	}
	reg, ok := h.decodeRegistration(w, r)
	if !ok {
		return
	}
	saved, err := h.Registrations.AddRegistrationAndAssignToSkier(r.Context(), reg, skierID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, saved)
}

// PUT /api/registrations/{id}/course/{courseID}
func (h *Handlers) AssignCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	courseID, ok := h.idParam(w, r, "courseID")
	if !ok {
		return
	}
	saved, err := h.Registrations.AssignRegistrationToCourse(r.Context(), id, courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, saved)
}

// POST /api/registrations/skier/{skierID}/course/{courseID}
func (h *Handlers) RegisterSkierForCourse(w http.ResponseWriter, r *http.Request) {
	skierID, ok := h.idParam(w, r, "skierID")
	if !ok {
		return
	}
	courseID, ok := h.idParam(w, r, "courseID")
	if !ok {
		return
	}
	reg, ok := h.decodeRegistration(w, r)
	if !ok {
		return
	}
	saved, err := h.Registrations.AddRegistrationAndAssignToSkierAndCourse(r.Context(), reg, skierID, courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, saved)
}

func (h *Handlers) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	reg, err := h.Registrations.RetrieveRegistration(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if reg == nil {
		h.respondError(w, http.StatusNotFound, "not_found", "registration not found")
		return
	}
	h.respondJSON(w, http.StatusOK, reg)
}

// GET /api/registrations/skier/{skierID}
func (h *Handlers) ListSkierRegistrations(w http.ResponseWriter, r *http.Request) {
	skierID, ok := h.idParam(w, r, "skierID")
	if !ok {
		return
	}
	regs, err := h.Registrations.RetrieveRegistrationsBySkier(r.Context(), skierID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, regs)
}

// GET /api/registrations/instructor/{instructorID}/weeks?support=SKI
func (h *Handlers) InstructorWeeks(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := h.idParam(w, r, "instructorID")
	if !ok {
		return
	}
	support, err := models.ParseSupport(r.URL.Query().Get("support"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	weeks, err := h.Registrations.NumWeeksCourseOfInstructorBySupport(r.Context(), instructorID, support)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, weeks)
}
