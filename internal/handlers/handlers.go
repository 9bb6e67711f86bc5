package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skistation/resort/internal/logger"
	"github.com/skistation/resort/internal/models"
	"github.com/skistation/resort/internal/services"
	"github.com/skistation/resort/internal/store"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Handlers exposes the resort services as JSON over HTTP.
type Handlers struct {
	Pistes        *services.PisteService
	Skiers        *services.SkierService
	Courses       *services.CourseService
	Instructors   *services.InstructorService
	Registrations *services.RegistrationService

	db  pinger
	log *logger.Logger
}

func New(b store.Backend, log *logger.Logger) *Handlers {
	return &Handlers{
		Pistes:        services.NewPisteService(b, log),
		Skiers:        services.NewSkierService(b),
		Courses:       services.NewCourseService(b),
		Instructors:   services.NewInstructorService(b, log),
		Registrations: services.NewRegistrationService(b, log),
		db:            b,
		log:           log.With("component", "http"),
	}
}

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := apiResponse{Success: status >= 200 && status < 300, Data: data}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("failed to encode error response", "error", err)
	}
}

// fail maps a service error onto a status code.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrDuplicateRegistration), errors.Is(err, store.ErrConflict):
		h.respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, models.ErrInvalidEnum):
		h.respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// idParam reads a positive numeric URL parameter, writing a 400 when it is not one.
func (h *Handlers) idParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.respondError(w, http.StatusBadRequest, "validation_error", fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
		return 0, false
	}
	return uint(id), true
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.log.Warn("health check failed", "error", err)
		h.respondError(w, http.StatusServiceUnavailable, "not_ready", "database unavailable")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
