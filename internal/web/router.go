package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skistation/resort/internal/config"
	"github.com/skistation/resort/internal/handlers"
	"github.com/skistation/resort/internal/logger"
)

func Router(cfg config.ServerConfig, h *handlers.Handlers, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/pistes", func(r chi.Router) {
			r.Get("/", h.ListPistes)
			r.Post("/", h.CreatePiste)
			r.Get("/{id}", h.GetPiste)
			r.Delete("/{id}", h.DeletePiste)
		})

		r.Route("/skiers", func(r chi.Router) {
			r.Get("/", h.ListSkiers)
			r.Post("/", h.CreateSkier)
			r.Get("/{id}", h.GetSkier)
			r.Delete("/{id}", h.DeleteSkier)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Post("/", h.CreateCourse)
			r.Get("/{id}", h.GetCourse)
			r.Delete("/{id}", h.DeleteCourse)
		})

		r.Route("/instructors", func(r chi.Router) {
			r.Get("/", h.ListInstructors)
			r.Post("/", h.CreateInstructor)
			r.Put("/", h.UpdateInstructor)
			r.Get("/{id}", h.GetInstructor)
			r.Post("/course/{courseID}", h.CreateInstructorForCourse)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Get("/{id}", h.GetRegistration)
			r.Get("/{id}/qr.png", h.RegistrationQR)
			r.Put("/{id}/course/{courseID}", h.AssignCourse)
			r.Get("/skier/{skierID}", h.ListSkierRegistrations)
			r.Post("/skier/{skierID}", h.RegisterSkier)
			r.Post("/skier/{skierID}/course/{courseID}", h.RegisterSkierForCourse)
			r.Get("/instructor/{instructorID}/weeks", h.InstructorWeeks)
		})
	})

	return r
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				log.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
