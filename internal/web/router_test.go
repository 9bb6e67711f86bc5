package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skistation/resort/internal/config"
	"github.com/skistation/resort/internal/handlers"
	"github.com/skistation/resort/internal/logger"
	"github.com/skistation/resort/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter() http.Handler {
	log := logger.Nop()
	cfg := config.ServerConfig{Addr: ":0", AllowedOrigins: []string{"*"}}
	return Router(cfg, handlers.New(store.NewMemory(), log), log)
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func dataID(t *testing.T, env envelope) uint {
	t.Helper()
	var v struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotZero(t, v.ID)
	return v.ID
}

func TestRouterHealthz(t *testing.T) {
	rec, env := do(t, newTestRouter(), http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
}

func TestRouter_PisteLifecycle(t *testing.T) {
	r := newTestRouter()

	rec, env := do(t, r, http.MethodPost, "/api/pistes", map[string]any{
		"name": "Piste A", "color": "red", "length": 1500, "slope": 25,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := dataID(t, env)

	var p struct {
		Color string `json:"color"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	require.Equal(t, "RED", p.Color)

	rec, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/pistes/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/pistes/%d", id), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/pistes/%d", id), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", env.Error.Code)

	rec, env = do(t, r, http.MethodPost, "/api/pistes", map[string]any{"name": "X", "color": "purple"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", env.Error.Code)
}

func TestRouter_RegistrationFlow(t *testing.T) {
	r := newTestRouter()

	rec, env := do(t, r, http.MethodPost, "/api/skiers", map[string]any{
		"firstName": "John", "lastName": "Doe", "dateOfBirth": "1990-01-01", "city": "Paris",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	skierID := dataID(t, env)

	rec, env = do(t, r, http.MethodPost, "/api/courses", map[string]any{
		"level": 1, "typeCourse": "individual", "support": "snowboard", "price": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	courseID := dataID(t, env)

	rec, env = do(t, r, http.MethodPost, fmt.Sprintf("/api/instructors/course/%d", courseID), map[string]any{
		"firstName": "Alice", "lastName": "Johnson", "dateOfHire": "2015-12-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	instructorID := dataID(t, env)

	path := fmt.Sprintf("/api/registrations/skier/%d/course/%d", skierID, courseID)
	rec, env = do(t, r, http.MethodPost, path, map[string]any{"numWeek": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	regID := dataID(t, env)

	rec, env = do(t, r, http.MethodPost, path, map[string]any{"numWeek": 3})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "conflict", env.Error.Code)

	rec, env = do(t, r, http.MethodPost, fmt.Sprintf("/api/registrations/skier/%d/course/%d", skierID, 999), map[string]any{"numWeek": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/registrations/instructor/%d/weeks?support=snowboard", instructorID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var weeks []int
	require.NoError(t, json.Unmarshal(env.Data, &weeks))
	require.Equal(t, []int{3}, weeks)

	rec, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/registrations/instructor/%d/weeks?support=sled", instructorID), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/registrations/skier/%d", skierID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var regs []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &regs))
	require.Len(t, regs, 1)

	rec, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/registrations/%d/qr.png", regID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec, _ = do(t, r, http.MethodGet, "/api/registrations/4242", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, r, http.MethodGet, "/api/registrations/4242/qr.png", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotNil(t, env.Error)
	require.Equal(t, "not_found", env.Error.Code)
}

func TestRouter_AssignCourseLater(t *testing.T) {
	r := newTestRouter()

	_, env := do(t, r, http.MethodPost, "/api/skiers", map[string]any{"firstName": "Jane"})
	skierID := dataID(t, env)
	_, env = do(t, r, http.MethodPost, "/api/courses", map[string]any{"typeCourse": "COLLECTIVE_ADULT", "support": "SKI"})
	courseID := dataID(t, env)

	rec, env := do(t, r, http.MethodPost, fmt.Sprintf("/api/registrations/skier/%d", skierID), map[string]any{"numWeek": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	regID := dataID(t, env)

	rec, _ = do(t, r, http.MethodPut, fmt.Sprintf("/api/registrations/%d/course/%d", regID, courseID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, http.MethodPut, fmt.Sprintf("/api/registrations/%d/course/%d", regID+10, courseID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_BadInput(t *testing.T) {
	r := newTestRouter()

	rec, env := do(t, r, http.MethodGet, "/api/skiers/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", env.Error.Code)

	rec, _ = do(t, r, http.MethodPost, "/api/skiers", map[string]any{"firstName": "J", "dateOfBirth": "01/02/1990"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodPut, "/api/instructors", map[string]any{"id": 99, "firstName": "Nobody"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
