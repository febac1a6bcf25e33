// Package server exposes the planning pipeline and the room catalog over
// HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/export"
	"github.com/deckwerk/deckplan/pkg/geom"
	"github.com/deckwerk/deckplan/pkg/pipeline"
	"github.com/deckwerk/deckplan/pkg/plan"
	"github.com/deckwerk/deckplan/pkg/store"
)

// Server wires the pipeline runner and the room store into an HTTP API.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// New creates a server. A nil store disables the room catalog endpoints'
// persistence and falls back to an in-memory store.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Store: st, Logger: logger}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", s.handleListRooms)
			r.Post("/", s.handleCreateRoom)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetRoom)
				r.Delete("/", s.handleDeleteRoom)
				r.Post("/plan", s.handleRoomPlan)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// planRequest is the body of POST /api/v1/plan.
type planRequest struct {
	Room        roomInput           `json:"room"`
	Orientation plan.Orientation    `json:"orientation,omitempty"`
	System      plan.SystemType     `json:"system,omitempty"`
	Side        plan.ConnectionSide `json:"side,omitempty"`
	Refresh     bool                `json:"refresh,omitempty"`
}

type roomInput struct {
	Points [][2]float64 `json:"points"`
	Scale  float64      `json:"scale"`
}

func (in roomInput) toRoom() plan.Room {
	pts := make([]geom.Point, len(in.Points))
	for i, p := range in.Points {
		pts[i] = geom.Pt(p[0], p[1])
	}
	return plan.Room{Polygon: geom.NewPolygon(pts...), Scale: in.Scale}
}

// planResponse is the body returned by the plan endpoints.
type planResponse struct {
	Plan  *export.Plan `json:"plan"`
	Stats export.Stats `json:"stats"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	opts := pipeline.Options{
		Room:        req.Room.toRoom(),
		Orientation: req.Orientation,
		System:      req.System,
		Side:        req.Side,
		Refresh:     req.Refresh,
		Logger:      s.Logger,
	}

	p, err := s.Runner.ComputePlan(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{Plan: p, Stats: p.Stats()})
}

// createRoomRequest is the body of POST /api/v1/rooms.
type createRoomRequest struct {
	Name string    `json:"name"`
	Room roomInput `json:"room"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	room := req.Room.toRoom()
	if err := room.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	now := time.Now().UTC()
	rec := &store.Record{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Room:      room,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Put(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// roomPlanRequest is the body of POST /api/v1/rooms/{id}/plan.
// All fields are optional; defaults follow the pipeline.
type roomPlanRequest struct {
	Orientation plan.Orientation    `json:"orientation,omitempty"`
	System      plan.SystemType     `json:"system,omitempty"`
	Side        plan.ConnectionSide `json:"side,omitempty"`
	Refresh     bool                `json:"refresh,omitempty"`
}

func (s *Server) handleRoomPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req roomPlanRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
			return
		}
	}

	opts := pipeline.Options{
		Room:        rec.Room,
		Orientation: req.Orientation,
		System:      req.System,
		Side:        req.Side,
		Refresh:     req.Refresh,
		Logger:      s.Logger,
	}

	p, err := s.Runner.ComputePlan(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec.Plan = p
	rec.UpdatedAt = time.Now().UTC()
	if err := s.Store.Put(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{Plan: p, Stats: p.Stats()})
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.Logger.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidRoom, errors.ErrCodeInvalidFormat,
		errors.ErrCodeUncalibrated:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeRoomNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
