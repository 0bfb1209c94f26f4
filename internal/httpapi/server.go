package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/omarshaarawi/bigdogpool/internal/api/pool"
	"github.com/omarshaarawi/bigdogpool/internal/config"
	"github.com/omarshaarawi/bigdogpool/internal/contention"
	"github.com/omarshaarawi/bigdogpool/internal/models"
)

const (
	maxBodyBytes          = 1 << 20
	defaultComputeTimeout = 10 * time.Second
)

type ContentionService interface {
	SeasonContenders(ctx context.Context, seasonID string, week int) (models.ContentionReport, error)
	Options() contention.Options
}

type Server struct {
	svc            ContentionService
	router         chi.Router
	computeTimeout time.Duration
}

type contendersRequest struct {
	contention.Input
	AllowTies *bool `json:"allowTies,omitempty"`
}

type contendersResponse struct {
	AllowTies bool            `json:"allowTies"`
	Result    map[string]bool `json:"result"`
	Alive     []string        `json:"alive"`
}

func New(cfg config.HTTP, svc ContentionService) *Server {
	s := &Server{
		svc:            svc,
		router:         chi.NewRouter(),
		computeTimeout: cfg.ComputeTimeout,
	}
	if s.computeTimeout <= 0 {
		s.computeTimeout = defaultComputeTimeout
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.routes()

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/seasons/{seasonID}/weeks/{weekNumber}/contenders", s.handleWeekContenders)
		r.Post("/contenders", s.handleComputeContenders)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWeekContenders(w http.ResponseWriter, r *http.Request) {
	seasonID, week, err := parseSeasonWeekParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.computeTimeout)
	defer cancel()

	report, err := s.svc.SeasonContenders(ctx, seasonID, week)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleComputeContenders(w http.ResponseWriter, r *http.Request) {
	var req contendersRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	opts := s.svc.Options()
	if req.AllowTies != nil {
		opts.AllowTies = *req.AllowTies
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.computeTimeout)
	defer cancel()

	result, err := contention.ComputeContext(ctx, req.Input, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, contendersResponse{
		AllowTies: opts.AllowTies,
		Result:    result,
		Alive:     result.Alive(req.Members),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contention.ErrTooManyGames):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pool.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		slog.Error("Request failed", "error", err)
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
	})
}

func parseSeasonWeekParams(r *http.Request) (string, int, error) {
	seasonID := chi.URLParam(r, "seasonID")
	if strings.TrimSpace(seasonID) == "" {
		return "", 0, errors.New("seasonID is required")
	}

	week, err := strconv.Atoi(chi.URLParam(r, "weekNumber"))
	if err != nil || week <= 0 {
		return "", 0, fmt.Errorf("invalid weekNumber %q", chi.URLParam(r, "weekNumber"))
	}

	return seasonID, week, nil
}
