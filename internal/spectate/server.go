package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-whackamole/internal/layout"
	"github.com/vovakirdan/tui-whackamole/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentRuns(layout string, limit int) ([]storage.Run, error)
	RunByID(runID string) (*storage.Run, error)
}

// Server exposes the hub and the score tables over HTTP.
type Server struct {
	hub     *Hub
	scores  ScoreSource
	logger  *log.Logger
	started time.Time
}

// NewServer creates a server. scores may be nil, in which case the score
// endpoints answer 503.
func NewServer(hub *Hub, scores ScoreSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = hub.logger
	}
	return &Server{hub: hub, scores: scores, logger: logger, started: time.Now()}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/scores", s.handleScores)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{runID}", s.handleRun)
	})

	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("spectator server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type healthResponse struct {
	Status     string `json:"status"`
	Spectators int    `json:"spectators"`
	Uptime     string `json:"uptime"`
	Scores     bool   `json:"scores"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Spectators: s.hub.Clients(),
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Scores:     s.scores != nil,
	})
}

type scoreRow struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type scoresResponse struct {
	Layout string     `json:"layout"`
	Scores []scoreRow `json:"scores"`
}

// handleScores serves /api/scores?layout=ID&limit=N.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if !s.requireScores(w) {
		return
	}
	layoutID, ok := s.layoutParam(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	entries, err := s.scores.TopScores(layout.ScoreKey(layoutID), limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	resp := scoresResponse{Layout: layoutID, Scores: make([]scoreRow, len(entries))}
	for i, e := range entries {
		resp.Scores[i] = scoreRow{Rank: i + 1, Score: e.Score, CreatedAt: e.CreatedAt.UTC()}
	}
	writeJSON(w, http.StatusOK, resp)
}

type runResponse struct {
	RunID       string    `json:"run_id"`
	Layout      string    `json:"layout"`
	Score       int       `json:"score"`
	BenignHits  int       `json:"benign_hits"`
	HostileHits int       `json:"hostile_hits"`
	Spawned     int       `json:"spawned"`
	Missed      int       `json:"missed"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRunResponse(r storage.Run) runResponse {
	return runResponse{
		RunID:       r.RunID,
		Layout:      r.Layout,
		Score:       r.Score,
		BenignHits:  r.BenignHits,
		HostileHits: r.HostileHits,
		Spawned:     r.Spawned,
		Missed:      r.Missed,
		Duration:    r.Duration,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// handleRuns serves /api/runs?layout=ID&limit=N. No layout means every layout.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireScores(w) {
		return
	}
	layoutID := r.URL.Query().Get("layout")
	if layoutID != "" && !layout.Exists(layoutID) {
		writeError(w, http.StatusBadRequest, "unknown layout "+strconv.Quote(layoutID))
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	runs, err := s.scores.RecentRuns(layoutID, limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	out := make([]runResponse, len(runs))
	for i, run := range runs {
		out[i] = toRunResponse(run)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireScores(w) {
		return
	}
	run, err := s.scores.RunByID(chi.URLParam(r, "runID"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(*run))
}

func (s *Server) requireScores(w http.ResponseWriter) bool {
	if s.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "scores are not available")
		return false
	}
	return true
}

func (s *Server) layoutParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("layout")
	if id == "" {
		id = layout.DefaultID
	}
	if !layout.Exists(id) {
		writeError(w, http.StatusBadRequest, "unknown layout "+strconv.Quote(id))
		return "", false
	}
	return id, true
}

func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return min(n, maxLimit), true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client went away; nothing left to report to
	json.NewEncoder(w).Encode(v)
}
