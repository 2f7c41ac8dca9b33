package status

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/tui-deal/internal/storage"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 200
	shutdownTimeout     = 5 * time.Second
)

// ResultLister provides stored results for GET /results.
type ResultLister interface {
	RecentResults(limit int) ([]storage.Result, error)
}

// Server serves hub snapshots as JSON.
type Server struct {
	addr    string
	hub     *Hub
	results ResultLister
	logger  *log.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithResults enables GET /results.
func WithResults(r ResultLister) ServerOption {
	return func(s *Server) {
		s.results = r
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a status server for hub listening on addr.
func NewServer(addr string, hub *Hub, opts ...ServerOption) *Server {
	s := &Server{
		addr:   addr,
		hub:    hub,
		logger: log.Default().WithPrefix("status"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Route("/sessions", func(rr chi.Router) {
		rr.Get("/", s.handleSessions)
		rr.Get("/{id}", s.handleSession)
	})
	if s.results != nil {
		r.Get("/results", s.handleResults)
	}

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("Status endpoint listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down status endpoint")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Deal or No Deal status endpoint. Try /state, /sessions or /results.\n"))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.hub.Len(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	e, ok := s.hub.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no game in progress")
		return
	}
	writeJSON(w, http.StatusOK, entryJSON(e))
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	entries := s.hub.List()
	out := make([]sessionJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, sessionJSON{
			Session:   e.Session,
			GameID:    e.GameID,
			Phase:     e.Snapshot.Phase(),
			Round:     e.Snapshot.Round,
			UpdatedAt: e.UpdatedAt.UTC(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	e, err := s.hub.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entryJSON(e))
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxResultsLimit)
	}

	results, err := s.results.RecentResults(limit)
	if err != nil {
		s.logger.Error("Failed to load results", "err", err)
		writeError(w, http.StatusInternalServerError, "cannot load results")
		return
	}

	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, toResultJSON(res))
	}
	writeJSON(w, http.StatusOK, out)
}

// logRequests logs every request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorJSON{Error: message})
}
