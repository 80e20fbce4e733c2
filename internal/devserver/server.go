package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
)

// DefaultAddr is where the development backend listens when no address is given.
const DefaultAddr = "localhost:3001"

// DefaultEvaluation is the canned result returned by the evaluate endpoint.
func DefaultEvaluation() idea.Evaluation {
	return idea.Evaluation{
		Scores:         &idea.Scores{Innovation: 6, Feasibility: 9, Impact: 7, Overall: 7},
		Summary:        "A practical idea with a clear path to rollout.",
		Strengths:      []string{"Low cost to trial", "Easy to explain"},
		Considerations: []string{"Needs an owner", "Benefits take time to show"},
		NextSteps:      []string{"Run a two-week pilot", "Collect feedback from the pilot team"},
	}
}

// Options configures the development backend.
type Options struct {
	// Evaluation overrides the canned result. Scores must be present.
	Evaluation *idea.Evaluation
	// FailEvaluations makes every evaluate call answer 500.
	FailEvaluations bool
	// EvaluationDelay is slept before answering an evaluate call.
	EvaluationDelay time.Duration
	Logger          ports.Logger
	Clock           func() time.Time
}

// Server serves the record store and evaluation endpoints from memory under
// /api.
type Server struct {
	router     *chi.Mux
	store      *memoryStore
	logger     ports.Logger
	delay      time.Duration
	failing    atomic.Bool
	mu         sync.RWMutex
	evaluation evaluationJSON
}

// New builds a development backend.
func New(opts Options) (*Server, error) {
	canned := DefaultEvaluation()
	if opts.Evaluation != nil {
		if !opts.Evaluation.Scored() {
			return nil, errors.New("canned evaluation must carry all four scores")
		}
		canned = *opts.Evaluation
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	s := &Server{
		router:     chi.NewRouter(),
		store:      newMemoryStore(clock),
		logger:     logging.OrNoOp(opts.Logger).With("layer", "infrastructure", "component", "devserver"),
		delay:      opts.EvaluationDelay,
		evaluation: toJSON(canned),
	}
	s.failing.Store(opts.FailEvaluations)

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/ideas", s.handleListIdeas)
		r.Post("/ideas", s.handleCreateIdea)
		r.Post("/evaluate", s.handleEvaluate)
	})
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetFailEvaluations toggles failure mode for the evaluate endpoint.
func (s *Server) SetFailEvaluations(fail bool) {
	s.failing.Store(fail)
}

// SetEvaluation replaces the canned result.
func (s *Server) SetEvaluation(evaluation idea.Evaluation) error {
	if !evaluation.Scored() {
		return errors.New("canned evaluation must carry all four scores")
	}
	s.mu.Lock()
	s.evaluation = toJSON(evaluation)
	s.mu.Unlock()
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if strings.TrimSpace(addr) == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "devserver listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		s.logger.Info(ctx, "devserver shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug(r.Context(), "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) handleListIdeas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.list())
}

type createBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *Server) handleCreateIdea(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	draft := idea.Draft{Title: body.Title, Description: body.Description, Category: idea.Category(body.Category)}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := s.store.create(body.Title, body.Description, body.Category)
	s.logger.Info(r.Context(), "idea stored", "idea_id", created.ID, "row_number", created.RowNumber)
	writeJSON(w, http.StatusCreated, created)
}

type evaluateBody struct {
	ID          string `json:"id"`
	RowNumber   int    `json:"rowNumber"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body evaluateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}
	if body.ID == "" || !s.store.exists(body.ID) {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	if s.failing.Load() {
		s.logger.Warn(r.Context(), "evaluation failure injected", "idea_id", body.ID)
		writeError(w, http.StatusInternalServerError, "evaluation service unavailable")
		return
	}

	s.mu.RLock()
	result := s.evaluation
	s.mu.RUnlock()

	s.store.attach(body.ID, result)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func toJSON(evaluation idea.Evaluation) evaluationJSON {
	return evaluationJSON{
		InnovationScore:  evaluation.Scores.Innovation,
		FeasibilityScore: evaluation.Scores.Feasibility,
		ImpactScore:      evaluation.Scores.Impact,
		OverallScore:     evaluation.Scores.Overall,
		Summary:          evaluation.Summary,
		Strengths:        append([]string(nil), evaluation.Strengths...),
		Considerations:   append([]string(nil), evaluation.Considerations...),
		NextSteps:        append([]string(nil), evaluation.NextSteps...),
	}
}
