package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/revisehq/revise/internal/store"
	"github.com/revisehq/revise/internal/tracker"
)

// Server is the revise HTTP API server.
type Server struct {
	db      *store.DB
	tracker *tracker.Tracker
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server with the given database and version string.
func New(db *store.DB, version string) *Server {
	s := &Server{
		db:      db,
		tracker: tracker.New(db),
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)
		r.Get("/health", s.handleHealth)

		r.Post("/subjects", s.handleCreateSubject)
		r.Get("/subjects", s.handleListSubjects)
		r.Get("/subjects/{subjectID}", s.handleGetSubject)
		r.Put("/subjects/{subjectID}", s.handleUpdateSubject)
		r.Delete("/subjects/{subjectID}", s.handleDeleteSubject)
		r.Get("/subjects/{subjectID}/topics", s.handleTopicsBySubject)

		r.Post("/topics", s.handleCreateTopic)
		r.Get("/topics", s.handleListTopics)
		r.Get("/topics/{topicID}", s.handleGetTopic)
		r.Put("/topics/{topicID}", s.handleUpdateTopic)
		r.Delete("/topics/{topicID}", s.handleDeleteTopic)
		r.Post("/topics/complete-revision", s.handleCompleteRevision)

		r.Get("/revisions/today", s.handleDueToday)
		r.Get("/revisions/upcoming", s.handleUpcoming)
	})

	s.router = r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Spaced Repetition API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a tracker error to its HTTP status: not-found sentinels to
// 404; everything else (invalid ids, empty update payloads, store failures)
// to 400 with the message in the body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if tracker.NotFound(err) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
