// Package server exposes sessions over a small JSON API. Each session owns an
// independent history; the store only maps IDs to sessions.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"self_critic_writer/pipeline"
	"self_critic_writer/report"
)

type Server struct {
	generator *pipeline.Generator
	critic    *pipeline.Critic
	cfg       report.Config
	store     *sessionStore
	logger    *log.Logger
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*pipeline.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*pipeline.Session)}
}

func (s *sessionStore) set(id string, sess *pipeline.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*pipeline.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func New(g *pipeline.Generator, c *pipeline.Critic, cfg report.Config, logger *log.Logger) (*Server, error) {
	if g == nil || c == nil {
		return nil, errors.New("generator and critic are required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		generator: g,
		critic:    c,
		cfg:       cfg,
		store:     newStore(),
		logger:    logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions", s.handleSessionCreate)
	mux.HandleFunc("/api/sessions/", s.handleSessionByID)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type sessionCreateReq struct {
	Topic   string `json:"topic"`
	Length  string `json:"length"`
	Improve bool   `json:"improve"`

	// Loop settings; zero values fall back to config.
	Threshold     float64 `json:"threshold,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

type improveReq struct {
	Threshold     float64 `json:"threshold,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

type sessionResp struct {
	SessionID    string                     `json:"session_id"`
	Topic        string                     `json:"topic"`
	Latest       pipeline.IterationRecord   `json:"latest"`
	History      []pipeline.IterationRecord `json:"history"`
	ThresholdMet bool                       `json:"threshold_met,omitempty"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req sessionCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	sess := pipeline.NewSession(id, req.Topic, pipeline.ParseLengthTier(req.Length), s.generator, s.critic)

	var (
		rec pipeline.IterationRecord
		met bool
		err error
	)
	if req.Improve {
		rec, met, err = sess.ImproveUntil(r.Context(), s.threshold(req.Threshold), s.maxIterations(req.MaxIterations))
	} else {
		rec, err = sess.RunIteration(r.Context())
	}
	if err != nil {
		// The only pipeline error is an invalid topic.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.store.set(id, sess)
	writeJSON(w, sessionResp{SessionID: id, Topic: sess.Topic, Latest: rec, History: sess.History, ThresholdMet: met})
}

func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	id, action, _ := strings.Cut(rest, "/")
	sess, ok := s.store.get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	switch {
	case r.Method == http.MethodGet && action == "":
		latest, _ := sess.Latest()
		writeJSON(w, sessionResp{SessionID: id, Topic: sess.Topic, Latest: latest, History: sess.History})
	case r.Method == http.MethodPost && action == "iterations":
		rec, err := sess.RunIteration(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, sessionResp{SessionID: id, Topic: sess.Topic, Latest: rec, History: sess.History})
	case r.Method == http.MethodPost && action == "improve":
		var req improveReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec, met, err := sess.ImproveUntil(r.Context(), s.threshold(req.Threshold), s.maxIterations(req.MaxIterations))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, sessionResp{SessionID: id, Topic: sess.Topic, Latest: rec, History: sess.History, ThresholdMet: met})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// --- Helpers ---

func (s *Server) threshold(v float64) float64 {
	if v > 0 {
		return v
	}
	return s.cfg.Pipeline.QualityThreshold
}

func (s *Server) maxIterations(v int) int {
	if v > 0 {
		return v
	}
	return s.cfg.Pipeline.MaxIterations
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("[http] %s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
