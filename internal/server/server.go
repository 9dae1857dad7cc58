// Package server exposes an Inflector as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/inflect?lemma=<lemma>&msd=<msd>
//	POST /api/inflect/batch   body: {"items":[{"lemma":"...","msd":"..."}]}
//	GET  /api/paradigm?lemma=<lemma>[&pos=<pos>]
//	GET  /api/msds
//	GET  /healthz
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflect"
)

// ---- JSON types -----------------------------------------------------------

type predictionJSON struct {
	Lemma string `json:"lemma"`
	MSD   string `json:"msd"`
	Form  string `json:"form"`
}

type batchRequest struct {
	Items []struct {
		Lemma string `json:"lemma"`
		MSD   string `json:"msd"`
	} `json:"items"`
}

type batchResponse struct {
	Results []predictionJSON `json:"results"`
}

type cellJSON struct {
	MSD  string `json:"msd"`
	Form string `json:"form"`
}

type paradigmResponse struct {
	Lemma string     `json:"lemma"`
	Cells []cellJSON `json:"cells"`
	Forms []string   `json:"forms"`
}

type msdsResponse struct {
	MSDs []string `json:"msds"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Prefixing   bool   `json:"prefixing"`
	MSDs        int    `json:"msds"`
	PrefixRules int    `json:"prefix_rules"`
	SuffixRules int    `json:"suffix_rules"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ---- server ---------------------------------------------------------------

// maxBatch bounds the number of items in one batch request.
const maxBatch = 10000

// Server serves predictions from the current Inflector. The inflector
// can be replaced at any time with Swap; requests in flight keep the one
// they started with.
type Server struct {
	current atomic.Pointer[inflect.Inflector]
	logger  *zap.Logger
	handler http.Handler
}

// New returns a server for in. allowedOrigins feeds the CORS policy.
func New(in *inflect.Inflector, logger *zap.Logger, allowedOrigins []string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{logger: logger}
	s.current.Store(in)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/inflect/batch", s.handleBatch)
	mux.HandleFunc("/api/inflect", s.handleInflect)
	mux.HandleFunc("/api/paradigm", s.handleParadigm)
	mux.HandleFunc("/api/msds", s.handleMSDs)
	mux.HandleFunc("/healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	s.handler = c.Handler(s.withRequestID(mux))
	return s
}

// Handler returns the HTTP handler with CORS and request IDs applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Inflector returns the inflector currently serving requests.
func (s *Server) Inflector() *inflect.Inflector {
	return s.current.Load()
}

// Swap replaces the inflector serving requests.
func (s *Server) Swap(in *inflect.Inflector) {
	s.current.Store(in)
}

type ctxKey struct{}

// withRequestID tags every request with an ID, echoed in X-Request-ID
// and in the access log.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode error", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg, RequestID: w.Header().Get("X-Request-ID")})
}

// inflectError maps an inflection failure to a response.
func (s *Server) inflectError(w http.ResponseWriter, err error) {
	if errors.Is(err, inflect.ErrNoInfinitive) {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Error("inflection failed", zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

// ---- handlers -------------------------------------------------------------

func (s *Server) handleInflect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	lemma := r.URL.Query().Get("lemma")
	msd := r.URL.Query().Get("msd")
	if lemma == "" || msd == "" {
		s.writeError(w, http.StatusBadRequest, "missing 'lemma' or 'msd' query parameter")
		return
	}

	form, err := s.Inflector().Inflect(lemma, msd)
	if err != nil {
		s.inflectError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, predictionJSON{Lemma: lemma, MSD: msd, Form: form})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Items) == 0 {
		s.writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'items' array")
		return
	}
	if len(body.Items) > maxBatch {
		s.writeError(w, http.StatusRequestEntityTooLarge, "too many items")
		return
	}

	in := s.Inflector()
	out := make([]predictionJSON, 0, len(body.Items))
	for _, it := range body.Items {
		form, err := in.Inflect(it.Lemma, it.MSD)
		if err != nil {
			s.inflectError(w, err)
			return
		}
		out = append(out, predictionJSON{Lemma: it.Lemma, MSD: it.MSD, Form: form})
	}
	s.writeJSON(w, http.StatusOK, batchResponse{Results: out})
}

func (s *Server) handleParadigm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	lemma := r.URL.Query().Get("lemma")
	if lemma == "" {
		s.writeError(w, http.StatusBadRequest, "missing 'lemma' query parameter")
		return
	}
	pos := inflect.PartOfSpeech(r.URL.Query().Get("pos"))

	table, err := s.Inflector().InflectionTable(lemma, pos)
	if err != nil {
		s.inflectError(w, err)
		return
	}
	cells := make([]cellJSON, 0, len(table.Cells))
	for msd, form := range table.Cells {
		cells = append(cells, cellJSON{MSD: msd, Form: form})
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].MSD < cells[j].MSD
	})
	s.writeJSON(w, http.StatusOK, paradigmResponse{Lemma: lemma, Cells: cells, Forms: table.Forms()})
}

func (s *Server) handleMSDs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.writeJSON(w, http.StatusOK, msdsResponse{MSDs: s.Inflector().MSDs()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	in := s.Inflector()
	m := in.Model()
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Prefixing:   in.Bias().Prefixing(),
		MSDs:        len(m.MSDs()),
		PrefixRules: m.Prefix.Size(),
		SuffixRules: m.Suffix.Size(),
	})
}
