package dictionary

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxSuggestions bounds the suggestion strings returned for unknown words.
const maxSuggestions = 5

// Server answers dictionary lookups from a fixed word list using the same
// response shape as the remote dictionary. Point the client URL at
// http://host/json/%s to play without network access.
type Server struct {
	known  map[string]struct{}
	sorted []string
	logger *log.Logger
	router chi.Router
}

// NewServer builds the HTTP handler for the given word list.
func NewServer(list []string, logger *log.Logger) *Server {
	s := &Server{
		known:  make(map[string]struct{}, len(list)),
		logger: logger,
	}
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := s.known[w]; dup {
			continue
		}
		s.known[w] = struct{}{}
		s.sorted = append(s.sorted, w)
	}
	sort.Strings(s.sorted)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/json/{word}", s.handleLookup)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "words": len(s.sorted)})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	word := strings.ToLower(chi.URLParam(r, "word"))
	if word == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
		return
	}

	if _, ok := s.known[word]; ok {
		writeJSON(w, http.StatusOK, []Entry{NewEntry(word)})
		return
	}
	writeJSON(w, http.StatusOK, s.suggest(word))
}

// suggest returns known words sharing the longest available prefix with
// word, the way real dictionaries answer misses with bare strings.
func (s *Server) suggest(word string) []string {
	out := []string{}
	for n := min(len(word), 3); n > 0 && len(out) == 0; n-- {
		prefix := word[:n]
		i := sort.SearchStrings(s.sorted, prefix)
		for ; i < len(s.sorted) && strings.HasPrefix(s.sorted[i], prefix); i++ {
			out = append(out, s.sorted[i])
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if s.logger != nil {
			s.logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
