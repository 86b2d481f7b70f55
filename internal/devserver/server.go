// Package devserver serves the restaurant REST API the terminal client
// talks to, backed by the sqlite store.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atomicstack/confusion-tui/internal/api"
	"github.com/atomicstack/confusion-tui/internal/devserver/store"
	"github.com/atomicstack/confusion-tui/internal/menu"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Options tunes a Server. Zero values are usable.
type Options struct {
	Logger zerolog.Logger
	// Delay is added before every response to exercise client spinners.
	Delay time.Duration
	Now   func() time.Time
	NewID func() string
}

type Server struct {
	store *store.Store
	log   zerolog.Logger
	delay time.Duration
	now   func() time.Time
	newID func() string
}

func New(st *store.Store, opts Options) *Server {
	s := &Server{
		store: st,
		log:   opts.Logger,
		delay: opts.Delay,
		now:   opts.Now,
		newID: opts.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Handler returns the routed API wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dishes", s.listDishes)
	mux.HandleFunc("GET /dishes/{id}", s.getDish)
	mux.HandleFunc("PUT /dishes/{id}", s.putDish)
	mux.HandleFunc("GET /feedback", s.listFeedback)
	mux.HandleFunc("POST /feedback", s.createFeedback)
	return s.logRequests(s.withDelay(mux))
}

func (s *Server) listDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := s.store.Dishes(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dishes)
}

func (s *Server) getDish(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	dish, err := s.store.Dish(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("dish %s not found", id))
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dish)
}

func (s *Server) putDish(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var dish menu.Dish
	if err := decodeBody(w, r, &dish); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if dish.ID != "" && dish.ID != id {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("dish id %s does not match path id %s", dish.ID, id))
		return
	}
	dish.ID = id
	for _, c := range dish.Comments {
		if !menu.ValidRating(c.Rating) {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("rating must be between %d and %d", menu.MinRating, menu.MaxRating))
			return
		}
		if strings.TrimSpace(c.Author) == "" {
			respondWithError(w, http.StatusBadRequest, "comment author is required")
			return
		}
	}
	err := s.store.PutDish(r.Context(), dish)
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("dish %s not found", id))
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	saved, err := s.store.Dish(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, saved)
}

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.Feedback(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, all)
}

func (s *Server) createFeedback(w http.ResponseWriter, r *http.Request) {
	var fb menu.Feedback
	if err := decodeBody(w, r, &fb); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if fb.ContactType == "" {
		fb.ContactType = menu.ContactNone
	}
	ct, err := menu.ParseContactType(string(fb.ContactType))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	fb.ContactType = ct
	fb.ID = s.newID()
	fb.Date = s.now().UTC().Format(menu.CommentTimeLayout)
	if err := s.store.AddFeedback(r.Context(), fb); err != nil {
		s.internalError(w, r, err)
		return
	}
	s.log.Info().Str("id", fb.ID).Str("name", fb.FullName()).Msg("feedback received")
	respondWithJSON(w, http.StatusCreated, fb)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	respondWithError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) withDelay(next http.Handler) http.Handler {
	if s.delay <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sleep(r.Context(), s.delay); err != nil {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Str("request_id", r.Header.Get(api.RequestIDHeader)).
			Msg("request")
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *loggingResponseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"message": message,
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
