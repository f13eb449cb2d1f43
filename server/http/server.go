package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/w-h-a/recall"
	"github.com/w-h-a/recall/pipeline"
)

type Server struct {
	options Options
	client  *recall.Client
	server  *http.Server
}

func (s *Server) Run() error {
	slog.InfoContext(s.options.Context, "http server listening", "address", s.options.Address)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input string `json:"input"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := s.client.Send(r.Context(), req.Input)
	switch {
	case errors.Is(err, pipeline.ErrTurnInFlight):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, pipeline.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reply":             turn.Reply,
		"context_size":      len(turn.Context),
		"generation_failed": turn.GenerationFailed,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); len(raw) > 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	history, err := s.client.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": history})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.client.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"error": detail})
}

func logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		slog.InfoContext(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

func NewServer(client *recall.Client, opts ...Option) *Server {
	options := NewOptions(opts...)

	s := &Server{
		options: options,
		client:  client,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/chat", s.handleChat).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/history", s.handleHistory).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/history", s.handleClear).Methods(http.MethodDelete)

	var handler http.Handler = router
	handler = logRequests(handler)
	for i := len(options.Middleware) - 1; i >= 0; i-- {
		handler = options.Middleware[i](handler)
	}

	s.server = &http.Server{
		Addr:    options.Address,
		Handler: handler,
	}

	return s
}
