// Package gateway exposes a small status HTTP API next to the chat bot, for
// dashboards and shell scripts that want task data without going through
// Telegram.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/taskrecap/internal/config"
	"github.com/example/taskrecap/internal/sheet"
)

// TaskChecker looks up open tasks for one assignee.
type TaskChecker interface {
	QueryUndone(ctx context.Context, name string) ([]sheet.Record, error)
}

// Server is the status HTTP server.
type Server struct {
	httpServer *http.Server
	tasks      TaskChecker
}

func NewServer(cfg config.GatewayConfig, tasks TaskChecker) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	s := &Server{tasks: tasks}

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/tasks/undone", s.handleUndone)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: r,
	}
	return s
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	slog.Info("status gateway listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type taskJSON struct {
	Row      int    `json:"row"`
	Project  string `json:"project"`
	Category string `json:"category"`
	SubTask  string `json:"sub_task"`
	Assignor string `json:"assignor,omitempty"`
	Status   string `json:"status"`
}

func (s *Server) handleUndone(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name query parameter is required"})
		return
	}

	records, err := s.tasks.QueryUndone(r.Context(), name)
	if err != nil && !errors.Is(err, sheet.ErrEmptyStore) {
		slog.Error("gateway: task lookup failed", "assignee", name, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "task store unavailable"})
		return
	}

	tasks := make([]taskJSON, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, taskJSON{
			Row:      rec.Row,
			Project:  rec.Project,
			Category: rec.Category,
			SubTask:  rec.SubTask,
			Assignor: rec.Assignor,
			Status:   rec.Status,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"count": len(tasks),
		"tasks": tasks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("gateway: encode response", "error", err)
	}
}
