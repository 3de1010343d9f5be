package api

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter builds the versioned route table.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/v1/health", h.Health).Methods("GET")
	r.HandleFunc("/api/v1/assessments", h.CreateAssessment).Methods("POST")
	r.HandleFunc("/api/v1/assessments", h.ListAssessments).Methods("GET")
	r.HandleFunc("/api/v1/assessments/{id}", h.GetAssessment).Methods("GET")
	r.HandleFunc("/api/v1/assessments/{id}/timeline", h.GetTimeline).Methods("GET")

	return r
}

// Server wraps an HTTP server with engine-specific routing.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a Server that binds to the given address. Requests
// are access-logged to stdout and handler panics are recovered.
func NewServer(h *Handler, listenAddr string) *Server {
	router := NewRouter(h)
	wrapped := handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, router))

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: wrapped,
	}

	return &Server{httpServer: srv}
}

// Start begins listening for HTTP connections. Blocks until the server stops.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
