package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ytget/ytdl-desktop/internal/logging"
)

// Server defaults
const (
	DefaultListenAddr   = "127.0.0.1:17431"
	DefaultMaxBodyBytes = 64 << 20

	InvokePathPrefix = "/invoke/"
	CommandsPath     = "/commands"

	readHeaderTimeout = 10 * time.Second
)

// Options configures the bridge HTTP transport
type Options struct {
	ListenAddr     string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// invokeResponse is the JSON envelope returned for every invocation
type invokeResponse struct {
	ID     string `json:"id,omitempty"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Server exposes a Registry to the embedded web UI over loopback HTTP.
// Each request is handled on its own goroutine.
type Server struct {
	registry   *Registry
	opts       Options
	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex
	done       chan struct{}
}

// NewServer creates a bridge server for registry
func NewServer(registry *Registry, opts Options) *Server {
	if opts.ListenAddr == "" {
		opts.ListenAddr = DefaultListenAddr
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		registry: registry,
		opts:     opts,
	}
}

// Handler returns the routed HTTP handler with CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+InvokePathPrefix+"{command}", s.handleInvoke)
	mux.HandleFunc("GET "+CommandsPath, s.handleCommands)

	return CORSMiddleware(s.opts.AllowedOrigins, mux)
}

// Start binds the listen address and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return errors.New("bridge server already started")
	}

	ln, err := net.Listen("tcp", s.opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.ListenAddr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("bridge server stopped", logging.Fields{logging.FieldError: err})
		}
	}()

	logging.Info("bridge listening", logging.Fields{logging.FieldAddr: ln.Addr().String()})
	return nil
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.ListenAddr
}

// URL returns the base URL the web UI should call
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Shutdown stops accepting requests and waits for in-flight invocations
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.httpServer, s.done
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown bridge: %w", err)
	}
	<-done
	return nil
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	command := r.PathValue("command")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, invokeResponse{
				Error: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, invokeResponse{Error: fmt.Sprintf("read request body: %v", err)})
		return
	}

	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, invokeResponse{Error: "request body is not valid JSON"})
		return
	}

	id, result, err := s.registry.Invoke(r.Context(), command, body)
	if err != nil {
		writeJSON(w, statusForError(err), invokeResponse{ID: id, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, invokeResponse{ID: id, Result: result})
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"commands": s.registry.Commands()})
}

// statusForError maps invocation errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgs):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("write response failed", logging.Fields{logging.FieldError: err})
	}
}
