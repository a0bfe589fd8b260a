package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"log/slog"

	"remixd/internal/config"
	"remixd/internal/engine"
	"remixd/internal/logging"
	"remixd/internal/preset"
	"remixd/internal/remix"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Processor handles one upload end to end.
type Processor interface {
	Process(ctx context.Context, upload io.Reader, filename, presetID string) (*remix.Result, error)
}

// Server exposes the HTTP surface: health, preset listing, and processing.
type Server struct {
	bind      string
	logger    *slog.Logger
	processor Processor
	deps      []engine.DepStatus

	listener net.Listener
	server   *http.Server
}

// New constructs the server. deps is the startup dependency snapshot surfaced
// by the health endpoint.
func New(cfg *config.Config, proc Processor, deps []engine.DepStatus, logger *slog.Logger) *Server {
	srv := &Server{
		bind:      cfg.Server.Bind,
		logger:    logger,
		processor: proc,
		deps:      deps,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleHome)
	mux.HandleFunc("/presets", srv.handlePresets)
	mux.HandleFunc("/process", srv.handleProcess)

	// No Read/WriteTimeout: uploads can be large and processing runs for
	// minutes; the engine timeout bounds each request instead.
	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Start listens on the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "online",
		Message: "remixd audio effects service is running",
		Version: Version,
		Endpoints: map[string]string{
			"health":  "/ (GET)",
			"presets": "/presets (GET)",
			"process": "/process (POST)",
		},
		Dependencies: s.deps,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	listing := preset.List()
	items := make([]presetItem, 0, len(listing))
	for _, p := range listing {
		items = append(items, presetItem{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	s.writeJSON(w, http.StatusOK, presetListResponse{Presets: items})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeJSON(w, http.StatusOK, errorResponse{
			Status:  "error",
			Message: "Missing or unreadable file field",
		})
		return
	}
	defer file.Close()
	presetID := r.FormValue("preset")

	result, err := s.processor.Process(r.Context(), file, header.Filename, presetID)
	if err != nil {
		s.log().Error("processing failed",
			logging.String(logging.FieldPreset, presetID),
			logging.Error(err),
		)
		// Failures deliberately keep HTTP 200 with a JSON error body, matching
		// the behaviour existing clients rely on.
		s.writeJSON(w, http.StatusOK, errorBody(err))
		return
	}

	s.streamResult(w, result)
}

func (s *Server) streamResult(w http.ResponseWriter, result *remix.Result) {
	output, err := os.Open(result.OutputPath)
	if err != nil {
		s.log().Error("open output failed", logging.Error(err))
		s.writeJSON(w, http.StatusOK, errorResponse{
			Status:  "error",
			Message: "Processing failed",
		})
		return
	}
	defer output.Close()

	w.Header().Set("Content-Type", "audio/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	if info, err := output.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, output); err != nil {
		s.log().Warn("response stream interrupted", logging.Error(err))
	}
}

func errorBody(err error) errorResponse {
	switch {
	case errors.Is(err, remix.ErrTimeout):
		return errorResponse{Status: "error", Message: "Processing timeout"}
	case errors.Is(err, remix.ErrOutputMissing):
		return errorResponse{Status: "error", Message: "Output file not created"}
	case errors.Is(err, remix.ErrEngine):
		return errorResponse{
			Status:  "error",
			Message: "Processing failed",
			Error:   remix.EngineStderr(err),
		}
	case errors.Is(err, remix.ErrUpload):
		return errorResponse{Status: "error", Message: "Failed to save uploaded file"}
	default:
		return errorResponse{Status: "error", Message: "Processing failed"}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String(logging.FieldComponent, "server"))
	}
	return logging.NewNop()
}
