// Package server exposes the extraction cascade over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/Koipioy/forkcast-backend/internal/cascade"
	"github.com/Koipioy/forkcast-backend/internal/diagnostics"
	"github.com/Koipioy/forkcast-backend/internal/httputil"
	"github.com/Koipioy/forkcast-backend/internal/media"
)

// Runner runs an extraction cascade for one URL.
type Runner interface {
	Run(ctx context.Context, pageURL string) (*media.Outcome, *cascade.Failure)
}

// VersionProber reports the metadata extractor's availability and version.
type VersionProber interface {
	Version(ctx context.Context) (string, error)
}

// Server holds the request handlers and their collaborators.
type Server struct {
	runner     Runner
	prober     VersionProber
	tracker    *diagnostics.Tracker
	strategies []string
	version    string
}

// New creates a Server. strategies is the configured cascade order, echoed
// by the status endpoint.
func New(runner Runner, prober VersionProber, tracker *diagnostics.Tracker, strategies []string, version string) *Server {
	return &Server{
		runner:     runner,
		prober:     prober,
		tracker:    tracker,
		strategies: strategies,
		version:    version,
	}
}

// Handler returns the full HTTP handler: routes wrapped in permissive CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/transcribe", s.handleTranscribe)

	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(mux)
}

type transcribeRequest struct {
	URL string `json:"url"`
}

type transcribeResponse struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Transcription string `json:"transcription,omitempty"`
	VideoURL      string `json:"video_url,omitempty"`
	Success       bool   `json:"success"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method not allowed"})
		return
	}

	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body"})
		return
	}
	if err := httputil.ValidateURL(req.URL); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid URL: must be an absolute http(s) URL"})
		return
	}

	log.Printf("processing transcription request for: %s", req.URL)

	outcome, failure := s.runner.Run(r.Context(), req.URL)
	if failure != nil {
		log.Printf("extraction failed for %s: status=%d cause=%v", req.URL, failure.Status, failure.Cause)
		writeJSON(w, failure.Status, map[string]string{"detail": failure.Message})
		return
	}

	writeJSON(w, http.StatusOK, transcribeResponse{
		URL:           req.URL,
		Title:         outcome.Title,
		Transcription: outcome.Transcription,
		VideoURL:      outcome.MediaURL,
		Success:       true,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleStatus reports operational diagnostics. It never fails: a broken
// extractor dependency degrades the body, not the response.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": int64(s.tracker.Uptime().Seconds()),
		"strategies":     s.strategies,
		"endpoints":      endpointList(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if v, err := s.prober.Version(ctx); err != nil {
		body["ytdlp_available"] = false
		body["status"] = "error"
		body["error"] = err.Error()
	} else {
		body["ytdlp_available"] = true
		body["ytdlp_version"] = v
	}

	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Forkcast Backend API",
		"endpoints": endpointList(),
	})
}

func endpointList() map[string]string {
	return map[string]string{
		"GET /":            "This message",
		"GET /health":      "Health check",
		"GET /status":      "Operational diagnostics",
		"POST /transcribe": "Get video transcription or direct media URL",
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
