// Package server exposes the pipeline over HTTP: an index form, a file
// download endpoint and a chart preview.
package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"fetchora/internal/dashboard"
	"fetchora/internal/export"
	"fetchora/internal/ingest"
	"fetchora/internal/pipeline"
)

//go:embed index.html
var indexHTML []byte

type Server struct {
	pipeline *pipeline.Pipeline
}

func New(p *pipeline.Pipeline) *Server {
	return &Server{pipeline: p}
}

// Handler wires routes, request logging and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/fetch", s.handleFetch)
	mux.HandleFunc("/preview", s.handlePreview)
	return cors.Default().Handler(s.withRequestLog(mux))
}

// withRequestLog tags each request with a uuid and logs method, path and
// duration. Exhaustive fetches can run minutes, so duration matters here.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("Request handled",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

type fetchRequest struct {
	APIKey   string `json:"api_key"`
	VideoURL string `json:"video_url"`
	Format   string `json:"format"`
}

// handleFetch runs the pipeline and streams the encoded record set back
// as an attachment.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "Missing api_key")
		return
	}
	if req.VideoURL == "" {
		writeError(w, http.StatusBadRequest, "Missing video_url")
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported format")
		return
	}

	records, err := s.pipeline.Run(r.Context(), req.VideoURL, req.APIKey)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoVideoID) {
			writeError(w, http.StatusBadRequest, "Could not extract video id. Provide a full YouTube URL or video id.")
			return
		}
		slog.Error("Pipeline failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	file, err := export.Encode(records, format)
	if err != nil {
		slog.Error("Encoding failed", "format", string(format), "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", file.MIME)
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Filename)
	w.Write(file.Data)
}

// handlePreview renders the chart dashboard instead of a download.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}
	apiKey := r.FormValue("api_key")
	videoURL := r.FormValue("video_url")
	if apiKey == "" {
		writeError(w, http.StatusBadRequest, "Missing api_key")
		return
	}
	if videoURL == "" {
		writeError(w, http.StatusBadRequest, "Missing video_url")
		return
	}

	records, err := s.pipeline.Run(r.Context(), videoURL, apiKey)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoVideoID) {
			writeError(w, http.StatusBadRequest, "Could not extract video id. Provide a full YouTube URL or video id.")
			return
		}
		slog.Error("Pipeline failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	videoID, _ := ingest.ExtractVideoID(videoURL)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.Render(w, videoID, records); err != nil {
		slog.Error("Dashboard render failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
