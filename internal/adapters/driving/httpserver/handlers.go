package httpserver

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	mcpadapter "github.com/custodia-labs/duxt-mcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

//go:embed landing.html
var landingHTML string

var landingTemplate = template.Must(template.New("landing").Parse(landingHTML))

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Server     string `json:"server"`
	Version    string `json:"version"`
	Docs       int    `json:"docs"`
	Generation string `json:"generation,omitempty"`
	LoadedAt   string `json:"loaded_at,omitempty"`

	// LastReload is set once a scheduled reload has run.
	LastReload *ReloadStatus `json:"last_reload,omitempty"`
}

// ReloadStatus summarises one scheduled reload.
type ReloadStatus struct {
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Docs       int    `json:"docs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type landingData struct {
	Name     string
	Version  string
	Docs     int
	Sections []string
	LoadedAt string
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.List(r.Context())
	if err != nil {
		logger.Error("health: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "documents unavailable")
		return
	}

	snap := s.documents.Snapshot(r.Context())
	resp := HealthResponse{
		Status:     "ok",
		Server:     mcpadapter.Name,
		Version:    mcpadapter.Version,
		Docs:       len(docs),
		Generation: snap.Generation,
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadedAt = snap.LoadedAt.UTC().Format(time.RFC3339)
	}
	if s.reloads != nil {
		if last, ok := s.reloads.LastResult(); ok {
			resp.LastReload = &ReloadStatus{
				StartedAt:  last.StartedAt.UTC().Format(time.RFC3339),
				DurationMS: last.Duration().Milliseconds(),
				Success:    last.Success,
				Error:      last.Error,
				Docs:       last.Documents,
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	snap := s.documents.Snapshot(r.Context())
	data := landingData{
		Name:     mcpadapter.Name,
		Version:  mcpadapter.Version,
		Docs:     snap.Count,
		Sections: snap.Sections,
	}
	if !snap.LoadedAt.IsZero() {
		data.LoadedAt = snap.LoadedAt.UTC().Format(time.RFC3339)
	}

	var buf bytes.Buffer
	if err := landingTemplate.Execute(&buf, data); err != nil {
		logger.Error("render landing page: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func methodNotAllowed(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", http.MethodPost)
		writeJSONError(w, http.StatusMethodNotAllowed, message)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("write response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
