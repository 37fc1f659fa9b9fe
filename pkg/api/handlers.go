package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mktdata/mktverify/pkg/history"
	"github.com/mktdata/mktverify/pkg/verify"
)

// Server holds the API server state
type Server struct {
	store    RunStore
	verifier *verify.Verifier
	config   ServerConfig
}

// NewServer creates a new API server
func NewServer(store RunStore, verifier *verify.Verifier, config ServerConfig) *Server {
	return &Server{
		store:    store,
		verifier: verifier,
		config:   config,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleVerify verifies a server-local capture file and archives the run.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		sendError(w, "Path is required", http.StatusBadRequest)
		return
	}

	reports, passed := s.verifier.VerifyAll([]string{req.Path}, req.ExpectedSum)

	run, err := s.store.RecordRun(reports, passed)
	if err != nil {
		sendError(w, "Failed to record run: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			sendError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		sendError(w, "Failed to list runs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "Run id is required", http.StatusBadRequest)
		return
	}

	run, err := s.store.GetRun(id)
	if err == history.ErrRunNotFound {
		sendError(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to read run: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, run)
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}
