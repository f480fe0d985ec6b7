package server

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
)

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// executeRequest uses a pointer so a request whose JSON lacks the key
// entirely is told apart from one submitting an empty program.
type executeRequest struct {
	Code *string `json:"code"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	if !isJSONRequest(r) {
		writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}

	defer r.Body.Close()
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	if req.Code == nil {
		writeError(w, http.StatusBadRequest, "Missing 'code' field in JSON payload")
		return
	}

	// Submissions are not cancelable by the caller; a dropped connection
	// must not kill a run mid-flight. The internal deadline is the only
	// cancellation trigger.
	report := s.exec.Execute(context.WithoutCancel(r.Context()), *req.Code)

	// Execution failures are data, not protocol errors: always 200.
	writeJSON(w, http.StatusOK, report)
}

func isJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}
