package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"impactsim/internal/sim"
)

// projectHolder guards the in-memory working project.
type projectHolder struct {
	mu      sync.Mutex
	project sim.ProjectDescription
}

func newProjectHolder() *projectHolder {
	return &projectHolder{}
}

func (h *projectHolder) get() sim.ProjectDescription {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.project.Clone()
}

func (h *projectHolder) set(p sim.ProjectDescription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.project = p.Clone()
}

func (h *projectHolder) apply(pivot sim.PivotSuggestion) sim.ProjectDescription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.project.ApplyPivot(pivot)
	return h.project.Clone()
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeStageError maps a staged-call failure onto an HTTP status by its
// tagged kind rather than by message text.
func writeStageError(w http.ResponseWriter, err error) {
	switch sim.Kind(err) {
	case sim.ErrMissingCredential:
		writeError(w, http.StatusUnauthorized, string(sim.ErrMissingCredential), err.Error())
	case sim.ErrNetworkFailure:
		writeError(w, http.StatusBadGateway, string(sim.ErrNetworkFailure), err.Error())
	case sim.ErrDecodeFailure:
		writeError(w, http.StatusBadGateway, string(sim.ErrDecodeFailure), err.Error())
	default:
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	}
}
