// Package server exposes the simulation engine over HTTP. It holds the
// in-memory working project and delegates runs to the engine and
// persistence to the scenario slot.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"impactsim/internal/engine"
	"impactsim/internal/logging"
	"impactsim/internal/sim"
)

// Engine is the subset of the orchestrator the server needs.
type Engine interface {
	Run(ctx context.Context, project sim.ProjectDescription) (*sim.SimulationResult, error)
	Snapshot() engine.Snapshot
	BackgroundErr() *sim.StageError
}

// SlotStore is the persisted scenario slot.
type SlotStore interface {
	Save(p sim.ProjectDescription) error
	Load() (sim.ProjectDescription, bool, error)
}

// Server wires the engine and the slot behind a chi router.
type Server struct {
	engine   Engine
	store    SlotStore
	basePath string

	projects *projectHolder
}

// New creates a server. store may be nil, in which case the scenario
// endpoints report an error.
func New(eng Engine, store SlotStore, basePath string) *Server {
	if basePath == "" {
		basePath = "/v0"
	}
	return &Server{
		engine:   eng,
		store:    store,
		basePath: basePath,
		projects: newProjectHolder(),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route(s.basePath, func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Get("/project", s.handleGetProject)
		r.Put("/project", s.handlePutProject)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/result", s.handleResult)
		r.Post("/pivot", s.handlePivot)
		r.Post("/scenario/save", s.handleScenarioSave)
		r.Post("/scenario/load", s.handleScenarioLoad)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.projects.get())
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	var p sim.ProjectDescription
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid project payload: "+err.Error())
		return
	}
	s.projects.set(p)
	writeJSON(w, http.StatusOK, p)
}

// handleSimulate starts a run and replies once the summary stage has
// resolved. The remaining stages continue after the response is sent;
// clients poll /result for them.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	project := s.projects.get()
	result, err := s.engine.Run(r.Context(), project)
	if err != nil {
		logging.ServerError("simulate failed: %v", err)
		writeStageError(w, err)
		return
	}
	snap := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":  snap.State,
		"runId":  snap.RunID,
		"result": result,
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	snap := s.engine.Snapshot()
	body := map[string]interface{}{
		"state": snap.State,
		"runId": snap.RunID,
	}
	if snap.Result != nil {
		body["result"] = snap.Result
	}
	if bg := s.engine.BackgroundErr(); bg != nil {
		body["backgroundError"] = map[string]string{
			"code":    string(bg.Kind),
			"stage":   bg.Stage,
			"message": bg.Error(),
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handlePivot(w http.ResponseWriter, r *http.Request) {
	var pivot sim.PivotSuggestion
	if err := json.NewDecoder(r.Body).Decode(&pivot); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid pivot payload: "+err.Error())
		return
	}
	updated := s.projects.apply(pivot)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleScenarioSave(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store", "scenario store is not configured")
		return
	}
	project := s.projects.get()
	if err := s.store.Save(project); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleScenarioLoad(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store", "scenario store is not configured")
		return
	}
	project, found, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "no saved scenario")
		return
	}
	s.projects.set(project)
	writeJSON(w, http.StatusOK, project)
}
