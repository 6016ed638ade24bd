package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/scenario"
)

type scenarioProgressView struct {
	CurrentStep int  `json:"currentStep"`
	Completed   bool `json:"completed"`
	TotalSteps  int  `json:"totalSteps"`
}

func (r *Router) handleListScenarios(w http.ResponseWriter, req *http.Request) {
	sessionID := req.URL.Query().Get("sessionId")

	progressByID := map[string]scenarioProgressView{}
	if sessionID != "" {
		rows, err := r.store.GetAllScenarioProgress(req.Context(), sessionID)
		if err != nil {
			// Continue without progress data
			r.logger.Printf("list scenarios: load progress: %v", err)
		}
		for _, p := range rows {
			progressByID[p.ScenarioID] = scenarioProgressView{
				CurrentStep: p.CurrentStep,
				Completed:   p.Completed,
			}
		}
	}

	type scenarioWithProgress struct {
		scenario.Scenario
		Progress *scenarioProgressView `json:"progress"`
	}
	var out []scenarioWithProgress
	for _, s := range scenario.All() {
		item := scenarioWithProgress{Scenario: s}
		if p, ok := progressByID[s.ID]; ok {
			p.TotalSteps = len(s.Steps)
			item.Progress = &p
		}
		out = append(out, item)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"scenarios":  out,
		"categories": scenario.Categories,
	})
}

func (r *Router) handleGetScenarioProgress(w http.ResponseWriter, req *http.Request) {
	sessionID := req.URL.Query().Get("sessionId")
	scenarioID := req.URL.Query().Get("scenarioId")
	if sessionID == "" || scenarioID == "" {
		writeError(w, http.StatusBadRequest, "Missing sessionId or scenarioId")
		return
	}

	sc := scenario.ByID(scenarioID)
	if sc == nil {
		writeError(w, http.StatusNotFound, "Scenario not found")
		return
	}

	prog, err := r.store.GetScenarioProgress(req.Context(), sessionID, scenarioID)
	if err != nil {
		r.logger.Printf("get scenario progress: %v", err)
		captureError(req, err, "get scenario progress")
		writeError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}

	resp := map[string]any{
		"success":    true,
		"progress":   nil,
		"totalSteps": len(sc.Steps),
	}
	if prog != nil {
		resp["progress"] = map[string]any{
			"currentStep": prog.CurrentStep,
			"completed":   prog.Completed,
			"startedAt":   prog.StartedAt,
			"completedAt": prog.CompletedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (r *Router) handleUpdateScenarioProgress(w http.ResponseWriter, req *http.Request) {
	var body struct {
		SessionID   string `json:"sessionId"`
		ScenarioID  string `json:"scenarioId"`
		CurrentStep int    `json:"currentStep"`
		Completed   bool   `json:"completed"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SessionID == "" || body.ScenarioID == "" {
		writeError(w, http.StatusBadRequest, "Missing sessionId or scenarioId")
		return
	}

	sc := scenario.ByID(body.ScenarioID)
	if sc == nil {
		writeError(w, http.StatusNotFound, "Scenario not found")
		return
	}

	step := sc.ClampStep(body.CurrentStep)
	completed := body.Completed || step >= len(sc.Steps)-1

	if err := r.store.UpdateScenarioProgress(req.Context(), body.SessionID, body.ScenarioID, step, completed); err != nil {
		r.logger.Printf("update scenario progress: %v", err)
		captureError(req, err, "update scenario progress")
		writeError(w, http.StatusInternalServerError, "failed to update progress")
		return
	}

	event := eventlog.EventScenarioAdvanced
	if completed {
		event = eventlog.EventScenarioDone
	}
	r.eventLog.LogAsync(body.SessionID, event, map[string]any{
		"scenario": body.ScenarioID,
		"step":     step,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"currentStep": step,
		"completed":   completed,
		"totalSteps":  len(sc.Steps),
	})
}
