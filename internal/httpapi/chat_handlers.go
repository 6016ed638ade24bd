package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/llm"
	"github.com/parla-app/parla/internal/scenario"
	"github.com/parla-app/parla/internal/store"
)

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// handleChat generates the tutor's next turn. The transcript is supplied
// by the client; sessionId is optional and only enriches the system
// prompt with learner memory and active-scenario context.
func (r *Router) handleChat(w http.ResponseWriter, req *http.Request) {
	var body struct {
		SessionID      string     `json:"sessionId"`
		Messages       []chatTurn `json:"messages"`
		CorrectionMode bool       `json:"correctionMode"`
		ScenarioID     string     `json:"scenarioId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(body.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	opts := llm.RespondOptions{CorrectionMode: body.CorrectionMode}

	if body.SessionID != "" {
		profile, err := r.store.GetUserProfile(req.Context(), body.SessionID)
		if err != nil {
			r.logger.Printf("chat: load profile: %v", err)
		} else {
			opts.ProfileContext = store.ProfileContext(profile)
		}
	}

	if body.ScenarioID != "" {
		sc := scenario.ByID(body.ScenarioID)
		if sc == nil {
			writeError(w, http.StatusNotFound, "Scenario not found")
			return
		}
		step := 0
		if body.SessionID != "" {
			if prog, err := r.store.GetScenarioProgress(req.Context(), body.SessionID, body.ScenarioID); err != nil {
				r.logger.Printf("chat: load scenario progress: %v", err)
			} else if prog != nil {
				step = prog.CurrentStep
			}
		}
		opts.ScenarioContext = sc.StepContext(step)
	}

	messages := make([]llm.Message, 0, len(body.Messages))
	for _, m := range body.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := r.ai.Respond(req.Context(), messages, opts)
	if err != nil {
		r.logger.Printf("chat: %v", err)
		captureError(req, err, "chat completion")
		writeError(w, http.StatusBadGateway, "tutor is unavailable right now")
		return
	}

	r.eventLog.LogAsync(body.SessionID, eventlog.EventTutorReplied, map[string]any{
		"chars":       len(reply.Text),
		"suggestions": len(reply.Suggestions),
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"text":        reply.Text,
		"suggestions": reply.Suggestions,
	})
}
