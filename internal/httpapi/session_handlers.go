package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/store"
)

func (r *Router) handleCreateSession(w http.ResponseWriter, req *http.Request) {
	var body struct {
		StudentName *string `json:"studentName"`
	}
	_ = json.NewDecoder(req.Body).Decode(&body) // body is optional

	sessionID, err := r.store.CreateSession(req.Context(), body.StudentName)
	if err != nil {
		r.logger.Printf("create session: %v", err)
		captureError(req, err, "create session")
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	r.eventLog.LogAsync(sessionID, eventlog.EventSessionStarted, nil)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"sessionId": sessionID,
	})
}

func (r *Router) handleListSessions(w http.ResponseWriter, req *http.Request) {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	sessions, err := r.store.ListSessions(req.Context(), limit)
	if err != nil {
		r.logger.Printf("list sessions: %v", err)
		captureError(req, err, "list sessions")
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"sessions": sessions,
	})
}

func (r *Router) handleGetSession(w http.ResponseWriter, req *http.Request) {
	sessionID := req.URL.Query().Get("id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID required")
		return
	}

	session, err := r.store.GetSession(req.Context(), sessionID)
	if err != nil {
		r.logger.Printf("get session: %v", err)
		captureError(req, err, "get session")
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	messages, err := r.store.GetMessages(req.Context(), sessionID)
	if err != nil {
		r.logger.Printf("get messages: %v", err)
		captureError(req, err, "get messages")
		writeError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}
	progress, err := r.store.GetProgress(req.Context(), sessionID)
	if err != nil {
		r.logger.Printf("get progress: %v", err)
		progress = nil
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"session":  session,
		"messages": messages,
		"progress": progress,
	})
}

func (r *Router) handleSaveMessage(w http.ResponseWriter, req *http.Request) {
	var body struct {
		SessionID string `json:"sessionId"`
		Role      string `json:"role"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SessionID == "" || body.Role == "" || body.Content == "" {
		writeError(w, http.StatusBadRequest, "sessionId, role, and content are required")
		return
	}
	if body.Role != "user" && body.Role != "assistant" {
		writeError(w, http.StatusBadRequest, "role must be user or assistant")
		return
	}

	if err := r.store.SaveMessage(req.Context(), body.SessionID, body.Role, body.Content); err != nil {
		r.logger.Printf("save message: %v", err)
		captureError(req, err, "save message")
		writeError(w, http.StatusInternalServerError, "failed to save message")
		return
	}

	// Increment message count
	if err := r.store.UpdateProgress(req.Context(), body.SessionID, nil, 0, 0); err != nil {
		r.logger.Printf("update progress: %v", err)
	}

	r.eventLog.LogAsync(body.SessionID, eventlog.EventMessageSent, map[string]any{"role": body.Role})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (r *Router) handleGetProfile(w http.ResponseWriter, req *http.Request) {
	sessionID := req.URL.Query().Get("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID required")
		return
	}

	profile, err := r.store.GetUserProfile(req.Context(), sessionID)
	if err != nil {
		r.logger.Printf("get profile: %v", err)
		captureError(req, err, "get profile")
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": profile,
		// Ready-to-use context string for the tutor's system prompt
		"context": store.ProfileContext(profile),
	})
}

func (r *Router) handleUpdateProfile(w http.ResponseWriter, req *http.Request) {
	var body struct {
		SessionID         string          `json:"sessionId"`
		Interests         []string        `json:"interests"`
		CommonErrors      json.RawMessage `json:"common_errors"`
		Level             *string         `json:"level"`
		Summary           *string         `json:"summary"`
		IncrementMessages bool            `json:"incrementMessages"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID required")
		return
	}

	update := store.ProfileUpdate{
		Interests:         body.Interests,
		CommonErrors:      body.CommonErrors,
		Level:             body.Level,
		Summary:           body.Summary,
		IncrementMessages: body.IncrementMessages,
	}
	if err := r.store.UpsertProfile(req.Context(), body.SessionID, update); err != nil {
		r.logger.Printf("update profile: %v", err)
		captureError(req, err, "update profile")
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	profile, err := r.store.GetUserProfile(req.Context(), body.SessionID)
	if err != nil {
		r.logger.Printf("reload profile: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": profile,
	})
}

func (r *Router) handleDBSetup(w http.ResponseWriter, req *http.Request) {
	if err := r.store.Setup(req.Context()); err != nil {
		r.logger.Printf("db setup: %v", err)
		captureError(req, err, "db setup")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := r.eventLog.Setup(req.Context()); err != nil {
		r.logger.Printf("eventlog setup: %v", err)
		captureError(req, err, "eventlog setup")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Database tables created successfully!",
		"tables":  []string{"sessions", "messages", "progress", "user_profiles", "scenario_progress", "session_events"},
	})
}
