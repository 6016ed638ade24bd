package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parla-app/parla/internal/scenario"
)

func TestListScenariosWithoutSession(t *testing.T) {
	r := &Router{logger: testLogger()}

	req := httptest.NewRequest("GET", "/api/scenarios", nil)
	rec := httptest.NewRecorder()
	r.handleListScenarios(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success   bool `json:"success"`
		Scenarios []struct {
			ID       string          `json:"id"`
			Category string          `json:"category"`
			Progress json.RawMessage `json:"progress"`
		} `json:"scenarios"`
		Categories []scenario.Category `json:"categories"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if len(resp.Scenarios) != len(scenario.All()) {
		t.Errorf("scenarios = %d, want %d", len(resp.Scenarios), len(scenario.All()))
	}
	if len(resp.Categories) != len(scenario.Categories) {
		t.Errorf("categories = %d, want %d", len(resp.Categories), len(scenario.Categories))
	}
	for _, s := range resp.Scenarios {
		if string(s.Progress) != "null" {
			t.Errorf("scenario %s has progress without a session", s.ID)
		}
	}
}

func TestGetScenarioProgressValidation(t *testing.T) {
	r := &Router{logger: testLogger()}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing both", "", http.StatusBadRequest},
		{"missing scenario", "?sessionId=abc", http.StatusBadRequest},
		{"unknown scenario", "?sessionId=abc&scenarioId=travel-mars", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/scenarios/progress"+tt.query, nil)
			rec := httptest.NewRecorder()
			r.handleGetScenarioProgress(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUpdateScenarioProgressValidation(t *testing.T) {
	r := &Router{logger: testLogger()}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing session", `{"scenarioId": "travel-hotel"}`, http.StatusBadRequest},
		{"unknown scenario", `{"sessionId": "abc", "scenarioId": "travel-mars"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/scenarios/progress", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.handleUpdateScenarioProgress(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSaveMessageValidation(t *testing.T) {
	r := &Router{logger: testLogger()}

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"sessionId": "abc"}`},
		{"bad role", `{"sessionId": "abc", "role": "system", "content": "hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/messages", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.handleSaveMessage(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGetSessionRequiresID(t *testing.T) {
	r := &Router{logger: testLogger()}

	req := httptest.NewRequest("GET", "/api/sessions", nil)
	rec := httptest.NewRecorder()
	r.handleGetSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
