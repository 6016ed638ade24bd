package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		wantText        string
		wantSuggestions []string
	}{
		{
			name:            "well formed",
			content:         "You went to the cinema! What did you see?\n\n---SUGGESTIONS---\nI saw an action movie|It was great|I do not remember the title",
			wantText:        "You went to the cinema! What did you see?",
			wantSuggestions: []string{"I saw an action movie", "It was great", "I do not remember the title"},
		},
		{
			name:     "marker missing keeps full text",
			content:  "Hello! How are you today?",
			wantText: "Hello! How are you today?",
		},
		{
			name:            "blank suggestions are dropped",
			content:         "Nice work!\n---SUGGESTIONS---\nThanks| |Tell me more|",
			wantText:        "Nice work!",
			wantSuggestions: []string{"Thanks", "Tell me more"},
		},
		{
			name:     "empty suggestion block",
			content:  "Nice work!\n---SUGGESTIONS---\n  ",
			wantText: "Nice work!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReply(tt.content)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if !reflect.DeepEqual(got.Suggestions, tt.wantSuggestions) {
				t.Errorf("Suggestions = %v, want %v", got.Suggestions, tt.wantSuggestions)
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	conversational := BuildSystemPrompt(RespondOptions{})
	if !strings.Contains(conversational, "Sandwich Method") {
		t.Error("default prompt missing conversational corrections")
	}

	correction := BuildSystemPrompt(RespondOptions{CorrectionMode: true})
	if !strings.Contains(correction, "Correct form:") {
		t.Error("correction prompt missing explicit format")
	}

	withContext := BuildSystemPrompt(RespondOptions{
		ProfileContext:  "Level: intermediate. Interests: cooking.",
		ScenarioContext: "You are a hotel receptionist.",
	})
	if !strings.Contains(withContext, "ABOUT THIS LEARNER:\nLevel: intermediate") {
		t.Error("profile context not appended")
	}
	if !strings.Contains(withContext, "ACTIVE ROLE-PLAY SCENARIO:\nYou are a hotel receptionist.") {
		t.Error("scenario context not appended")
	}
}

func TestRespondSendsConversationAndParsesReply(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Well done!\n---SUGGESTIONS---\nThank you|What about you?"}},
			},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})
	reply, err := client.Respond(context.Background(), []Message{
		{Role: "user", Content: "I go to the cinema yesterday"},
	}, RespondOptions{CorrectionMode: true})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v, want system prompt followed by the turn", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "Correct form:") {
		t.Error("correction mode not reflected in system prompt")
	}

	if reply.Text != "Well done!" {
		t.Errorf("Text = %q, want %q", reply.Text, "Well done!")
	}
	if len(reply.Suggestions) != 2 {
		t.Errorf("Suggestions = %v, want 2 entries", reply.Suggestions)
	}
}

func TestRespondAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})
	if _, err := client.Respond(context.Background(), nil, RespondOptions{}); err == nil {
		t.Fatal("Respond() error = nil, want API error")
	}
}
