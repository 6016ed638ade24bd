package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/llm"
)

type fakeTutor struct {
	reply    *llm.Reply
	err      error
	messages []llm.Message
	opts     llm.RespondOptions
}

func (f *fakeTutor) Respond(_ context.Context, messages []llm.Message, opts llm.RespondOptions) (*llm.Reply, error) {
	f.messages = messages
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func newChatRouter(ai llm.Client) *Router {
	return &Router{
		logger:   testLogger(),
		eventLog: eventlog.New(nil),
		ai:       ai,
	}
}

func TestChatReturnsReplyAndSuggestions(t *testing.T) {
	tutor := &fakeTutor{reply: &llm.Reply{
		Text:        "Nice! Where would you like to travel?",
		Suggestions: []string{"I want to visit Japan", "Somewhere warm"},
	}}
	r := newChatRouter(tutor)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(
		`{"messages": [{"role": "user", "content": "I like travel"}]}`))
	rec := httptest.NewRecorder()
	r.handleChat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Where would you like to travel?") {
		t.Errorf("body missing reply text: %s", body)
	}
	if !strings.Contains(body, "I want to visit Japan") {
		t.Errorf("body missing suggestions: %s", body)
	}
	if len(tutor.messages) != 1 || tutor.messages[0].Content != "I like travel" {
		t.Errorf("tutor messages = %+v", tutor.messages)
	}
}

func TestChatPassesCorrectionMode(t *testing.T) {
	tutor := &fakeTutor{reply: &llm.Reply{Text: "ok"}}
	r := newChatRouter(tutor)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(
		`{"messages": [{"role": "user", "content": "I goed home"}], "correctionMode": true}`))
	rec := httptest.NewRecorder()
	r.handleChat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !tutor.opts.CorrectionMode {
		t.Error("CorrectionMode not passed through")
	}
}

func TestChatScenarioContextWithoutSession(t *testing.T) {
	tutor := &fakeTutor{reply: &llm.Reply{Text: "Welcome aboard"}}
	r := newChatRouter(tutor)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(
		`{"messages": [{"role": "user", "content": "hi"}], "scenarioId": "travel-airport"}`))
	rec := httptest.NewRecorder()
	r.handleChat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(tutor.opts.ScenarioContext, "Step 1 of") {
		t.Errorf("ScenarioContext = %q, want first-step context", tutor.opts.ScenarioContext)
	}
}

func TestChatUnknownScenario(t *testing.T) {
	r := newChatRouter(&fakeTutor{reply: &llm.Reply{Text: "ok"}})

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(
		`{"messages": [{"role": "user", "content": "hi"}], "scenarioId": "travel-mars"}`))
	rec := httptest.NewRecorder()
	r.handleChat(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestChatRequiresMessages(t *testing.T) {
	r := newChatRouter(&fakeTutor{reply: &llm.Reply{Text: "ok"}})

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"messages": []}`))
	rec := httptest.NewRecorder()
	r.handleChat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	r := newChatRouter(&fakeTutor{err: context.DeadlineExceeded})

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(
		`{"messages": [{"role": "user", "content": "hi"}]}`))
	rec := httptest.NewRecorder()
	r.handleChat(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unavailable") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
