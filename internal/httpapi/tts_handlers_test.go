package httpapi

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/tts"
)

type fakeCredits struct {
	info          *tts.CreditsInfo
	err           error
	fetches       int
	invalidations int
}

func (f *fakeCredits) Fetch(context.Context) (*tts.CreditsInfo, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	info := *f.info
	return &info, nil
}

func (f *fakeCredits) Invalidate() { f.invalidations++ }

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newTTSRouter(upstream string, credits *fakeCredits) *Router {
	return &Router{
		logger:   testLogger(),
		eventLog: eventlog.New(nil),
		eleven:   tts.NewElevenLabsClient(tts.ElevenLabsConfig{APIKey: "test-key", BaseURL: upstream}),
		credits:  credits,
	}
}

func TestSynthesizeProxyStreamsAudio(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Errorf("xi-api-key = %q", got)
		}
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer upstream.Close()

	credits := &fakeCredits{info: &tts.CreditsInfo{Configured: true}}
	r := newTTSRouter(upstream.URL, credits)

	req := httptest.NewRequest("POST", "/api/tts", strings.NewReader(`{"text": "hello"}`))
	rec := httptest.NewRecorder()
	r.handleSynthesize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("Content-Type = %q, want audio/mpeg", got)
	}
	if rec.Body.String() != "mp3-bytes" {
		t.Errorf("body = %q, want audio bytes", rec.Body.String())
	}
	if credits.invalidations != 1 {
		t.Errorf("credits invalidations = %d, want 1", credits.invalidations)
	}
}

func TestSynthesizeProxyMapsQuotaFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"detail": {"message": "insufficient balance"}}`))
	}))
	defer upstream.Close()

	credits := &fakeCredits{info: &tts.CreditsInfo{Configured: true}}
	r := newTTSRouter(upstream.URL, credits)

	req := httptest.NewRequest("POST", "/api/tts", strings.NewReader(`{"text": "hello"}`))
	rec := httptest.NewRecorder()
	r.handleSynthesize(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"code":"QUOTA_EXCEEDED"`) {
		t.Errorf("body missing failure code: %s", body)
	}
	if !strings.Contains(body, "insufficient balance") {
		t.Errorf("body missing upstream reason: %s", body)
	}
	if credits.invalidations != 0 {
		t.Errorf("credits invalidated on failure")
	}
}

func TestSynthesizeProxyRequiresText(t *testing.T) {
	r := newTTSRouter("http://unused", &fakeCredits{})

	req := httptest.NewRequest("POST", "/api/tts", strings.NewReader(`{"text": ""}`))
	rec := httptest.NewRecorder()
	r.handleSynthesize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSynthesizeProxyUnconfiguredKey(t *testing.T) {
	r := &Router{
		logger:   testLogger(),
		eventLog: eventlog.New(nil),
		eleven:   tts.NewElevenLabsClient(tts.ElevenLabsConfig{APIKey: ""}),
		credits:  &fakeCredits{},
	}

	req := httptest.NewRequest("POST", "/api/tts", strings.NewReader(`{"text": "hello"}`))
	rec := httptest.NewRecorder()
	r.handleSynthesize(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not configured") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetCreditsReturnsSnapshot(t *testing.T) {
	credits := &fakeCredits{info: &tts.CreditsInfo{
		Configured: true, Available: true, Remaining: 5000, Limit: 10000, PercentUsed: 50, Tier: "starter",
	}}
	r := newTTSRouter("http://unused", credits)

	req := httptest.NewRequest("GET", "/api/tts/credits", nil)
	rec := httptest.NewRecorder()
	r.handleGetCredits(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"success":true`, `"remaining":5000`, `"tier":"starter"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
}

func TestGetCreditsFailure(t *testing.T) {
	credits := &fakeCredits{err: &tts.Failure{Code: tts.CodeCreditsUnavailable, Reason: "upstream down"}}
	r := newTTSRouter("http://unused", credits)

	req := httptest.NewRequest("GET", "/api/tts/credits", nil)
	rec := httptest.NewRecorder()
	r.handleGetCredits(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRefreshCreditsInvalidatesFirst(t *testing.T) {
	credits := &fakeCredits{info: &tts.CreditsInfo{Configured: true, Remaining: 100}}
	r := newTTSRouter("http://unused", credits)

	req := httptest.NewRequest("POST", "/api/tts/credits/refresh", nil)
	rec := httptest.NewRecorder()
	r.handleRefreshCredits(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if credits.invalidations != 1 || credits.fetches != 1 {
		t.Errorf("invalidations = %d fetches = %d, want 1 and 1", credits.invalidations, credits.fetches)
	}
}
