package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/llm"
	"github.com/parla-app/parla/internal/store"
	"github.com/parla-app/parla/internal/tts"
)

type RouterConfig struct {
	// Notifications
	DiscordWebhookURL string
}

type Router struct {
	cfg      RouterConfig
	logger   *log.Logger
	store    *store.Store
	eventLog *eventlog.Logger
	eleven   *tts.ElevenLabsClient
	credits  tts.CreditsSource
	ai       llm.Client
	mux      *http.ServeMux
}

func NewRouter(cfg RouterConfig, logger *log.Logger, s *store.Store, eventLog *eventlog.Logger, eleven *tts.ElevenLabsClient, credits tts.CreditsSource, ai llm.Client) http.Handler {
	r := &Router{
		cfg:      cfg,
		logger:   logger,
		store:    s,
		eventLog: eventLog,
		eleven:   eleven,
		credits:  credits,
		ai:       ai,
		mux:      http.NewServeMux(),
	}

	r.routes()
	return withSentryRecovery(withCORS(r.mux))
}

func (r *Router) routes() {
	// Health check
	r.mux.HandleFunc("GET /healthz", r.handleHealthz)

	// Sessions and transcript
	r.mux.HandleFunc("POST /api/sessions", r.handleCreateSession)
	r.mux.HandleFunc("GET /api/sessions", r.handleGetSession)
	r.mux.HandleFunc("GET /api/sessions/recent", r.handleListSessions)
	r.mux.HandleFunc("POST /api/messages", r.handleSaveMessage)

	// Tutor chat
	r.mux.HandleFunc("POST /api/chat", r.handleChat)

	// Learner memory
	r.mux.HandleFunc("GET /api/profile", r.handleGetProfile)
	r.mux.HandleFunc("POST /api/profile", r.handleUpdateProfile)

	// Guided scenarios
	r.mux.HandleFunc("GET /api/scenarios", r.handleListScenarios)
	r.mux.HandleFunc("GET /api/scenarios/progress", r.handleGetScenarioProgress)
	r.mux.HandleFunc("POST /api/scenarios/progress", r.handleUpdateScenarioProgress)

	// Premium voice proxy and quota
	r.mux.HandleFunc("POST /api/tts", r.handleSynthesize)
	r.mux.HandleFunc("GET /api/tts/credits", r.handleGetCredits)
	r.mux.HandleFunc("POST /api/tts/credits/refresh", r.handleRefreshCredits)

	// Schema bootstrap (idempotent)
	r.mux.HandleFunc("GET /api/db/setup", r.handleDBSetup)
}

func (r *Router) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func withSentryRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(req)
				hub.RecoverWithContext(req.Context(), err)
				hub.Flush(2 * time.Second)
				http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// captureError sends an error to Sentry with request context
func captureError(req *http.Request, err error, msg string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(req)
		scope.SetExtra("message", msg)
		sentry.CaptureException(err)
	})
}
