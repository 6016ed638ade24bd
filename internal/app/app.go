package app

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/httpapi"
	"github.com/parla-app/parla/internal/jobs"
	"github.com/parla-app/parla/internal/llm"
	"github.com/parla-app/parla/internal/notifications"
	"github.com/parla-app/parla/internal/store"
	"github.com/parla-app/parla/internal/tts"
)

type App struct {
	cfg      Config
	logger   *log.Logger
	db       *pgxpool.Pool
	store    *store.Store
	eventLog *eventlog.Logger
	eleven   *tts.ElevenLabsClient
	credits  tts.CreditsSource
	ai       llm.Client

	creditsWatch *jobs.CreditsWatchJob
}

func New(cfg Config, logger *log.Logger) (*App, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := store.New(db)
	el := eventlog.New(db)

	// Shared HTTP client with connection pooling for TTS.
	// Keeps TCP connections alive to reduce latency for repeated calls
	// to ElevenLabs.
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10, // ElevenLabs is single host
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	eleven := tts.NewElevenLabsClient(tts.ElevenLabsConfig{
		APIKey:     cfg.ElevenLabsAPIKey,
		VoiceID:    cfg.ElevenLabsVoiceID,
		ModelID:    cfg.ElevenLabsModelID,
		HTTPClient: httpClient,
	})
	credits := tts.NewCreditsGateway(eleven, logger)

	ai := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	})

	a := &App{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		store:    s,
		eventLog: el,
		eleven:   eleven,
		credits:  credits,
		ai:       ai,
	}

	if cfg.DiscordWebhookURL != "" && cfg.CreditsWatchMinutes > 0 {
		discord := notifications.NewDiscord(cfg.DiscordWebhookURL, logger)
		a.creditsWatch = jobs.NewCreditsWatchJob(credits, discord, logger, cfg.CreditsWatchInterval())
		a.creditsWatch.Start()
	}

	return a, nil
}

func (a *App) Router() http.Handler {
	routerCfg := httpapi.RouterConfig{
		DiscordWebhookURL: a.cfg.DiscordWebhookURL,
	}
	return httpapi.NewRouter(routerCfg, a.logger, a.store, a.eventLog, a.eleven, a.credits, a.ai)
}

func (a *App) Close() error {
	if a.creditsWatch != nil {
		a.creditsWatch.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
	return nil
}
