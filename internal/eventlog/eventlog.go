package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventType represents the type of session event
type EventType string

const (
	EventSessionStarted   EventType = "session_started"
	EventMessageSent      EventType = "message_sent"
	EventTutorReplied     EventType = "tutor_replied"
	EventSpeechStarted    EventType = "speech_started"
	EventSpeechEnded      EventType = "speech_ended"
	EventSpeechFallback   EventType = "speech_fallback"
	EventSpeechError      EventType = "speech_error"
	EventScenarioStarted  EventType = "scenario_started"
	EventScenarioAdvanced EventType = "scenario_advanced"
	EventScenarioDone     EventType = "scenario_completed"
	EventCreditsLow       EventType = "credits_low"
)

// Logger provides event logging to the database
type Logger struct {
	db *pgxpool.Pool
}

// New creates a new event logger
func New(db *pgxpool.Pool) *Logger {
	return &Logger{db: db}
}

// Setup creates the event table if it does not exist yet.
func (l *Logger) Setup(ctx context.Context) error {
	if l.db == nil {
		return nil
	}
	_, err := l.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS session_events (
			id SERIAL PRIMARY KEY,
			session_id UUID,
			event_type VARCHAR(40) NOT NULL,
			event_data JSONB DEFAULT '{}',
			created_at TIMESTAMP DEFAULT NOW()
		)
	`)
	return err
}

// Log writes an event to the database synchronously
func (l *Logger) Log(ctx context.Context, sessionID string, eventType EventType, data map[string]any) error {
	if l.db == nil || sessionID == "" {
		return nil // Silently skip if no DB or session ID
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		dataJSON = []byte("{}")
	}

	_, err = l.db.Exec(ctx, `
		INSERT INTO session_events (session_id, event_type, event_data)
		VALUES ($1, $2, $3)
	`, sessionID, string(eventType), dataJSON)

	return err
}

// LogAsync logs an event without blocking the caller
func (l *Logger) LogAsync(sessionID string, eventType EventType, data map[string]any) {
	if l.db == nil || sessionID == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.Log(ctx, sessionID, eventType, data)
	}()
}
