package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Session represents one learner conversation.
type Session struct {
	ID          string    `json:"id"`
	StudentName *string   `json:"student_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Message represents one turn of a session.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Progress tracks per-session learning counters.
type Progress struct {
	ID                int64     `json:"id"`
	SessionID         string    `json:"session_id"`
	WordsLearned      []string  `json:"words_learned"`
	MistakesCorrected int       `json:"mistakes_corrected"`
	QuizScore         int       `json:"quiz_score"`
	TotalMessages     int       `json:"total_messages"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserProfile is the learner memory carried across sessions: interests,
// level and recurring errors, fed back into the tutor's system prompt.
type UserProfile struct {
	ID            int64           `json:"id"`
	SessionID     string          `json:"session_id"`
	Interests     []string        `json:"interests"`
	CommonErrors  json.RawMessage `json:"common_errors"`
	Level         string          `json:"level"`
	Summary       *string         `json:"summary,omitempty"`
	TotalSessions int             `json:"total_sessions"`
	TotalMessages int             `json:"total_messages"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProfileUpdate carries the optional fields of a profile write; nil
// fields keep their stored value.
type ProfileUpdate struct {
	Interests         []string
	CommonErrors      json.RawMessage
	Level             *string
	Summary           *string
	IncrementMessages bool
}

// ScenarioProgress tracks a learner's position in a guided scenario.
type ScenarioProgress struct {
	ID          int64      `json:"id"`
	SessionID   string     `json:"session_id"`
	ScenarioID  string     `json:"scenario_id"`
	CurrentStep int        `json:"current_step"`
	Completed   bool       `json:"completed"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateSession inserts a new session and returns its id.
func (s *Store) CreateSession(ctx context.Context, studentName *string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO sessions (student_name)
		VALUES ($1)
		RETURNING id
	`, studentName).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// GetSession returns the session, or nil when it does not exist.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var sess Session
	err := s.db.QueryRow(ctx, `
		SELECT id, student_name, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`, sessionID).Scan(&sess.ID, &sess.StudentName, &sess.CreatedAt, &sess.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// SaveMessage appends a turn and bumps the session timestamp.
func (s *Store) SaveMessage(ctx context.Context, sessionID, role, content string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO messages (session_id, role, content)
		VALUES ($1, $2, $3)
	`, sessionID, role, content)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		UPDATE sessions SET updated_at = NOW() WHERE id = $1
	`, sessionID)
	return err
}

// GetMessages returns the session transcript in chronological order.
// ListSessions returns the most recently active sessions, newest first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, student_name, created_at, updated_at
		FROM sessions
		ORDER BY updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.StudentName, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *Store) GetMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateProgress upserts the session's learning counters. Words replace
// the stored list when provided; counters accumulate.
func (s *Store) UpdateProgress(ctx context.Context, sessionID string, wordsLearned []string, mistakesCorrected, quizScore int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO progress (session_id, words_learned, mistakes_corrected, quiz_score, total_messages)
		VALUES ($1, COALESCE($2, '{}'), $3, $4, 1)
		ON CONFLICT (session_id) DO UPDATE SET
			words_learned = COALESCE($2, progress.words_learned),
			mistakes_corrected = progress.mistakes_corrected + $3,
			quiz_score = progress.quiz_score + $4,
			total_messages = progress.total_messages + 1,
			updated_at = NOW()
	`, sessionID, wordsLearned, mistakesCorrected, quizScore)
	return err
}

// GetProgress returns the session's progress row, or nil when none.
func (s *Store) GetProgress(ctx context.Context, sessionID string) (*Progress, error) {
	var p Progress
	err := s.db.QueryRow(ctx, `
		SELECT id, session_id, words_learned, mistakes_corrected, quiz_score, total_messages, updated_at
		FROM progress
		WHERE session_id = $1
	`, sessionID).Scan(&p.ID, &p.SessionID, &p.WordsLearned, &p.MistakesCorrected, &p.QuizScore, &p.TotalMessages, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetUserProfile returns the learner profile, or nil when none exists.
func (s *Store) GetUserProfile(ctx context.Context, sessionID string) (*UserProfile, error) {
	var p UserProfile
	err := s.db.QueryRow(ctx, `
		SELECT id, session_id, interests, common_errors, level, summary, total_sessions, total_messages, created_at, updated_at
		FROM user_profiles
		WHERE session_id = $1
	`, sessionID).Scan(
		&p.ID, &p.SessionID, &p.Interests, &p.CommonErrors, &p.Level, &p.Summary,
		&p.TotalSessions, &p.TotalMessages, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates or partially updates the learner profile.
func (s *Store) UpsertProfile(ctx context.Context, sessionID string, u ProfileUpdate) error {
	increment := 0
	if u.IncrementMessages {
		increment = 1
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_profiles (session_id, interests, common_errors, level, summary, total_messages)
		VALUES ($1, COALESCE($2, '{}'), COALESCE($3, '{}'), COALESCE($4, 'beginner'), $5, $6)
		ON CONFLICT (session_id) DO UPDATE SET
			interests = COALESCE($2, user_profiles.interests),
			common_errors = COALESCE($3, user_profiles.common_errors),
			level = COALESCE($4, user_profiles.level),
			summary = COALESCE($5, user_profiles.summary),
			total_messages = user_profiles.total_messages + $6,
			updated_at = NOW()
	`, sessionID, u.Interests, u.CommonErrors, u.Level, u.Summary, increment)
	return err
}

// GetScenarioProgress returns the learner's position in a scenario, or
// nil when it was never started.
func (s *Store) GetScenarioProgress(ctx context.Context, sessionID, scenarioID string) (*ScenarioProgress, error) {
	var p ScenarioProgress
	err := s.db.QueryRow(ctx, `
		SELECT id, session_id, scenario_id, current_step, completed, started_at, completed_at
		FROM scenario_progress
		WHERE session_id = $1 AND scenario_id = $2
	`, sessionID, scenarioID).Scan(
		&p.ID, &p.SessionID, &p.ScenarioID, &p.CurrentStep, &p.Completed, &p.StartedAt, &p.CompletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAllScenarioProgress returns every scenario the session has started.
func (s *Store) GetAllScenarioProgress(ctx context.Context, sessionID string) ([]ScenarioProgress, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, scenario_id, current_step, completed, started_at, completed_at
		FROM scenario_progress
		WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScenarioProgress
	for rows.Next() {
		var p ScenarioProgress
		if err := rows.Scan(&p.ID, &p.SessionID, &p.ScenarioID, &p.CurrentStep, &p.Completed, &p.StartedAt, &p.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateScenarioProgress upserts the learner's position in a scenario.
// Completion stamps completed_at once and never clears it.
func (s *Store) UpdateScenarioProgress(ctx context.Context, sessionID, scenarioID string, currentStep int, completed bool) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO scenario_progress (session_id, scenario_id, current_step, completed, completed_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 THEN NOW() END)
		ON CONFLICT (session_id, scenario_id) DO UPDATE SET
			current_step = $3,
			completed = scenario_progress.completed OR $4,
			completed_at = COALESCE(scenario_progress.completed_at, CASE WHEN $4 THEN NOW() END)
	`, sessionID, scenarioID, currentStep, completed)
	return err
}

// ProfileContext renders a profile into the learner-memory block for the
// tutor's system prompt. Empty for a nil or blank profile.
func ProfileContext(p *UserProfile) string {
	if p == nil {
		return ""
	}
	var lines []string
	if p.Level != "" {
		lines = append(lines, "Level: "+p.Level)
	}
	if len(p.Interests) > 0 {
		lines = append(lines, "Interests: "+strings.Join(p.Interests, ", "))
	}
	if p.Summary != nil && *p.Summary != "" {
		lines = append(lines, "Summary of past conversations: "+*p.Summary)
	}
	if len(p.CommonErrors) > 0 && string(p.CommonErrors) != "{}" {
		var errs map[string]string
		if err := json.Unmarshal(p.CommonErrors, &errs); err == nil && len(errs) > 0 {
			var parts []string
			for k, v := range errs {
				parts = append(parts, k+" ("+v+")")
			}
			lines = append(lines, "Recurring errors to watch for: "+strings.Join(parts, "; "))
		}
	}
	return strings.Join(lines, "\n")
}
