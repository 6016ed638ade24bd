package store

import "context"

// schema holds the tables and indexes, created idempotently at startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_name VARCHAR(100),
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id SERIAL PRIMARY KEY,
		session_id UUID REFERENCES sessions(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL CHECK (role IN ('user', 'assistant')),
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id SERIAL PRIMARY KEY,
		session_id UUID REFERENCES sessions(id) ON DELETE CASCADE UNIQUE,
		words_learned TEXT[] DEFAULT '{}',
		mistakes_corrected INTEGER DEFAULT 0,
		quiz_score INTEGER DEFAULT 0,
		total_messages INTEGER DEFAULT 0,
		updated_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id SERIAL PRIMARY KEY,
		session_id UUID REFERENCES sessions(id) ON DELETE CASCADE UNIQUE,
		interests TEXT[] DEFAULT '{}',
		common_errors JSONB DEFAULT '{}',
		level VARCHAR(20) DEFAULT 'beginner',
		summary TEXT,
		total_sessions INTEGER DEFAULT 1,
		total_messages INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS scenario_progress (
		id SERIAL PRIMARY KEY,
		session_id UUID REFERENCES sessions(id) ON DELETE CASCADE,
		scenario_id VARCHAR(50) NOT NULL,
		current_step INTEGER DEFAULT 0,
		completed BOOLEAN DEFAULT FALSE,
		started_at TIMESTAMP DEFAULT NOW(),
		completed_at TIMESTAMP,
		UNIQUE(session_id, scenario_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_session ON progress(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_profiles_session ON user_profiles(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scenario_progress_session ON scenario_progress(session_id)`,
}

// Setup creates the schema if it does not exist yet.
func (s *Store) Setup(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
