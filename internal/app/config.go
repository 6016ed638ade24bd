package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string
	SentryDSN   string

	// Tutor LLM
	OpenAIAPIKey string
	OpenAIModel  string

	// Premium voice
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	ElevenLabsModelID string

	// Notifications
	DiscordWebhookURL string

	// Background quota watch; 0 disables the job
	CreditsWatchMinutes int
}

func LoadConfigFromEnv() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		SentryDSN:   getenv("SENTRY_DSN", ""),

		// Tutor LLM
		OpenAIAPIKey: getenv("OPENAI_API_KEY", ""),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-4o-mini"),

		// Premium voice
		ElevenLabsAPIKey:  getenv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: getenv("ELEVENLABS_VOICE_ID", ""),
		ElevenLabsModelID: getenv("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),

		// Notifications
		DiscordWebhookURL: getenv("DISCORD_WEBHOOK_URL", ""),

		CreditsWatchMinutes: getenvIntClamped("CREDITS_WATCH_MINUTES", 15, 0, 24*60),
	}
}

func (c Config) CreditsWatchInterval() time.Duration {
	return time.Duration(c.CreditsWatchMinutes) * time.Minute
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntClamped(k string, def, min, max int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
