// Package tts implements speech synthesis with two backends: ElevenLabs
// (premium, metered) and the host platform's speech engine (free). The
// orchestrator prefers the premium backend and falls back to the free one
// for the rest of the session when a quota, auth or rate-limit failure is
// detected.
package tts

import "context"

// Mode is the user-selected synthesis policy. It is persisted across
// sessions via Preferences.
type Mode string

const (
	// ModeElevenLabs forces the premium backend; failures propagate.
	ModeElevenLabs Mode = "elevenlabs"
	// ModeBrowser forces the free backend; no premium calls are made.
	ModeBrowser Mode = "browser"
	// ModeAuto prefers the premium backend and falls back to the free
	// one when a qualifying failure occurs.
	ModeAuto Mode = "auto"
)

// ParseMode maps a persisted string to a Mode. Unknown values fall back
// to ModeAuto so stale preference files never lock the user out.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeElevenLabs, ModeBrowser, ModeAuto:
		return Mode(s)
	}
	return ModeAuto
}

// Provider identifies the backend that actually spoke an utterance.
type Provider string

const (
	ProviderElevenLabs Provider = "elevenlabs"
	ProviderBrowser    Provider = "browser"
)

// Playback rate bounds. Values outside this range are clamped.
const (
	MinRate     = 0.5
	MaxRate     = 2.0
	DefaultRate = 0.8
)

// ClampRate bounds a playback rate to the supported range.
func ClampRate(r float64) float64 {
	if r < MinRate {
		return MinRate
	}
	if r > MaxRate {
		return MaxRate
	}
	return r
}

// Utterance is one request to speak text. It is a value passed in and
// consumed; no component retains it past the call.
type Utterance struct {
	Text    string
	VoiceID string  // optional, premium backend only
	Rate    float64 // playback rate, MinRate..MaxRate
}

// Callbacks report playback lifecycle events. OnStart fires when audio
// begins, OnEnd when playback completes naturally. OnError reports a
// failure after the utterance was accepted. OnFallback is invoked by the
// orchestrator (never by a backend) when a premium failure flips the
// session to the free backend.
type Callbacks struct {
	OnStart    func()
	OnEnd      func()
	OnError    func(reason string)
	OnFallback func(reason string)
}

// Backend is a single speech synthesis engine. Synthesize blocks until
// playback completes, is superseded or fails. Starting a new utterance
// cancels any utterance currently playing on the same backend; superseded
// utterances must not fire their completion callbacks.
type Backend interface {
	Name() Provider
	Synthesize(ctx context.Context, u Utterance, cb Callbacks) error
	Stop()
}
