package tts

import (
	"context"
	"log"
	"strings"
	"sync"
)

// Status is the controller's observable state, rebuilt on every call and
// consumed by the presentation layer to render provider indicators,
// low-credit warnings and the retry-premium action. Never persisted.
type Status struct {
	IsSpeaking     bool
	IsLoading      bool
	Mode           Mode
	Rate           float64
	ActiveProvider Provider // empty until the first utterance
	Err            string
	Credits        *CreditsInfo
	Fallback       FallbackState
}

// Controller is the session-facing façade over the orchestrator. It owns
// the user-configurable mode and rate (persisted via Preferences), tracks
// live speaking state, and guards completion callbacks with a monotonic
// utterance token so superseded calls become no-ops.
type Controller struct {
	orch    *Orchestrator
	credits CreditsSource
	policy  *FallbackPolicy
	prefs   Preferences
	logger  *log.Logger

	mu       sync.Mutex
	mode     Mode
	rate     float64
	voiceID  string
	speaking bool
	loading  bool
	active   Provider
	lastErr  string
	lastText string
	credInfo *CreditsInfo
	token    uint64
}

// NewController restores mode and rate from the preference store and
// wires the façade. Unknown persisted modes fall back to auto.
func NewController(orch *Orchestrator, credits CreditsSource, policy *FallbackPolicy, prefs Preferences, logger *log.Logger) *Controller {
	return &Controller{
		orch:    orch,
		credits: credits,
		policy:  policy,
		prefs:   prefs,
		logger:  logger,
		mode:    ParseMode(prefs.Mode()),
		rate:    ClampRate(prefs.Rate()),
	}
}

// SetVoice sets the premium voice used for subsequent utterances.
func (c *Controller) SetVoice(voiceID string) {
	c.mu.Lock()
	c.voiceID = voiceID
	c.mu.Unlock()
}

// Speak synthesizes text through the resolved backend, blocking through
// playback. Blank text is a no-op, as is a duplicate of the utterance
// currently being spoken (prevents double-speaking the same assistant
// message on a re-render).
func (c *Controller) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if (c.speaking || c.loading) && text == c.lastText {
		c.mu.Unlock()
		return nil
	}
	c.token++
	tok := c.token
	c.lastText = text
	c.loading = true
	c.lastErr = ""
	mode := c.mode
	u := Utterance{Text: text, VoiceID: c.voiceID, Rate: c.rate}
	c.mu.Unlock()

	cb := Callbacks{
		OnStart: func() {
			c.ifCurrent(tok, func() {
				c.speaking = true
				c.loading = false
			})
		},
		OnEnd: func() {
			c.ifCurrent(tok, func() {
				c.speaking = false
			})
		},
		OnError: func(reason string) {
			c.ifCurrent(tok, func() {
				c.lastErr = reason
				c.speaking = false
				c.loading = false
			})
		},
	}

	res, err := c.orch.Speak(ctx, mode, u, cb)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != tok {
		// Superseded by a later Speak or Stop; its state wins.
		return err
	}
	c.active = res.Provider
	c.speaking = false
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
	}
	return err
}

// Stop cancels whichever backend is active. Idempotent when nothing is
// playing.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.token++
	c.speaking = false
	c.loading = false
	c.mu.Unlock()
	c.orch.Stop()
}

// SetMode persists the new mode. Choosing any premium-capable mode also
// resets the session fallback: an explicit user choice always gets a
// fresh premium attempt rather than being overridden by a stale flag.
func (c *Controller) SetMode(mode Mode) {
	mode = ParseMode(string(mode))

	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()

	if err := c.prefs.SetMode(string(mode)); err != nil {
		c.logger.Printf("tts: persist mode: %v", err)
	}
	if mode != ModeBrowser {
		c.policy.Reset()
	}
}

// SetRate clamps and persists the playback rate.
func (c *Controller) SetRate(rate float64) {
	rate = ClampRate(rate)

	c.mu.Lock()
	c.rate = rate
	c.mu.Unlock()

	if err := c.prefs.SetRate(rate); err != nil {
		c.logger.Printf("tts: persist rate: %v", err)
	}
}

// RefreshCredits forces a fresh quota read and caches the snapshot for
// Status.
func (c *Controller) RefreshCredits(ctx context.Context) (*CreditsInfo, error) {
	c.credits.Invalidate()
	info, err := c.credits.Fetch(ctx)

	c.mu.Lock()
	if err == nil {
		c.credInfo = info
	}
	c.mu.Unlock()
	return info, err
}

// ResetFallback clears the session fallback and the credits cache so the
// user can force a premium retry after, say, topping up quota.
func (c *Controller) ResetFallback() {
	c.policy.Reset()
	c.credits.Invalidate()
}

// Status returns a snapshot of the observable state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		IsSpeaking:     c.speaking,
		IsLoading:      c.loading,
		Mode:           c.mode,
		Rate:           c.rate,
		ActiveProvider: c.active,
		Err:            c.lastErr,
		Credits:        c.credInfo,
		Fallback:       c.policy.State(),
	}
}

// ifCurrent runs fn under the lock only if the utterance token is still
// current, making superseded completion callbacks no-ops.
func (c *Controller) ifCurrent(tok uint64, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == tok {
		fn()
	}
}
