package tts

import (
	"context"
	"log"
)

// Result reports which backend actually spoke an utterance.
// FallbackReason is set only on the call where a premium failure flipped
// the session to the free backend; the sticky state afterwards is read
// from the FallbackPolicy.
type Result struct {
	Provider       Provider
	FallbackReason string
}

// Orchestrator resolves which backend handles each utterance, interprets
// premium failures and drives the session fallback. It is the only
// component that mutates the FallbackPolicy.
type Orchestrator struct {
	premium Backend
	free    Backend
	credits CreditsSource
	policy  *FallbackPolicy
	logger  *log.Logger
}

// NewOrchestrator wires the two backends behind one entry point.
func NewOrchestrator(premium, free Backend, credits CreditsSource, policy *FallbackPolicy, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		premium: premium,
		free:    free,
		credits: credits,
		policy:  policy,
		logger:  logger,
	}
}

// Speak resolves a backend for the utterance per the requested mode,
// invokes it, and on a fallback-eligible premium failure in auto mode
// retries the same utterance on the free backend. At most one backend
// produces audible output per call.
func (o *Orchestrator) Speak(ctx context.Context, mode Mode, u Utterance, cb Callbacks) (Result, error) {
	switch mode {
	case ModeBrowser:
		return Result{Provider: ProviderBrowser}, o.speakOn(ctx, o.free, u, cb)

	case ModeElevenLabs:
		// Explicit premium: failures propagate unmodified, no retry.
		return Result{Provider: ProviderElevenLabs}, o.speakOn(ctx, o.premium, u, cb)
	}

	// Auto mode. A sticky fallback skips the premium path without
	// re-probing credits, bounding remote checks to one failure per
	// session until an explicit reset.
	if st := o.policy.State(); st.Active {
		return Result{Provider: ProviderBrowser}, o.speakOn(ctx, o.free, u, cb)
	}

	// Skip a guaranteed-to-fail premium call when the balance is a
	// known number below the threshold. Unknown balances (-1) and
	// credits-endpoint failures resolve in favor of the premium path.
	if info, err := o.credits.Fetch(ctx); err == nil && !info.Available && info.Remaining >= 0 {
		return Result{Provider: ProviderBrowser}, o.speakOn(ctx, o.free, u, cb)
	}

	err := o.speakOn(ctx, o.premium, u, cb)
	if err == nil {
		return Result{Provider: ProviderElevenLabs}, nil
	}

	f := AsFailure(err)
	if f == nil || !f.FallbackEligible() {
		return Result{Provider: ProviderElevenLabs}, err
	}

	reason := f.Reason
	if reason == "" {
		reason = string(f.Code)
	}
	o.logger.Printf("tts: premium failed (%s), falling back to %s: %s", f.Code, ProviderBrowser, reason)
	o.policy.Activate(reason)
	o.credits.Invalidate()
	if cb.OnFallback != nil {
		cb.OnFallback(reason)
	}

	// Retry the same utterance on the free backend. The premium attempt
	// failed before committing to playback, so nothing was heard yet.
	if err := o.speakOn(ctx, o.free, u, cb); err != nil {
		return Result{Provider: ProviderBrowser, FallbackReason: reason}, err
	}
	return Result{Provider: ProviderBrowser, FallbackReason: reason}, nil
}

// speakOn silences the other backend before invoking the chosen one, so
// that a mode switch mid-playback never leaves two audible streams.
func (o *Orchestrator) speakOn(ctx context.Context, b Backend, u Utterance, cb Callbacks) error {
	if b == o.free {
		o.premium.Stop()
	} else {
		o.free.Stop()
	}
	return b.Synthesize(ctx, u, cb)
}

// Stop cancels playback on both backends.
func (o *Orchestrator) Stop() {
	o.premium.Stop()
	o.free.Stop()
}
