package tts

import "sync"

// FallbackState reports whether the session is locked to the free
// backend and why.
type FallbackState struct {
	Active bool   `json:"active"`
	Reason string `json:"reason,omitempty"`
}

// FallbackPolicy remembers, for the lifetime of the process, that the
// premium backend has been marked unusable. It is deliberately never
// persisted: a restart always re-attempts the premium path, which
// self-heals after transient outages or a quota reset.
type FallbackPolicy struct {
	mu     sync.Mutex
	active bool
	reason string
}

// NewFallbackPolicy returns an inactive policy.
func NewFallbackPolicy() *FallbackPolicy {
	return &FallbackPolicy{}
}

// Activate marks the premium backend unusable for this session.
// Idempotent; the most recent reason wins.
func (p *FallbackPolicy) Activate(reason string) {
	p.mu.Lock()
	p.active = true
	p.reason = reason
	p.mu.Unlock()
}

// Reset clears the fallback so the premium backend gets a fresh attempt.
func (p *FallbackPolicy) Reset() {
	p.mu.Lock()
	p.active = false
	p.reason = ""
	p.mu.Unlock()
}

// State returns the current fallback state.
func (p *FallbackPolicy) State() FallbackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return FallbackState{Active: p.active, Reason: p.reason}
}
