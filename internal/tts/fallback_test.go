package tts

import "testing"

func TestFallbackPolicyLifecycle(t *testing.T) {
	p := NewFallbackPolicy()

	if st := p.State(); st.Active || st.Reason != "" {
		t.Fatalf("new policy state = %+v, want inactive", st)
	}

	p.Activate("quota exceeded")
	if st := p.State(); !st.Active || st.Reason != "quota exceeded" {
		t.Errorf("state = %+v, want active with reason", st)
	}

	// Idempotent: the most recent reason wins.
	p.Activate("rate limited")
	if st := p.State(); !st.Active || st.Reason != "rate limited" {
		t.Errorf("state = %+v, want latest reason", st)
	}

	p.Reset()
	if st := p.State(); st.Active || st.Reason != "" {
		t.Errorf("state after Reset = %+v, want inactive", st)
	}
}
