package tts

import "errors"

// FailureCode classifies a synthesis failure for branching. The codes
// match the JSON `code` field returned by the HTTP proxy endpoints.
type FailureCode string

const (
	CodeUnauthorized       FailureCode = "UNAUTHORIZED"
	CodeQuotaExceeded      FailureCode = "QUOTA_EXCEEDED"
	CodeRateLimited        FailureCode = "RATE_LIMITED"
	CodeTransport          FailureCode = "TRANSPORT"
	CodeCapabilityMissing  FailureCode = "CAPABILITY_MISSING"
	CodeCreditsUnavailable FailureCode = "CREDITS_UNAVAILABLE"
)

// Failure is a classified synthesis error. Reason is human-readable and
// shown in the UI; Code drives fallback decisions.
type Failure struct {
	Code   FailureCode
	Reason string
}

func (f *Failure) Error() string {
	if f.Reason != "" {
		return f.Reason
	}
	return string(f.Code)
}

// FallbackEligible reports whether this failure should flip the session
// to the free backend. Transport blips are deliberately excluded: a
// transient network error must not disable the premium path for the rest
// of the session.
func (f *Failure) FallbackEligible() bool {
	switch f.Code {
	case CodeUnauthorized, CodeQuotaExceeded, CodeRateLimited:
		return true
	}
	return false
}

// AsFailure unwraps err to a *Failure, or nil if it is not one.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return nil
}

// classifyStatus maps an HTTP status from the synthesis endpoint to a
// failure code. 401/402/429 carry quota semantics at ElevenLabs; anything
// else non-2xx is a transport problem.
func classifyStatus(status int, reason string) *Failure {
	code := CodeTransport
	switch status {
	case 401:
		code = CodeUnauthorized
	case 402:
		code = CodeQuotaExceeded
	case 429:
		code = CodeRateLimited
	}
	return &Failure{Code: code, Reason: reason}
}
