package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/parla-app/parla/internal/costs"
	"github.com/parla-app/parla/internal/eventlog"
	"github.com/parla-app/parla/internal/tts"
)

// failureStatus maps a classified synthesis failure to the HTTP status
// the proxy exposes, so callers can run their own fallback decisions.
func failureStatus(code tts.FailureCode) int {
	switch code {
	case tts.CodeUnauthorized:
		return http.StatusUnauthorized
	case tts.CodeQuotaExceeded:
		return http.StatusPaymentRequired
	case tts.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// handleSynthesize proxies synthesis to ElevenLabs and streams the audio
// back. Quota-class upstream failures keep their status and gain a
// machine-readable code field.
func (r *Router) handleSynthesize(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Text      string `json:"text"`
		VoiceID   string `json:"voiceId"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}
	if body.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Text is required"})
		return
	}
	if !r.eleven.Configured() {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "ElevenLabs API key not configured"})
		return
	}

	audio, err := r.eleven.SynthesizeStream(req.Context(), body.Text, body.VoiceID)
	if err != nil {
		if f := tts.AsFailure(err); f != nil {
			writeJSON(w, failureStatus(f.Code), map[string]any{
				"error": f.Reason,
				"code":  string(f.Code),
			})
			return
		}
		r.logger.Printf("tts proxy: %v", err)
		captureError(req, err, "tts proxy")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "TTS generation failed"})
		return
	}
	defer audio.Close()

	// Synthesis consumed quota; the next credits read must be fresh.
	r.credits.Invalidate()

	r.eventLog.LogAsync(body.SessionID, eventlog.EventSpeechStarted, map[string]any{
		"chars":        len(body.Text),
		"estCostCents": costs.EstimateTTSCents(body.Text),
	})

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if _, err := io.Copy(w, audio); err != nil {
		r.logger.Printf("tts proxy: stream audio: %v", err)
	}
}

func (r *Router) handleGetCredits(w http.ResponseWriter, req *http.Request) {
	info, err := r.credits.Fetch(req.Context())
	if err != nil {
		r.logger.Printf("credits check: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":    false,
			"error":      err.Error(),
			"configured": r.eleven.Configured(),
			"available":  false,
		})
		return
	}

	writeCredits(w, info)
}

func (r *Router) handleRefreshCredits(w http.ResponseWriter, req *http.Request) {
	r.credits.Invalidate()
	info, err := r.credits.Fetch(req.Context())
	if err != nil {
		r.logger.Printf("credits refresh: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":    false,
			"error":      err.Error(),
			"configured": r.eleven.Configured(),
			"available":  false,
		})
		return
	}

	writeCredits(w, info)
}

func writeCredits(w http.ResponseWriter, info *tts.CreditsInfo) {
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*tts.CreditsInfo
	}{Success: true, CreditsInfo: info})
}
