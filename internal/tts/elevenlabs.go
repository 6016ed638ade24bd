package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// DefaultVoiceID is Rachel, a calm natural voice.
const DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// ElevenLabsClient is a thin HTTP client for the ElevenLabs API. It is
// shared by the premium backend, the credits gateway and the server-side
// proxy handlers.
type ElevenLabsClient struct {
	apiKey     string
	voiceID    string
	modelID    string
	baseURL    string
	httpClient *http.Client
}

// ElevenLabsConfig holds configuration for the ElevenLabs client.
type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string // default voice used when a request carries none
	ModelID string // e.g. "eleven_multilingual_v2"
	BaseURL string // override for tests; defaults to the public API

	// HTTPClient lets callers share a pooled client. Defaults to a
	// plain http.Client.
	HTTPClient *http.Client
}

// NewElevenLabsClient creates a new ElevenLabs client.
func NewElevenLabsClient(cfg ElevenLabsConfig) *ElevenLabsClient {
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}
	voiceID := cfg.VoiceID
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultElevenLabsBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ElevenLabsClient{
		apiKey:     cfg.APIKey,
		voiceID:    voiceID,
		modelID:    modelID,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Configured reports whether a usable API key is present. Placeholder
// keys left over from .env templates count as unconfigured.
func (c *ElevenLabsClient) Configured() bool {
	switch {
	case c.apiKey == "":
		return false
	case c.apiKey == "your_api_key_here":
		return false
	case len(c.apiKey) >= 7 && c.apiKey[:7] == "sk_your":
		return false
	}
	return true
}

// ttsRequest represents an ElevenLabs TTS request.
type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Synthesize converts text to speech and returns the MP3 payload. Errors
// are returned as *Failure with a code classified from the HTTP status.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	body, err := c.doSynthesize(ctx, text, voiceID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	audio, err := io.ReadAll(body)
	if err != nil {
		return nil, &Failure{Code: CodeTransport, Reason: fmt.Sprintf("read audio: %v", err)}
	}
	return audio, nil
}

// SynthesizeStream issues the same request but hands the raw audio body
// to the caller, who must close it. Used by the HTTP proxy to stream
// audio through without buffering.
func (c *ElevenLabsClient) SynthesizeStream(ctx context.Context, text, voiceID string) (io.ReadCloser, error) {
	return c.doSynthesize(ctx, text, voiceID)
}

func (c *ElevenLabsClient) doSynthesize(ctx context.Context, text, voiceID string) (io.ReadCloser, error) {
	if voiceID == "" {
		voiceID = c.voiceID
	}
	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, voiceID)

	req := ttsRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.5,
			UseSpeakerBoost: true,
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Failure{Code: CodeTransport, Reason: fmt.Sprintf("marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &Failure{Code: CodeTransport, Reason: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Failure{Code: CodeTransport, Reason: fmt.Sprintf("synthesis request: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, classifyStatus(resp.StatusCode, errorReason(resp))
	}
	return resp.Body, nil
}

// errorReason extracts a human-readable message from a non-2xx synthesis
// response. Both the ElevenLabs error shape ({"detail":{"message":...}})
// and our proxy shape ({"error":...,"code":...}) are understood.
func errorReason(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var proxyErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &proxyErr) == nil && proxyErr.Error != "" {
		return proxyErr.Error
	}

	var apiErr struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &apiErr) == nil && len(apiErr.Detail) > 0 {
		var detail struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(apiErr.Detail, &detail) == nil && detail.Message != "" {
			return detail.Message
		}
		var msg string
		if json.Unmarshal(apiErr.Detail, &msg) == nil && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("ElevenLabs API error: %s", resp.Status)
}

// subscription mirrors the fields of GET /user/subscription that the
// credits gateway needs.
type subscription struct {
	CharacterCount int    `json:"character_count"`
	CharacterLimit int    `json:"character_limit"`
	NextResetUnix  int64  `json:"next_character_count_reset_unix"`
	Tier           string `json:"tier"`
}

// Subscription fetches account usage. The HTTP status is returned
// alongside the error so the gateway can apply its 401 heuristic.
func (c *ElevenLabsClient) Subscription(ctx context.Context) (*subscription, int, error) {
	url := c.baseURL + "/user/subscription"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("subscription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("subscription endpoint: %s", resp.Status)
	}

	var sub subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode subscription: %w", err)
	}
	return &sub, resp.StatusCode, nil
}

// Voice is one entry from the account's voice library.
type Voice struct {
	ID       string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Voices lists the voices available to the account.
func (c *ElevenLabsClient) Voices(ctx context.Context) ([]Voice, error) {
	url := c.baseURL + "/voices"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("voices request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voices endpoint: %s", resp.Status)
	}

	var out struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode voices: %w", err)
	}
	return out.Voices, nil
}

// ElevenLabsBackend speaks through the premium API and plays the MP3
// payload on the local audio device. At most one playback is active;
// starting a new synthesis supersedes any in-flight one, whose callbacks
// then become no-ops.
type ElevenLabsBackend struct {
	client  *ElevenLabsClient
	credits CreditsSource
	logger  *log.Logger
	out     player
	gen     atomic.Uint64
}

// NewElevenLabsBackend wires the premium backend. credits may be nil when
// no gateway is in play (the proxy handlers use the client directly).
func NewElevenLabsBackend(client *ElevenLabsClient, credits CreditsSource, logger *log.Logger) *ElevenLabsBackend {
	return &ElevenLabsBackend{client: client, credits: credits, logger: logger, out: &beepPlayer{}}
}

func (b *ElevenLabsBackend) Name() Provider { return ProviderElevenLabs }

// Synthesize requests audio for the utterance and blocks through local
// playback. Failures before playback return a classified *Failure and
// never produce partial audio.
func (b *ElevenLabsBackend) Synthesize(ctx context.Context, u Utterance, cb Callbacks) error {
	gen := b.gen.Add(1)
	b.out.stop()

	audio, err := b.client.Synthesize(ctx, u.Text, u.VoiceID)
	if err != nil {
		return err
	}
	if b.gen.Load() != gen {
		// A newer utterance started while the request was in flight;
		// the network call completed but its audio is discarded.
		return nil
	}

	// Usage changed, so the next credits read must hit the network.
	if b.credits != nil {
		b.credits.Invalidate()
	}

	err = b.out.play(ctx, bytes.NewReader(audio), func() {
		if b.gen.Load() == gen && cb.OnStart != nil {
			cb.OnStart()
		}
	})
	if errors.Is(err, errStopped) {
		return nil
	}
	if err != nil {
		if b.gen.Load() == gen && cb.OnError != nil {
			cb.OnError(err.Error())
		}
		return err
	}
	if b.gen.Load() == gen && cb.OnEnd != nil {
		cb.OnEnd()
	}
	return nil
}

// Stop cancels active playback. Idempotent when nothing is playing.
func (b *ElevenLabsBackend) Stop() {
	b.gen.Add(1)
	b.out.stop()
}
