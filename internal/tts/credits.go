package tts

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"sync"
	"time"
)

const (
	// creditsCacheTTL bounds how often the remote quota endpoint is hit.
	creditsCacheTTL = 5 * time.Minute

	// MinPremiumCredits is the minimum remaining character count below
	// which the premium backend is not worth attempting.
	MinPremiumCredits = 100

	// lowCreditsThreshold marks the remaining-quota fraction at which
	// the UI shows a low-credit warning.
	lowCreditsThreshold = 0.10
)

// CreditsInfo is a snapshot of remaining premium quota. Remaining, Limit
// and PercentUsed are -1 when the account endpoint denied a usage read
// but synthesis itself may still work.
type CreditsInfo struct {
	Configured  bool       `json:"configured"`
	Available   bool       `json:"available"`
	Remaining   int        `json:"remaining"`
	Limit       int        `json:"limit"`
	Used        int        `json:"used"`
	PercentUsed int        `json:"percentUsed"`
	LowCredits  bool       `json:"lowCredits"`
	ResetDate   *time.Time `json:"resetDate"`
	Tier        string     `json:"tier"`
}

// CreditsSource is what the orchestrator and controller need from a
// credits gateway. Implemented by *CreditsGateway.
type CreditsSource interface {
	Fetch(ctx context.Context) (*CreditsInfo, error)
	Invalidate()
}

// CreditsGateway fetches remaining-quota information from the ElevenLabs
// subscription endpoint and caches the last successful result for five
// minutes. The cache is invalidated after every successful premium
// synthesis and on user-requested refresh.
type CreditsGateway struct {
	client *ElevenLabsClient
	logger *log.Logger
	now    func() time.Time

	mu        sync.Mutex
	cached    *CreditsInfo
	fetchedAt time.Time
}

// NewCreditsGateway creates a gateway backed by the given client.
func NewCreditsGateway(client *ElevenLabsClient, logger *log.Logger) *CreditsGateway {
	return &CreditsGateway{client: client, logger: logger, now: time.Now}
}

// Fetch returns the current credits snapshot, hitting the network only on
// cache miss. A 401 from the subscription endpoint is treated as
// "available, remaining unknown": the key may lack the usage-read scope
// while still being valid for synthesis. This is a heuristic; revisit if
// genuinely bad credentials become common.
func (g *CreditsGateway) Fetch(ctx context.Context) (*CreditsInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cached != nil && g.now().Sub(g.fetchedAt) < creditsCacheTTL {
		info := *g.cached
		return &info, nil
	}

	info, err := g.fetch(ctx)
	if err != nil {
		return nil, err
	}
	g.cached = info
	g.fetchedAt = g.now()

	out := *info
	return &out, nil
}

// Invalidate clears the cache so the next Fetch hits the network.
func (g *CreditsGateway) Invalidate() {
	g.mu.Lock()
	g.cached = nil
	g.mu.Unlock()
}

func (g *CreditsGateway) fetch(ctx context.Context) (*CreditsInfo, error) {
	if !g.client.Configured() {
		// Not an error: premium simply isn't set up.
		return &CreditsInfo{Configured: false, PercentUsed: 100}, nil
	}

	sub, status, err := g.client.Subscription(ctx)
	if err != nil {
		if status == http.StatusUnauthorized {
			return &CreditsInfo{
				Configured:  true,
				Available:   true,
				Remaining:   -1,
				Limit:       -1,
				PercentUsed: -1,
			}, nil
		}
		return nil, &Failure{Code: CodeCreditsUnavailable, Reason: fmt.Sprintf("credits check failed: %v", err)}
	}

	return creditsFromSubscription(sub), nil
}

// creditsFromSubscription derives the quota snapshot from raw usage
// numbers.
func creditsFromSubscription(sub *subscription) *CreditsInfo {
	used := sub.CharacterCount
	limit := sub.CharacterLimit

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	var pct float64
	if limit > 0 {
		pct = float64(used) / float64(limit)
	}

	info := &CreditsInfo{
		Configured:  true,
		Available:   remaining >= MinPremiumCredits,
		Remaining:   remaining,
		Limit:       limit,
		Used:        used,
		PercentUsed: int(math.Round(pct * 100)),
		LowCredits:  limit > 0 && 1-pct <= lowCreditsThreshold,
		Tier:        sub.Tier,
	}
	if sub.NextResetUnix > 0 {
		t := time.Unix(sub.NextResetUnix, 0).UTC()
		info.ResetDate = &t
	}
	return info
}
