package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/parla-app/parla/internal/notifications"
	"github.com/parla-app/parla/internal/tts"
)

// CreditsWatchJob periodically checks the premium voice quota and sends
// a Discord warning when it crosses the low or exhausted threshold. Each
// threshold fires once per crossing; recovery (top-up or reset) rearms it.
type CreditsWatchJob struct {
	credits  tts.CreditsSource
	discord  *notifications.Discord
	logger   *log.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup

	warnedLow       bool
	warnedExhausted bool
}

// NewCreditsWatchJob creates a new credits watch job.
func NewCreditsWatchJob(credits tts.CreditsSource, discord *notifications.Discord, logger *log.Logger, interval time.Duration) *CreditsWatchJob {
	if interval == 0 {
		interval = 15 * time.Minute
	}
	return &CreditsWatchJob{
		credits:  credits,
		discord:  discord,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background job.
func (j *CreditsWatchJob) Start() {
	j.wg.Add(1)
	go j.run()
	j.logger.Printf("CreditsWatchJob: started (interval=%v)", j.interval)
}

// Stop gracefully stops the background job.
func (j *CreditsWatchJob) Stop() {
	close(j.stopCh)
	j.wg.Wait()
	j.logger.Println("CreditsWatchJob: stopped")
}

func (j *CreditsWatchJob) run() {
	defer j.wg.Done()

	// Run immediately on start
	j.check()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.check()
		case <-j.stopCh:
			return
		}
	}
}

func (j *CreditsWatchJob) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := j.credits.Fetch(ctx)
	if err != nil {
		j.logger.Printf("CreditsWatchJob: credits check failed: %v", err)
		return
	}
	if !info.Configured || info.Remaining < 0 {
		// Unconfigured key or unknown balance: nothing to watch.
		return
	}

	switch {
	case info.Remaining < tts.MinPremiumCredits:
		if !j.warnedExhausted {
			j.logger.Printf("CreditsWatchJob: credits exhausted (remaining=%d)", info.Remaining)
			j.discord.NotifyCreditsExhausted(ctx, info.Limit)
			j.warnedExhausted = true
			j.warnedLow = true
		}
	case info.LowCredits:
		if !j.warnedLow {
			j.logger.Printf("CreditsWatchJob: credits low (remaining=%d of %d)", info.Remaining, info.Limit)
			j.discord.NotifyLowCredits(ctx, info.Remaining, info.Limit)
			j.warnedLow = true
		}
		j.warnedExhausted = false
	default:
		// Healthy again; rearm both warnings.
		j.warnedLow = false
		j.warnedExhausted = false
	}
}
