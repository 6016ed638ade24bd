package tts

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// speechEngines are the executables probed for the free backend, in
// preference order. espeak-ng/espeak cover Linux, say covers macOS.
var speechEngines = []string{"espeak-ng", "espeak", "say"}

// Base words-per-minute at rate 1.0 (espeak's own default).
const baseWordsPerMinute = 175

// PlatformBackend speaks through whatever speech engine the host
// platform provides. It is the free tier: always used when present, and
// the target of premium fallback. Presence is feature-detected, never
// assumed.
type PlatformBackend struct {
	logger *log.Logger
	lang   string // language prefix for voice selection, e.g. "en"

	// Injectable for tests.
	lookPath   func(string) (string, error)
	listVoices func(enginePath, lang string) (string, error)

	voiceOnce sync.Once
	voice     string

	mu  sync.Mutex
	cmd *exec.Cmd
	gen atomic.Uint64
}

// NewPlatformBackend creates the free backend for the given target
// language (a BCP 47 prefix such as "en").
func NewPlatformBackend(lang string, logger *log.Logger) *PlatformBackend {
	if lang == "" {
		lang = "en"
	}
	return &PlatformBackend{
		logger:   logger,
		lang:     lang,
		lookPath: exec.LookPath,
		listVoices: func(enginePath, lang string) (string, error) {
			out, err := exec.Command(enginePath, "--voices="+lang).Output()
			return string(out), err
		},
	}
}

func (b *PlatformBackend) Name() Provider { return ProviderBrowser }

// Available reports whether the host exposes a speech engine.
func (b *PlatformBackend) Available() bool {
	_, err := b.findEngine()
	return err == nil
}

func (b *PlatformBackend) findEngine() (string, error) {
	for _, candidate := range speechEngines {
		if path, err := b.lookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no speech engine found in PATH")
}

// Synthesize speaks the utterance through the platform engine, blocking
// until it finishes. A new utterance kills any one still playing
// (last-call-wins, no queueing).
func (b *PlatformBackend) Synthesize(ctx context.Context, u Utterance, cb Callbacks) error {
	gen := b.gen.Add(1)
	b.killCurrent()

	path, err := b.findEngine()
	if err != nil {
		return &Failure{Code: CodeCapabilityMissing, Reason: "no speech engine available on this system"}
	}

	args := speechArgs(filepath.Base(path), u, b.pickVoice(path))
	cmd := exec.CommandContext(ctx, path, args...)

	b.mu.Lock()
	b.cmd = cmd
	b.mu.Unlock()

	if err := cmd.Start(); err != nil {
		return &Failure{Code: CodeCapabilityMissing, Reason: fmt.Sprintf("start speech engine: %v", err)}
	}
	if b.gen.Load() == gen && cb.OnStart != nil {
		cb.OnStart()
	}

	err = cmd.Wait()
	if b.gen.Load() != gen || ctx.Err() != nil {
		// Killed by a newer utterance, Stop, or cancellation.
		return nil
	}
	if err != nil {
		reason := fmt.Sprintf("speech engine exited: %v", err)
		if cb.OnError != nil {
			cb.OnError(reason)
		}
		return &Failure{Code: CodeTransport, Reason: reason}
	}
	if cb.OnEnd != nil {
		cb.OnEnd()
	}
	return nil
}

// Stop kills active playback. Idempotent when nothing is playing.
func (b *PlatformBackend) Stop() {
	b.gen.Add(1)
	b.killCurrent()
}

func (b *PlatformBackend) killCurrent() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cmd != nil && b.cmd.Process != nil {
		_ = b.cmd.Process.Kill()
	}
	b.cmd = nil
}

// pickVoice selects a voice once per process. Only the espeak family
// supports listing voices by language; other engines use their default.
func (b *PlatformBackend) pickVoice(enginePath string) string {
	b.voiceOnce.Do(func() {
		engine := filepath.Base(enginePath)
		if !strings.HasPrefix(engine, "espeak") {
			return
		}
		out, err := b.listVoices(enginePath, b.lang)
		if err != nil {
			return
		}
		b.voice = chooseVoice(parseESpeakVoices(out), b.lang)
	})
	return b.voice
}

// speechArgs builds the engine command line. The playback rate scales the
// engine's words-per-minute setting.
func speechArgs(engine string, u Utterance, voice string) []string {
	rate := u.Rate
	if rate == 0 {
		rate = DefaultRate
	}
	wpm := strconv.Itoa(int(baseWordsPerMinute * ClampRate(rate)))

	var args []string
	switch {
	case strings.HasPrefix(engine, "espeak"):
		args = append(args, "-s", wpm)
		if voice != "" {
			args = append(args, "-v", voice)
		}
	case engine == "say":
		args = append(args, "-r", wpm)
		if voice != "" {
			args = append(args, "-v", voice)
		}
	}
	return append(args, u.Text)
}

// voiceInfo is one row of `espeak --voices` output.
type voiceInfo struct {
	Lang   string
	Gender string
	Name   string
}

// parseESpeakVoices parses `espeak --voices=<lang>` output. Lines look
// like:
//
//	Pty Language Age/Gender VoiceName          File          Other Languages
//	 5  en-gb          M  english             en            (en-uk 2)
func parseESpeakVoices(out string) []voiceInfo {
	var voices []voiceInfo
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue // header or malformed line
		}
		voices = append(voices, voiceInfo{
			Lang:   fields[1],
			Gender: strings.ToUpper(fields[2]),
			Name:   fields[3],
		})
	}
	return voices
}

// chooseVoice prefers a feminine-labelled voice for the target language,
// then the first voice for that language, then the platform default
// (empty string). Best-effort: no match is not an error.
func chooseVoice(voices []voiceInfo, lang string) string {
	first := ""
	for _, v := range voices {
		if !strings.HasPrefix(v.Lang, lang) {
			continue
		}
		if v.Gender == "F" {
			return v.Name
		}
		if first == "" {
			first = v.Name
		}
	}
	return first
}
