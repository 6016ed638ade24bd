package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// errStopped marks a playback that was cancelled by Stop or supersession
// rather than finishing naturally. It never reaches callers of the
// Backend interface.
var errStopped = errors.New("playback stopped")

// player abstracts audio output so backends can be tested without a
// sound device.
type player interface {
	// play decodes and plays an MP3 payload, invoking onStart once
	// audio is audible. It blocks until playback completes or is
	// stopped, returning errStopped in the latter case.
	play(ctx context.Context, audio io.Reader, onStart func()) error
	stop()
}

// beepPlayer plays MP3 audio through the default output device.
type beepPlayer struct {
	mu     sync.Mutex
	ctrl   *beep.Ctrl
	stopCh chan struct{}
}

func (p *beepPlayer) play(ctx context.Context, audio io.Reader, onStart func()) error {
	streamer, format, err := mp3.Decode(io.NopCloser(audio))
	if err != nil {
		return &Failure{Code: CodeTransport, Reason: fmt.Sprintf("decode audio: %v", err)}
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return &Failure{Code: CodeTransport, Reason: fmt.Sprintf("audio device: %v", err)}
	}

	ctrl := &beep.Ctrl{Streamer: streamer}
	stopCh := make(chan struct{})
	done := make(chan struct{})

	p.mu.Lock()
	p.ctrl = ctrl
	p.stopCh = stopCh
	p.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() { close(done) })))
	onStart()

	select {
	case <-done:
		return nil
	case <-stopCh:
		return errStopped
	case <-ctx.Done():
		p.stop()
		return errStopped
	}
}

func (p *beepPlayer) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		p.ctrl = nil
	}
	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
}
