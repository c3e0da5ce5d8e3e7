//go:build !headless

package playback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ebitengine/oto/v3"
)

const pollInterval = 20 * time.Millisecond

// Player owns the process-wide oto context.
type Player struct {
	ctx        *oto.Context
	sampleRate int
	channels   int
	logger     *slog.Logger
}

// NewPlayer opens the default audio device. oto allows one context per
// process.
func NewPlayer(sampleRate, channels int, logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	<-ready

	logger.Debug("audio device ready", slog.Int("sample_rate", sampleRate), slog.Int("channels", channels))
	return &Player{ctx: ctx, sampleRate: sampleRate, channels: channels, logger: logger}, nil
}

// Play streams r until it is exhausted, the duration elapses or ctx is
// cancelled. A zero duration plays until r ends or ctx is done.
func (p *Player) Play(ctx context.Context, r io.Reader, duration time.Duration) error {
	player := p.ctx.NewPlayer(r)
	defer func() {
		if err := player.Close(); err != nil {
			p.logger.Warn("closing player", slog.Any("error", err))
		}
	}()

	player.Play()
	p.logger.Info("playing", slog.Duration("duration", duration))

	var deadline <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		deadline = timer.C
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("playback interrupted")
			return ctx.Err()
		case <-deadline:
			return nil
		case <-ticker.C:
			if !player.IsPlaying() {
				return player.Err()
			}
		}
	}
}
