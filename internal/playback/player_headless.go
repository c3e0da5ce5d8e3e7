//go:build headless

package playback

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Player is unavailable in headless builds.
type Player struct{}

// NewPlayer always fails with ErrUnavailable.
func NewPlayer(sampleRate, channels int, logger *slog.Logger) (*Player, error) {
	return nil, ErrUnavailable
}

// Play always fails with ErrUnavailable.
func (p *Player) Play(ctx context.Context, r io.Reader, duration time.Duration) error {
	return ErrUnavailable
}
