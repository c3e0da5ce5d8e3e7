//go:build headless

package playback

import (
	"context"
	"errors"
	"testing"
)

func TestHeadlessPlayerUnavailable(t *testing.T) {
	if _, err := NewPlayer(48000, 2, nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("NewPlayer() error = %v, want ErrUnavailable", err)
	}
	var p Player
	if err := p.Play(context.Background(), nil, 0); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Play() error = %v, want ErrUnavailable", err)
	}
}
