package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/internal/assert"
	"github.com/cwbudde/algo-pedal/measure/envelope"
)

func newDetectors(name string, sampleRate float64, channels int) ([]*envelope.Follower, error) {
	dets := make([]*envelope.Follower, channels)
	for ch := range dets {
		det, err := envelope.NewFollower(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		dets[ch] = det
	}
	return dets, nil
}

// setTimes updates the follower's ballistics when they changed.
func setTimes(det *envelope.Follower, attackMs, releaseMs float64) {
	attackMs = core.Clamp(attackMs, 0, envelope.MaxTimeMs)
	releaseMs = core.Clamp(releaseMs, 0, envelope.MaxTimeMs)
	if det.Attack() != attackMs {
		err := det.SetAttack(attackMs)
		assert.That(err == nil, "dynamics: attack out of range")
	}
	if det.Release() != releaseMs {
		err := det.SetRelease(releaseMs)
		assert.That(err == nil, "dynamics: release out of range")
	}
}
