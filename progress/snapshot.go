package progress

import (
	"time"

	"github.com/mprisync/mprisync/mpris"
)

// Snapshot is an immutable copy of a player's progress, taken when it changed.
type Snapshot struct {
	Metadata          mpris.Metadata       `json:"metadata"`
	PlaybackStatus    mpris.PlaybackStatus `json:"playback_status"`
	Shuffle           bool                 `json:"shuffle"`
	LoopStatus        mpris.LoopStatus     `json:"loop_status"`
	CapturedAt        time.Time            `json:"captured_at"`
	PositionAtCapture time.Duration        `json:"position_at_capture"`
	PlaybackRate      float64              `json:"playback_rate"`
	Volume            float64              `json:"volume"`
}

// SnapshotOf copies p.
func SnapshotOf(p mpris.Progress) Snapshot {
	return Snapshot{
		Metadata:          p.Metadata.Clone(),
		PlaybackStatus:    p.PlaybackStatus,
		Shuffle:           p.Shuffle,
		LoopStatus:        p.LoopStatus,
		CapturedAt:        p.CreatedAt,
		PositionAtCapture: p.Position,
		PlaybackRate:      p.Rate,
		Volume:            p.Volume,
	}
}

func (s Snapshot) clone() Snapshot {
	s.Metadata = s.Metadata.Clone()
	return s
}

// PositionAt extrapolates the playback position at now. The position only advances while
// playing, at the playback rate.
func (s Snapshot) PositionAt(now time.Time) time.Duration {
	if s.PlaybackStatus != mpris.Playing {
		return s.PositionAtCapture
	}

	elapsed := now.Sub(s.CapturedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return s.PositionAtCapture + time.Duration(float64(elapsed)*s.PlaybackRate)
}

// CurrentPosition extrapolates the playback position now.
func (s Snapshot) CurrentPosition() time.Duration {
	return s.PositionAt(time.Now())
}

// Age is the time elapsed since the capture.
func (s Snapshot) Age() time.Duration {
	return time.Since(s.CapturedAt)
}

// Length is the length of the current track, zero when unknown.
func (s Snapshot) Length() time.Duration {
	return s.Metadata.Length
}
