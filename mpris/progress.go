package mpris

import (
	"math"
	"time"

	"github.com/godbus/dbus/v5"
)

// PositionTolerance is how far a reported position may drift from the extrapolated one before
// the tracker treats it as a jump.
const PositionTolerance = 500 * time.Millisecond

// Progress is the player state sampled at CreatedAt.
type Progress struct {
	Metadata       Metadata
	PlaybackStatus PlaybackStatus
	Shuffle        bool
	LoopStatus     LoopStatus
	CreatedAt      time.Time
	Position       time.Duration
	Rate           float64
	Volume         float64
}

// PositionAt extrapolates the playback position at the given instant.
func (p Progress) PositionAt(now time.Time) time.Duration {
	if p.PlaybackStatus != Playing {
		return p.Position
	}

	elapsed := now.Sub(p.CreatedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return p.Position + time.Duration(float64(elapsed)*p.Rate)
}

// ProgressTick is the result of one ProgressTracker.Tick.
type ProgressTick struct {
	ProgressChanged bool
	PlayerQuit      bool
	Progress        Progress
}

// parseProgress builds a Progress from a GetAll result of the Player interface.
func parseProgress(props map[string]dbus.Variant, now time.Time) Progress {
	p := Progress{
		PlaybackStatus: Stopped,
		LoopStatus:     LoopNone,
		CreatedAt:      now,
		Rate:           1,
		Volume:         1,
	}

	if v, ok := props["PlaybackStatus"]; ok {
		s, _ := v.Value().(string)
		p.PlaybackStatus = ParsePlaybackStatus(s)
	}
	if v, ok := props["LoopStatus"]; ok {
		s, _ := v.Value().(string)
		p.LoopStatus = ParseLoopStatus(s)
	}
	if v, ok := props["Shuffle"]; ok {
		p.Shuffle, _ = v.Value().(bool)
	}
	if v, ok := props["Rate"]; ok {
		if rate, ok := asFloat64(v.Value()); ok && rate > 0 {
			p.Rate = rate
		}
	}
	if v, ok := props["Volume"]; ok {
		if volume, ok := asFloat64(v.Value()); ok {
			p.Volume = volume
		}
	}
	if v, ok := props["Position"]; ok {
		if us, ok := asInt64(v.Value()); ok && us > 0 {
			p.Position = time.Duration(us) * time.Microsecond
		}
	}
	if v, ok := props["Metadata"]; ok {
		if raw, ok := v.Value().(map[string]dbus.Variant); ok {
			p.Metadata = ParseMetadata(raw)
		}
	}

	return p
}

// progressChanged reports whether next differs from prev in anything a consumer would show:
// track, status, shuffle, loop, volume, rate, or a position jump beyond tolerance.
func progressChanged(prev, next Progress, tolerance time.Duration) bool {
	switch {
	case prev.Metadata.TrackID != next.Metadata.TrackID,
		prev.Metadata.Title != next.Metadata.Title,
		prev.Metadata.Length != next.Metadata.Length,
		prev.PlaybackStatus != next.PlaybackStatus,
		prev.Shuffle != next.Shuffle,
		prev.LoopStatus != next.LoopStatus,
		!floatEqual(prev.Volume, next.Volume),
		!floatEqual(prev.Rate, next.Rate):
		return true
	}

	drift := next.Position - prev.PositionAt(next.CreatedAt)
	if drift < 0 {
		drift = -drift
	}
	return drift > tolerance
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
