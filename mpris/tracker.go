package mpris

import (
	"time"

	"github.com/mprisync/mprisync/log"
)

// ProgressTracker samples a player at a fixed interval, waking early when the player signals a
// change, and reports whether the sampled progress differs from the previous one.
type ProgressTracker struct {
	player   *Player
	sub      *subscription
	interval time.Duration
	last     Progress
	lastTick time.Time
	quit     bool
}

// TrackProgress starts tracking the player, sampling at least every intervalMs milliseconds.
func (p *Player) TrackProgress(intervalMs uint32) (*ProgressTracker, error) {
	if intervalMs == 0 {
		intervalMs = 1
	}

	progress, err := p.Progress()
	if err != nil {
		return nil, err
	}

	sub, err := p.subscribe()
	if err != nil {
		return nil, err
	}

	return &ProgressTracker{
		player:   p,
		sub:      sub,
		interval: time.Duration(intervalMs) * time.Millisecond,
		last:     progress,
		lastTick: progress.CreatedAt,
	}, nil
}

// Progress returns the last sampled progress.
func (t *ProgressTracker) Progress() Progress {
	return t.last
}

// Tick blocks until the next sample is due or the player signalled something, then samples.
func (t *ProgressTracker) Tick() ProgressTick {
	if t.quit {
		return ProgressTick{PlayerQuit: true, Progress: t.last}
	}

	timer := time.NewTimer(t.nextWait(time.Now()))
	defer timer.Stop()

	select {
	case sig, ok := <-t.sub.signals:
		if !ok || leftBus(sig, t.player.busName) {
			return t.stop()
		}
	case <-timer.C:
	}
	defer func() { t.lastTick = time.Now() }()

	next, err := t.player.Progress()
	if err != nil {
		if !t.player.IsRunning() {
			return t.stop()
		}
		log.Debugf("sampling %s: %v", t.player.Identity(), err)
		return ProgressTick{Progress: t.last}
	}

	changed := progressChanged(t.last, next, PositionTolerance)
	t.last = next
	return ProgressTick{ProgressChanged: changed, Progress: next}
}

// nextWait is how long Tick waits at now before sampling. It counts from the previous tick, whether
// or not that tick managed to sample.
func (t *ProgressTracker) nextWait(now time.Time) time.Duration {
	return max(t.lastTick.Add(t.interval).Sub(now), 0)
}

func (t *ProgressTracker) stop() ProgressTick {
	t.quit = true
	return ProgressTick{PlayerQuit: true, Progress: t.last}
}

// Close stops the subscription.
func (t *ProgressTracker) Close() error {
	t.sub.close()
	return nil
}
