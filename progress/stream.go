// Package progress streams snapshots of a player's progress whenever it changes.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/stream"
)

// Tracker samples a player; Tick blocks until the next sample.
type Tracker interface {
	Tick() mpris.ProgressTick
	Close() error
}

// Resolver re-acquires a tracker for a player identity on the worker's own thread.
type Resolver func(identity string, intervalMs uint32) (Tracker, error)

// Stream is a pollable, cloneable stream of progress snapshots. A snapshot is produced for every
// consumer waiting when the progress changes; unchanged samples produce nothing.
type Stream struct {
	*stream.Bridge[Snapshot]
	intervalMs uint32
}

// New streams the progress of player, sampled every intervalMs milliseconds.
func New(player *mpris.Player, intervalMs uint32) *Stream {
	return NewWithResolver(player.Identity(), intervalMs, BusResolver)
}

// NewWithResolver streams the progress of the tracker resolve returns for identity.
// resolve is called exactly once, by the worker.
func NewWithResolver(identity string, intervalMs uint32, resolve Resolver) *Stream {
	return &Stream{
		Bridge:     stream.Spawn(identity, worker(intervalMs, resolve)),
		intervalMs: intervalMs,
	}
}

// Clone returns another handle on the same stream.
func (s *Stream) Clone() *Stream {
	return &Stream{Bridge: s.Bridge.Clone(), intervalMs: s.intervalMs}
}

// Interval returns the sampling interval.
func (s *Stream) Interval() time.Duration {
	return time.Duration(s.intervalMs) * time.Millisecond
}

func worker(intervalMs uint32, resolve Resolver) func(*stream.Producer[Snapshot]) {
	return func(p *stream.Producer[Snapshot]) {
		logger := log.For("progress", p.Identity())

		tracker, err := resolve(p.Identity(), intervalMs)
		if err != nil {
			logger.Warnf("resolve: %v", err)
			return
		}
		defer func() {
			if err := tracker.Close(); err != nil {
				logger.Debugf("close tracker: %v", err)
			}
		}()

		for !p.Abandoned() {
			tick := tracker.Tick()
			if tick.PlayerQuit {
				logger.Debugf("player quit")
				return
			}

			if !tick.ProgressChanged {
				continue
			}

			snapshot := SnapshotOf(tick.Progress)
			if _, err := p.EmitEach(snapshot.clone); err != nil {
				logger.Debugf("%v", err)
				return
			}
		}
	}
}

type busTracker struct {
	*mpris.ProgressTracker
	finder *mpris.Finder
}

func (b *busTracker) Close() error {
	return errors.Join(b.ProgressTracker.Close(), b.finder.Close())
}

// BusResolver finds the player named identity on a new session bus connection and starts
// tracking its progress.
func BusResolver(identity string, intervalMs uint32) (Tracker, error) {
	finder, err := mpris.NewFinder()
	if err != nil {
		return nil, err
	}

	player, err := finder.FindByName(identity)
	if err != nil {
		_ = finder.Close()
		return nil, err
	}

	tracker, err := player.TrackProgress(intervalMs)
	if err != nil {
		_ = finder.Close()
		return nil, fmt.Errorf("track %s: %w", identity, err)
	}

	return &busTracker{ProgressTracker: tracker, finder: finder}, nil
}
