package players

import (
	"errors"
	"io"
	"time"

	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/stream"
)

const (
	minRetry  = 10 * time.Millisecond
	pauseStep = 100 * time.Millisecond
)

// Stream is a pollable, cloneable stream of players as they appear.
type Stream[P Player] struct {
	*stream.Bridge[P]
}

// Clone returns another handle on the same stream.
func (s *Stream[P]) Clone() *Stream[P] {
	return &Stream[P]{Bridge: s.Bridge.Clone()}
}

// Watch checks for players every retry and emits each player that appeared since the previous
// check. A player that vanished is emitted again when it comes back. A failed check changes
// nothing. The finder is created by the worker; the stream ends if that fails.
func Watch[P Player](factory Factory[P], retry time.Duration) *Stream[P] {
	return &Stream[P]{Bridge: stream.Spawn("players", watcher(factory, retry))}
}

func watcher[P Player](factory Factory[P], retry time.Duration) func(*stream.Producer[P]) {
	return func(p *stream.Producer[P]) {
		finder, err := factory()
		if err != nil {
			log.Warnf("players: create finder: %v", err)
			return
		}
		if closer, ok := finder.(io.Closer); ok {
			defer closer.Close()
		}

		retry = max(retry, minRetry)
		seen := make(map[string]struct{})

		for !p.Abandoned() {
			found, err := finder.FindAll()
			if err != nil && !errors.Is(err, mpris.ErrNoPlayerFound) {
				log.Debugf("players: %v", err)
				pause(p, retry)
				continue
			}

			present := make(map[string]struct{}, len(found))
			for _, player := range found {
				present[player.BusName()] = struct{}{}
				if _, ok := seen[player.BusName()]; ok {
					continue
				}

				log.For("players", player.Identity()).Debugf("appeared")
				if err := p.Emit(player); err != nil {
					return
				}
			}
			seen = present

			pause(p, retry)
		}
	}
}

// pause sleeps for d, waking early once every handle is gone.
func pause[P any](p *stream.Producer[P], d time.Duration) {
	deadline := time.Now().Add(d)
	for !p.Abandoned() {
		left := time.Until(deadline)
		if left <= 0 {
			return
		}
		time.Sleep(min(left, pauseStep))
	}
}
