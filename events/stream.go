package events

import (
	"errors"
	"fmt"
	"io"

	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/stream"
)

// Source is a blocking iterator over the raw events of one player.
type Source interface {
	Next() (mpris.Event, error)
	Close() error
}

// Resolver re-acquires the source for a player identity on the worker's own thread.
type Resolver func(identity string) (Source, error)

// Stream is a pollable, cloneable stream of player events.
type Stream struct {
	*stream.Bridge[Event]
}

// New streams the events of player. The player is looked up again by identity on a fresh bus
// connection owned by the worker.
func New(player *mpris.Player) *Stream {
	return NewWithResolver(player.Identity(), BusResolver)
}

// NewWithResolver streams the events of the source resolve returns for identity.
// resolve is called exactly once, by the worker.
func NewWithResolver(identity string, resolve Resolver) *Stream {
	return &Stream{Bridge: stream.Spawn(identity, worker(resolve))}
}

// Clone returns another handle on the same stream.
func (s *Stream) Clone() *Stream {
	return &Stream{Bridge: s.Bridge.Clone()}
}

func worker(resolve Resolver) func(*stream.Producer[Event]) {
	return func(p *stream.Producer[Event]) {
		logger := log.For("events", p.Identity())

		source, err := resolve(p.Identity())
		if err != nil {
			logger.Warnf("resolve: %v", err)
			_ = p.Emit(Event{Kind: ShutDown})
			return
		}
		defer func() {
			if err := source.Close(); err != nil {
				logger.Debugf("close source: %v", err)
			}
		}()

		for !p.Abandoned() {
			raw, err := source.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					logger.Warnf("%v", err)
				}
				_ = p.Emit(Event{Kind: ShutDown})
				return
			}

			event, ok := translate(raw)
			if !ok {
				logger.Debugf("dropping unknown event %T", raw)
				continue
			}

			if err := p.Emit(event); err != nil {
				logger.Debugf("%v", err)
				return
			}

			if event.IsTerminal() {
				logger.Debugf("shut down")
				return
			}
		}
	}
}

// busSource owns the bus connection its events come from.
type busSource struct {
	*mpris.PlayerEvents
	finder *mpris.Finder
}

func (b *busSource) Close() error {
	return errors.Join(b.PlayerEvents.Close(), b.finder.Close())
}

// BusResolver finds the player named identity on a new session bus connection and subscribes
// to its events.
func BusResolver(identity string) (Source, error) {
	finder, err := mpris.NewFinder()
	if err != nil {
		return nil, err
	}

	player, err := finder.FindByName(identity)
	if err != nil {
		_ = finder.Close()
		return nil, err
	}

	events, err := player.Events()
	if err != nil {
		_ = finder.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", identity, err)
	}

	return &busSource{PlayerEvents: events, finder: finder}, nil
}
