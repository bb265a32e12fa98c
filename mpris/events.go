package mpris

import (
	"io"
)

// PlayerEvents is a blocking iterator over the events of one player.
type PlayerEvents struct {
	sub   *subscription
	tr    translator
	queue []Event
	done  bool
}

// Events subscribes to the player's signals. Close the iterator when done with it.
func (p *Player) Events() (*PlayerEvents, error) {
	owner, err := p.owner()
	if err != nil {
		return nil, err
	}

	progress, err := p.Progress()
	if err != nil {
		return nil, err
	}

	sub, err := p.subscribe()
	if err != nil {
		return nil, err
	}

	return &PlayerEvents{
		sub: sub,
		tr: translator{
			busName: p.busName,
			owner:   owner,
			state:   stateOf(progress),
		},
	}, nil
}

// Next blocks until the player emits its next event.
// PlayerShutDown is the last event; every call after it returns io.EOF.
func (e *PlayerEvents) Next() (Event, error) {
	for {
		if len(e.queue) > 0 {
			next := e.queue[0]
			e.queue = e.queue[1:]
			if _, ok := next.(PlayerShutDown); ok {
				e.done = true
				e.queue = nil
			}
			return next, nil
		}

		if e.done {
			return nil, io.EOF
		}

		sig, ok := <-e.sub.signals
		if !ok {
			e.done = true
			return PlayerShutDown{}, nil
		}
		e.queue = append(e.queue, e.tr.translate(sig)...)
	}
}

// Close stops the subscription.
func (e *PlayerEvents) Close() error {
	e.sub.close()
	return nil
}
