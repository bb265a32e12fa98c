package stream

import (
	"errors"
	"sync"
)

// ErrClosed is returned when registering with, or sending into, a bridge whose worker terminated.
var ErrClosed = errors.New("stream closed")

type pendingWaker struct {
	key   uint64
	waker Waker
}

// Exchange is the registry of wakers left behind by consumers whose last poll found nothing.
//
// Each consumer registers under its own key; a repeated registration replaces the previous waker
// in place, so a consumer that polls many times while pending still owns a single slot. The
// worker drains the whole registry atomically and wakes what it took.
type Exchange struct {
	mu      sync.Mutex
	pending []pendingWaker
	closed  bool
}

// NewExchange returns an empty exchange.
func NewExchange() *Exchange {
	return &Exchange{}
}

// Register records w as the waker for the consumer identified by key.
// It never blocks. After Close it wakes w immediately and returns ErrClosed.
func (x *Exchange) Register(key uint64, w Waker) error {
	if w == nil {
		return nil
	}

	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		w.Wake()
		return ErrClosed
	}

	for i := range x.pending {
		if x.pending[i].key == key {
			x.pending[i].waker = w
			x.mu.Unlock()
			return nil
		}
	}

	x.pending = append(x.pending, pendingWaker{key: key, waker: w})
	x.mu.Unlock()
	return nil
}

// Cancel removes the waker registered under key, if any.
func (x *Exchange) Cancel(key uint64) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for i := range x.pending {
		if x.pending[i].key == key {
			x.pending = append(x.pending[:i], x.pending[i+1:]...)
			return
		}
	}
}

// Drain removes and returns every pending waker in registration order.
func (x *Exchange) Drain() []Waker {
	x.mu.Lock()
	taken := x.pending
	x.pending = nil
	x.mu.Unlock()

	wakers := make([]Waker, len(taken))
	for i, p := range taken {
		wakers[i] = p.waker
	}
	return wakers
}

// DrainAndWake drains the exchange and wakes each drained waker. It returns how many were woken.
func (x *Exchange) DrainAndWake() int {
	wakers := x.Drain()
	for _, w := range wakers {
		w.Wake()
	}
	return len(wakers)
}

// Close marks the exchange terminated and wakes every consumer still waiting, so each of them
// re-polls and observes the end of the stream. Closing twice is a no-op.
func (x *Exchange) Close() {
	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return
	}
	x.closed = true
	x.mu.Unlock()

	x.DrainAndWake()
}

// Closed reports whether Close was called.
func (x *Exchange) Closed() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.closed
}

// Len returns the number of pending wakers.
func (x *Exchange) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.pending)
}
