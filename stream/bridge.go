package stream

import (
	"context"
	"errors"
	"iter"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/mprisync/mprisync/log"
)

// ErrEnded is returned by Next once the stream terminated.
var ErrEnded = errors.New("stream ended")

// lineage is the state shared by every handle derived from one Spawn call.
type lineage struct {
	handles atomic.Int64
	nextKey atomic.Uint64
}

// Bridge is a cloneable handle to a stream driven by a single worker goroutine.
//
// Clones share the worker, the item channel and the waker exchange; cloning never starts a
// second worker. The receive side is shared, so an item is delivered to whichever clone reads
// it first. Use one handle per consuming goroutine.
type Bridge[T any] struct {
	identity string
	items    *Channel[T]
	wakers   *Exchange
	lineage  *lineage
	key      uint64
	closed   atomic.Bool
}

// Spawn creates a bridge for the source named identity and starts its worker.
//
// The worker runs on a dedicated OS thread for its whole lifetime, so thread-confined handles it
// acquires stay on that thread. When worker returns, or panics, the stream is terminated.
func Spawn[T any](identity string, worker func(*Producer[T])) *Bridge[T] {
	items := NewChannel[T]()
	wakers := NewExchange()

	b := &Bridge[T]{
		identity: identity,
		items:    items,
		wakers:   wakers,
		lineage:  &lineage{},
	}
	b.lineage.handles.Store(1)
	b.key = b.lineage.nextKey.Add(1)

	producer := &Producer[T]{identity: identity, items: items, wakers: wakers}
	go producer.run(worker)

	return b
}

// Clone returns a new handle sharing this bridge's worker and channels.
func (b *Bridge[T]) Clone() *Bridge[T] {
	b.lineage.handles.Add(1)
	return &Bridge[T]{
		identity: b.identity,
		items:    b.items,
		wakers:   b.wakers,
		lineage:  b.lineage,
		key:      b.lineage.nextKey.Add(1),
	}
}

// Identity returns the identity of the source this bridge was spawned for.
func (b *Bridge[T]) Identity() string {
	return b.identity
}

// PollNext checks for the next item without blocking.
//
// The waker is registered before the channel is inspected, on every call, so a Pending result is
// always followed by a wake-up once the worker produces something or terminates.
func (b *Bridge[T]) PollNext(w Waker) Poll[T] {
	if b.closed.Load() {
		return Poll[T]{Status: Ended}
	}

	// A closed exchange only means the worker is gone; queued items are still readable.
	_ = b.wakers.Register(b.key, w)

	item, status := b.items.TryRecv()
	switch status {
	case RecvItem:
		// ask to be polled again promptly, there may be more queued
		if w != nil {
			w.Wake()
		}
		return Poll[T]{Status: Ready, Item: item}
	case RecvClosed:
		b.wakers.Cancel(b.key)
		return Poll[T]{Status: Ended}
	default:
		return Poll[T]{Status: Pending}
	}
}

// Next blocks until an item is available, the stream ends (ErrEnded) or ctx is done.
func (b *Bridge[T]) Next(ctx context.Context) (T, error) {
	var zero T
	w := newSignalWaker()

	for {
		p := b.PollNext(w)
		switch p.Status {
		case Ready:
			return p.Item, nil
		case Ended:
			return zero, ErrEnded
		}

		select {
		case <-ctx.Done():
			b.wakers.Cancel(b.key)
			return zero, ctx.Err()
		case <-w:
		}
	}
}

// All returns an iterator over the remaining items. It stops when the stream ends or ctx is done.
func (b *Bridge[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, err := b.Next(ctx)
			if err != nil {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Close releases this handle. When the last handle of a lineage is closed the channel is
// abandoned, and the worker exits on its next send. Closing twice is a no-op.
func (b *Bridge[T]) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}

	b.wakers.Cancel(b.key)
	if b.lineage.handles.Add(-1) == 0 {
		b.items.Abandon()
		b.wakers.Close()
	}
}

// Producer is the worker's side of a bridge.
type Producer[T any] struct {
	identity string
	items    *Channel[T]
	wakers   *Exchange
	once     sync.Once
}

func (p *Producer[T]) run(worker func(*Producer[T])) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer p.Terminate()
	defer func() {
		if r := recover(); r != nil {
			log.For("stream", p.identity).Errorf("worker panicked: %v", r)
		}
	}()

	worker(p)
}

// Identity returns the identity the worker should resolve its source by.
func (p *Producer[T]) Identity() string {
	return p.identity
}

// Emit enqueues item and wakes every waiting consumer.
//
// The item is pushed before the exchange is drained: a consumer that registers after the drain
// necessarily reads after the push, so no wake-up is lost.
func (p *Producer[T]) Emit(item T) error {
	if err := p.items.Send(item); err != nil {
		return err
	}

	p.wakers.DrainAndWake()
	return nil
}

// EmitEach drains the waiting consumers and enqueues one freshly captured item for each of them
// before waking it. Nothing is captured when nobody waits. It returns the number of items sent.
func (p *Producer[T]) EmitEach(capture func() T) (int, error) {
	wakers := p.wakers.Drain()

	for i, w := range wakers {
		if err := p.items.Send(capture()); err != nil {
			for _, rest := range wakers[i:] {
				rest.Wake()
			}
			return i, err
		}
		w.Wake()
	}

	return len(wakers), nil
}

// Terminate closes the stream. Consumers read what is still queued and then observe the end.
// Only the first call has an effect.
func (p *Producer[T]) Terminate() {
	p.once.Do(func() {
		p.items.Close()
		p.wakers.Close()
	})
}

// Abandoned reports whether every consumer handle was closed.
func (p *Producer[T]) Abandoned() bool {
	return p.items.Abandoned()
}
