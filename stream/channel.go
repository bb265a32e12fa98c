package stream

import (
	"errors"
	"sync"
)

// ErrAbandoned is returned by Send once every consumer handle of the bridge was closed.
var ErrAbandoned = errors.New("stream abandoned by all consumers")

// RecvStatus reports the outcome of Channel.TryRecv.
type RecvStatus uint8

const (
	// RecvItem means an item was dequeued.
	RecvItem RecvStatus = iota
	// RecvEmpty means nothing is queued but more may arrive.
	RecvEmpty
	// RecvClosed means the channel was closed and fully drained.
	RecvClosed
)

// Channel is an unbounded FIFO with a single producer and one receive side shared by every
// consumer. Close acts as the termination sentinel: items queued before it are still delivered,
// after which every receive reports RecvClosed.
type Channel[T any] struct {
	mu        sync.Mutex
	buf       []T
	head      int
	closed    bool
	abandoned bool
}

// NewChannel returns an open, empty channel.
func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Send enqueues item. It never blocks.
func (c *Channel[T]) Send(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.abandoned:
		return ErrAbandoned
	case c.closed:
		return ErrClosed
	}

	c.buf = append(c.buf, item)
	return nil
}

// TryRecv dequeues the oldest item without blocking.
func (c *Channel[T]) TryRecv() (item T, status RecvStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.head < len(c.buf) {
		item = c.buf[c.head]
		var zero T
		c.buf[c.head] = zero
		c.head++

		// compact once the consumed prefix dominates the buffer
		if c.head > 32 && c.head*2 >= len(c.buf) {
			c.buf = append(c.buf[:0], c.buf[c.head:]...)
			c.head = 0
		}
		return item, RecvItem
	}

	if c.closed {
		return item, RecvClosed
	}
	return item, RecvEmpty
}

// Close terminates the channel. Closing twice is a no-op.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Abandon closes the channel from the consumer side and drops queued items.
func (c *Channel[T]) Abandon() {
	c.mu.Lock()
	c.abandoned = true
	c.closed = true
	c.buf = nil
	c.head = 0
	c.mu.Unlock()
}

// Closed reports whether the channel was closed, regardless of queued items.
func (c *Channel[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Abandoned reports whether every consumer went away.
func (c *Channel[T]) Abandoned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.abandoned
}

// Len returns the number of queued items.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf) - c.head
}
