// Package stream bridges blocking, thread-confined producers into pollable multi-consumer streams.
//
// A Bridge owns exactly one worker goroutine, locked to its own OS thread, that drives the
// blocking source and forwards items through an unbounded Channel. Consumers poll without
// blocking and leave a Waker in the Exchange so the worker can resume them once an item lands.
package stream

// Waker resumes a consumer that is suspended on a poll that returned Pending.
// Wake may be called more than once and from any goroutine; extra wake-ups are harmless.
type Waker interface {
	Wake()
}

// WakerFunc adapts an ordinary function into a Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() {
	if f != nil {
		f()
	}
}

// Status reports the outcome of a single poll.
type Status uint8

const (
	// Pending means nothing is queued yet. The caller's waker has been registered.
	Pending Status = iota
	// Ready means Poll.Item holds the next item.
	Ready
	// Ended means the stream terminated. Every later poll reports Ended as well.
	Ended
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Poll is the result of Bridge.PollNext.
type Poll[T any] struct {
	Status Status
	Item   T
}

// signalWaker is a Waker backed by a one-slot channel, used by the blocking adaptors.
type signalWaker chan struct{}

func newSignalWaker() signalWaker {
	return make(signalWaker, 1)
}

// Wake never blocks: a pending signal already covers this one.
func (s signalWaker) Wake() {
	select {
	case s <- struct{}{}:
	default:
	}
}
