package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/progress"
	"github.com/mprisync/mprisync/stream"
)

// refreshInterval is how often the extrapolated position is redrawn.
const refreshInterval = 250 * time.Millisecond

type (
	eventMsg         events.Event
	snapshotMsg      progress.Snapshot
	eventsEndedMsg   struct{ err error }
	progressEndedMsg struct{ err error }
	tickMsg          time.Time
)

// Init starts reading both streams.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForEvent(), b.waitForSnapshot(), tick())
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, err := b.options.Events.Next(b.ctx)
		if err != nil {
			return eventsEndedMsg{err: unexpected(err)}
		}
		return eventMsg(event)
	}
}

func (b *statefulBubble) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := b.options.Progress.Next(b.ctx)
		if err != nil {
			return progressEndedMsg{err: unexpected(err)}
		}
		return snapshotMsg(snapshot)
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// unexpected filters out the errors a stream reports when it simply ended or was closed.
func unexpected(err error) error {
	switch {
	case errors.Is(err, stream.ErrEnded),
		errors.Is(err, stream.ErrClosed),
		errors.Is(err, stream.ErrAbandoned),
		errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}
