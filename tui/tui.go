// Package tui provides the watch view, a live terminal view of a single player.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/progress"
	"github.com/samber/mo"
)

// EventSource is a stream of player events. *events.Stream is one.
type EventSource interface {
	Next(ctx context.Context) (events.Event, error)
	Close()
}

// SnapshotSource is a stream of progress snapshots. *progress.Stream is one.
type SnapshotSource interface {
	Next(ctx context.Context) (progress.Snapshot, error)
	Close()
}

// Options encapsulates the runtime configuration for the watch view.
type Options struct {
	// Identity is the watched player's identity, shown in the title.
	Identity string
	Events   EventSource
	Progress SnapshotSource

	// Initial is shown until the progress stream produces its first snapshot.
	Initial mo.Option[progress.Snapshot]
}

// Run shows the watch view until the user quits. Both streams are closed on return.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.stop()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
