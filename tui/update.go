package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/internal/ui"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/open"
	"github.com/mprisync/mprisync/progress"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit), bubblesKey.Matches(msg, b.keymap.quit):
			b.stop()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		case bubblesKey.Matches(msg, b.keymap.openURL):
			cmds = append(cmds, b.openTrack())
		case bubblesKey.Matches(msg, b.keymap.clear):
			if b.state == watchingState || b.state == endedState {
				b.log = nil
				cmds = append(cmds, ui.Notify("log cleared"))
			}
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		cmds = append(cmds, cmd)
	case tickMsg:
		if b.state != errorState {
			cmds = append(cmds, tick())
		}
	case eventMsg:
		cmds = append(cmds, b.onEvent(events.Event(msg)))
	case snapshotMsg:
		cmds = append(cmds, b.onSnapshot(progress.Snapshot(msg)))
	case eventsEndedMsg:
		b.eventsEnded = true
		if msg.err != nil {
			b.raiseError(msg.err)
		} else if b.state != errorState {
			b.setState(endedState)
		}
	case progressEndedMsg:
		b.progressEnded = true
		if msg.err != nil {
			log.Warnf("tui: progress of %q: %v", b.options.Identity, msg.err)
		}
	}

	return b, tea.Batch(cmds...)
}

func (b *statefulBubble) onEvent(event events.Event) tea.Cmd {
	b.record(event)

	if event.IsTerminal() {
		if b.state != errorState {
			b.setState(endedState)
		}
		return ui.Notify(fmt.Sprintf("%s quit", b.options.Identity))
	}

	// the progress stream only catches up on its next sample
	if snapshot, ok := b.snapshot.Get(); ok && event.Kind == events.TrackChanged && event.Track != nil {
		snapshot.Metadata = event.Track.Clone()
		b.snapshot = mo.Some(snapshot)
	}

	return b.waitForEvent()
}

// openURL is replaced in tests.
var openURL = open.Start

func (b *statefulBubble) openTrack() tea.Cmd {
	snapshot, ok := b.snapshot.Get()
	if !ok || snapshot.Metadata.URL == "" {
		return ui.Notify("nothing to open")
	}

	url := snapshot.Metadata.URL
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			log.Warnf("tui: open %s: %v", url, err)
			return ui.NotificationMsg("could not open track")
		}
		return ui.NotificationMsg("opened " + url)
	}
}

func (b *statefulBubble) onSnapshot(snapshot progress.Snapshot) tea.Cmd {
	b.snapshot = mo.Some(snapshot)
	if b.state == waitingState {
		b.setState(watchingState)
	}
	return b.waitForSnapshot()
}
