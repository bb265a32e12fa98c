package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mprisync/mprisync/color"
	"github.com/mprisync/mprisync/icon"
	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/progress"
	"github.com/mprisync/mprisync/style"
	"github.com/mprisync/mprisync/util"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case waitingState:
		output = b.viewWaiting()
	case watchingState, endedState:
		output = b.viewWatching()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) title() string {
	title := style.Title(b.options.Identity)
	if b.state == endedState {
		title += " " + style.Tag(color.New("230"), color.Red)("quit")
	}
	return title
}

func (b *statefulBubble) viewWaiting() string {
	return b.renderLines(
		true,
		[]string{
			b.title(),
			"",
			b.spinnerC.View() + " Waiting for progress",
		},
	)
}

func (b *statefulBubble) viewWatching() string {
	lines := []string{b.title(), ""}

	if snapshot, ok := b.snapshot.Get(); ok {
		lines = append(lines, b.viewSnapshot(snapshot)...)
	}

	lines = append(lines, "", style.Bold("Events"))
	if len(b.log) == 0 {
		lines = append(lines, style.Faint("Nothing happened yet"))
	}
	for _, entry := range b.log {
		line := fmt.Sprintf("%s %s", style.Faint(entry.receivedAt.Format("15:04:05")), entry.event)
		lines = append(lines, util.Shorten(line, b.width))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewSnapshot(snapshot progress.Snapshot) []string {
	metadata := snapshot.Metadata

	track := lo.Ternary(metadata.Title == "", "Unknown track", metadata.Title)
	if len(metadata.Artists) > 0 {
		track += style.Faint(" by ") + strings.Join(metadata.Artists, ", ")
	}

	lines := []string{
		util.Shorten(fmt.Sprintf("%s %s", style.Status(snapshot.PlaybackStatus), style.Fg(color.Purple)(track)), b.width),
	}

	if metadata.Album != "" {
		lines = append(lines, util.Shorten(style.Faint(icon.Get(icon.Track)+" "+metadata.Album), b.width))
	}

	if viper.GetBool(key.TUIShowTrackIDs) && metadata.TrackID.Valid() {
		lines = append(lines, util.Shorten(style.Faint(string(metadata.TrackID)), b.width))
	}

	position := snapshot.CurrentPosition()
	var percent float64
	if metadata.HasLength() {
		position = min(position, metadata.Length)
		percent = util.Clamp(float64(position)/float64(metadata.Length), 0, 1)
	}

	lines = append(lines, "", fmt.Sprintf(
		"%s %s / %s",
		b.progressC.ViewAs(percent),
		util.FormatDuration(position),
		lo.Ternary(metadata.HasLength(), util.FormatDuration(metadata.Length), "--:--"),
	))

	if viper.GetBool(key.TUIShowVolume) {
		lines = append(lines, "", strings.Join([]string{
			fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), int(snapshot.Volume*100)),
			fmt.Sprintf("%s %s", icon.Get(icon.Shuffle), lo.Ternary(snapshot.Shuffle, "on", "off")),
			fmt.Sprintf("%s %s", icon.Get(icon.Loop), loopLabel(snapshot.LoopStatus)),
		}, style.Faint("  ")))
	}

	return lines
}

func loopLabel(status mpris.LoopStatus) string {
	switch status {
	case mpris.LoopTrack:
		return "track"
	case mpris.LoopPlaylist:
		return "playlist"
	default:
		return "off"
	}
}

func (b *statefulBubble) viewError() string {
	errorBody := style.Fg(color.Red)(b.lastError.Error())
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Lost " + b.options.Identity + ":",
			"",
			wrap.String(errorBody, b.width),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
