// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mprisync/mprisync/color"
	"github.com/mprisync/mprisync/icon"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/style"
)

// connect opens a finder on the session bus, exiting with an explanation when there is no bus.
func connect() *mpris.Finder {
	finder, err := mpris.NewFinder()
	if err != nil {
		printMissingBusError(err)
		os.Exit(1)
	}
	return finder
}

func printMissingBusError(err error) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.Red).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.Red).Render(fmt.Sprintf("%s Error: No Session Bus", icon.Get(icon.Fail)))
	body := style.New().Foreground(color.White).Render(fmt.Sprintf("Could not connect to the D-Bus session bus: %v", err))

	suggestion := fmt.Sprintf(
		"\n\nMPRIS players are only reachable from a desktop session.\nMake sure %s is set, or start one with:\n  %s",
		style.Bold("DBUS_SESSION_BUS_ADDRESS"),
		style.New().Foreground(color.Accent).Bold(true).Render("dbus-run-session -- $SHELL"),
	)

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
