// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/mprisync/mprisync/color"
	"github.com/mprisync/mprisync/constant"
	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/history"
	"github.com/mprisync/mprisync/icon"
	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/progress"
	"github.com/mprisync/mprisync/style"
	"github.com/mprisync/mprisync/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var snapshotFuncs = template.FuncMap{
	"status": func(status mpris.PlaybackStatus) string {
		return style.Status(status)
	},
	"join":     strings.Join,
	"duration": util.FormatDuration,
	"faint":    style.Faint,
	"bold":     style.Bold,
}

// snapshotTemplate parses the configured format, falling back to the built-in one.
func snapshotTemplate() (*template.Template, error) {
	format := viper.GetString(key.CliFormat)
	if strings.TrimSpace(format) == "" {
		format = constant.NowPlayingTemplate
	}

	t, err := template.New("snapshot").Funcs(snapshotFuncs).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key.CliFormat, err)
	}
	return t, nil
}

type snapshotPrinter struct {
	out      io.Writer
	asJson   bool
	template *template.Template
	encoder  *json.Encoder
}

func newSnapshotPrinter(out io.Writer, asJson bool) (*snapshotPrinter, error) {
	printer := &snapshotPrinter{out: out, asJson: asJson, encoder: json.NewEncoder(out)}
	if asJson {
		return printer, nil
	}

	t, err := snapshotTemplate()
	if err != nil {
		return nil, err
	}
	printer.template = t
	return printer, nil
}

func (p *snapshotPrinter) print(snapshot progress.Snapshot) error {
	if p.asJson {
		return p.encoder.Encode(snapshot)
	}

	if err := p.template.Execute(p.out, snapshot); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

func printEvent(out io.Writer, event events.Event, asJson bool) error {
	if asJson {
		return json.NewEncoder(out).Encode(event)
	}

	var mark string
	switch event.Kind {
	case events.Playing:
		mark = style.Fg(color.Green)(icon.Get(icon.Playing))
	case events.Paused:
		mark = style.Fg(color.Yellow)(icon.Get(icon.Paused))
	case events.Stopped, events.ShutDown:
		mark = style.Fg(color.Red)(icon.Get(icon.Stopped))
	case events.TrackChanged, events.TrackAdded, events.TrackRemoved, events.TrackMetadataChanged, events.TrackListReplaced:
		mark = style.Fg(color.Purple)(icon.Get(icon.Track))
	case events.VolumeChanged:
		mark = icon.Get(icon.Volume)
	case events.ShuffleToggled:
		mark = icon.Get(icon.Shuffle)
	case events.LoopingChanged:
		mark = icon.Get(icon.Loop)
	default:
		mark = icon.Get(icon.Progress)
	}

	_, err := fmt.Fprintf(out, "%s %s\n", mark, event)
	return err
}

// remember records player in the history when enabled. Failures are only logged.
func remember(player *mpris.Player) {
	if !viper.GetBool(key.HistorySave) {
		return
	}

	seen := history.SeenPlayer{
		Identity: player.Identity(),
		BusName:  player.BusName(),
		SeenAt:   time.Now(),
	}

	if p, err := player.Progress(); err == nil {
		seen.Status = p.PlaybackStatus
		if p.Metadata.Title != "" {
			seen.LastTrack = lo.Ternary(len(p.Metadata.Artists) > 0,
				fmt.Sprintf("%s - %s", p.Metadata.Title, strings.Join(p.Metadata.Artists, ", ")),
				p.Metadata.Title,
			)
		}
	}

	if err := history.Save(seen); err != nil {
		log.Warnf("history: save %s: %v", seen.BusName, err)
	}
}
