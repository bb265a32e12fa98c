// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"context"

	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/progress"
	"github.com/mprisync/mprisync/tui"
	"github.com/mprisync/mprisync/util"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchCmd shows a live view of a player.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live view of a player",
	Run: func(cmd *cobra.Command, args []string) {
		finder := connect()
		defer util.Ignore(finder.Close)

		player, err := selectPlayer(context.Background(), cmd, finder)
		handleErr(err)
		remember(player)

		options := tui.Options{
			Identity: player.Identity(),
			Events:   events.New(player),
			Progress: progress.New(player, viper.GetUint32(key.ProgressInterval)),
		}

		if initial, err := player.Progress(); err == nil {
			options.Initial = mo.Some(progress.SnapshotOf(initial))
		} else {
			log.Warnf("initial progress of %s: %v", player.Identity(), err)
		}

		handleErr(tui.Run(&options))
	},
}
