// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/progress"
	"github.com/mprisync/mprisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.Flags().Uint32P("interval", "i", 100, "Milliseconds between samples")
	lo.Must0(viper.BindPFlag(key.ProgressInterval, progressCmd.Flags().Lookup("interval")))

	progressCmd.Flags().StringP("format", "f", "", "text/template used to print each snapshot")
	lo.Must0(viper.BindPFlag(key.CliFormat, progressCmd.Flags().Lookup("format")))

	progressCmd.Flags().IntP("limit", "l", 0, "Stop after this many snapshots, 0 means never")
	progressCmd.Flags().BoolP("json", "j", false, "Print snapshots as JSON lines")
	progressCmd.MarkFlagsMutuallyExclusive("json", "format")

	progressCmd.SetOut(os.Stdout)
}

// progressCmd prints a player's progress whenever it changes.
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print the progress of a player whenever it changes",
	Long: `Print the progress of a player: once right away, then whenever it changes.

Snapshots are printed with a text/template. Besides the snapshot fields, the template can use
.CurrentPosition and .Length, and the functions status, join, duration, faint and bold.`,
	Example: `  mprisync progress --format '{{ .Metadata.Title }} {{ duration .CurrentPosition }}'`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		finder := connect()
		defer util.Ignore(finder.Close)

		player, err := selectPlayer(ctx, cmd, finder)
		handleErr(err)
		remember(player)

		printer, err := newSnapshotPrinter(cmd.OutOrStdout(), lo.Must(cmd.Flags().GetBool("json")))
		handleErr(err)

		var (
			limit    = lo.Must(cmd.Flags().GetInt("limit"))
			interval = viper.GetUint32(key.ProgressInterval)
			count    int
		)

		s := progress.New(player, interval)
		defer s.Close()

		// the stream only reports changes
		initial, err := player.Progress()
		handleErr(err)
		handleErr(printer.print(progress.SnapshotOf(initial)))
		if count++; limit > 0 && count >= limit {
			return
		}

		log.Infof("tracking progress of %s every %s", player.Identity(), s.Interval())
		for snapshot := range s.All(ctx) {
			handleErr(printer.print(snapshot))

			count++
			if limit > 0 && count >= limit {
				return
			}
		}
	},
}
