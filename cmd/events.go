// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().IntP("limit", "l", 0, "Stop after this many events, 0 means never")
	lo.Must0(viper.BindPFlag(key.EventsLimit, eventsCmd.Flags().Lookup("limit")))
	eventsCmd.Flags().BoolP("json", "j", false, "Print events as JSON lines")

	eventsCmd.SetOut(os.Stdout)
}

// eventsCmd prints what a player does until it quits.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the events of a player until it quits",
	Long: `Print every event of a player, one per line, until it quits.

The last event is always ShutDown, whether the player quit or could not be reached anymore.`,
	Example: "  mprisync events -p spotify --json | jq .kind",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		finder := connect()
		defer util.Ignore(finder.Close)

		player, err := selectPlayer(ctx, cmd, finder)
		handleErr(err)
		remember(player)

		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			limit  = viper.GetInt(key.EventsLimit)
			count  int
		)

		s := events.New(player)
		defer s.Close()

		log.Infof("streaming events of %s", player.Identity())
		for event := range s.All(ctx) {
			handleErr(printEvent(cmd.OutOrStdout(), event, asJson))

			count++
			if limit > 0 && count >= limit {
				return
			}
		}
	},
}
