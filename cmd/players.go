// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mprisync/mprisync/color"
	"github.com/mprisync/mprisync/history"
	"github.com/mprisync/mprisync/icon"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/players"
	"github.com/mprisync/mprisync/style"
	"github.com/mprisync/mprisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(playersCmd)

	playersCmd.Flags().BoolP("json", "j", false, "Print players as JSON")
	playersCmd.Flags().Bool("watch", false, "Keep running and print players as they appear")
	playersCmd.Flags().IntP("recent", "r", -1, "Print the players seen recently instead, at most this many (0 for all)")
	playersCmd.Flags().Lookup("recent").NoOptDefVal = "0"
	playersCmd.MarkFlagsMutuallyExclusive("watch", "recent")

	playersCmd.SetOut(os.Stdout)
}

// playerInfo is how players are printed as JSON.
type playerInfo struct {
	Identity       string               `json:"identity"`
	BusName        string               `json:"bus_name"`
	PlaybackStatus mpris.PlaybackStatus `json:"playback_status,omitempty"`
	Track          string               `json:"track,omitempty"`
}

func describe(p *mpris.Player) playerInfo {
	info := playerInfo{Identity: p.Identity(), BusName: p.BusName()}
	if status, err := p.PlaybackStatus(); err == nil {
		info.PlaybackStatus = status
	}
	if metadata, err := p.Metadata(); err == nil {
		info.Track = metadata.Title
	}
	return info
}

// describeAll queries the players concurrently, keeping their order.
func describeAll(ctx context.Context, all []*mpris.Player) []playerInfo {
	infos := make([]playerInfo, len(all))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range all {
		g.Go(func() error {
			infos[i] = describe(p)
			return nil
		})
	}
	_ = g.Wait()

	return infos
}

func printPlayer(cmd *cobra.Command, info playerInfo, asJson bool) {
	if asJson {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
		return
	}

	line := fmt.Sprintf("%s %s %s", style.Status(info.PlaybackStatus), style.Bold(info.Identity), style.Faint(info.BusName))
	if info.Track != "" {
		line += " " + style.Fg(color.Purple)(info.Track)
	}
	cmd.Println(line)
}

// playersCmd lists the running players.
var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the MPRIS players on the session bus",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			watch  = lo.Must(cmd.Flags().GetBool("watch"))
			wait   = lo.Must(cmd.Flags().GetBool("wait"))
			recent = lo.Must(cmd.Flags().GetInt("recent"))
		)

		if recent >= 0 {
			printRecent(cmd, recent, asJson)
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if watch {
			s := players.Watch[*mpris.Player](players.BusFactory, retryDelay())
			defer s.Close()

			for p := range s.All(ctx) {
				printPlayer(cmd, describe(p), asJson)
			}
			return
		}

		finder := connect()
		defer util.Ignore(finder.Close)

		var (
			all []*mpris.Player
			err error
		)
		if wait {
			all, err = players.All[*mpris.Player](ctx, finder, retryDelay())
		} else {
			all, err = finder.FindAll()
		}

		if errors.Is(err, mpris.ErrNoPlayerFound) {
			if asJson {
				cmd.Println("[]")
			} else {
				cmd.Printf("%s No players running\n", icon.Get(icon.Warn))
			}
			return
		}
		handleErr(err)

		infos := describeAll(ctx, all)

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(infos))
			return
		}

		for _, info := range infos {
			printPlayer(cmd, info, false)
		}
	},
}

func printRecent(cmd *cobra.Command, limit int, asJson bool) {
	seen, err := history.Recent(limit)
	handleErr(err)

	if asJson {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(seen))
		return
	}

	if len(seen) == 0 {
		cmd.Printf("%s No players seen yet\n", icon.Get(icon.Warn))
		return
	}

	for _, s := range seen {
		cmd.Printf(
			"%s %s %s\n",
			style.Faint(s.SeenAt.Format("2006-01-02 15:04")),
			style.Bold(s.String()),
			style.Faint(fmt.Sprintf("(%s)", util.Quantify(s.Times, "time", "times"))),
		)
	}
}
