// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mprisync/mprisync/history"
	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/players"
	"github.com/mprisync/mprisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func retryDelay() time.Duration {
	return time.Duration(viper.GetInt(key.PlayersRetryDelay)) * time.Millisecond
}

// selectPlayer picks the player to follow: the one matching the player option, or the most active one.
func selectPlayer(ctx context.Context, cmd *cobra.Command, finder *mpris.Finder) (*mpris.Player, error) {
	var (
		query = strings.TrimSpace(viper.GetString(key.PlayersDefault))
		wait  = lo.Must(cmd.Flags().GetBool("wait"))
	)

	if query == "" {
		if wait {
			return players.Active[*mpris.Player](ctx, finder, retryDelay())
		}
		return finder.FindActive()
	}

	var (
		all []*mpris.Player
		err error
	)
	if wait {
		all, err = players.All[*mpris.Player](ctx, finder, retryDelay())
	} else {
		all, err = finder.FindAll()
	}
	if err != nil {
		return nil, err
	}

	matched := players.Match(query, all)
	log.Debugf("%q matched %d of %d players", query, len(matched), len(all))

	if exact, ok := lo.Find(matched, func(p *mpris.Player) bool {
		return strings.EqualFold(p.Identity(), query) || strings.EqualFold(p.BusName(), query)
	}); ok {
		return exact, nil
	}

	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("%w matching %q", mpris.ErrNoPlayerFound, query)
	case 1:
		return matched[0], nil
	}

	if !util.IsTerminal() {
		return matched[0], nil
	}

	return askPlayer(matched)
}

func askPlayer(candidates []*mpris.Player) (*mpris.Player, error) {
	prompt := &survey.Select{
		Message: "Several players match, which one?",
		Options: lo.Map(candidates, func(p *mpris.Player, _ int) string {
			return fmt.Sprintf("%s (%s)", p.Identity(), p.BusName())
		}),
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return nil, err
	}
	return candidates[index], nil
}

// completionPlayers offers the running players first, then the ones seen before.
func completionPlayers(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string

	if finder, err := mpris.NewFinder(); err == nil {
		defer util.Ignore(finder.Close)

		if all, err := finder.FindAll(); err == nil {
			names = lo.Map(all, func(p *mpris.Player, _ int) string {
				return p.Identity()
			})
		} else if !errors.Is(err, mpris.ErrNoPlayerFound) {
			log.Debugf("completion: %v", err)
		}
	}

	if seen, err := history.Recent(0); err == nil {
		for _, s := range seen {
			names = append(names, s.Identity)
		}
	}

	return lo.Uniq(names), cobra.ShellCompDirectiveNoFileComp
}
