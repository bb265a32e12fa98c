// Package players waits for and watches MPRIS players.
package players

import (
	"context"
	"errors"
	"strings"
	"time"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mprisync/mprisync/mpris"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Player is what the helpers need to know about a player.
type Player interface {
	Identity() string
	BusName() string
}

// Finder looks players up. *mpris.Finder is one.
type Finder[P Player] interface {
	FindActive() (P, error)
	FindFirst() (P, error)
	FindAll() ([]P, error)
}

// Factory creates a finder. Finders that implement io.Closer are closed when no longer needed.
type Factory[P Player] func() (Finder[P], error)

// BusFactory creates finders on the session bus.
func BusFactory() (Finder[*mpris.Player], error) {
	finder, err := mpris.NewFinder()
	if err != nil {
		return nil, err
	}
	return finder, nil
}

// Active waits until there is an active player, checking every retry.
func Active[P Player](ctx context.Context, finder Finder[P], retry time.Duration) (P, error) {
	return wait(ctx, retry, finder.FindActive)
}

// First waits until there is a player, checking every retry.
func First[P Player](ctx context.Context, finder Finder[P], retry time.Duration) (P, error) {
	return wait(ctx, retry, finder.FindFirst)
}

// All waits until there is at least one player, checking every retry.
func All[P Player](ctx context.Context, finder Finder[P], retry time.Duration) ([]P, error) {
	return wait(ctx, retry, finder.FindAll)
}

// wait retries find while it reports no player. Any other error is returned as is.
func wait[T any](ctx context.Context, retry time.Duration, find func() (T, error)) (T, error) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}

		found, err := find()
		if err == nil || !errors.Is(err, mpris.ErrNoPlayerFound) {
			return found, err
		}

		timer.Reset(retry)
	}
}

// Match returns the players whose identity or bus name fuzzily matches query, closest first.
// An empty query matches every player.
func Match[P Player](query string, players []P) []P {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return players
	}

	name := func(p P) string {
		return strings.ToLower(p.Identity())
	}

	matched := lo.Filter(players, func(p P, _ int) bool {
		return fuzzy.MatchFold(query, p.Identity()) || fuzzy.MatchFold(query, p.BusName())
	})

	slices.SortStableFunc(matched, func(a, b P) int {
		return levenshtein.Distance(query, name(a)) - levenshtein.Distance(query, name(b))
	})

	return matched
}
