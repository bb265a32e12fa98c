package mpris

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/mprisync/mprisync/log"
	"github.com/samber/lo"
)

// ErrNoPlayerFound is returned when no player on the bus matches.
var ErrNoPlayerFound = errors.New("no player found")

// Finder discovers players on a private session bus connection.
type Finder struct {
	conn *dbus.Conn
}

// NewFinder connects to the session bus.
func NewFinder() (*Finder, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Finder{conn: conn}, nil
}

// Close closes the bus connection; players found by this finder stop working.
func (f *Finder) Close() error {
	return f.conn.Close()
}

// busNames lists the MPRIS bus names, sorted for a stable order.
func (f *Finder) busNames() ([]string, error) {
	var names []string
	if err := f.conn.BusObject().Call(dbusInterface+".ListNames", 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list bus names: %w", err)
	}

	names = lo.Filter(names, func(name string, _ int) bool {
		return strings.HasPrefix(name, busNamePrefix)
	})
	sort.Strings(names)
	return names, nil
}

// FindAll returns every player that answered. It fails with ErrNoPlayerFound when there is none.
func (f *Finder) FindAll() ([]*Player, error) {
	names, err := f.busNames()
	if err != nil {
		return nil, err
	}

	var players []*Player
	for _, name := range names {
		p, err := newPlayer(f.conn, name)
		if err != nil {
			// players that vanished or misbehave between listing and querying are skipped
			log.Debugf("skipping %s: %v", name, err)
			continue
		}
		players = append(players, p)
	}

	if len(players) == 0 {
		return nil, ErrNoPlayerFound
	}
	return players, nil
}

// FindFirst returns the first player in bus name order.
func (f *Finder) FindFirst() (*Player, error) {
	players, err := f.FindAll()
	if err != nil {
		return nil, err
	}
	return players[0], nil
}

// FindActive returns the player most likely to be the one the user cares about:
// a playing one, else a paused one, else one with a loaded track, else the first.
func (f *Finder) FindActive() (*Player, error) {
	players, err := f.FindAll()
	if err != nil {
		return nil, err
	}

	type candidate struct {
		player *Player
		rank   int
	}

	candidates := lo.Map(players, func(p *Player, _ int) candidate {
		progress, err := p.Progress()
		if err != nil {
			return candidate{player: p, rank: 3}
		}
		return candidate{player: p, rank: activityRank(progress)}
	})

	best := lo.MinBy(candidates, func(a, b candidate) bool {
		return a.rank < b.rank
	})
	return best.player, nil
}

func activityRank(p Progress) int {
	switch {
	case p.PlaybackStatus == Playing:
		return 0
	case p.PlaybackStatus == Paused:
		return 1
	case p.Metadata.TrackID.Valid():
		return 2
	default:
		return 3
	}
}

// FindByName returns the player whose identity or bus name matches name, ignoring case.
func (f *Finder) FindByName(name string) (*Player, error) {
	players, err := f.FindAll()
	if err != nil {
		return nil, err
	}

	p, ok := lo.Find(players, func(p *Player) bool {
		return strings.EqualFold(p.Identity(), name) || strings.EqualFold(p.BusName(), name)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoPlayerFound, name)
	}
	return p, nil
}
