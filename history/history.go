// Package history remembers the players mprisync has streamed from.
package history

import (
	"github.com/mprisync/mprisync/filesystem"
	"github.com/mprisync/mprisync/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var cacher = gache.New[map[string]*SeenPlayer](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every remembered player keyed by bus name.
func Get() (map[string]*SeenPlayer, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SeenPlayer), nil
	}
	return cached, nil
}

// Recent returns the remembered players, most recently seen first. A limit of 0 means all.
func Recent(limit int) ([]*SeenPlayer, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	players := lo.Values(saved)
	slices.SortFunc(players, func(a, b *SeenPlayer) int {
		return b.SeenAt.Compare(a.SeenAt)
	})

	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

// Save records that player was seen. Empty track and status keep the previous ones.
func Save(player SeenPlayer) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := &player
	if existing, ok := saved[record.encode()]; ok {
		record.Times = existing.Times
		if record.LastTrack == "" {
			record.LastTrack = existing.LastTrack
		}
		if record.Status == "" {
			record.Status = existing.Status
		}
	}
	record.Times++

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// Remove forgets the player with the given bus name.
func Remove(busName string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, busName)
	return cacher.Set(saved)
}
