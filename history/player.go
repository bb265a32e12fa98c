package history

import (
	"fmt"
	"time"

	"github.com/mprisync/mprisync/mpris"
)

// SeenPlayer is the last known state of a player a stream was opened for.
type SeenPlayer struct {
	Identity  string               `json:"identity"`
	BusName   string               `json:"bus_name"`
	LastTrack string               `json:"last_track,omitempty"`
	Status    mpris.PlaybackStatus `json:"status,omitempty"`
	SeenAt    time.Time            `json:"seen_at"`
	Times     int                  `json:"times"`
}

func (s *SeenPlayer) encode() string {
	return s.BusName
}

func (s *SeenPlayer) String() string {
	if s.LastTrack == "" {
		return s.Identity
	}
	return fmt.Sprintf("%s : %s", s.Identity, s.LastTrack)
}
