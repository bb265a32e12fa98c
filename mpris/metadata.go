package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
)

// TrackID is the D-Bus object path identifying a track within a player.
type TrackID string

// NoTrack is the track id players report when nothing is loaded.
const NoTrack TrackID = "/org/mpris/MediaPlayer2/TrackList/NoTrack"

// Valid reports whether the id names an actual track.
func (id TrackID) Valid() bool {
	return id != "" && id != NoTrack
}

// Metadata is the subset of the xesam/mpris metadata map the application cares about.
type Metadata struct {
	TrackID      TrackID       `json:"track_id,omitempty"`
	Title        string        `json:"title,omitempty"`
	Artists      []string      `json:"artists,omitempty"`
	Album        string        `json:"album,omitempty"`
	AlbumArtists []string      `json:"album_artists,omitempty"`
	TrackNumber  int           `json:"track_number,omitempty"`
	Length       time.Duration `json:"length,omitempty"`
	URL          string        `json:"url,omitempty"`
	ArtURL       string        `json:"art_url,omitempty"`
}

// HasLength reports whether the player announced a track length.
func (m Metadata) HasLength() bool {
	return m.Length > 0
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	c := m
	c.Artists = append([]string(nil), m.Artists...)
	c.AlbumArtists = append([]string(nil), m.AlbumArtists...)
	return c
}

// ParseMetadata converts a raw a{sv} metadata map.
// Unknown keys are ignored and mistyped values are skipped.
func ParseMetadata(raw map[string]dbus.Variant) Metadata {
	var m Metadata

	for k, v := range raw {
		value := v.Value()

		switch k {
		case "mpris:trackid":
			switch id := value.(type) {
			case dbus.ObjectPath:
				m.TrackID = TrackID(id)
			case string:
				m.TrackID = TrackID(id)
			}
		case "mpris:length":
			if us, ok := asInt64(value); ok && us > 0 {
				m.Length = time.Duration(us) * time.Microsecond
			}
		case "mpris:artUrl":
			m.ArtURL, _ = value.(string)
		case "xesam:title":
			m.Title, _ = value.(string)
		case "xesam:album":
			m.Album, _ = value.(string)
		case "xesam:artist":
			m.Artists = asStrings(value)
		case "xesam:albumArtist":
			m.AlbumArtists = asStrings(value)
		case "xesam:trackNumber":
			if n, ok := asInt64(value); ok {
				m.TrackNumber = int(n)
			}
		case "xesam:url":
			m.URL, _ = value.(string)
		}
	}

	return m
}

// asInt64 accepts every numeric width players are known to send.
func asInt64(value any) (int64, bool) {
	switch n := value.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case int16:
		return int64(n), true
	case uint16:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		i, ok := asInt64(value)
		return float64(i), ok
	}
}

// asStrings accepts both a string list and the single string some players send instead.
func asStrings(value any) []string {
	switch s := value.(type) {
	case []string:
		return append([]string(nil), s...)
	case string:
		return []string{s}
	default:
		return nil
	}
}
