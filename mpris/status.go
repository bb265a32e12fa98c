// Package mpris talks to MPRIS media players on the D-Bus session bus.
//
// Player handles hold a bus connection and are meant to be used from the goroutine that
// resolved them; the stream packages re-resolve players by identity inside their workers.
package mpris

import "strings"

// D-Bus names used by the MPRIS2 specification.
const (
	busNamePrefix   = "org.mpris.MediaPlayer2."
	objectPath      = "/org/mpris/MediaPlayer2"
	rootInterface   = "org.mpris.MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
	trackListIface  = "org.mpris.MediaPlayer2.TrackList"

	dbusInterface      = "org.freedesktop.DBus"
	propertiesIface    = "org.freedesktop.DBus.Properties"
	propertiesChanged  = propertiesIface + ".PropertiesChanged"
	nameOwnerChanged   = dbusInterface + ".NameOwnerChanged"
	seekedSignal       = playerInterface + ".Seeked"
	trackAddedSignal   = trackListIface + ".TrackAdded"
	trackRemovedSignal = trackListIface + ".TrackRemoved"
	trackChangedSignal = trackListIface + ".TrackMetadataChanged"
	trackListReplaced  = trackListIface + ".TrackListReplaced"
)

// PlaybackStatus is the player's PlaybackStatus property.
type PlaybackStatus string

const (
	Playing PlaybackStatus = "Playing"
	Paused  PlaybackStatus = "Paused"
	Stopped PlaybackStatus = "Stopped"
)

// ParsePlaybackStatus maps a raw property value, defaulting to Stopped for unknown values.
func ParsePlaybackStatus(s string) PlaybackStatus {
	switch {
	case strings.EqualFold(s, string(Playing)):
		return Playing
	case strings.EqualFold(s, string(Paused)):
		return Paused
	default:
		return Stopped
	}
}

// LoopStatus is the player's LoopStatus property.
type LoopStatus string

const (
	LoopNone     LoopStatus = "None"
	LoopTrack    LoopStatus = "Track"
	LoopPlaylist LoopStatus = "Playlist"
)

// ParseLoopStatus maps a raw property value, defaulting to LoopNone for unknown values.
func ParseLoopStatus(s string) LoopStatus {
	switch {
	case strings.EqualFold(s, string(LoopTrack)):
		return LoopTrack
	case strings.EqualFold(s, string(LoopPlaylist)):
		return LoopPlaylist
	default:
		return LoopNone
	}
}
