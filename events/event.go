// Package events streams the discrete events of a player through a pollable bridge.
package events

import (
	"fmt"
	"time"

	"github.com/mprisync/mprisync/mpris"
)

// Kind identifies which case of Event is set.
type Kind uint8

const (
	Playing Kind = iota
	Paused
	Stopped
	ShutDown
	LoopingChanged
	ShuffleToggled
	VolumeChanged
	PlaybackRateChanged
	TrackChanged
	Seeked
	TrackAdded
	TrackRemoved
	TrackMetadataChanged
	TrackListReplaced
)

var kindNames = [...]string{
	Playing:              "Playing",
	Paused:               "Paused",
	Stopped:              "Stopped",
	ShutDown:             "ShutDown",
	LoopingChanged:       "LoopingChanged",
	ShuffleToggled:       "ShuffleToggled",
	VolumeChanged:        "VolumeChanged",
	PlaybackRateChanged:  "PlaybackRateChanged",
	TrackChanged:         "TrackChanged",
	Seeked:               "Seeked",
	TrackAdded:           "TrackAdded",
	TrackRemoved:         "TrackRemoved",
	TrackMetadataChanged: "TrackMetadataChanged",
	TrackListReplaced:    "TrackListReplaced",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds lists every kind.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event is one player event. Only the fields belonging to Kind are meaningful:
//
//	LoopingChanged        Loop
//	ShuffleToggled        Shuffle
//	VolumeChanged         Volume
//	PlaybackRateChanged   Rate
//	TrackChanged          Track
//	TrackAdded            Track
//	Seeked                PositionUs
//	TrackRemoved          TrackID
//	TrackMetadataChanged  OldID, NewID
type Event struct {
	Kind       Kind             `json:"kind"`
	Loop       mpris.LoopStatus `json:"loop,omitempty"`
	Shuffle    bool             `json:"shuffle,omitempty"`
	Volume     float64          `json:"volume,omitempty"`
	Rate       float64          `json:"rate,omitempty"`
	Track      *mpris.Metadata  `json:"track,omitempty"`
	PositionUs int64            `json:"position_us,omitempty"`
	TrackID    mpris.TrackID    `json:"track_id,omitempty"`
	OldID      mpris.TrackID    `json:"old_id,omitempty"`
	NewID      mpris.TrackID    `json:"new_id,omitempty"`
}

// IsTerminal reports whether no event can follow this one.
func (e Event) IsTerminal() bool {
	return e.Kind == ShutDown
}

// Position returns the Seeked position as a duration.
func (e Event) Position() time.Duration {
	return time.Duration(e.PositionUs) * time.Microsecond
}

// String renders the event the way the CLI prints it.
func (e Event) String() string {
	switch e.Kind {
	case LoopingChanged:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Loop)
	case ShuffleToggled:
		return fmt.Sprintf("%s(%t)", e.Kind, e.Shuffle)
	case VolumeChanged:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Volume)
	case PlaybackRateChanged:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Rate)
	case TrackChanged, TrackAdded:
		if e.Track == nil {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s(%q)", e.Kind, e.Track.Title)
	case Seeked:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Position())
	case TrackRemoved:
		return fmt.Sprintf("%s(%s)", e.Kind, e.TrackID)
	case TrackMetadataChanged:
		return fmt.Sprintf("%s(%s -> %s)", e.Kind, e.OldID, e.NewID)
	default:
		return e.Kind.String()
	}
}

// translate rebuilds a source event field by field, so nothing of the source's representation
// leaks into the stream.
func translate(source mpris.Event) (Event, bool) {
	switch ev := source.(type) {
	case mpris.PlaybackStarted:
		return Event{Kind: Playing}, true
	case mpris.PlaybackPaused:
		return Event{Kind: Paused}, true
	case mpris.PlaybackStopped:
		return Event{Kind: Stopped}, true
	case mpris.PlayerShutDown:
		return Event{Kind: ShutDown}, true
	case mpris.LoopingChanged:
		return Event{Kind: LoopingChanged, Loop: ev.Status}, true
	case mpris.ShuffleToggled:
		return Event{Kind: ShuffleToggled, Shuffle: ev.Shuffle}, true
	case mpris.VolumeChanged:
		return Event{Kind: VolumeChanged, Volume: ev.Volume}, true
	case mpris.PlaybackRateChanged:
		return Event{Kind: PlaybackRateChanged, Rate: ev.Rate}, true
	case mpris.TrackChanged:
		track := ev.Metadata.Clone()
		return Event{Kind: TrackChanged, Track: &track}, true
	case mpris.Seeked:
		return Event{Kind: Seeked, PositionUs: ev.PositionUs}, true
	case mpris.TrackAdded:
		track := ev.Metadata.Clone()
		return Event{Kind: TrackAdded, Track: &track}, true
	case mpris.TrackRemoved:
		return Event{Kind: TrackRemoved, TrackID: ev.ID}, true
	case mpris.TrackMetadataChanged:
		return Event{Kind: TrackMetadataChanged, OldID: ev.OldID, NewID: ev.NewID}, true
	case mpris.TrackListReplaced:
		return Event{Kind: TrackListReplaced}, true
	default:
		return Event{}, false
	}
}
