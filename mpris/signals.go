package mpris

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const signalBuffer = 32

// subscription routes the signals of one player into a channel.
type subscription struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	rules   [][]dbus.MatchOption
}

func (p *Player) subscribe() (*subscription, error) {
	sender := dbus.WithMatchSender(p.busName)
	path := dbus.WithMatchObjectPath(objectPath)

	s := &subscription{
		conn:    p.conn,
		signals: make(chan *dbus.Signal, signalBuffer),
		rules: [][]dbus.MatchOption{
			{sender, path, dbus.WithMatchInterface(propertiesIface), dbus.WithMatchMember("PropertiesChanged")},
			{sender, path, dbus.WithMatchInterface(playerInterface), dbus.WithMatchMember("Seeked")},
			{sender, path, dbus.WithMatchInterface(trackListIface)},
			{
				dbus.WithMatchSender(dbusInterface),
				dbus.WithMatchInterface(dbusInterface),
				dbus.WithMatchMember("NameOwnerChanged"),
				dbus.WithMatchArg(0, p.busName),
			},
		},
	}

	for i, rule := range s.rules {
		if err := p.conn.AddMatchSignal(rule...); err != nil {
			for _, added := range s.rules[:i] {
				_ = p.conn.RemoveMatchSignal(added...)
			}
			return nil, fmt.Errorf("subscribe to %s: %w", p.identity, err)
		}
	}

	p.conn.Signal(s.signals)
	return s, nil
}

func (s *subscription) close() {
	s.conn.RemoveSignal(s.signals)
	for _, rule := range s.rules {
		_ = s.conn.RemoveMatchSignal(rule...)
	}
}

// playerState is what the translator remembers to turn property changes into events.
type playerState struct {
	status  PlaybackStatus
	loop    LoopStatus
	shuffle bool
	volume  float64
	rate    float64
	track   TrackID
}

func stateOf(p Progress) playerState {
	return playerState{
		status:  p.PlaybackStatus,
		loop:    p.LoopStatus,
		shuffle: p.Shuffle,
		volume:  p.Volume,
		rate:    p.Rate,
		track:   p.Metadata.TrackID,
	}
}

// translator turns raw signals of one player into events.
type translator struct {
	busName string
	owner   string
	state   playerState
}

// quits reports whether sig says the player left the bus.
func (t *translator) quits(sig *dbus.Signal) bool {
	return leftBus(sig, t.busName)
}

// leftBus reports whether sig is the bus announcing that busName lost its owner.
func leftBus(sig *dbus.Signal, busName string) bool {
	if sig.Name != nameOwnerChanged || len(sig.Body) < 3 {
		return false
	}
	name, _ := sig.Body[0].(string)
	newOwner, _ := sig.Body[2].(string)
	return name == busName && newOwner == ""
}

// ours reports whether sig was sent by the player's connection.
func (t *translator) ours(sig *dbus.Signal) bool {
	return t.owner == "" || sig.Sender == t.owner || sig.Sender == t.busName
}

func (t *translator) translate(sig *dbus.Signal) []Event {
	if t.quits(sig) {
		return []Event{PlayerShutDown{}}
	}
	if !t.ours(sig) {
		return nil
	}

	switch sig.Name {
	case propertiesChanged:
		if len(sig.Body) < 2 {
			return nil
		}
		iface, _ := sig.Body[0].(string)
		changed, _ := sig.Body[1].(map[string]dbus.Variant)
		if iface != playerInterface {
			return nil
		}
		return t.apply(changed)
	case seekedSignal:
		if len(sig.Body) < 1 {
			return nil
		}
		us, _ := asInt64(sig.Body[0])
		return []Event{Seeked{PositionUs: us}}
	case trackAddedSignal:
		if len(sig.Body) < 1 {
			return nil
		}
		raw, _ := sig.Body[0].(map[string]dbus.Variant)
		return []Event{TrackAdded{Metadata: ParseMetadata(raw)}}
	case trackRemovedSignal:
		if len(sig.Body) < 1 {
			return nil
		}
		id, _ := sig.Body[0].(dbus.ObjectPath)
		return []Event{TrackRemoved{ID: TrackID(id)}}
	case trackChangedSignal:
		if len(sig.Body) < 2 {
			return nil
		}
		old, _ := sig.Body[0].(dbus.ObjectPath)
		raw, _ := sig.Body[1].(map[string]dbus.Variant)
		return []Event{TrackMetadataChanged{OldID: TrackID(old), NewID: ParseMetadata(raw).TrackID}}
	case trackListReplaced:
		return []Event{TrackListReplaced{}}
	default:
		return nil
	}
}

// apply folds changed Player properties into the state and returns an event per real change,
// in a fixed order. Re-announced values that did not change produce nothing.
func (t *translator) apply(changed map[string]dbus.Variant) []Event {
	var events []Event

	if v, ok := changed["PlaybackStatus"]; ok {
		s, _ := v.Value().(string)
		if status := ParsePlaybackStatus(s); status != t.state.status {
			t.state.status = status
			switch status {
			case Playing:
				events = append(events, PlaybackStarted{})
			case Paused:
				events = append(events, PlaybackPaused{})
			default:
				events = append(events, PlaybackStopped{})
			}
		}
	}

	if v, ok := changed["LoopStatus"]; ok {
		s, _ := v.Value().(string)
		if loop := ParseLoopStatus(s); loop != t.state.loop {
			t.state.loop = loop
			events = append(events, LoopingChanged{Status: loop})
		}
	}

	if v, ok := changed["Shuffle"]; ok {
		if shuffle, ok := v.Value().(bool); ok && shuffle != t.state.shuffle {
			t.state.shuffle = shuffle
			events = append(events, ShuffleToggled{Shuffle: shuffle})
		}
	}

	if v, ok := changed["Volume"]; ok {
		if volume, ok := asFloat64(v.Value()); ok && !floatEqual(volume, t.state.volume) {
			t.state.volume = volume
			events = append(events, VolumeChanged{Volume: volume})
		}
	}

	if v, ok := changed["Rate"]; ok {
		if rate, ok := asFloat64(v.Value()); ok && !floatEqual(rate, t.state.rate) {
			t.state.rate = rate
			events = append(events, PlaybackRateChanged{Rate: rate})
		}
	}

	if v, ok := changed["Metadata"]; ok {
		if raw, ok := v.Value().(map[string]dbus.Variant); ok {
			metadata := ParseMetadata(raw)
			if metadata.TrackID != t.state.track {
				t.state.track = metadata.TrackID
				events = append(events, TrackChanged{Metadata: metadata})
			}
		}
	}

	return events
}
