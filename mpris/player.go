package mpris

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// Player is a handle to one MPRIS player on the bus.
type Player struct {
	conn     *dbus.Conn
	obj      dbus.BusObject
	busName  string
	identity string
}

func newPlayer(conn *dbus.Conn, busName string) (*Player, error) {
	p := &Player{
		conn:    conn,
		obj:     conn.Object(busName, objectPath),
		busName: busName,
	}

	v, err := p.obj.GetProperty(rootInterface + ".Identity")
	if err != nil {
		return nil, fmt.Errorf("identity of %s: %w", busName, err)
	}

	identity, ok := v.Value().(string)
	if !ok || identity == "" {
		return nil, fmt.Errorf("identity of %s: unexpected value %v", busName, v.Value())
	}
	p.identity = identity

	return p, nil
}

// Identity returns the player's human readable name, e.g. "VLC media player".
func (p *Player) Identity() string {
	return p.identity
}

// BusName returns the well-known bus name, e.g. "org.mpris.MediaPlayer2.vlc".
func (p *Player) BusName() string {
	return p.busName
}

// IsRunning reports whether the player still owns its bus name.
func (p *Player) IsRunning() bool {
	var has bool
	err := p.conn.BusObject().Call(dbusInterface+".NameHasOwner", 0, p.busName).Store(&has)
	return err == nil && has
}

// owner resolves the unique connection name behind the well-known bus name.
// Signals carry the unique name as their sender.
func (p *Player) owner() (string, error) {
	var owner string
	if err := p.conn.BusObject().Call(dbusInterface+".GetNameOwner", 0, p.busName).Store(&owner); err != nil {
		return "", fmt.Errorf("owner of %s: %w", p.busName, err)
	}
	return owner, nil
}

func (p *Player) property(name string) (any, error) {
	v, err := p.obj.GetProperty(playerInterface + "." + name)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", p.identity, name, err)
	}
	return v.Value(), nil
}

func (p *Player) properties() (map[string]dbus.Variant, error) {
	var props map[string]dbus.Variant
	if err := p.obj.Call(propertiesIface+".GetAll", 0, playerInterface).Store(&props); err != nil {
		return nil, fmt.Errorf("properties of %s: %w", p.identity, err)
	}
	return props, nil
}

// PlaybackStatus returns the current playback status.
func (p *Player) PlaybackStatus() (PlaybackStatus, error) {
	v, err := p.property("PlaybackStatus")
	if err != nil {
		return Stopped, err
	}
	s, _ := v.(string)
	return ParsePlaybackStatus(s), nil
}

// LoopStatus returns the current loop mode.
func (p *Player) LoopStatus() (LoopStatus, error) {
	v, err := p.property("LoopStatus")
	if err != nil {
		return LoopNone, err
	}
	s, _ := v.(string)
	return ParseLoopStatus(s), nil
}

// Shuffle returns whether shuffle is on.
func (p *Player) Shuffle() (bool, error) {
	v, err := p.property("Shuffle")
	if err != nil {
		return false, err
	}
	shuffle, _ := v.(bool)
	return shuffle, nil
}

// Volume returns the volume, 1.0 being 100%.
func (p *Player) Volume() (float64, error) {
	v, err := p.property("Volume")
	if err != nil {
		return 0, err
	}
	volume, _ := asFloat64(v)
	return volume, nil
}

// PlaybackRate returns the playback rate, 1.0 being normal speed.
func (p *Player) PlaybackRate() (float64, error) {
	v, err := p.property("Rate")
	if err != nil {
		return 1, err
	}
	rate, ok := asFloat64(v)
	if !ok || rate <= 0 {
		return 1, nil
	}
	return rate, nil
}

// Position returns the playback position.
func (p *Player) Position() (time.Duration, error) {
	v, err := p.property("Position")
	if err != nil {
		return 0, err
	}
	us, _ := asInt64(v)
	return time.Duration(us) * time.Microsecond, nil
}

// Metadata returns the metadata of the current track.
func (p *Player) Metadata() (Metadata, error) {
	v, err := p.property("Metadata")
	if err != nil {
		return Metadata{}, err
	}
	raw, _ := v.(map[string]dbus.Variant)
	return ParseMetadata(raw), nil
}

// Progress samples every player property at once.
func (p *Player) Progress() (Progress, error) {
	props, err := p.properties()
	if err != nil {
		return Progress{}, err
	}
	return parseProgress(props, time.Now()), nil
}
