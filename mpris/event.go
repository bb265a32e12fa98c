package mpris

// Event is a change reported by a player. The set of implementations is closed.
type Event interface {
	event()
}

type (
	// PlaybackStarted is emitted when PlaybackStatus becomes Playing.
	PlaybackStarted struct{}
	// PlaybackPaused is emitted when PlaybackStatus becomes Paused.
	PlaybackPaused struct{}
	// PlaybackStopped is emitted when PlaybackStatus becomes Stopped.
	PlaybackStopped struct{}
	// PlayerShutDown is emitted once the player left the bus. It is always the last event.
	PlayerShutDown struct{}

	LoopingChanged struct {
		Status LoopStatus
	}
	ShuffleToggled struct {
		Shuffle bool
	}
	VolumeChanged struct {
		Volume float64
	}
	PlaybackRateChanged struct {
		Rate float64
	}
	TrackChanged struct {
		Metadata Metadata
	}
	// Seeked carries the new position in microseconds.
	Seeked struct {
		PositionUs int64
	}
	TrackAdded struct {
		Metadata Metadata
	}
	TrackRemoved struct {
		ID TrackID
	}
	TrackMetadataChanged struct {
		OldID TrackID
		NewID TrackID
	}
	TrackListReplaced struct{}
)

func (PlaybackStarted) event()      {}
func (PlaybackPaused) event()       {}
func (PlaybackStopped) event()      {}
func (PlayerShutDown) event()       {}
func (LoopingChanged) event()       {}
func (ShuffleToggled) event()       {}
func (VolumeChanged) event()        {}
func (PlaybackRateChanged) event()  {}
func (TrackChanged) event()         {}
func (Seeked) event()               {}
func (TrackAdded) event()           {}
func (TrackRemoved) event()         {}
func (TrackMetadataChanged) event() {}
func (TrackListReplaced) event()    {}
