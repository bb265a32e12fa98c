package events

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/stream"
	. "github.com/smartystreets/goconvey/convey"
)

// scriptedSource replays a fixed list of events, then fails with err (io.EOF when nil).
type scriptedSource struct {
	events []mpris.Event
	err    error
	closed atomic.Bool
}

func (s *scriptedSource) Next() (mpris.Event, error) {
	if len(s.events) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	next := s.events[0]
	s.events = s.events[1:]
	return next, nil
}

func (s *scriptedSource) Close() error {
	s.closed.Store(true)
	return nil
}

// feedSource blocks until the test pushes an event.
type feedSource struct {
	feed   chan mpris.Event
	closed chan struct{}
}

func newFeedSource() *feedSource {
	return &feedSource{feed: make(chan mpris.Event), closed: make(chan struct{})}
}

func (f *feedSource) Next() (mpris.Event, error) {
	event, ok := <-f.feed
	if !ok {
		return nil, io.EOF
	}
	return event, nil
}

func (f *feedSource) Close() error {
	close(f.closed)
	return nil
}

func resolveTo(source Source) (Resolver, *atomic.Int32) {
	calls := &atomic.Int32{}
	return func(string) (Source, error) {
		calls.Add(1)
		return source, nil
	}, calls
}

func drain(s *Stream) []Event {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out []Event
	for event := range s.All(ctx) {
		out = append(out, event)
	}
	return out
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestStream(t *testing.T) {
	Convey("Given a player that plays, pauses and shuts down", t, func() {
		source := &scriptedSource{events: []mpris.Event{
			mpris.PlaybackStarted{},
			mpris.PlaybackPaused{},
			mpris.PlayerShutDown{},
		}}
		resolve, calls := resolveTo(source)
		s := NewWithResolver("vlc", resolve)

		Convey("The consumer sees the events in order and then the end", func() {
			So(kinds(drain(s)), ShouldResemble, []Kind{Playing, Paused, ShutDown})

			_, err := s.Next(context.Background())
			So(errors.Is(err, stream.ErrEnded), ShouldBeTrue)
			So(s.PollNext(nil).Status, ShouldEqual, stream.Ended)
		})

		Convey("The source is resolved once and closed when the worker exits", func() {
			drain(s)
			So(calls.Load(), ShouldEqual, 1)
			So(source.closed.Load(), ShouldBeTrue)
		})

		Convey("The identity is kept", func() {
			So(s.Identity(), ShouldEqual, "vlc")
			So(s.Clone().Identity(), ShouldEqual, "vlc")
		})
	})

	Convey("Given events carrying data", t, func() {
		track := mpris.Metadata{TrackID: "/t/1", Title: "Avril 14th", Artists: []string{"Aphex Twin"}}
		source := &scriptedSource{events: []mpris.Event{
			mpris.LoopingChanged{Status: mpris.LoopPlaylist},
			mpris.ShuffleToggled{Shuffle: true},
			mpris.VolumeChanged{Volume: 0.3},
			mpris.PlaybackRateChanged{Rate: 2},
			mpris.TrackChanged{Metadata: track},
			mpris.Seeked{PositionUs: 1_500_000},
			mpris.TrackAdded{Metadata: track},
			mpris.TrackRemoved{ID: "/t/1"},
			mpris.TrackMetadataChanged{OldID: "/t/1", NewID: "/t/2"},
			mpris.TrackListReplaced{},
			mpris.PlaybackStopped{},
		}}
		resolve, _ := resolveTo(source)

		events := drain(NewWithResolver("mpv", resolve))

		Convey("Every case is translated with its payload", func() {
			So(kinds(events), ShouldResemble, []Kind{
				LoopingChanged, ShuffleToggled, VolumeChanged, PlaybackRateChanged, TrackChanged,
				Seeked, TrackAdded, TrackRemoved, TrackMetadataChanged, TrackListReplaced, Stopped,
				ShutDown,
			})
			So(events[0].Loop, ShouldEqual, mpris.LoopPlaylist)
			So(events[1].Shuffle, ShouldBeTrue)
			So(events[2].Volume, ShouldEqual, 0.3)
			So(events[3].Rate, ShouldEqual, 2)
			So(events[4].Track.Title, ShouldEqual, "Avril 14th")
			So(events[5].Position(), ShouldEqual, 1500*time.Millisecond)
			So(events[7].TrackID, ShouldEqual, mpris.TrackID("/t/1"))
			So(events[8].NewID, ShouldEqual, mpris.TrackID("/t/2"))
		})

		Convey("Track payloads are copies", func() {
			events[4].Track.Artists[0] = "someone"
			So(track.Artists[0], ShouldEqual, "Aphex Twin")
		})

		Convey("An exhausted source still ends with a shut down", func() {
			So(events[len(events)-1].IsTerminal(), ShouldBeTrue)
		})
	})

	Convey("Given a player that cannot be found", t, func() {
		s := NewWithResolver("ghost", func(string) (Source, error) {
			return nil, mpris.ErrNoPlayerFound
		})

		Convey("The stream reports a shut down and ends", func() {
			So(kinds(drain(s)), ShouldResemble, []Kind{ShutDown})
		})
	})

	Convey("Given a source that fails mid-stream", t, func() {
		source := &scriptedSource{
			events: []mpris.Event{mpris.PlaybackStarted{}},
			err:    errors.New("connection reset"),
		}
		resolve, _ := resolveTo(source)

		Convey("The failure becomes a shut down", func() {
			So(kinds(drain(NewWithResolver("spotify", resolve))), ShouldResemble, []Kind{Playing, ShutDown})
		})
	})

	Convey("Given a live player with several handles", t, func() {
		source := newFeedSource()
		resolve, calls := resolveTo(source)
		s := NewWithResolver("rhythmbox", resolve)
		clone := s.Clone()

		Convey("Nothing is ready before the player does something", func() {
			woken := make(chan struct{}, 1)
			w := stream.WakerFunc(func() {
				select {
				case woken <- struct{}{}:
				default:
				}
			})

			So(clone.PollNext(w).Status, ShouldEqual, stream.Pending)

			source.feed <- mpris.PlaybackStarted{}

			select {
			case <-woken:
			case <-time.After(5 * time.Second):
				So("no wake-up", ShouldBeEmpty)
			}

			p := clone.PollNext(w)
			So(p.Status, ShouldEqual, stream.Ready)
			So(p.Item.Kind, ShouldEqual, Playing)
			So(calls.Load(), ShouldEqual, 1)

			close(source.feed)
			So(kinds(drain(s)), ShouldResemble, []Kind{ShutDown})
		})

		Convey("Closing every handle stops the worker at its next event", func() {
			s.Close()
			clone.Close()

			// the worker may notice before it asks for another event
			select {
			case source.feed <- mpris.PlaybackPaused{}:
			case <-source.closed:
			case <-time.After(5 * time.Second):
			}

			select {
			case <-source.closed:
			case <-time.After(5 * time.Second):
				So("source still open", ShouldBeEmpty)
			}
		})
	})
}

func TestEvent(t *testing.T) {
	Convey("Events render with their payload", t, func() {
		So(Event{Kind: Playing}.String(), ShouldEqual, "Playing")
		So(Event{Kind: VolumeChanged, Volume: 0.5}.String(), ShouldEqual, "VolumeChanged(0.50)")
		So(Event{Kind: TrackChanged, Track: &mpris.Metadata{Title: "Xtal"}}.String(), ShouldEqual, `TrackChanged("Xtal")`)
		So(Event{Kind: TrackMetadataChanged, OldID: "/a", NewID: "/b"}.String(), ShouldEqual, "TrackMetadataChanged(/a -> /b)")
		So(Kind(200).String(), ShouldEqual, "Kind(200)")
	})

	Convey("Kinds are encoded by name", t, func() {
		text, err := TrackChanged.MarshalText()
		So(err, ShouldBeNil)
		So(string(text), ShouldEqual, "TrackChanged")

		var k Kind
		So(k.UnmarshalText([]byte("Seeked")), ShouldBeNil)
		So(k, ShouldEqual, Seeked)
		So(k.UnmarshalText([]byte("Exploded")), ShouldNotBeNil)

		So(Kinds(), ShouldHaveLength, 14)
		So(Kinds()[0], ShouldEqual, Playing)
	})

	Convey("Only a shut down is terminal", t, func() {
		So(Event{Kind: ShutDown}.IsTerminal(), ShouldBeTrue)
		So(Event{Kind: Stopped}.IsTerminal(), ShouldBeFalse)
	})
}
