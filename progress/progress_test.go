package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mprisync/mprisync/mpris"
	"github.com/mprisync/mprisync/stream"
	. "github.com/smartystreets/goconvey/convey"
)

// feedTracker hands out the ticks the test pushes, one per Tick call.
type feedTracker struct {
	ticks  chan mpris.ProgressTick
	closed chan struct{}
}

func newFeedTracker() *feedTracker {
	return &feedTracker{ticks: make(chan mpris.ProgressTick), closed: make(chan struct{})}
}

func (f *feedTracker) Tick() mpris.ProgressTick {
	tick, ok := <-f.ticks
	if !ok {
		return mpris.ProgressTick{PlayerQuit: true}
	}
	return tick
}

func (f *feedTracker) Close() error {
	close(f.closed)
	return nil
}

// wakeSignal is a waker the test can wait on.
type wakeSignal chan struct{}

func (w wakeSignal) Wake() {
	select {
	case w <- struct{}{}:
	default:
	}
}

// pollReady polls s until it is no longer pending, waiting on w in between.
func pollReady(s *Stream, w wakeSignal) stream.Poll[Snapshot] {
	deadline := time.After(5 * time.Second)
	for {
		p := s.PollNext(w)
		if p.Status != stream.Pending {
			return p
		}
		select {
		case <-w:
		case <-deadline:
			return p
		}
	}
}

func changed(title string, position time.Duration) mpris.ProgressTick {
	return mpris.ProgressTick{
		ProgressChanged: true,
		Progress: mpris.Progress{
			Metadata:       mpris.Metadata{TrackID: mpris.TrackID("/t/" + title), Title: title},
			PlaybackStatus: mpris.Playing,
			CreatedAt:      time.Now(),
			Position:       position,
			Rate:           1,
			Volume:         1,
		},
	}
}

func TestStream(t *testing.T) {
	Convey("Given a tracked player", t, func() {
		tracker := newFeedTracker()
		var resolved []uint32
		s := NewWithResolver("vlc", 250, func(identity string, intervalMs uint32) (Tracker, error) {
			resolved = append(resolved, intervalMs)
			return tracker, nil
		})
		w := make(wakeSignal, 1)

		So(s.Interval(), ShouldEqual, 250*time.Millisecond)
		So(s.PollNext(w).Status, ShouldEqual, stream.Pending)

		Convey("Only changes reach a waiting consumer, then the end", func() {
			tracker.ticks <- mpris.ProgressTick{}
			tracker.ticks <- changed("P1", time.Second)

			p := pollReady(s, w)
			So(p.Status, ShouldEqual, stream.Ready)
			So(p.Item.Metadata.Title, ShouldEqual, "P1")
			So(p.Item.PositionAtCapture, ShouldEqual, time.Second)

			tracker.ticks <- mpris.ProgressTick{}
			tracker.ticks <- changed("P2", 2*time.Second)

			p = pollReady(s, w)
			So(p.Status, ShouldEqual, stream.Ready)
			So(p.Item.Metadata.Title, ShouldEqual, "P2")

			tracker.ticks <- mpris.ProgressTick{PlayerQuit: true}

			_, err := s.Next(context.Background())
			So(errors.Is(err, stream.ErrEnded), ShouldBeTrue)
			So(resolved, ShouldResemble, []uint32{250})
		})

		Convey("Unchanged samples produce nothing", func() {
			for i := 0; i < 3; i++ {
				tracker.ticks <- mpris.ProgressTick{}
			}
			// the worker is back in Tick, so every sample above was handled
			tracker.ticks <- mpris.ProgressTick{}

			So(s.PollNext(w).Status, ShouldEqual, stream.Pending)
			close(tracker.ticks)
		})

		Convey("Every waiting handle gets its own snapshot", func() {
			clone := s.Clone()
			cw := make(wakeSignal, 1)
			So(clone.PollNext(cw).Status, ShouldEqual, stream.Pending)

			tracker.ticks <- changed("P1", 0)

			a, b := pollReady(s, w), pollReady(clone, cw)
			So(a.Status, ShouldEqual, stream.Ready)
			So(b.Status, ShouldEqual, stream.Ready)
			So(a.Item.Metadata.Title, ShouldEqual, b.Item.Metadata.Title)
			close(tracker.ticks)
		})

		Convey("Closing every handle stops the worker at its next sample", func() {
			s.Close()
			// the worker may notice before it samples again
			select {
			case tracker.ticks <- changed("P1", 0):
			case <-tracker.closed:
			case <-time.After(5 * time.Second):
			}

			select {
			case <-tracker.closed:
			case <-time.After(5 * time.Second):
				So("tracker still open", ShouldBeEmpty)
			}
		})
	})

	Convey("Given a player that cannot be tracked", t, func() {
		s := NewWithResolver("ghost", 100, func(string, uint32) (Tracker, error) {
			return nil, mpris.ErrNoPlayerFound
		})

		Convey("The stream ends without items", func() {
			_, err := s.Next(context.Background())
			So(errors.Is(err, stream.ErrEnded), ShouldBeTrue)
		})
	})
}

func TestSnapshot(t *testing.T) {
	Convey("Given a snapshot of a playing player", t, func() {
		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		s := Snapshot{
			Metadata:          mpris.Metadata{Length: 3 * time.Minute},
			PlaybackStatus:    mpris.Playing,
			CapturedAt:        at,
			PositionAtCapture: 30 * time.Second,
			PlaybackRate:      1.5,
		}

		Convey("The position advances at the playback rate", func() {
			So(s.PositionAt(at.Add(2*time.Second)), ShouldEqual, 33*time.Second)
		})

		Convey("Instants before the capture do not rewind", func() {
			So(s.PositionAt(at.Add(-time.Second)), ShouldEqual, 30*time.Second)
		})

		Convey("A paused player stays put", func() {
			s.PlaybackStatus = mpris.Paused
			So(s.PositionAt(at.Add(time.Hour)), ShouldEqual, 30*time.Second)
			So(s.CurrentPosition(), ShouldEqual, 30*time.Second)
		})

		Convey("Age and length are derived", func() {
			So(s.Age(), ShouldBeGreaterThan, time.Duration(0))
			So(s.Length(), ShouldEqual, 3*time.Minute)
		})
	})

	Convey("Snapshots do not share metadata with their progress", t, func() {
		p := mpris.Progress{Metadata: mpris.Metadata{Artists: []string{"Boards of Canada"}}}
		s := SnapshotOf(p)
		s.Metadata.Artists[0] = "changed"
		So(p.Metadata.Artists[0], ShouldEqual, "Boards of Canada")
	})
}
