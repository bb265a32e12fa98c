package players

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mprisync/mprisync/mpris"
	. "github.com/smartystreets/goconvey/convey"
)

type fakePlayer struct {
	identity string
	busName  string
}

func (f fakePlayer) Identity() string { return f.identity }
func (f fakePlayer) BusName() string  { return f.busName }

var (
	vlc     = fakePlayer{"VLC media player", "org.mpris.MediaPlayer2.vlc"}
	spotify = fakePlayer{"Spotify", "org.mpris.MediaPlayer2.spotify"}
	mpv     = fakePlayer{"mpv Media Player", "org.mpris.MediaPlayer2.mpv"}
	mpc     = fakePlayer{"Media Player Classic", "org.mpris.MediaPlayer2.mpc"}
)

// fakeFinder answers with the players of its current round. Rounds advance on every FindAll that
// does not fail. failAt makes the numbered call fail instead.
type fakeFinder struct {
	mu     sync.Mutex
	rounds [][]fakePlayer
	err    error
	failAt map[int]error
	calls  int
	closed bool
}

func (f *fakeFinder) current() ([]fakePlayer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.failAt[f.calls]; ok {
		return nil, err
	}
	if len(f.rounds) == 0 {
		return nil, mpris.ErrNoPlayerFound
	}

	round := f.rounds[0]
	if len(f.rounds) > 1 {
		f.rounds = f.rounds[1:]
	}
	if len(round) == 0 {
		return nil, mpris.ErrNoPlayerFound
	}
	return round, nil
}

func (f *fakeFinder) FindAll() ([]fakePlayer, error) {
	return f.current()
}

func (f *fakeFinder) FindFirst() (fakePlayer, error) {
	found, err := f.current()
	if err != nil {
		return fakePlayer{}, err
	}
	return found[0], nil
}

func (f *fakeFinder) FindActive() (fakePlayer, error) {
	found, err := f.current()
	if err != nil {
		return fakePlayer{}, err
	}
	return found[len(found)-1], nil
}

func (f *fakeFinder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeFinder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFinder) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestWait(t *testing.T) {
	Convey("Given players that show up after a while", t, func() {
		finder := &fakeFinder{rounds: [][]fakePlayer{{}, {}, {vlc, spotify}}}
		ctx := context.Background()

		Convey("First retries until there is one", func() {
			p, err := First[fakePlayer](ctx, finder, time.Millisecond)
			So(err, ShouldBeNil)
			So(p, ShouldResemble, vlc)
			So(finder.calls, ShouldEqual, 3)
		})

		Convey("Active returns the finder's pick", func() {
			p, err := Active[fakePlayer](ctx, finder, time.Millisecond)
			So(err, ShouldBeNil)
			So(p, ShouldResemble, spotify)
		})

		Convey("All returns every player", func() {
			all, err := All[fakePlayer](ctx, finder, time.Millisecond)
			So(err, ShouldBeNil)
			So(all, ShouldResemble, []fakePlayer{vlc, spotify})
		})
	})

	Convey("Given a broken finder", t, func() {
		finder := &fakeFinder{err: errors.New("bus unavailable")}

		Convey("The error is returned without retrying", func() {
			_, err := First[fakePlayer](context.Background(), finder, time.Millisecond)
			So(err, ShouldNotBeNil)
			So(finder.calls, ShouldEqual, 1)
		})
	})

	Convey("Given no player ever", t, func() {
		finder := &fakeFinder{}

		Convey("Waiting stops with the context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			_, err := All[fakePlayer](ctx, finder, time.Millisecond)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}

func TestMatch(t *testing.T) {
	Convey("Given some players", t, func() {
		all := []fakePlayer{vlc, spotify, mpv, mpc}

		Convey("Queries match identities fuzzily and ignore case", func() {
			So(Match("spot", all), ShouldResemble, []fakePlayer{spotify})
			So(Match("VLC", all), ShouldResemble, []fakePlayer{vlc})
		})

		Convey("Bus names match too", func() {
			So(Match("MediaPlayer2.mpv", all), ShouldResemble, []fakePlayer{mpv})
		})

		Convey("Closer identities come first", func() {
			matched := Match("media player", all)
			So(matched, ShouldHaveLength, 3)
			So(matched[0], ShouldResemble, vlc)
			So(matched[2], ShouldResemble, mpc)
		})

		Convey("An empty query keeps every player", func() {
			So(Match(" ", all), ShouldResemble, all)
		})
	})
}

func TestWatch(t *testing.T) {
	Convey("Given players coming and going", t, func() {
		finder := &fakeFinder{rounds: [][]fakePlayer{
			{vlc},
			{vlc, spotify},
			{spotify},
			{vlc, spotify},
			{vlc, spotify},
		}}

		s := Watch[fakePlayer](func() (Finder[fakePlayer], error) {
			return finder, nil
		}, time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		Convey("Each appearance is reported once", func() {
			var appeared []string
			for i := 0; i < 3; i++ {
				p, err := s.Next(ctx)
				So(err, ShouldBeNil)
				appeared = append(appeared, p.Identity())
			}
			So(appeared, ShouldResemble, []string{"VLC media player", "Spotify", "VLC media player"})
		})

		Convey("Closing the stream closes the finder", func() {
			_, err := s.Next(ctx)
			So(err, ShouldBeNil)
			s.Close()

			deadline := time.Now().Add(5 * time.Second)
			for !finder.isClosed() && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			So(finder.isClosed(), ShouldBeTrue)
		})
	})

	Convey("Given a finder that fails once in between", t, func() {
		finder := &fakeFinder{
			rounds: [][]fakePlayer{{vlc}, {vlc}, {vlc, spotify}},
			failAt: map[int]error{2: errors.New("bus hiccup")},
		}

		s := Watch[fakePlayer](func() (Finder[fakePlayer], error) {
			return finder, nil
		}, time.Millisecond)
		defer s.Close()

		Convey("Players still present are not reported again", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			first, err := s.Next(ctx)
			So(err, ShouldBeNil)
			second, err := s.Next(ctx)
			So(err, ShouldBeNil)
			So([]fakePlayer{first, second}, ShouldResemble, []fakePlayer{vlc, spotify})

			quiet, stop := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer stop()
			_, err = s.Next(quiet)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(finder.callCount(), ShouldBeGreaterThan, 3)
		})
	})

	Convey("Given a zero retry", t, func() {
		finder := &fakeFinder{}
		s := Watch[fakePlayer](func() (Finder[fakePlayer], error) {
			return finder, nil
		}, 0)

		Convey("The finder is not polled in a tight loop", func() {
			time.Sleep(50 * time.Millisecond)
			s.Close()
			So(finder.callCount(), ShouldBeLessThan, 20)
		})
	})

	Convey("Given a long retry", t, func() {
		finder := &fakeFinder{}
		s := Watch[fakePlayer](func() (Finder[fakePlayer], error) {
			return finder, nil
		}, time.Hour)

		Convey("Closing does not wait out the retry", func() {
			for finder.callCount() == 0 {
				time.Sleep(time.Millisecond)
			}
			s.Close()

			deadline := time.Now().Add(time.Second)
			for !finder.isClosed() && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			So(finder.isClosed(), ShouldBeTrue)
		})
	})
}
