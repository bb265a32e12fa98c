package history

import (
	"testing"
	"time"

	"github.com/mprisync/mprisync/filesystem"
	"github.com/mprisync/mprisync/mpris"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a player", t, func() {
		now := time.Now()
		vlc := SeenPlayer{
			Identity:  "VLC media player",
			BusName:   "org.mpris.MediaPlayer2.vlc",
			LastTrack: "Rhubarb",
			Status:    mpris.Playing,
			SeenAt:    now,
		}

		Convey("When saving it", func() {
			So(Save(vlc), ShouldBeNil)

			Convey("Then it is remembered by bus name", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved[vlc.BusName].Identity, ShouldEqual, vlc.Identity)
				So(saved[vlc.BusName].Times, ShouldBeGreaterThan, 0)
			})

			Convey("And saving it again keeps what is unknown", func() {
				times := timesSaved(t)
				So(Save(SeenPlayer{Identity: vlc.Identity, BusName: vlc.BusName, SeenAt: now.Add(time.Second)}), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved[vlc.BusName].LastTrack, ShouldEqual, "Rhubarb")
				So(saved[vlc.BusName].Status, ShouldEqual, mpris.Playing)
				So(saved[vlc.BusName].Times, ShouldEqual, times+1)
			})

			Convey("And recent players come newest first", func() {
				spotify := SeenPlayer{Identity: "Spotify", BusName: "org.mpris.MediaPlayer2.spotify", SeenAt: now.Add(time.Hour)}
				So(Save(spotify), ShouldBeNil)

				recent, err := Recent(1)
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 1)
				So(recent[0].Identity, ShouldEqual, "Spotify")
			})

			Convey("And it can be forgotten", func() {
				So(Remove(vlc.BusName), ShouldBeNil)
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldNotContainKey, vlc.BusName)
			})
		})
	})
}

// timesSaved returns how many times the test player was saved so far.
func timesSaved(t *testing.T) int {
	t.Helper()
	saved, err := Get()
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := saved["org.mpris.MediaPlayer2.vlc"]; ok {
		return p.Times
	}
	return 0
}
