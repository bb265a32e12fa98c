package log

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mprisync/mprisync/filesystem"
	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/where"
	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestEntry(t *testing.T) {
	Convey("Given logs captured in memory", t, func() {
		var buf bytes.Buffer
		logrus.SetOutput(&buf)
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.DebugLevel)
		enabled = true

		Reset(func() {
			enabled = false
			logrus.SetOutput(logrus.New().Out)
		})

		Convey("A worker entry names its worker and player", func() {
			For("events", "vlc").Warnf("source failed: %d", 3)

			var line map[string]interface{}
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
			So(line["worker"], ShouldEqual, "events")
			So(line["player"], ShouldEqual, "vlc")
			So(line["msg"], ShouldEqual, "source failed: 3")
			So(line["level"], ShouldEqual, "warning")
		})

		Convey("Nothing is written while disabled", func() {
			enabled = false
			For("progress", "mpv").Errorf("gone")
			Debugf("still gone")
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}

func TestSetup(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			enabled = false
			logrus.SetOutput(logrus.New().Out)
		})

		Convey("Disabled logging creates no file", func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeFalse)
		})

		Convey("Enabled logging writes to today's file", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "debug")
			So(Setup(), ShouldBeNil)

			For("players", "spotify").Debugf("appeared")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			contents := string(lo.Must(filesystem.API().ReadFile(path)))
			So(contents, ShouldContainSubstring, "appeared")
			So(contents, ShouldContainSubstring, "player=spotify")
		})
	})
}
