package cmd

import (
	"testing"

	"github.com/mprisync/mprisync/config"
	"github.com/mprisync/mprisync/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigValues(t *testing.T) {
	Convey("Given the registered settings", t, func() {
		Convey("Known keys are found", func() {
			field, err := lookupField(key.ProgressInterval)
			So(err, ShouldBeNil)
			So(field.Value, ShouldEqual, 100)
		})

		Convey("A misspelt key suggests the nearest one", func() {
			So(closestKey("progress.intervall"), ShouldEqual, key.ProgressInterval)

			_, err := lookupField("progress.intervall")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.ProgressInterval)
		})

		Convey("Values take the type of the default", func() {
			interval := config.Default[key.ProgressInterval]
			v, err := parseValue(interval, []string{"250"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 250)

			_, err = parseValue(interval, []string{"fast"})
			So(err, ShouldNotBeNil)

			v, err = parseValue(config.Default[key.HistorySave], []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = parseValue(config.Default[key.PlayersDefault], []string{"spotify"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "spotify")
		})

		Convey("A missing value is an error", func() {
			_, err := parseValue(config.Default[key.PlayersDefault], nil)
			So(err, ShouldNotBeNil)
		})
	})
}
