package config

import (
	"testing"

	"github.com/mprisync/mprisync/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.ProgressInterval), ShouldEqual, 100)
		})

		Convey("Every key is registered", func() {
			So(Default, ShouldHaveLength, key.DefinedFieldsCount)
			So(EnvExposed, ShouldHaveLength, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("players.retry_delay")
			So(result, ShouldEqual, "players_retry_delay")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlayersRetryDelay]

		Convey("Its env name carries the app prefix", func() {
			So(field.Env(), ShouldEqual, "MPRISYNC_PLAYERS_RETRY_DELAY")
		})

		Convey("Its type is derived from the default", func() {
			So(field.typeName(), ShouldEqual, "int")
			f := Default[key.HistorySave]
			So(f.typeName(), ShouldEqual, "bool")
		})

		Convey("It renders", func() {
			So(field.Pretty(), ShouldContainSubstring, key.PlayersRetryDelay)
		})
	})
}
