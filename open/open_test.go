package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOpener(t *testing.T) {
	Convey("Each desktop has its opener", t, func() {
		name, ok := opener("linux")
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "xdg-open")

		name, ok = opener("darwin")
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "open")

		_, ok = opener("plan9")
		So(ok, ShouldBeFalse)
	})
}
