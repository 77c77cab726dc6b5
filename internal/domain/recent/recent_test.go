package recent_test

import (
	"testing"
	"time"

	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/recent"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(first, second string) model.ComparisonRecord {
	return model.ComparisonRecord{ID: first + second, FirstID: first, SecondID: second, At: time.Now()}
}

func TestMemory(t *testing.T) {
	Convey("Given a memory built from recent history", t, func() {
		records := []model.ComparisonRecord{
			rec("a", "b"),
			rec("c", "d"),
			rec("e", "f"),
			rec("g", "h"),
			rec("i", "j"),
			rec("k", "l"), // past the first-slot window
		}
		m := recent.FromHistory(records)

		Convey("Then seen pairs match in either order", func() {
			So(m.Seen("a", "b"), ShouldBeTrue)
			So(m.Seen("b", "a"), ShouldBeTrue)
			So(m.Seen("a", "c"), ShouldBeFalse)
		})

		Convey("Then only the newest five firsts count as recent leads", func() {
			So(m.LedRecently("a"), ShouldBeTrue)
			So(m.LedRecently("i"), ShouldBeTrue)
			So(m.LedRecently("k"), ShouldBeFalse)
			So(m.LedRecently("b"), ShouldBeFalse)
		})
	})

	Convey("Given the pair key helper", t, func() {
		Convey("Then the key is order independent", func() {
			So(recent.PairKey("x", "y"), ShouldEqual, recent.PairKey("y", "x"))
			So(recent.PairKey("x", "y"), ShouldNotEqual, recent.PairKey("x", "z"))
		})
	})
}
