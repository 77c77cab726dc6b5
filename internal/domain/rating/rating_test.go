package rating_test

import (
	"math"
	"testing"

	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExpectedOutcome(t *testing.T) {
	Convey("Given the logistic expectation", t, func() {
		Convey("Then opposite directions sum to one", func() {
			pairs := [][2]float64{
				{1500, 1500},
				{1700, 1300},
				{1512.5, 1488.1},
				{900, 2100},
			}
			for _, p := range pairs {
				sum := rating.ExpectedOutcome(p[0], p[1]) + rating.ExpectedOutcome(p[1], p[0])
				So(sum, ShouldAlmostEqual, 1.0, 1e-12)
			}
		})

		Convey("Then equal ratings expect a coin flip", func() {
			So(rating.ExpectedOutcome(1500, 1500), ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("Then the stronger side is favored", func() {
			So(rating.ExpectedOutcome(1600, 1400), ShouldBeGreaterThan, 0.5)
			So(rating.ExpectedOutcome(1400, 1600), ShouldBeLessThan, 0.5)
		})
	})
}

func TestAdjustedRate(t *testing.T) {
	Convey("Given a resolver with the default base rate", t, func() {
		r := rating.NewResolver()
		state := model.DefaultSystemState()

		Convey("Then rates step down across experience tiers", func() {
			fresh := r.AdjustedRate(4, state)
			young := r.AdjustedRate(6, state)
			settling := r.AdjustedRate(12, state)
			steady := r.AdjustedRate(20, state)
			veteran := r.AdjustedRate(60, state)

			So(fresh, ShouldBeGreaterThan, young)
			So(young, ShouldBeGreaterThan, settling)
			So(settling, ShouldBeGreaterThan, steady)
			So(steady, ShouldBeGreaterThan, veteran)
		})

		Convey("Then tier boundaries land exactly", func() {
			So(r.AdjustedRate(0, state), ShouldEqual, 64)
			So(r.AdjustedRate(5, state), ShouldEqual, 48)
			So(r.AdjustedRate(10, state), ShouldAlmostEqual, 38.4, 1e-9)
			So(r.AdjustedRate(15, state), ShouldEqual, 32)
			So(r.AdjustedRate(50, state), ShouldAlmostEqual, 25.6, 1e-9)
		})

		Convey("And a custom base rate scales every tier", func() {
			custom := rating.NewResolver(rating.WithBaseRate(16))
			So(custom.AdjustedRate(0, state), ShouldEqual, 32)
			So(custom.AdjustedRate(60, state), ShouldAlmostEqual, 12.8, 1e-9)
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given a resolver and default system state", t, func() {
		r := rating.NewResolver()
		state := model.DefaultSystemState()

		Convey("When two fresh 1500s play and A wins", func() {
			out := r.Resolve("a", "b", 1500, 1500, 0, 0, state, false)

			Convey("Then both move by baseRate*2*0.5, rounded to a tenth", func() {
				So(out.Winner.NewRating, ShouldEqual, 1532.0)
				So(out.Loser.NewRating, ShouldEqual, 1468.0)
				So(out.Winner.Delta, ShouldEqual, 32.0)
				So(out.Loser.Delta, ShouldEqual, -32.0)
				So(out.Draw, ShouldBeFalse)
			})
		})

		Convey("When the result is a draw between equals", func() {
			out := r.Resolve("a", "b", 1500, 1500, 0, 0, state, true)

			Convey("Then neither rating moves", func() {
				So(out.Winner.Delta, ShouldEqual, 0)
				So(out.Loser.Delta, ShouldEqual, 0)
				So(out.Draw, ShouldBeTrue)
			})
		})

		Convey("When a win is not a draw", func() {
			out := r.Resolve("a", "b", 1480, 1620, 20, 20, state, false)

			Convey("Then the winner always gains and the loser always loses", func() {
				So(out.Winner.Delta, ShouldBeGreaterThan, 0)
				So(out.Loser.Delta, ShouldBeLessThan, 0)
			})
		})

		Convey("When comparing an expected win against an upset of equal gap", func() {
			expected := r.Resolve("hi", "lo", 1700, 1500, 20, 20, state, false)
			upset := r.Resolve("lo", "hi", 1500, 1700, 20, 20, state, false)

			Convey("Then the upset moves ratings further", func() {
				So(upset.Winner.Delta, ShouldBeGreaterThan, expected.Winner.Delta)
			})
		})

		Convey("When a draw happens at unequal ratings", func() {
			out := r.Resolve("hi", "lo", 1700, 1500, 20, 20, state, true)

			Convey("Then the higher side gives ground without the swing multiplier", func() {
				So(out.Winner.Delta, ShouldBeLessThan, 0)
				So(out.Loser.Delta, ShouldBeGreaterThan, 0)
			})
		})

		Convey("Then every new rating is rounded to one decimal", func() {
			out := r.Resolve("a", "b", 1512.3, 1498.7, 7, 3, state, false)
			So(out.Winner.NewRating, ShouldAlmostEqual, math.Round(out.Winner.NewRating*10)/10, 1e-9)
			So(out.Loser.NewRating, ShouldAlmostEqual, math.Round(out.Loser.NewRating*10)/10, 1e-9)
			So(out.Loser.NewRating, ShouldAlmostEqual, out.Loser.OldRating+out.Loser.Delta, 1e-9)
		})
	})
}

func TestNextDeviation(t *testing.T) {
	Convey("Given the deviation schedule", t, func() {
		Convey("Then RD shrinks monotonically and stays positive", func() {
			prev := rating.NextDeviation(0)
			So(prev, ShouldEqual, model.DefaultRatingDeviation)
			for mc := 1; mc <= 500; mc += 7 {
				next := rating.NextDeviation(mc)
				So(next, ShouldBeLessThan, prev)
				So(next, ShouldBeGreaterThan, 0)
				prev = next
			}
		})
	})
}
