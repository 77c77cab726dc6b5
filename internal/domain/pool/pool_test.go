package pool_test

import (
	"math"
	"testing"

	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/pool"
	. "github.com/smartystreets/goconvey/convey"
)

func newItem(id string, cat model.Category, matches int) model.Item {
	item := model.Item{ID: id, Title: id, Category: cat, ExternalRef: "ref-" + id}
	item.ApplyDefaults()
	item.MatchCount = matches
	return item
}

func TestRankerBuild(t *testing.T) {
	Convey("Given a seeded ranker and default state", t, func() {
		ranker := pool.NewRanker(pool.WithSeed(1))
		state := model.DefaultSystemState()

		Convey("When the collection has fewer than two eligible items", func() {
			items := []model.Item{newItem("only", model.CategoryMovie, 0)}

			Convey("Then the pool is empty", func() {
				So(ranker.Build(items, "", state), ShouldBeNil)
			})
		})

		Convey("When items lack an external catalog reference", func() {
			orphan := newItem("orphan", model.CategoryMovie, 0)
			orphan.ExternalRef = ""
			items := []model.Item{
				orphan,
				newItem("a", model.CategoryMovie, 0),
				newItem("b", model.CategoryMovie, 0),
			}

			Convey("Then they are excluded", func() {
				candidates := ranker.Build(items, "", state)
				So(candidates, ShouldHaveLength, 2)
				for _, c := range candidates {
					So(c.Item.ID, ShouldNotEqual, "orphan")
				}
			})
		})

		Convey("When a category filter is applied", func() {
			items := []model.Item{
				newItem("m1", model.CategoryMovie, 0),
				newItem("m2", model.CategoryMovie, 0),
				newItem("g1", model.CategoryGame, 0),
			}

			Convey("Then only that category survives", func() {
				candidates := ranker.Build(items, model.CategoryMovie, state)
				So(candidates, ShouldHaveLength, 2)
			})

			Convey("And a filter leaving one item yields an empty pool", func() {
				So(ranker.Build(items, model.CategoryGame, state), ShouldBeNil)
			})
		})

		Convey("When items differ only in match count", func() {
			fresh := newItem("fresh", model.CategoryMovie, 0)
			worn := newItem("worn", model.CategoryMovie, 40)
			worn.RatingDeviation = 350.0 / (1 + 40.0/50.0)

			Convey("Then the under-sampled item outranks the worn one", func() {
				// Jitter is at most ±10%; the exploration gap here is far larger.
				candidates := ranker.Build([]model.Item{worn, fresh}, "", state)
				So(candidates[0].Item.ID, ShouldEqual, "fresh")
				So(candidates[0].PriorityScore, ShouldBeGreaterThan, candidates[1].PriorityScore)
			})
		})

		Convey("When candidates are built", func() {
			items := []model.Item{
				newItem("a", model.CategoryMovie, 3),
				newItem("b", model.CategoryMovie, 12),
			}
			state.TotalComparisons = 40
			candidates := ranker.Build(items, "", state)

			Convey("Then every candidate carries the UCB term", func() {
				for _, c := range candidates {
					bonus := state.ExplorationWeight * math.Sqrt(
						math.Log(float64(state.TotalComparisons)+1)/float64(c.Item.MatchCount+1))
					So(c.UCBScore, ShouldAlmostEqual, c.Item.Rating+bonus, 1e-9)
				}
			})

			Convey("And priority stays inside jitter bounds of the raw blend", func() {
				for _, c := range candidates {
					expl := math.Max(1, float64(30-c.Item.MatchCount)) / 30
					unc := c.Item.RatingDeviation / model.DefaultRatingDeviation
					mag := (c.Item.Rating - 1400) / 200
					raw := 0.5*expl + 0.3*unc + 0.2*mag
					So(c.PriorityScore, ShouldBeGreaterThanOrEqualTo, raw*0.9-1e-9)
					So(c.PriorityScore, ShouldBeLessThanOrEqualTo, raw*1.1+1e-9)
				}
			})
		})
	})
}
