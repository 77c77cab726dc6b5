package selector_test

import (
	"testing"
	"time"

	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/pool"
	"github.com/okian/faceoff/internal/domain/recent"
	"github.com/okian/faceoff/internal/domain/selector"
	. "github.com/smartystreets/goconvey/convey"
)

func candidate(id string, priority, ratingValue float64) pool.Candidate {
	item := model.Item{ID: id, Title: id, Category: model.CategoryMovie, ExternalRef: "ref-" + id}
	item.ApplyDefaults()
	item.Rating = ratingValue
	return pool.Candidate{Item: item, PriorityScore: priority, UCBScore: ratingValue}
}

func record(first, second string) model.ComparisonRecord {
	return model.ComparisonRecord{ID: first + "-" + second, FirstID: first, SecondID: second, At: time.Now()}
}

func TestPick(t *testing.T) {
	Convey("Given a seeded selector", t, func() {
		sel := selector.New(selector.WithSeed(7))
		empty := recent.FromHistory(nil)

		Convey("When fewer than two candidates exist", func() {
			_, ok := sel.Pick([]pool.Candidate{candidate("solo", 1, 1500)}, empty)

			Convey("Then no pair is produced", func() {
				So(ok, ShouldBeFalse)
			})

			_, ok = sel.Pick(nil, empty)
			So(ok, ShouldBeFalse)
		})

		Convey("When exactly two candidates exist", func() {
			pair, ok := sel.Pick([]pool.Candidate{
				candidate("a", 0.9, 1500),
				candidate("b", 0.8, 1500),
			}, empty)

			Convey("Then they form the pair", func() {
				So(ok, ShouldBeTrue)
				So(pair.First.ID, ShouldNotEqual, pair.Second.ID)
			})
		})

		Convey("When one opponent is rated close and another far away", func() {
			candidates := []pool.Candidate{
				candidate("lead", 0.95, 1500),
				candidate("near", 0.40, 1510),
				candidate("far", 0.41, 2400),
				candidate("other", 0.39, 1490),
			}

			Convey("Then affinity pulls in a competitive opponent", func() {
				// n/2 = 2 keeps lead and near in the first-slot pool; whichever
				// leads, the 2400-rated outlier scores zero similarity and loses.
				pair, ok := sel.Pick(candidates, empty)
				So(ok, ShouldBeTrue)
				So(pair.Second.ID, ShouldNotEqual, "far")
			})
		})

		Convey("When the freshest pairing was just offered", func() {
			candidates := []pool.Candidate{
				candidate("lead", 0.95, 1500),
				candidate("near", 0.50, 1505),
				candidate("alt", 0.49, 1495),
				candidate("tail", 0.10, 1480),
			}

			Convey("Then the selector skips to an unseen pair", func() {
				for seed := int64(0); seed < 20; seed++ {
					s := selector.New(selector.WithSeed(seed))
					memory := recent.FromHistory([]model.ComparisonRecord{record("x", "y")})
					withPair, ok := s.Pick(candidates, memory)
					So(ok, ShouldBeTrue)

					s = selector.New(selector.WithSeed(seed))
					blocked := recent.FromHistory([]model.ComparisonRecord{
						record(withPair.First.ID, withPair.Second.ID),
					})
					repick, ok := s.Pick(candidates, blocked)
					So(ok, ShouldBeTrue)
					if repick.First.ID == withPair.First.ID {
						So(repick.Second.ID, ShouldNotEqual, withPair.Second.ID)
					}
				}
			})
		})

		Convey("When every nearby pairing has been seen", func() {
			candidates := []pool.Candidate{
				candidate("a", 0.9, 1500),
				candidate("b", 0.8, 1500),
			}
			memory := recent.FromHistory([]model.ComparisonRecord{record("a", "b")})

			Convey("Then a pair is still returned", func() {
				pair, ok := sel.Pick(candidates, memory)
				So(ok, ShouldBeTrue)
				So(pair.First.ID, ShouldNotEqual, pair.Second.ID)
			})
		})

		Convey("When the same lead keeps coming up", func() {
			candidates := []pool.Candidate{
				candidate("a", 0.99, 1500),
				candidate("b", 0.98, 1500),
				candidate("c", 0.97, 1500),
				candidate("d", 0.96, 1500),
				candidate("e", 0.95, 1500),
				candidate("f", 0.94, 1500),
			}
			memory := recent.FromHistory([]model.ComparisonRecord{
				record("a", "b"),
			})

			Convey("Then a recent lead is avoided when alternatives exist", func() {
				// First-slot pool is the top 3; "a" led recently, so the
				// uniform pick lands on "b" or "c".
				for seed := int64(0); seed < 25; seed++ {
					s := selector.New(selector.WithSeed(seed))
					pair, ok := s.Pick(candidates, memory)
					So(ok, ShouldBeTrue)
					So(pair.First.ID, ShouldNotEqual, "a")
				}
			})
		})
	})
}
