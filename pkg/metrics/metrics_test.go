package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCollectors(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithRegistry(registry))

		Convey("When counters move", func() {
			m.comparisonsRecorded.Inc()
			m.comparisonsRecorded.Inc()
			m.drawsRecorded.Inc()
			m.pairsSelected.Inc()

			Convey("Then their values are observable", func() {
				So(testutil.ToFloat64(m.comparisonsRecorded), ShouldEqual, 2)
				So(testutil.ToFloat64(m.drawsRecorded), ShouldEqual, 1)
				So(testutil.ToFloat64(m.pairsSelected), ShouldEqual, 1)
			})
		})

		Convey("When gauges are set", func() {
			m.itemsTracked.Set(42)
			m.totalComparisons.Set(7)

			So(testutil.ToFloat64(m.itemsTracked), ShouldEqual, 42)
			So(testutil.ToFloat64(m.totalComparisons), ShouldEqual, 7)
		})

		Convey("When HTTP metrics are labeled", func() {
			m.httpRequests.WithLabelValues("pair", "GET", "200").Inc()
			m.httpRequests.WithLabelValues("pair", "GET", "200").Inc()
			m.httpRequests.WithLabelValues("pair", "GET", "422").Inc()

			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("pair", "GET", "200")), ShouldEqual, 2)
			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("pair", "GET", "422")), ShouldEqual, 1)
		})

		Convey("Then every collector is registered under the configured names", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			for _, want := range []string{
				"faceoff_engine_comparisons_recorded_total",
				"faceoff_engine_pairs_selected_total",
				"faceoff_engine_insufficient_pools_total",
				"faceoff_engine_selection_latency_ms",
				"faceoff_engine_record_latency_ms",
				"faceoff_engine_rating_delta",
				"faceoff_engine_history_pruned_total",
				"faceoff_engine_decay_sweeps_total",
				"faceoff_engine_system_resets_total",
			} {
				So(names[want], ShouldBeTrue)
			}
		})
	})

	Convey("Given custom namespace options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithRegistry(registry),
			WithNamespace("custom"),
			WithSubsystem("core"),
			WithHistogramBuckets([]float64{1, 10, 100}),
		)
		m.comparisonsRecorded.Inc()

		families, err := registry.Gather()
		So(err, ShouldBeNil)
		found := false
		for _, f := range families {
			if f.GetName() == "custom_core_comparisons_recorded_total" {
				found = true
			}
		}
		So(found, ShouldBeTrue)
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When the package helpers run", func() {
			before := testutil.ToFloat64(globalManager.comparisonsRecorded)
			drawsBefore := testutil.ToFloat64(globalManager.drawsRecorded)

			RecordComparison(false, 32)
			RecordComparison(true, -16)
			RecordPairSelected()
			RecordInsufficientPool()
			RecordSelectionLatency(1.5)
			RecordRecordLatency(0.8)
			RecordHistoryPruned(3)
			RecordPruneFailure()
			RecordDecaySweep(5)
			UpdateItemsTracked(12)
			UpdateTotalComparisons(60)
			RecordSystemReset()
			RecordSystemInitialized()
			RecordHTTPRequest("rankings", "GET", "200")
			RecordHTTPRequestDuration("rankings", "GET", "200", 2.5)

			Convey("Then the global counters advance", func() {
				So(testutil.ToFloat64(globalManager.comparisonsRecorded), ShouldEqual, before+2)
				So(testutil.ToFloat64(globalManager.drawsRecorded), ShouldEqual, drawsBefore+1)
				So(testutil.ToFloat64(globalManager.itemsTracked), ShouldEqual, 12)
			})
		})

		Convey("Then the scrape registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
