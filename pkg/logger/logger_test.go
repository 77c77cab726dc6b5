package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInitAndGet(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			log := Get()
			So(log, ShouldNotBeNil)

			ctx := context.Background()
			So(func() {
				log.Debug(ctx, "debug line", String("k", "v"))
				log.Info(ctx, "info line", Int("n", 1))
				log.Warn(ctx, "warn line", Float64("f", 1.5))
				log.Error(ctx, "error line", Error(errors.New("boom")))
			}, ShouldNotPanic)
		})

		Convey("And Named returns a grouped child", func() {
			child := Named("selector")
			So(child, ShouldNotBeNil)
			So(func() {
				child.Info(context.Background(), "from child", Bool("ok", true))
			}, ShouldNotPanic)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		So(String("k", "v"), ShouldResemble, Field{Key: "k", Value: "v"})
		So(Int("n", 3), ShouldResemble, Field{Key: "n", Value: 3})
		So(Float64("f", 2.5), ShouldResemble, Field{Key: "f", Value: 2.5})
		So(Bool("b", true), ShouldResemble, Field{Key: "b", Value: true})
		So(Duration("d", time.Second), ShouldResemble, Field{Key: "d", Value: time.Second})
		So(Any("a", []int{1}), ShouldResemble, Field{Key: "a", Value: []int{1}})

		err := errors.New("boom")
		So(Error(err), ShouldResemble, Field{Key: "error", Value: err})
	})
}

func TestLevels(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("When setting known level names", func() {
			for _, name := range []string{"debug", "info", "warn", "warning", "error", ""} {
				So(SetLevelString(name), ShouldBeNil)
			}
		})

		Convey("When setting an unknown level name", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("When setting a level directly", func() {
			SetLevel(slog.LevelWarn)
			So(levelVar.Level(), ShouldEqual, slog.LevelWarn)

			SetLevel(slog.LevelInfo)
			So(levelVar.Level(), ShouldEqual, slog.LevelInfo)
		})
	})
}
