package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ekrowl/acwr/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	Convey("Given an initialized logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(logger.InitWithWriter(&buf), ShouldBeNil)
		log := logger.Get()

		Convey("When logging at info level", func() {
			log.Info(ctx, "pipeline run complete", logger.Int("rows", 42))

			Convey("Then the message and fields appear", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "pipeline run complete")
				So(out, ShouldContainSubstring, "rows=42")
				So(out, ShouldContainSubstring, "level=INFO")
			})

			Convey("Then the call site is recorded", func() {
				So(buf.String(), ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the configured level", func() {
			log.Debug(ctx, "hidden")
			So(buf.String(), ShouldBeEmpty)

			Convey("And after lowering the level", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				log.Debug(ctx, "now visible")
				So(buf.String(), ShouldContainSubstring, "now visible")
			})
		})

		Convey("When using a named logger", func() {
			logger.Named("ingest").Warn(ctx, "slow read", logger.String("path", "load.csv"))

			Convey("Then fields are grouped under the component name", func() {
				So(buf.String(), ShouldContainSubstring, "ingest.path=load.csv")
			})
		})

		Convey("When logging an error field", func() {
			log.Error(ctx, "refresh failed", logger.Error(errors.New("boom")))
			So(buf.String(), ShouldContainSubstring, "error=boom")
		})
	})

	Convey("Given the level parser", t, func() {
		Convey("Then known names parse case-insensitively", func() {
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
		})

		Convey("Then unknown names are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
