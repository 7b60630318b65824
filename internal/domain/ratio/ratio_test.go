package ratio_test

import (
	"testing"

	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/ratio"
	. "github.com/smartystreets/goconvey/convey"
)

func windowed(acute, chronic model.Value) []model.WindowedRecord {
	return []model.WindowedRecord{{
		EnrichedRecord: model.EnrichedRecord{AthleteID: "amy", HasSession: true},
		Windows: map[string]model.MetricWindow{
			"DSL": {Acute: acute, Chronic: chronic},
		},
	}}
}

func TestDerive(t *testing.T) {
	Convey("Given acute and chronic averages", t, func() {
		Convey("When both are defined and chronic is non-zero", func() {
			out := ratio.Derive(windowed(model.Some(300), model.Some(200)))
			So(out[0].Windows["DSL"].ACWR.Or(-1), ShouldEqual, 1.5)
		})

		Convey("When the athlete has a single session", func() {
			out := ratio.Derive(windowed(model.Some(420), model.Some(420)))
			So(out[0].Windows["DSL"].ACWR.Or(-1), ShouldEqual, 1)
		})

		Convey("When chronic is zero", func() {
			out := ratio.Derive(windowed(model.Some(300), model.Some(0)))
			So(out[0].Windows["DSL"].ACWR.Defined(), ShouldBeFalse)
		})

		Convey("When either input is undefined", func() {
			So(ratio.Derive(windowed(model.None(), model.Some(200)))[0].Windows["DSL"].ACWR.Defined(), ShouldBeFalse)
			So(ratio.Derive(windowed(model.Some(300), model.None()))[0].Windows["DSL"].ACWR.Defined(), ShouldBeFalse)
		})

		Convey("Then the input table is not mutated", func() {
			in := windowed(model.Some(300), model.Some(200))
			_ = ratio.Derive(in)
			So(in[0].Windows["DSL"].ACWR.Defined(), ShouldBeFalse)
		})
	})
}

func TestClassifier(t *testing.T) {
	Convey("Given the default classifier", t, func() {
		c := ratio.NewClassifier()

		Convey("Then boundaries are inclusive on the normal side", func() {
			So(c.Classify(model.Some(0.79)), ShouldEqual, ratio.RiskUnder)
			So(c.Classify(model.Some(0.8)), ShouldEqual, ratio.RiskNormal)
			So(c.Classify(model.Some(1.0)), ShouldEqual, ratio.RiskNormal)
			So(c.Classify(model.Some(1.5)), ShouldEqual, ratio.RiskNormal)
			So(c.Classify(model.Some(1.51)), ShouldEqual, ratio.RiskOver)
		})

		Convey("Then an undefined ratio classifies as no data", func() {
			So(c.Classify(model.None()), ShouldEqual, ratio.RiskNoData)
		})
	})

	Convey("Given custom thresholds", t, func() {
		c := ratio.NewClassifier(ratio.WithThresholds(0.5, 2.0))

		Convey("Then the custom boundaries apply", func() {
			So(c.Classify(model.Some(0.6)), ShouldEqual, ratio.RiskNormal)
			So(c.Classify(model.Some(1.8)), ShouldEqual, ratio.RiskNormal)
			So(c.Classify(model.Some(2.1)), ShouldEqual, ratio.RiskOver)
		})
	})

	Convey("Given invalid thresholds", t, func() {
		c := ratio.NewClassifier(ratio.WithThresholds(2.0, 0.5))

		Convey("Then the defaults are kept", func() {
			So(c.Classify(model.Some(1.0)), ShouldEqual, ratio.RiskNormal)
			So(c.Classify(model.Some(1.6)), ShouldEqual, ratio.RiskOver)
		})
	})
}
