package outlier_test

import (
	"testing"
	"time"

	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/outlier"
	. "github.com/smartystreets/goconvey/convey"
)

func row(id string, d int, metrics map[string]model.Value) model.EnrichedRecord {
	return model.EnrichedRecord{
		AthleteID:   id,
		SessionDate: time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC),
		HasSession:  true,
		Metrics:     metrics,
	}
}

func dsl(v float64) map[string]model.Value {
	return map[string]model.Value{"DSL": model.Some(v)}
}

func TestBound(t *testing.T) {
	Convey("Given an athlete with seven ordinary sessions and one spike", t, func() {
		var records []model.EnrichedRecord
		for d := 1; d <= 7; d++ {
			records = append(records, row("amy", d, dsl(10)))
		}
		records = append(records, row("amy", 8, dsl(100)))

		Convey("When bounding with the default multiplier", func() {
			out := outlier.Bound(records, "DSL", outlier.DefaultMultiplier)

			Convey("Then the spike is removed and the rest kept", func() {
				So(len(out), ShouldEqual, 7)
				for _, r := range out {
					So(r.Metrics["DSL"].Or(0), ShouldEqual, 10)
				}
			})
		})
	})

	Convey("Given an athlete with a single session", t, func() {
		records := []model.EnrichedRecord{row("amy", 1, dsl(5000))}

		Convey("Then the lone row is never filtered", func() {
			So(len(outlier.Bound(records, "DSL", 2.5)), ShouldEqual, 1)
		})
	})

	Convey("Given an even-sized group spread across the quartile halves", t, func() {
		records := []model.EnrichedRecord{
			row("amy", 1, dsl(10)), row("amy", 2, dsl(20)),
			row("amy", 3, dsl(30)), row("amy", 4, dsl(70)),
		}

		Convey("Then the bound follows the median-of-halves quartiles", func() {
			// Q1=15, Q3=50, bound = 50 + 1.0*35 = 85; an interpolating
			// estimator would put the bound at 62.5 and drop the 70.
			out := outlier.Bound(records, "DSL", 1.0)
			So(len(out), ShouldEqual, 4)
		})
	})

	Convey("Given rows with no defined values for the metric", t, func() {
		records := []model.EnrichedRecord{
			row("amy", 1, map[string]model.Value{"DSL": model.None()}),
			row("amy", 2, nil),
		}

		Convey("Then no bounding applies and all rows survive", func() {
			So(len(outlier.Bound(records, "DSL", 2.5)), ShouldEqual, 2)
		})
	})

	Convey("Given two athletes with different baselines", t, func() {
		var records []model.EnrichedRecord
		for d := 1; d <= 7; d++ {
			records = append(records, row("amy", d, dsl(10)))
		}
		// 100 is a spike for amy but an ordinary value for bob.
		records = append(records, row("amy", 8, dsl(100)))
		for d := 1; d <= 8; d++ {
			records = append(records, row("bob", d, dsl(100)))
		}

		Convey("Then quantiles are computed per athlete, not globally", func() {
			out := outlier.Bound(records, "DSL", 2.5)
			perAthlete := map[string]int{}
			for _, r := range out {
				perAthlete[r.AthleteID]++
			}
			So(perAthlete["amy"], ShouldEqual, 7)
			So(perAthlete["bob"], ShouldEqual, 8)
		})
	})

	Convey("Given a missing value on a row with another spiked metric", t, func() {
		var records []model.EnrichedRecord
		for d := 1; d <= 7; d++ {
			records = append(records, row("amy", d, dsl(10)))
		}
		records = append(records, row("amy", 8, map[string]model.Value{"DSL": model.None()}))

		Convey("Then the missing-value row passes trivially", func() {
			So(len(outlier.Bound(records, "DSL", 2.5)), ShouldEqual, 8)
		})
	})
}

func TestBoundAll(t *testing.T) {
	Convey("Given a row that is a spike on the first metric only", t, func() {
		var records []model.EnrichedRecord
		for d := 1; d <= 7; d++ {
			records = append(records, row("amy", d, map[string]model.Value{
				"DSL": model.Some(10),
				"HSR": model.Some(float64(200 + d)),
			}))
		}
		// DSL spike carries the athlete's highest HSR value with it.
		records = append(records, row("amy", 8, map[string]model.Value{
			"DSL": model.Some(100),
			"HSR": model.Some(400),
		}))

		Convey("When folding over both metrics", func() {
			out := outlier.BoundAll(records, []string{"DSL", "HSR"}, 2.5)

			Convey("Then the row removed by the first metric is gone before the second is bounded", func() {
				So(len(out), ShouldEqual, 7)
				for _, r := range out {
					So(r.Metrics["DSL"].Or(0), ShouldEqual, 10)
				}
			})
		})
	})

	Convey("Given no metrics to bound", t, func() {
		records := []model.EnrichedRecord{row("amy", 1, dsl(10))}
		So(outlier.BoundAll(records, nil, 2.5), ShouldResemble, records)
	})
}
