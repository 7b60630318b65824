package snapshot_test

import (
	"testing"
	"time"

	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/snapshot"
	. "github.com/smartystreets/goconvey/convey"
)

func row(id string, d int, acwr model.Value) model.WindowedRecord {
	return model.WindowedRecord{
		EnrichedRecord: model.EnrichedRecord{
			AthleteID:   id,
			SessionDate: time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC),
			HasSession:  true,
		},
		Windows: map[string]model.MetricWindow{"DSL": {ACWR: acwr}},
	}
}

func TestLatest(t *testing.T) {
	Convey("Given windowed series for multiple athletes", t, func() {
		records := []model.WindowedRecord{
			row("amy", 1, model.Some(0.9)),
			row("amy", 5, model.Some(1.1)),
			row("amy", 3, model.Some(1.0)),
			row("bob", 2, model.Some(0.7)),
		}

		Convey("When taking snapshots", func() {
			out := snapshot.Latest(records)

			Convey("Then each athlete's maximum-date row is selected", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].AthleteID, ShouldEqual, "amy")
				So(out[0].SessionDate.Day(), ShouldEqual, 5)
				So(out[0].Windows["DSL"].ACWR.Or(-1), ShouldEqual, 1.1)
				So(out[1].AthleteID, ShouldEqual, "bob")
			})
		})

		Convey("When an athlete has duplicate dates", func() {
			dupes := []model.WindowedRecord{
				row("amy", 4, model.Some(0.5)),
				row("amy", 4, model.Some(2.0)),
			}
			out := snapshot.Latest(dupes)

			Convey("Then the last row in order wins", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Windows["DSL"].ACWR.Or(-1), ShouldEqual, 2.0)
			})
		})

		Convey("When an athlete's only row is sessionless", func() {
			out := snapshot.Latest([]model.WindowedRecord{{
				EnrichedRecord: model.EnrichedRecord{AthleteID: "cal"},
				Windows:        map[string]model.MetricWindow{"DSL": {}},
			}})

			Convey("Then the athlete still appears with undefined fields", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].HasSession, ShouldBeFalse)
				So(out[0].Windows["DSL"].ACWR.Defined(), ShouldBeFalse)
			})
		})

		Convey("When the series is empty", func() {
			So(snapshot.Latest(nil), ShouldBeEmpty)
		})
	})
}
