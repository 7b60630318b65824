package join_test

import (
	"testing"
	"time"

	"github.com/ekrowl/acwr/internal/domain/join"
	"github.com/ekrowl/acwr/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func load(id string, d int, dsl float64) model.LoadRecord {
	return model.LoadRecord{
		AthleteID:   id,
		SessionDate: day(d),
		Metrics:     map[string]model.Value{"DSL": model.Some(dsl)},
	}
}

func TestEnrich(t *testing.T) {
	Convey("Given a position registry and a load log", t, func() {
		positions := []model.PositionRecord{
			{AthleteID: "bob", Position: "Forward"},
			{AthleteID: "amy", Position: "Defender"},
			{AthleteID: "cal", Position: ""},
		}
		loads := []model.LoadRecord{
			load("bob", 3, 400),
			load("amy", 1, 250),
			load("bob", 1, 380),
			load("zed", 2, 900), // not in the registry
		}

		Convey("When joining", func() {
			out := join.Enrich(loads, positions)

			Convey("Then unregistered athletes are dropped", func() {
				for _, r := range out {
					So(r.AthleteID, ShouldNotEqual, "zed")
				}
			})

			Convey("Then output is sorted by athlete then date", func() {
				So(len(out), ShouldEqual, 4)
				So(out[0].AthleteID, ShouldEqual, "amy")
				So(out[1].AthleteID, ShouldEqual, "bob")
				So(out[1].SessionDate, ShouldEqual, day(1))
				So(out[2].SessionDate, ShouldEqual, day(3))
				So(out[3].AthleteID, ShouldEqual, "cal")
			})

			Convey("Then registered athletes without sessions get a placeholder row", func() {
				cal := out[3]
				So(cal.HasSession, ShouldBeFalse)
				So(cal.SessionDate.IsZero(), ShouldBeTrue)
				So(cal.Metrics, ShouldBeNil)
			})

			Convey("Then positions are attached to every row", func() {
				So(out[1].Position, ShouldEqual, "Forward")
				So(out[0].Position, ShouldEqual, "Defender")
			})
		})

		Convey("When the same (athlete, date) pair appears twice", func() {
			out := join.Enrich([]model.LoadRecord{load("amy", 1, 100), load("amy", 1, 200)}, positions)

			Convey("Then both rows pass through in input order", func() {
				So(len(out), ShouldEqual, 4)
				So(out[0].Metrics["DSL"].Or(0), ShouldEqual, 100)
				So(out[1].Metrics["DSL"].Or(0), ShouldEqual, 200)
			})
		})

		Convey("When the load log is empty", func() {
			out := join.Enrich(nil, positions)

			Convey("Then every registered athlete still appears once", func() {
				So(len(out), ShouldEqual, 3)
				for _, r := range out {
					So(r.HasSession, ShouldBeFalse)
				}
			})
		})

		Convey("When the registry is empty", func() {
			So(join.Enrich(loads, nil), ShouldBeEmpty)
		})
	})
}

func TestGroupByAthlete(t *testing.T) {
	Convey("Given an ordered enriched table", t, func() {
		records := join.Enrich([]model.LoadRecord{
			load("amy", 1, 1), load("amy", 2, 2), load("bob", 1, 3),
		}, []model.PositionRecord{
			{AthleteID: "amy"}, {AthleteID: "bob"}, {AthleteID: "cal"},
		})

		Convey("When grouping", func() {
			groups := join.GroupByAthlete(records)

			Convey("Then each athlete gets one contiguous group", func() {
				So(len(groups), ShouldEqual, 3)
				So(len(groups[0]), ShouldEqual, 2)
				So(groups[0][0].AthleteID, ShouldEqual, "amy")
				So(len(groups[1]), ShouldEqual, 1)
				So(groups[1][0].AthleteID, ShouldEqual, "bob")
				So(groups[2][0].AthleteID, ShouldEqual, "cal")
			})
		})

		Convey("When the table is empty", func() {
			So(join.GroupByAthlete(nil), ShouldBeEmpty)
		})
	})
}
