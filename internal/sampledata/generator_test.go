package sampledata_test

import (
	"path/filepath"
	"testing"

	"github.com/ekrowl/acwr/internal/ingest"
	"github.com/ekrowl/acwr/internal/sampledata"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		gen := sampledata.New(
			sampledata.WithAthleteCount(10),
			sampledata.WithDayCount(30),
			sampledata.WithSeed(7),
			sampledata.WithMetrics([]string{"DSL"}),
		)

		Convey("When generating a roster", func() {
			roster := gen.Roster()

			Convey("Then athlete ids are unique", func() {
				So(len(roster), ShouldEqual, 10)
				seen := map[string]bool{}
				for _, r := range roster {
					So(seen[r.AthleteID], ShouldBeFalse)
					seen[r.AthleteID] = true
				}
			})
		})

		Convey("When generating a load log", func() {
			roster := gen.Roster()
			records := gen.LoadLog(roster)

			Convey("Then every record belongs to a rostered athlete", func() {
				ids := map[string]bool{}
				for _, r := range roster {
					ids[r.AthleteID] = true
				}
				So(len(records), ShouldBeGreaterThan, 0)
				for _, rec := range records {
					So(ids[rec.AthleteID], ShouldBeTrue)
				}
			})

			Convey("Then rest days thin out the daily cadence", func() {
				So(len(records), ShouldBeLessThan, 10*30)
			})
		})

		Convey("When writing and re-ingesting both files", func() {
			dir := t.TempDir()
			loadPath := filepath.Join(dir, "load.csv")
			posPath := filepath.Join(dir, "positions.csv")

			roster := gen.Roster()
			records := gen.LoadLog(roster)
			So(gen.WritePositions(posPath, roster), ShouldBeNil)
			So(gen.WriteLoadLog(loadPath, "Player Name", "Session Date", records), ShouldBeNil)

			Convey("Then the positions file round-trips", func() {
				positions, err := ingest.Positions(posPath)
				So(err, ShouldBeNil)
				So(len(positions), ShouldEqual, len(roster))
				So(positions[0].AthleteID, ShouldEqual, roster[0].AthleteID)
			})

			Convey("Then the load log re-ingests cleanly", func() {
				loads, err := ingest.LoadLog(loadPath, "Player Name", "Session Date", []string{"DSL"})
				So(err, ShouldBeNil)
				So(len(loads), ShouldEqual, len(records))
			})
		})
	})
}
