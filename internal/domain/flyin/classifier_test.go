package flyin_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutroute/internal/domain/flyin"
	"github.com/okian/scoutroute/internal/domain/model"
)

var (
	home   = model.Coordinates{Lat: 33.4484, Lng: -112.0740} // Phoenix
	tempe  = model.Coordinates{Lat: 33.4255, Lng: -111.9400} // in radius
	denver = model.Coordinates{Lat: 39.7392, Lng: -104.9903} // ~950 km out
	d1     = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	d2     = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
)

func athlete(name string, target, completed int) model.RosterPlayer {
	return model.RosterPlayer{
		Name:            name,
		NormalizedName:  model.NormalizeName(name),
		Level:           model.LevelHS,
		Tier:            2,
		VisitTarget:     target,
		VisitsCompleted: completed,
	}
}

func event(date time.Time, venueName string, coords model.Coordinates, players ...string) model.GameEvent {
	return model.GameEvent{
		ID:          venueName + "|" + date.Format(time.DateOnly),
		Date:        date,
		Venue:       model.Venue{Name: venueName, Coords: coords},
		Source:      model.SourceSyntheticHS,
		PlayerNames: players,
		Confidence:  model.ConfidenceMedium,
	}
}

func TestClassifier_Classify(t *testing.T) {
	Convey("Given a classifier at the Phoenix home base", t, func() {
		c := flyin.NewClassifier(flyin.WithHome(home))

		Convey("When uncovered athletes cluster at a distant venue", func() {
			roster := []model.RosterPlayer{
				athlete("Ava Cole", 1, 0),
				athlete("Ben Ito", 1, 0),
			}
			eligible := []model.GameEvent{
				event(d2, "Mile High Park", denver, "Ben Ito"),
				event(d1, "Mile High Park", denver, "Ava Cole"),
			}
			visits, unreachable := c.Classify(roster, eligible, map[string]bool{})

			Convey("Then one fly-in visit groups the venue", func() {
				So(visits, ShouldHaveLength, 1)
				v := visits[0]
				So(v.Venue.Name, ShouldEqual, "Mile High Park")
				So(v.PlayerNames, ShouldResemble, []string{"Ava Cole", "Ben Ito"})
				So(v.Dates, ShouldResemble, []time.Time{d1, d2})
			})

			Convey("And travel estimates come from the flight model", func() {
				v := visits[0]
				So(v.DistanceKm, ShouldBeGreaterThan, 800)
				// cruise time plus the fixed ground overhead
				So(v.EstimatedTravelHours, ShouldBeGreaterThan, 3)
			})

			Convey("And source and confidence follow the earliest event", func() {
				So(visits[0].Source, ShouldEqual, model.SourceSyntheticHS)
				So(visits[0].Confidence, ShouldEqual, model.ConfidenceMedium)
			})

			Convey("And nobody is unreachable", func() {
				So(unreachable, ShouldBeEmpty)
			})
		})

		Convey("When an uncovered athlete's venue is within the drive radius", func() {
			roster := []model.RosterPlayer{athlete("Ava Cole", 1, 0)}
			eligible := []model.GameEvent{event(d1, "Tempe Field", tempe, "Ava Cole")}
			visits, unreachable := c.Classify(roster, eligible, map[string]bool{})

			Convey("Then no fly-in is reported; the venue was road-reachable", func() {
				So(visits, ShouldBeEmpty)
				So(unreachable, ShouldBeEmpty)
			})
		})

		Convey("When an athlete has no eligible events at all", func() {
			roster := []model.RosterPlayer{athlete("Ghost Kid", 2, 0)}
			visits, unreachable := c.Classify(roster, nil, map[string]bool{})

			Convey("Then they are reported unreachable with a reason", func() {
				So(visits, ShouldBeEmpty)
				So(unreachable, ShouldHaveLength, 1)
				So(unreachable[0].Name, ShouldEqual, "Ghost Kid")
				So(unreachable[0].Reason, ShouldNotBeEmpty)
			})
		})

		Convey("When the athlete is already covered by a trip", func() {
			roster := []model.RosterPlayer{athlete("Ava Cole", 1, 0)}
			eligible := []model.GameEvent{event(d1, "Mile High Park", denver, "Ava Cole")}
			visits, unreachable := c.Classify(roster, eligible, map[string]bool{"ava cole": true})

			Convey("Then they are ignored entirely", func() {
				So(visits, ShouldBeEmpty)
				So(unreachable, ShouldBeEmpty)
			})
		})

		Convey("When the athlete owes no visits", func() {
			roster := []model.RosterPlayer{athlete("Done Dan", 2, 2)}
			visits, unreachable := c.Classify(roster, nil, map[string]bool{})
			So(visits, ShouldBeEmpty)
			So(unreachable, ShouldBeEmpty)
		})

		Convey("When two distant venues differ in athlete count", func() {
			roster := []model.RosterPlayer{
				athlete("Ava Cole", 1, 0),
				athlete("Ben Ito", 1, 0),
				athlete("Cy Drake", 1, 0),
			}
			slc := model.Coordinates{Lat: 40.7608, Lng: -111.8910}
			eligible := []model.GameEvent{
				event(d1, "Wasatch Yard", slc, "Cy Drake"),
				event(d1, "Mile High Park", denver, "Ava Cole", "Ben Ito"),
			}
			visits, _ := c.Classify(roster, eligible, map[string]bool{})

			Convey("Then the venue reaching more athletes sorts first", func() {
				So(visits, ShouldHaveLength, 2)
				So(visits[0].Venue.Name, ShouldEqual, "Mile High Park")
				So(visits[1].Venue.Name, ShouldEqual, "Wasatch Yard")
			})
		})
	})
}
