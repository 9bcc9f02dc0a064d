package app_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutroute/internal/adapters/repository"
	"github.com/okian/scoutroute/internal/app"
	"github.com/okian/scoutroute/internal/domain/model"
)

var (
	phoenix = model.Coordinates{Lat: 33.4484, Lng: -112.0740}
	tempe   = model.Coordinates{Lat: 33.4255, Lng: -111.9400}
	denver  = model.Coordinates{Lat: 39.7392, Lng: -104.9903}

	// Monday through Sunday of one planning week.
	weekStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	weekEnd   = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	thursday  = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	sunday    = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
)

func athlete(name string, tier, target int) model.RosterPlayer {
	return model.RosterPlayer{
		Name:        name,
		Level:       model.LevelHS,
		Tier:        tier,
		VisitTarget: target,
	}
}

func confirmed(date time.Time, venueName string, coords model.Coordinates, players ...string) model.GameEvent {
	return model.GameEvent{
		ID:          venueName + "|" + date.Format(time.DateOnly),
		Date:        date,
		Venue:       model.Venue{Name: venueName, Coords: coords},
		Source:      model.SourceConfirmedNCAA,
		PlayerNames: players,
	}
}

func TestService_Plan(t *testing.T) {
	Convey("Given a planning service at the Phoenix home base", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithHome(phoenix))

		Convey("When planning with empty inputs", func() {
			plan, err := svc.Plan(ctx, app.PlanRequest{Start: weekStart, End: weekEnd})

			Convey("Then the result is a well-formed empty plan", func() {
				So(err, ShouldBeNil)
				So(plan.ID, ShouldNotBeEmpty)
				So(plan.Trips, ShouldBeEmpty)
				So(plan.FlyInVisits, ShouldBeEmpty)
				So(plan.UnvisitablePlayers, ShouldBeEmpty)
				So(plan.CoveragePercent, ShouldEqual, 0)
			})

			Convey("And the plan is retrievable by id", func() {
				got, err := svc.GetPlan(ctx, plan.ID)
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, plan.ID)
			})
		})

		Convey("When one athlete has one reachable confirmed event", func() {
			req := app.PlanRequest{
				Roster:          []model.RosterPlayer{athlete("Ava Cole", 1, 2)},
				ConfirmedEvents: []model.GameEvent{confirmed(thursday, "Tempe Field", tempe, "Ava Cole")},
				Start:           weekStart,
				End:             weekEnd,
			}
			plan, err := svc.Plan(ctx, req)

			Convey("Then one trip covers them fully", func() {
				So(err, ShouldBeNil)
				So(plan.Trips, ShouldHaveLength, 1)
				So(plan.Trips[0].AnchorEvent.Venue.Name, ShouldEqual, "Tempe Field")
				So(plan.Trips[0].PlayerNames, ShouldResemble, []string{"Ava Cole"})
				So(plan.CoveragePercent, ShouldEqual, 100)
				So(plan.FlyInVisits, ShouldBeEmpty)
				So(plan.UnvisitablePlayers, ShouldBeEmpty)
			})

			Convey("And planning the same input again yields the same itinerary", func() {
				again, err := svc.Plan(ctx, req)
				So(err, ShouldBeNil)
				So(again.ID, ShouldNotEqual, plan.ID)
				So(again.Trips, ShouldResemble, plan.Trips)
				So(again.CoveragePercent, ShouldEqual, plan.CoveragePercent)
			})
		})

		Convey("When an athlete's only event falls on the blackout day", func() {
			plan, err := svc.Plan(ctx, app.PlanRequest{
				Roster:          []model.RosterPlayer{athlete("Sunday Sam", 1, 1)},
				ConfirmedEvents: []model.GameEvent{confirmed(sunday, "Tempe Field", tempe, "Sunday Sam")},
				Start:           weekStart,
				End:             weekEnd,
			})

			Convey("Then the athlete is reported unreachable", func() {
				So(err, ShouldBeNil)
				So(plan.Trips, ShouldBeEmpty)
				So(plan.UnvisitablePlayers, ShouldHaveLength, 1)
				So(plan.UnvisitablePlayers[0].Name, ShouldEqual, "Sunday Sam")
				So(plan.CoveragePercent, ShouldEqual, 0)
			})
		})

		Convey("When an athlete's only event sits beyond the drive radius", func() {
			plan, err := svc.Plan(ctx, app.PlanRequest{
				Roster:          []model.RosterPlayer{athlete("Distant Dan", 1, 1)},
				ConfirmedEvents: []model.GameEvent{confirmed(thursday, "Mile High Park", denver, "Distant Dan")},
				Start:           weekStart,
				End:             weekEnd,
			})

			Convey("Then they surface as a fly-in candidate, not a trip", func() {
				So(err, ShouldBeNil)
				So(plan.Trips, ShouldBeEmpty)
				So(plan.FlyInVisits, ShouldHaveLength, 1)
				So(plan.FlyInVisits[0].PlayerNames, ShouldResemble, []string{"Distant Dan"})
				So(plan.CoveragePercent, ShouldEqual, 0)
			})
		})

		Convey("When the roster mixes reachable, fly-in, and unreachable athletes", func() {
			plan, err := svc.Plan(ctx, app.PlanRequest{
				Roster: []model.RosterPlayer{
					athlete("Ava Cole", 1, 1),
					athlete("Distant Dan", 2, 1),
					athlete("Ghost Kid", 2, 1),
				},
				ConfirmedEvents: []model.GameEvent{
					confirmed(thursday, "Tempe Field", tempe, "Ava Cole"),
					confirmed(thursday, "Mile High Park", denver, "Distant Dan"),
				},
				Start: weekStart,
				End:   weekEnd,
			})

			Convey("Then every athlete lands in exactly one bucket", func() {
				So(err, ShouldBeNil)
				So(plan.Trips, ShouldHaveLength, 1)
				So(plan.Trips[0].PlayerNames, ShouldResemble, []string{"Ava Cole"})
				So(plan.FlyInVisits, ShouldHaveLength, 1)
				So(plan.FlyInVisits[0].PlayerNames, ShouldResemble, []string{"Distant Dan"})
				So(plan.UnvisitablePlayers, ShouldHaveLength, 1)
				So(plan.UnvisitablePlayers[0].Name, ShouldEqual, "Ghost Kid")
			})

			Convey("And coverage counts only trip-covered athletes", func() {
				So(plan.CoveragePercent, ShouldAlmostEqual, 100.0/3, 0.01)
			})
		})

		Convey("When a per-request drive radius override is supplied", func() {
			plan, err := svc.Plan(ctx, app.PlanRequest{
				Roster:          []model.RosterPlayer{athlete("Distant Dan", 1, 1)},
				ConfirmedEvents: []model.GameEvent{confirmed(thursday, "Mile High Park", denver, "Distant Dan")},
				Start:           weekStart,
				End:             weekEnd,
				MaxDriveMinutes: 900,
			})

			Convey("Then the distant venue comes into road range", func() {
				So(err, ShouldBeNil)
				So(plan.Trips, ShouldHaveLength, 1)
				So(plan.FlyInVisits, ShouldBeEmpty)
			})
		})

		Convey("When progress callbacks are wired", func() {
			var stages []app.Stage
			_, err := svc.Plan(ctx, app.PlanRequest{
				Start: weekStart,
				End:   weekEnd,
				Progress: func(stage app.Stage) {
					stages = append(stages, stage)
				},
			})

			Convey("Then the milestones arrive in pipeline order", func() {
				So(err, ShouldBeNil)
				So(stages, ShouldResemble, []app.Stage{
					app.StagePreparing,
					app.StageAnalyzing,
					app.StageOptimizing,
					app.StageFlyIn,
				})
			})
		})

		Convey("When the request is invalid", func() {
			Convey("Then end before start is rejected", func() {
				_, err := svc.Plan(ctx, app.PlanRequest{Start: weekEnd, End: weekStart})
				So(err, ShouldWrap, app.ErrInvalidRequest)
			})

			Convey("And more than two priority athletes are rejected", func() {
				_, err := svc.Plan(ctx, app.PlanRequest{
					Start:           weekStart,
					End:             weekEnd,
					PriorityPlayers: []string{"a", "b", "c"},
				})
				So(err, ShouldWrap, app.ErrInvalidRequest)
			})
		})

		Convey("When the context is already canceled", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := svc.Plan(canceled, app.PlanRequest{Start: weekStart, End: weekEnd})
			So(err, ShouldWrap, context.Canceled)
		})

		Convey("When fetching an unknown plan id", func() {
			_, err := svc.GetPlan(ctx, "no-such-plan")
			So(err, ShouldWrap, repository.ErrPlanNotFound)
		})
	})

	Convey("Given a service with priority athletes in play", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithHome(phoenix))

		Convey("When two priority athletes share one venue", func() {
			plan, err := svc.Plan(ctx, app.PlanRequest{
				Roster: []model.RosterPlayer{
					athlete("Ava Cole", 4, 1),
					athlete("Ben Ito", 4, 1),
				},
				ConfirmedEvents: []model.GameEvent{
					confirmed(thursday, "Tempe Field", tempe, "Ava Cole", "Ben Ito"),
				},
				Start:           weekStart,
				End:             weekEnd,
				PriorityPlayers: []string{"Ava Cole", "Ben Ito"},
			})

			Convey("Then one trip includes both and the results say so", func() {
				So(err, ShouldBeNil)
				So(plan.Trips, ShouldHaveLength, 1)
				So(plan.PriorityResults, ShouldHaveLength, 2)
				So(plan.PriorityResults[0].Status, ShouldEqual, model.PriorityIncluded)
				So(plan.PriorityResults[1].Status, ShouldEqual, model.PriorityIncluded)
			})
		})
	})
}

func TestService_Stats(t *testing.T) {
	Convey("Given a fresh service", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithHome(phoenix), app.WithMaxDriveMinutes(200))

		Convey("When reading stats before any plan", func() {
			stats := svc.Stats(ctx)
			So(stats["storedPlans"], ShouldEqual, 0)
			So(stats["maxDriveMinutes"], ShouldEqual, 200)
		})

		Convey("When reading stats after a plan", func() {
			_, err := svc.Plan(ctx, app.PlanRequest{Start: weekStart, End: weekEnd})
			So(err, ShouldBeNil)
			So(svc.Stats(ctx)["storedPlans"], ShouldEqual, 1)
		})
	})
}
