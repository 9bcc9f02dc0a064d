package geo_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutroute/internal/domain/geo"
	"github.com/okian/scoutroute/internal/domain/model"
)

func TestEstimator_DistanceKm(t *testing.T) {
	Convey("Given a default estimator", t, func() {
		est := geo.New()

		phoenix := model.Coordinates{Lat: 33.4484, Lng: -112.0740}
		tucson := model.Coordinates{Lat: 32.2226, Lng: -110.9747}

		Convey("When measuring a point against itself", func() {
			So(est.DistanceKm(phoenix, phoenix), ShouldEqual, 0)
		})

		Convey("When measuring two known cities", func() {
			d := est.DistanceKm(phoenix, tucson)

			Convey("Then the distance is close to the published great-circle value", func() {
				So(d, ShouldBeBetween, 165, 180)
			})

			Convey("And the measurement is symmetric", func() {
				So(est.DistanceKm(tucson, phoenix), ShouldEqual, d)
			})
		})

		Convey("When measuring one degree of longitude at the equator", func() {
			d := est.DistanceKm(model.Coordinates{}, model.Coordinates{Lng: 1})
			So(d, ShouldBeBetween, 111, 112)
		})
	})
}

func TestEstimator_DriveMinutes(t *testing.T) {
	Convey("Given an estimator with round-number speeds", t, func() {
		// detour 1.0 and 60 km/h make minutes equal kilometers.
		est := geo.New(geo.WithDetourFactor(1.0), geo.WithRoadSpeed(60))

		a := model.Coordinates{Lat: 10, Lng: 10}
		b := model.Coordinates{Lat: 10, Lng: 11}

		Convey("When estimating a drive", func() {
			km := est.DistanceKm(a, b)
			minutes := est.DriveMinutes(a, b)

			Convey("Then minutes equal the rounded distance", func() {
				So(minutes, ShouldBeBetween, km-1, km+1)
			})
		})

		Convey("When the detour factor grows", func() {
			slower := geo.New(geo.WithDetourFactor(1.5), geo.WithRoadSpeed(60))

			Convey("Then the estimate grows with it", func() {
				So(slower.DriveMinutes(a, b), ShouldBeGreaterThan, est.DriveMinutes(a, b))
			})
		})

		Convey("When the two points coincide", func() {
			So(est.DriveMinutes(a, a), ShouldEqual, 0)
		})
	})
}

func TestEstimator_FlightHours(t *testing.T) {
	Convey("Given a default estimator", t, func() {
		est := geo.New()

		Convey("When estimating a 2000 km flight", func() {
			Convey("Then cruise time plus ground overhead is 5.5 hours", func() {
				So(est.FlightHours(2000), ShouldEqual, 5.5)
			})
		})

		Convey("When estimating a zero-distance flight", func() {
			Convey("Then only the ground overhead remains", func() {
				So(est.FlightHours(0), ShouldEqual, 3.0)
			})
		})

		Convey("When the distance is not a multiple of the cruise speed", func() {
			Convey("Then the result is rounded to one decimal", func() {
				// 1234/800 + 3 = 4.5425 -> 4.5
				So(est.FlightHours(1234), ShouldEqual, 4.5)
			})
		})
	})
}

func TestEstimator_Options(t *testing.T) {
	Convey("Given option values out of range", t, func() {
		est := geo.New(
			geo.WithDetourFactor(0.5),
			geo.WithRoadSpeed(-10),
			geo.WithCruiseSpeed(0),
			geo.WithGroundOverhead(-1),
		)

		Convey("Then the defaults survive", func() {
			So(est.FlightHours(2000), ShouldEqual, 5.5)
		})
	})
}
