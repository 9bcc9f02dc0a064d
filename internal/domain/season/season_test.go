package season_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutroute/internal/domain/season"
)

func TestWindow(t *testing.T) {
	Convey("Given a spring season window", t, func() {
		w := season.Window{
			Start:        "02-14",
			End:          "03-28",
			HomeWeekdays: []time.Weekday{time.Tuesday, time.Friday},
		}

		Convey("When checking containment", func() {
			So(w.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(w.Contains(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(w.Contains(time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(w.Contains(time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)), ShouldBeFalse)
			So(w.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)), ShouldBeFalse)
		})

		Convey("When checking home-presence weekdays", func() {
			tue := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
			wed := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
			So(tue.Weekday(), ShouldEqual, time.Tuesday)
			So(w.IsHomeDay(tue), ShouldBeTrue)
			So(w.IsHomeDay(wed), ShouldBeFalse)
		})

		Convey("When validating", func() {
			So(w.Validate(), ShouldBeNil)

			Convey("Then a malformed boundary is rejected", func() {
				bad := season.Window{Start: "2026-02-14", End: "03-28"}
				So(bad.Validate(), ShouldWrap, season.ErrInvalidWindow)
			})

			Convey("And a window wrapping year-end is rejected", func() {
				bad := season.Window{Start: "11-01", End: "02-01"}
				So(bad.Validate(), ShouldWrap, season.ErrInvalidWindow)
			})
		})
	})
}

func TestCalendar_IsBlackout(t *testing.T) {
	Convey("Given a default calendar", t, func() {
		cal := season.NewCalendar()

		sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		So(sunday.Weekday(), ShouldEqual, time.Sunday)

		Convey("Then Sundays are blacked out and other days are not", func() {
			So(cal.IsBlackout(sunday), ShouldBeTrue)
			So(cal.IsBlackout(monday), ShouldBeFalse)
		})

		Convey("When the blackout weekday is reconfigured", func() {
			cal := season.NewCalendar(season.WithBlackoutWeekday(time.Monday))
			So(cal.IsBlackout(sunday), ShouldBeFalse)
			So(cal.IsBlackout(monday), ShouldBeTrue)
		})
	})
}

func TestDay(t *testing.T) {
	Convey("Given a timestamp with a time-of-day and zone", t, func() {
		loc := time.FixedZone("MST", -7*3600)
		ts := time.Date(2026, 3, 15, 18, 42, 7, 999, loc)

		Convey("Then Day keeps the wall-clock date at midnight UTC", func() {
			d := season.Day(ts)
			So(d.Year(), ShouldEqual, 2026)
			So(d.Month(), ShouldEqual, time.March)
			So(d.Day(), ShouldEqual, 15)
			So(d.Hour(), ShouldEqual, 0)
			So(d.Location(), ShouldEqual, time.UTC)
		})

		Convey("And two timestamps on the same date compare equal", func() {
			other := time.Date(2026, 3, 15, 2, 0, 0, 0, loc)
			So(season.Day(ts).Equal(season.Day(other)), ShouldBeTrue)
		})
	})
}

func TestDatesInRange(t *testing.T) {
	Convey("Given a five-day span", t, func() {
		start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 5, 6, 0, 0, 0, time.UTC)

		Convey("Then both endpoints are included", func() {
			dates := season.DatesInRange(start, end)
			So(dates, ShouldHaveLength, 5)
			So(dates[0].Day(), ShouldEqual, 1)
			So(dates[4].Day(), ShouldEqual, 5)
		})

		Convey("When start and end coincide", func() {
			dates := season.DatesInRange(start, start)
			So(dates, ShouldHaveLength, 1)
		})

		Convey("When end precedes start", func() {
			So(season.DatesInRange(end, start), ShouldBeNil)
		})
	})
}

func TestWeekNumber(t *testing.T) {
	Convey("Given dates across the first weeks of a year", t, func() {
		jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		jan7 := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
		jan8 := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)

		Convey("Then week 0 spans Jan 1 through Jan 7", func() {
			So(season.WeekNumber(jan1), ShouldEqual, 0)
			So(season.WeekNumber(jan7), ShouldEqual, 0)
			So(season.WeekNumber(jan8), ShouldEqual, 1)
		})
	})
}

func TestParseWeekday(t *testing.T) {
	Convey("Given weekday strings", t, func() {
		Convey("Then full names, short names, and mixed case parse", func() {
			d, err := season.ParseWeekday("Sunday")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, time.Sunday)

			d, err = season.ParseWeekday("thu")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, time.Thursday)

			d, err = season.ParseWeekday("  FRI ")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, time.Friday)
		})

		Convey("Then garbage is rejected", func() {
			_, err := season.ParseWeekday("someday")
			So(err, ShouldWrap, season.ErrUnknownWeekday)
		})
	})
}
