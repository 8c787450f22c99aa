package geo_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/voyago/voyago/internal/domain/geo"
	"github.com/voyago/voyago/internal/domain/model"
)

func TestDistanceKm(t *testing.T) {
	Convey("Given two city coordinates", t, func() {
		paris := model.Coordinate{Lat: 48.8566, Lng: 2.3522}
		london := model.Coordinate{Lat: 51.5074, Lng: -0.1278}

		Convey("Then the haversine distance is roughly 344 km", func() {
			d, err := geo.DistanceKm(paris, london)
			So(err, ShouldBeNil)
			So(d, ShouldBeGreaterThan, 330)
			So(d, ShouldBeLessThan, 350)
		})

		Convey("And the distance is symmetric", func() {
			ab, err := geo.DistanceKm(paris, london)
			So(err, ShouldBeNil)
			ba, err := geo.DistanceKm(london, paris)
			So(err, ShouldBeNil)
			So(math.Abs(ab-ba), ShouldBeLessThan, 1e-9)
		})
	})

	Convey("Given equal coordinates", t, func() {
		p := model.Coordinate{Lat: 35.6762, Lng: 139.6503}

		Convey("Then the distance is zero", func() {
			d, err := geo.DistanceKm(p, p)
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 0)
		})
	})

	Convey("Given an out-of-range coordinate", t, func() {
		good := model.Coordinate{Lat: 10, Lng: 10}

		Convey("When latitude exceeds 90", func() {
			_, err := geo.DistanceKm(model.Coordinate{Lat: 91, Lng: 0}, good)
			So(errors.Is(err, geo.ErrInvalidCoordinate), ShouldBeTrue)
		})

		Convey("When longitude exceeds 180", func() {
			_, err := geo.DistanceKm(good, model.Coordinate{Lat: 0, Lng: -181})
			So(errors.Is(err, geo.ErrInvalidCoordinate), ShouldBeTrue)
		})
	})
}

func TestBearingDeg(t *testing.T) {
	Convey("Given a point and destinations in the four cardinal directions", t, func() {
		origin := model.Coordinate{Lat: 0, Lng: 0}

		Convey("Then due north is bearing 0", func() {
			b, err := geo.BearingDeg(origin, model.Coordinate{Lat: 1, Lng: 0})
			So(err, ShouldBeNil)
			So(b, ShouldAlmostEqual, 0, 1e-6)
		})

		Convey("Then due east is bearing 90", func() {
			b, err := geo.BearingDeg(origin, model.Coordinate{Lat: 0, Lng: 1})
			So(err, ShouldBeNil)
			So(b, ShouldAlmostEqual, 90, 1e-6)
		})

		Convey("Then due south is bearing 180", func() {
			b, err := geo.BearingDeg(origin, model.Coordinate{Lat: -1, Lng: 0})
			So(err, ShouldBeNil)
			So(b, ShouldAlmostEqual, 180, 1e-6)
		})

		Convey("Then due west is bearing 270", func() {
			b, err := geo.BearingDeg(origin, model.Coordinate{Lat: 0, Lng: -1})
			So(err, ShouldBeNil)
			So(b, ShouldAlmostEqual, 270, 1e-6)
		})
	})

	Convey("Given any valid pair the bearing stays in [0,360)", t, func() {
		a := model.Coordinate{Lat: -33.8688, Lng: 151.2093}
		b := model.Coordinate{Lat: 40.7128, Lng: -74.0060}
		deg, err := geo.BearingDeg(a, b)
		So(err, ShouldBeNil)
		So(deg, ShouldBeGreaterThanOrEqualTo, 0)
		So(deg, ShouldBeLessThan, 360)
	})
}
