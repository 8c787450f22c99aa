package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/voyago/voyago/internal/domain/model"
)

func TestPlace_Tier(t *testing.T) {
	Convey("Given the price level to tier mapping", t, func() {
		cases := map[int]model.Tier{
			1: model.TierLow,
			2: model.TierMedium,
			3: model.TierHigh,
			4: model.TierHigh,
		}
		for level, want := range cases {
			So(model.Place{PriceLevel: level}.Tier(), ShouldEqual, want)
		}
	})
}

func TestTier_Adjacent(t *testing.T) {
	Convey("Given the low < medium < high ordering", t, func() {
		So(model.TierLow.Adjacent(model.TierMedium), ShouldBeTrue)
		So(model.TierMedium.Adjacent(model.TierHigh), ShouldBeTrue)
		So(model.TierHigh.Adjacent(model.TierMedium), ShouldBeTrue)
		So(model.TierLow.Adjacent(model.TierHigh), ShouldBeFalse)
		So(model.TierLow.Adjacent(model.TierLow), ShouldBeFalse)
		So(model.TierAny.Adjacent(model.TierLow), ShouldBeFalse)
	})
}

func TestPlace_Validate(t *testing.T) {
	valid := model.Place{
		ID: "p1", Name: "P1", Category: model.CategoryRestaurant,
		Rating: 4.5, ReviewCount: 10, PriceLevel: 2,
	}

	Convey("Given a well-formed place", t, func() {
		So(valid.Validate(), ShouldBeNil)
	})

	Convey("Given broken records", t, func() {
		Convey("Then a missing id fails", func() {
			p := valid
			p.ID = ""
			So(p.Validate(), ShouldNotBeNil)
		})

		Convey("Then an unknown category fails", func() {
			p := valid
			p.Category = "spa"
			So(p.Validate(), ShouldNotBeNil)
		})

		Convey("Then the filter wildcard is not a valid place category", func() {
			p := valid
			p.Category = model.CategoryAny
			So(p.Validate(), ShouldNotBeNil)
		})

		Convey("Then an out-of-range rating fails", func() {
			p := valid
			p.Rating = 5.1
			So(p.Validate(), ShouldNotBeNil)
		})

		Convey("Then an out-of-range price level fails", func() {
			p := valid
			p.PriceLevel = 5
			So(p.Validate(), ShouldNotBeNil)
		})

		Convey("Then a negative review count fails", func() {
			p := valid
			p.ReviewCount = -1
			So(p.Validate(), ShouldNotBeNil)
		})
	})
}

func TestCoordinate_Valid(t *testing.T) {
	Convey("Given the standard lat/lng ranges", t, func() {
		So(model.Coordinate{Lat: 52.5, Lng: 13.4}.Valid(), ShouldBeTrue)
		So(model.Coordinate{Lat: -90, Lng: -180}.Valid(), ShouldBeTrue)
		So(model.Coordinate{Lat: 90, Lng: 180}.Valid(), ShouldBeTrue)
		So(model.Coordinate{Lat: 90.1, Lng: 0}.Valid(), ShouldBeFalse)
		So(model.Coordinate{Lat: 0, Lng: -180.1}.Valid(), ShouldBeFalse)
	})
}

func TestUserProfile_WantsCategory(t *testing.T) {
	Convey("Given a profile with stated interests", t, func() {
		u := model.UserProfile{Categories: []model.Category{model.CategoryNature}}
		So(u.WantsCategory(model.CategoryNature), ShouldBeTrue)
		So(u.WantsCategory(model.CategoryHotel), ShouldBeFalse)
	})
}
