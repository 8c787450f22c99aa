package app_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/voyago/voyago/internal/app"
	"github.com/voyago/voyago/internal/domain/model"
	"github.com/voyago/voyago/pkg/logger"
)

// gatedRecommender blocks each call until released, so tests can control
// which request finishes first.
type gatedRecommender struct {
	release chan struct{}
	calls   chan model.FilterSelection
}

func newGatedRecommender() *gatedRecommender {
	return &gatedRecommender{
		release: make(chan struct{}),
		calls:   make(chan model.FilterSelection, 16),
	}
}

func (g *gatedRecommender) Recommend(ctx context.Context, _ model.UserProfile, _ *model.Location, sel model.FilterSelection) ([]model.ScoredRecommendation, error) {
	g.calls <- sel
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []model.ScoredRecommendation{
		{Place: model.Place{ID: string(sel.Category), Name: string(sel.Category)}},
	}, nil
}

func sel(cat model.Category) model.FilterSelection {
	return model.FilterSelection{Category: cat, Budget: model.TierAny, RadiusKm: 10}
}

func TestSession_Supersede(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Convey("Given two overlapping requests", t, func() {
		rec := newGatedRecommender()
		s := app.NewSession(rec)

		first := s.Submit(ctx, model.UserProfile{}, nil, sel(model.CategoryRestaurant))
		<-rec.calls
		second := s.Submit(ctx, model.UserProfile{}, nil, sel(model.CategoryNature))
		<-rec.calls
		So(second, ShouldBeGreaterThan, first)
		So(s.Current(), ShouldEqual, second)

		// Let both computations finish.
		close(rec.release)

		Convey("Then only the newest request delivers a result", func() {
			res := <-s.Results()
			So(res.RequestID, ShouldEqual, second)
			So(res.Err, ShouldBeNil)
			So(res.Recommendations[0].Place.ID, ShouldEqual, "nature")

			select {
			case stale := <-s.Results():
				So(stale.RequestID, ShouldEqual, second) // never the superseded one
			case <-time.After(50 * time.Millisecond):
				// No second delivery: the stale result was dropped.
			}
		})
	})

	Convey("Given a single request", t, func() {
		rec := newGatedRecommender()
		close(rec.release)
		s := app.NewSession(rec)

		id := s.Submit(ctx, model.UserProfile{}, nil, sel(model.CategoryCulture))

		Convey("Then its result is delivered with its id", func() {
			res := <-s.Results()
			So(res.RequestID, ShouldEqual, id)
			So(res.Err, ShouldBeNil)
		})
	})

	Convey("Given a slow consumer and rapid submissions", t, func() {
		rec := newGatedRecommender()
		close(rec.release)
		s := app.NewSession(rec)

		// Fire several requests without reading results; deliveries for
		// superseded ids are dropped and a pending older result may be
		// evicted by a newer one.
		var last uint64
		for _, c := range []model.Category{model.CategoryRestaurant, model.CategoryNature, model.CategoryCulture} {
			last = s.Submit(ctx, model.UserProfile{}, nil, sel(c))
			// Give each computation time to finish before the next submit,
			// so every result reaches the delivery gate.
			time.Sleep(20 * time.Millisecond)
		}

		Convey("Then the pending result is the newest one", func() {
			res := <-s.Results()
			So(res.RequestID, ShouldEqual, last)
			So(res.Recommendations[0].Place.ID, ShouldEqual, "culture")
		})
	})

	Convey("Given distinct sessions", t, func() {
		a := app.NewSession(newGatedRecommender())
		b := app.NewSession(newGatedRecommender())

		Convey("Then they carry distinct identities", func() {
			So(a.ID(), ShouldNotEqual, b.ID())
			So(a.ID(), ShouldNotBeEmpty)
		})
	})
}
