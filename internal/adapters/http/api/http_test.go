package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/voyago/voyago/internal/adapters/http/api"
	"github.com/voyago/voyago/internal/app"
	"github.com/voyago/voyago/internal/domain/model"
)

// mockService implements api.Dependencies and api.StatsProvider.
type mockService struct {
	recs []model.ScoredRecommendation
	err  error

	gotProfile model.UserProfile
	gotLoc     *model.Location
	gotFilters model.FilterSelection
}

func (m *mockService) Recommend(_ context.Context, profile model.UserProfile, loc *model.Location, sel model.FilterSelection) ([]model.ScoredRecommendation, error) {
	m.gotProfile = profile
	m.gotLoc = loc
	m.gotFilters = sel
	if m.err != nil {
		return nil, m.err
	}
	return m.recs, nil
}

func (m *mockService) CatalogSize(context.Context) int { return len(m.recs) }

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(m *mockService) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(m, m).Register(context.Background(), mux)
	return mux
}

const validBody = `{
	"profile": {"budget": "medium", "categories": ["restaurant", "nature"], "radius_km": 10},
	"location": {"lat": 52.5145, "lng": 13.4025},
	"filters": {"category": "any", "budget": "any", "radius_km": 10, "open_now_only": false}
}`

func TestHandleRecommendations(t *testing.T) {
	Convey("Given a valid recommendation request", t, func() {
		m := &mockService{recs: []model.ScoredRecommendation{
			{Place: model.Place{ID: "artisan-cafe", Name: "The Artisan Café"}, Score: 0.95, Reason: "Highly rated"},
		}}
		mux := newTestServer(m)

		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		Convey("Then it returns 200 with the ranked results", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Results []model.ScoredRecommendation `json:"results"`
				Count   int                          `json:"count"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Count, ShouldEqual, 1)
			So(resp.Results[0].Place.ID, ShouldEqual, "artisan-cafe")
		})

		Convey("Then the payload is mapped onto domain types", func() {
			So(m.gotProfile.Budget, ShouldEqual, model.TierMedium)
			So(m.gotProfile.Categories, ShouldResemble, []model.Category{model.CategoryRestaurant, model.CategoryNature})
			So(m.gotLoc, ShouldNotBeNil)
			So(m.gotLoc.Lat, ShouldEqual, 52.5145)
			So(m.gotFilters.Category, ShouldEqual, model.CategoryAny)
		})

		Convey("Then a request id header is set", func() {
			So(rec.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
		})
	})

	Convey("Given a request without a location", t, func() {
		m := &mockService{}
		mux := newTestServer(m)
		body := `{
			"profile": {"budget": "low", "radius_km": 5},
			"filters": {"category": "any", "budget": "any", "radius_km": 5}
		}`

		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		Convey("Then it succeeds and passes a nil location through", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(m.gotLoc, ShouldBeNil)
		})
	})

	Convey("Given malformed JSON", t, func() {
		mux := newTestServer(&mockService{})
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Given an out-of-range latitude", t, func() {
		mux := newTestServer(&mockService{})
		body := strings.Replace(validBody, "52.5145", "123.0", 1)
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Given an unknown filter category", t, func() {
		mux := newTestServer(&mockService{})
		body := strings.Replace(validBody, `"category": "any"`, `"category": "casino"`, 1)
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Given the service reports invalid input", t, func() {
		mux := newTestServer(&mockService{err: app.ErrInvalidInput})
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Given the catalog fails", t, func() {
		mux := newTestServer(&mockService{err: app.ErrCatalog})
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusBadGateway)
	})

	Convey("Given a GET on the recommendations endpoint", t, func() {
		mux := newTestServer(&mockService{})
		req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestHandleHealth(t *testing.T) {
	Convey("Given the health endpoint", t, func() {
		mux := newTestServer(&mockService{})
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusOK)
		So(rec.Body.String(), ShouldContainSubstring, "ok")
	})
}

func TestHandleStats(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		mux := newTestServer(&mockService{})
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusOK)
		So(rec.Body.String(), ShouldContainSubstring, "started")
	})
}
