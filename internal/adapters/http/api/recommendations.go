package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/voyago/voyago/internal/app"
	"github.com/voyago/voyago/internal/domain/model"
)

const maxRequestBody = 1 << 20 // 1 MiB

// recommendRequest mirrors the JSON schema for POST /recommendations.
type recommendRequest struct {
	Profile  profilePayload   `json:"profile" validate:"required"`
	Location *locationPayload `json:"location,omitempty"`
	Filters  filtersPayload   `json:"filters" validate:"required"`
}

type profilePayload struct {
	Budget     string   `json:"budget" validate:"required,oneof=low medium high"`
	Categories []string `json:"categories,omitempty" validate:"dive,oneof=restaurant attraction entertainment shopping hotel transport event culture nature nightlife"`
	RadiusKm   float64  `json:"radius_km" validate:"required,gt=0"`
	Locale     string   `json:"locale,omitempty"`
	Currency   string   `json:"currency,omitempty"`
}

type locationPayload struct {
	Lat       float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng       float64 `json:"lng" validate:"gte=-180,lte=180"`
	AccuracyM float64 `json:"accuracy_m,omitempty" validate:"gte=0"`
}

type filtersPayload struct {
	Category    string  `json:"category" validate:"required,oneof=any restaurant attraction entertainment shopping hotel transport event culture nature nightlife"`
	Budget      string  `json:"budget" validate:"required,oneof=any low medium high"`
	RadiusKm    float64 `json:"radius_km" validate:"required,gt=0"`
	OpenNowOnly bool    `json:"open_now_only"`
}

type recommendResponse struct {
	Results []model.ScoredRecommendation `json:"results"`
	Count   int                          `json:"count"`
}

// RecommendationsHandler serves POST /recommendations.
type RecommendationsHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// HandleRecommendations decodes, validates and runs one recommendation
// request.
func (h *RecommendationsHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err)
		return
	}

	profile, loc, sel := req.toModel()
	recs, err := h.deps.Recommend(r.Context(), profile, loc, sel)
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err)
		return
	case errors.Is(err, app.ErrCatalog):
		writeError(w, http.StatusBadGateway, "catalog_error", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{Results: recs, Count: len(recs)})
}

func (r recommendRequest) toModel() (model.UserProfile, *model.Location, model.FilterSelection) {
	cats := make([]model.Category, 0, len(r.Profile.Categories))
	for _, c := range r.Profile.Categories {
		cats = append(cats, model.Category(c))
	}

	profile := model.UserProfile{
		Budget:     model.Tier(r.Profile.Budget),
		Categories: cats,
		RadiusKm:   r.Profile.RadiusKm,
		Locale:     r.Profile.Locale,
		Currency:   r.Profile.Currency,
	}

	var loc *model.Location
	if r.Location != nil {
		loc = &model.Location{
			Coordinate: model.Coordinate{Lat: r.Location.Lat, Lng: r.Location.Lng},
			AccuracyM:  r.Location.AccuracyM,
		}
	}

	sel := model.FilterSelection{
		Category:    model.Category(r.Filters.Category),
		Budget:      model.Tier(r.Filters.Budget),
		RadiusKm:    r.Filters.RadiusKm,
		OpenNowOnly: r.Filters.OpenNowOnly,
	}
	return profile, loc, sel
}
