package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitchlog/backend/internal/domain"
)

type tripResponse struct {
	ID             int64             `json:"id"`
	Param          string            `json:"param"`
	From           string            `json:"from"`
	To             string            `json:"to"`
	Departure      time.Time         `json:"departure"`
	Arrival        time.Time         `json:"arrival"`
	Distance       *int              `json:"distance,omitempty"`
	GmapsDuration  *int64            `json:"gmaps_duration,omitempty"`
	TravellingWith []string          `json:"travelling_with"`
	Username       string            `json:"username"`
	RidesCount     int               `json:"rides_count"`
	Countries      []countryResponse `json:"countries"`
	Stats          domain.TripStats  `json:"stats"`
}

type countryResponse struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Distance    int    `json:"distance"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	views, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	data := make([]tripResponse, len(views))
	for i, v := range views {
		data[i] = tripToResponse(v)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "trip not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(view))
}

// --- mapping helpers --------------------------------------------------------

func tripToResponse(v domain.TripView) tripResponse {
	t := v.Trip
	resp := tripResponse{
		ID:             t.ID,
		Param:          t.Param(),
		From:           t.From,
		To:             t.To,
		Departure:      t.Departure,
		Arrival:        t.Arrival,
		Distance:       t.Distance,
		GmapsDuration:  t.GmapsDuration,
		TravellingWith: t.TravellingWith,
		Username:       t.User.Username,
		RidesCount:     len(t.Rides),
		Countries:      make([]countryResponse, len(t.CountryDistances)),
		Stats:          v.Stats,
	}
	if resp.TravellingWith == nil {
		resp.TravellingWith = []string{}
	}
	for i, cd := range t.CountryDistances {
		resp.Countries[i] = countryResponse{Country: cd.Country, CountryCode: cd.CountryCode, Distance: cd.Distance}
	}
	return resp
}

// pathID parses the {id} URL parameter, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// optionalInt parses an optional integer query parameter.
func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &v, nil
}
