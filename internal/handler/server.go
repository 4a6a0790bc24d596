// Package handler implements the HTTP handlers for the hitchlog statistics API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trip.go, ...) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hitchlog/backend/api"
	"github.com/hitchlog/backend/internal/domain"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	GetByID(ctx context.Context, id int64) (domain.TripView, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripView, int64, error)
}

// ReportServicer defines the country report operations the handlers depend on.
type ReportServicer interface {
	CountryReport(ctx context.Context) (domain.CountryReport, error)
}

// HitchhikeServicer defines the hitchhike operations the handlers depend on.
type HitchhikeServicer interface {
	GetByID(ctx context.Context, id int64) (domain.HitchhikeDetail, error)
}

// Server serves every API endpoint.
type Server struct {
	trips      TripServicer
	reports    ReportServicer
	hitchhikes HitchhikeServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, reports ReportServicer, hitchhikes HitchhikeServicer, log *slog.Logger) *Server {
	return &Server{trips: trips, reports: reports, hitchhikes: hitchhikes, log: log}
}

// Routes returns the API router. Cross-cutting middleware (request IDs,
// logging, recovery) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/trips", s.ListTrips)
	r.Get("/trips/{id}", s.GetTrip)
	r.Get("/data/country_map", s.GetCountryMap)
	r.Get("/hitchhikes/{id}", s.GetHitchhike)

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.OpenAPI)
}
