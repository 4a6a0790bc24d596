package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hitchlog/backend/internal/domain"
	"github.com/hitchlog/backend/internal/metrics"
	"github.com/hitchlog/backend/internal/repo"
	"github.com/hitchlog/backend/internal/stats"
)

// ReportCache stores the most recently built country report.
// It is satisfied by *cache.ReportCache.
type ReportCache interface {
	Get(ctx context.Context) (domain.CountryReport, bool, error)
	Set(ctx context.Context, report domain.CountryReport) error
}

// ReportService builds the cross-trip country report and keeps it cached.
// Cache failures are logged and fall back to building the report; they are
// never returned to the caller.
//
// The last built report is also kept in memory. It serves requests when no
// shared cache is configured and when the shared cache cannot be read.
type ReportService struct {
	trips     repo.TripRepo
	cache     ReportCache
	policy    stats.CountryPolicy
	ttl       time.Duration
	batchSize int
	log       *slog.Logger

	last atomic.Pointer[builtReport]
}

type builtReport struct {
	report domain.CountryReport
	at     time.Time
}

// NewReportService constructs a ReportService. cache may be nil. ttl bounds
// how long the in-memory report is served; 0 serves it until the next
// refresh replaces it.
func NewReportService(trips repo.TripRepo, cache ReportCache, policy stats.CountryPolicy, ttl time.Duration, log *slog.Logger) *ReportService {
	return &ReportService{
		trips:     trips,
		cache:     cache,
		policy:    policy,
		ttl:       ttl,
		batchSize: repo.DefaultBatchSize,
		log:       log,
	}
}

// CountryReport returns the cached report, building and caching it on a miss.
func (s *ReportService) CountryReport(ctx context.Context) (domain.CountryReport, error) {
	useMemory := s.cache == nil
	if s.cache != nil {
		report, found, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "country report cache read failed", "error", err)
			useMemory = true
		case found:
			metrics.ReportCacheHits.Inc()
			return report, nil
		}
	}
	if useMemory {
		if report, ok := s.lastReport(); ok {
			metrics.ReportCacheHits.Inc()
			return report, nil
		}
	}
	metrics.ReportCacheMisses.Inc()

	report, err := s.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReportService.CountryReport: %w", err)
	}
	return report, nil
}

// Refresh rebuilds the report from every trip and stores it in the cache.
func (s *ReportService) Refresh(ctx context.Context) (domain.CountryReport, error) {
	report, err := s.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReportService.Refresh: %w", err)
	}
	s.last.Store(&builtReport{report: report, at: time.Now()})
	if s.cache != nil {
		if err := s.cache.Set(ctx, report); err != nil {
			s.log.WarnContext(ctx, "country report cache write failed", "error", err)
		}
	}
	return report, nil
}

// Build streams every trip through a CountryAggregator. Only the per-country
// counters and one repo batch are held in memory.
func (s *ReportService) Build(ctx context.Context) (domain.CountryReport, error) {
	start := time.Now()
	agg := stats.NewCountryAggregator()

	err := s.trips.ForEach(ctx, s.batchSize, func(t domain.Trip) error {
		return agg.AddTrip(t, s.policy)
	})
	if err != nil {
		metrics.ReportBuildErrors.Inc()
		return nil, fmt.Errorf("service.ReportService.Build: %w", err)
	}

	elapsed := time.Since(start)
	metrics.ReportBuildDuration.Observe(elapsed.Seconds())
	metrics.ReportTripsAggregated.Set(float64(agg.Trips()))
	s.log.DebugContext(ctx, "country report built",
		"trips", agg.Trips(),
		"policy", string(s.policy),
		"duration_ms", elapsed.Milliseconds(),
	)
	return agg.Report(), nil
}

// lastReport returns the report kept from the latest Refresh, unless it is
// older than ttl.
func (s *ReportService) lastReport() (domain.CountryReport, bool) {
	b := s.last.Load()
	if b == nil {
		return nil, false
	}
	if s.ttl > 0 && time.Since(b.at) > s.ttl {
		return nil, false
	}
	return b.report, true
}

// Run refreshes the report immediately and then every interval until ctx is
// cancelled. A non-positive interval disables background refreshes.
func (s *ReportService) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.log.ErrorContext(ctx, "country report refresh failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
