package stats

import (
	"fmt"

	"github.com/hitchlog/backend/internal/domain"
)

// Report categories besides the experience labels themselves.
const (
	CategoryRidesCount      = "rides_count"
	CategoryGoodAndVeryGood = "good_and_very_good"
	CategoryBadAndVeryBad   = "bad_and_very_bad"
	CategoryGoodXPRatio     = "good_xp_ratio"
)

// CountryRides is one trip's rides labelled with the country code the
// caller resolved for that trip.
type CountryRides struct {
	CountryCode string
	Rides       []domain.Ride
}

// CountryAggregator accumulates ride counts per country code. Memory grows
// with the number of distinct codes, not with the number of trips, so a
// whole trip table can be streamed through it.
//
// The zero value is not usable; call NewCountryAggregator.
type CountryAggregator struct {
	rides  map[string]int
	labels map[domain.Experience]map[string]int
	trips  int
}

// NewCountryAggregator returns an empty aggregator.
func NewCountryAggregator() *CountryAggregator {
	labels := make(map[domain.Experience]map[string]int, len(domain.Experiences))
	for _, e := range domain.Experiences {
		labels[e] = map[string]int{}
	}
	return &CountryAggregator{rides: map[string]int{}, labels: labels}
}

// Add counts the rides of one trip under code. Nothing is counted when an
// error is returned.
func (a *CountryAggregator) Add(code string, rides []domain.Ride) error {
	if code == "" {
		return fmt.Errorf("stats.CountryAggregator.Add: %w: country code is required", domain.ErrValidation)
	}
	for _, r := range rides {
		if !r.Experience.Recorded() {
			continue
		}
		if _, err := r.Experience.Rank(); err != nil {
			return fmt.Errorf("stats.CountryAggregator.Add: ride %d: %w", r.ID, err)
		}
	}

	a.rides[code] += len(rides)
	for _, r := range rides {
		if r.Experience.Recorded() {
			a.labels[r.Experience][code]++
		}
	}
	return nil
}

// Trips is the number of trips AddTrip counted under at least one country.
func (a *CountryAggregator) Trips() int {
	return a.trips
}

// Report builds the sparse country report. rides_count lists every code
// that was added; every other category lists only codes with a value above
// zero, and is left out entirely when it has none.
func (a *CountryAggregator) Report() domain.CountryReport {
	report := domain.CountryReport{CategoryRidesCount: domain.CountryValues{}}
	for code, n := range a.rides {
		report[CategoryRidesCount][code] = float64(n)
	}

	for _, e := range domain.Experiences {
		put(report, string(e), a.labels[e])
	}

	good := sum(a.labels[domain.Good], a.labels[domain.VeryGood])
	put(report, CategoryGoodAndVeryGood, good)
	put(report, CategoryBadAndVeryBad, sum(a.labels[domain.Bad], a.labels[domain.VeryBad]))

	ratio := domain.CountryValues{}
	for code, n := range good {
		if n > 0 {
			ratio[code] = float64(n) / float64(a.rides[code])
		}
	}
	if len(ratio) > 0 {
		report[CategoryGoodXPRatio] = ratio
	}
	return report
}

// AggregateCountries reduces a collection of trips into a country report.
func AggregateCountries(trips []CountryRides) (domain.CountryReport, error) {
	agg := NewCountryAggregator()
	for _, t := range trips {
		if err := agg.Add(t.CountryCode, t.Rides); err != nil {
			return nil, err
		}
	}
	return agg.Report(), nil
}

// put stores the positive counts of counts under category, if there are any.
func put(report domain.CountryReport, category string, counts map[string]int) {
	values := domain.CountryValues{}
	for code, n := range counts {
		if n > 0 {
			values[code] = float64(n)
		}
	}
	if len(values) > 0 {
		report[category] = values
	}
}

func sum(a, b map[string]int) map[string]int {
	out := make(map[string]int, len(a)+len(b))
	for code, n := range a {
		out[code] += n
	}
	for code, n := range b {
		out[code] += n
	}
	return out
}
