package stats

import (
	"fmt"

	"github.com/hitchlog/backend/internal/domain"
)

// CountryPolicy decides which country codes a trip's rides are counted
// under when the trip crossed several countries.
type CountryPolicy string

const (
	// PrimaryCountry counts rides under the country the trip covered the
	// longest distance in. The earliest row wins a tie.
	PrimaryCountry CountryPolicy = "primary"
	// EveryCountry counts rides once under each distinct country of the trip.
	EveryCountry CountryPolicy = "every"
)

// ParseCountryPolicy validates a configured policy name.
func ParseCountryPolicy(s string) (CountryPolicy, error) {
	switch p := CountryPolicy(s); p {
	case PrimaryCountry, EveryCountry:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown country policy %q (want %q or %q)",
		domain.ErrValidation, s, PrimaryCountry, EveryCountry)
}

// CountryCodes returns the codes the trip's rides belong to under policy.
// A trip without country rows yields no codes and is left out of the report.
func CountryCodes(t domain.Trip, policy CountryPolicy) []string {
	if len(t.CountryDistances) == 0 {
		return nil
	}

	if policy == EveryCountry {
		seen := map[string]bool{}
		var codes []string
		for _, cd := range t.CountryDistances {
			if cd.CountryCode == "" || seen[cd.CountryCode] {
				continue
			}
			seen[cd.CountryCode] = true
			codes = append(codes, cd.CountryCode)
		}
		return codes
	}

	primary := -1
	for i, cd := range t.CountryDistances {
		if cd.CountryCode == "" {
			continue
		}
		if primary < 0 || cd.Distance > t.CountryDistances[primary].Distance {
			primary = i
		}
	}
	if primary < 0 {
		return nil
	}
	return []string{t.CountryDistances[primary].CountryCode}
}

// AddTrip counts t's rides under the codes chosen by policy. A trip that
// resolves to no code is skipped and not counted in Trips.
func (a *CountryAggregator) AddTrip(t domain.Trip, policy CountryPolicy) error {
	codes := CountryCodes(t, policy)
	for _, code := range codes {
		if err := a.Add(code, t.Rides); err != nil {
			return fmt.Errorf("trip %d: %w", t.ID, err)
		}
	}
	if len(codes) > 0 {
		a.trips++
	}
	return nil
}
