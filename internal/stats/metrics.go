// Package stats derives metrics from trips and aggregates rides by country.
// Every function is pure: inputs are fully loaded values and results are
// fresh values. A metric that cannot be computed is reported with ok=false,
// which callers display as "nothing to show" rather than as an error.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/hitchlog/backend/internal/domain"
)

// Duration is the time between departure and arrival. It is negative when
// the recorded arrival precedes the departure.
func Duration(t domain.Trip) time.Duration {
	return t.Arrival.Sub(t.Departure)
}

func durationSeconds(t domain.Trip) int64 {
	return int64(Duration(t) / time.Second)
}

// Kmh returns the average speed in whole km/h, truncated toward zero.
func Kmh(t domain.Trip) (int, bool) {
	secs := durationSeconds(t)
	if t.Distance == nil || secs == 0 {
		return 0, false
	}
	// meters/second * 3.6, kept in integers so 5000 m in an hour is exactly 5.
	return int(int64(*t.Distance) * 3600 / (secs * 1000)), true
}

// AverageSpeed formats Kmh for display, e.g. "5 kmh".
func AverageSpeed(t domain.Trip) (string, bool) {
	kmh, ok := Kmh(t)
	if !ok {
		return "", false
	}
	return strconv.Itoa(kmh) + " kmh", true
}

// GmapsDifference is the trip duration minus the routing estimate, in
// seconds. Positive means the hitchhiker was slower than the estimate.
func GmapsDifference(t domain.Trip) (int64, bool) {
	if t.GmapsDuration == nil {
		return 0, false
	}
	return durationSeconds(t) - *t.GmapsDuration, true
}

// Hitchability is the ratio of actual duration to the routing estimate,
// rounded to two decimals. Above 1 means slower than estimated.
func Hitchability(t domain.Trip) (float64, bool) {
	if t.GmapsDuration == nil || *t.GmapsDuration == 0 {
		return 0, false
	}
	ratio := float64(durationSeconds(t)) / float64(*t.GmapsDuration)
	return math.Round(ratio*100) / 100, true
}

// TotalWaitingMinutes sums the waiting time of every ride. A single ride
// without a recorded waiting time leaves the total undefined.
func TotalWaitingMinutes(rides []domain.Ride) (int, bool) {
	if len(rides) == 0 {
		return 0, false
	}
	total := 0
	for _, r := range rides {
		if r.WaitingTime == nil {
			return 0, false
		}
		total += *r.WaitingTime
	}
	return total, true
}

// TotalWaitingTime formats TotalWaitingMinutes, e.g. "11 minutes".
func TotalWaitingTime(rides []domain.Ride) (string, bool) {
	total, ok := TotalWaitingMinutes(rides)
	if !ok {
		return "", false
	}
	return strconv.Itoa(total) + " minutes", true
}

// OverallExperience is the worst experience recorded on any ride.
func OverallExperience(rides []domain.Ride) (domain.Experience, bool, error) {
	var labels []domain.Experience
	for _, r := range rides {
		if r.Experience.Recorded() {
			labels = append(labels, r.Experience)
		}
	}
	if len(labels) == 0 {
		return "", false, nil
	}
	worst, err := domain.WorstOf(labels...)
	if err != nil {
		return "", false, fmt.Errorf("stats.OverallExperience: %w", err)
	}
	return worst, true, nil
}

// Age is the hitchhiker's age in whole years on the day of departure.
func Age(t domain.Trip) (int, bool) {
	dob := t.User.DateOfBirth
	if dob == nil {
		return 0, false
	}
	// Dates of birth are calendar dates stored as UTC midnight; compare
	// against the departure's UTC date so the host zone cannot shift either.
	dep, born := t.Departure.UTC(), dob.UTC()
	years := dep.Year() - born.Year()
	if dep.Month() < born.Month() || (dep.Month() == born.Month() && dep.Day() < born.Day()) {
		years--
	}
	return years, true
}

// Summarize computes every trip metric at once. When a ride carries an
// unknown experience label the returned stats are still complete except for
// OverallExperience, and the error says why it is missing.
func Summarize(t domain.Trip) (domain.TripStats, error) {
	s := domain.TripStats{DurationSeconds: durationSeconds(t)}

	if v, ok := Kmh(t); ok {
		s.Kmh = &v
	}
	if v, ok := AverageSpeed(t); ok {
		s.AverageSpeed = &v
	}
	if v, ok := GmapsDifference(t); ok {
		s.GmapsDifference = &v
	}
	if v, ok := Hitchability(t); ok {
		s.Hitchability = &v
	}
	if v, ok := TotalWaitingTime(t.Rides); ok {
		s.TotalWaitingTime = &v
	}
	if v, ok := Age(t); ok {
		s.Age = &v
	}

	xp, ok, err := OverallExperience(t.Rides)
	if err != nil {
		return s, fmt.Errorf("stats.Summarize: trip %d: %w", t.ID, err)
	}
	if ok {
		s.OverallExperience = &xp
	}
	return s, nil
}
