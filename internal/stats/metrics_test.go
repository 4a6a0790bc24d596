package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitchlog/backend/internal/domain"
	"github.com/hitchlog/backend/internal/stats"
)

// ---- helpers ---------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

// tripFixture departs 7 Nov 2009 10:00 and arrives after the given duration.
func tripFixture(d time.Duration) domain.Trip {
	dep := time.Date(2009, 11, 7, 10, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:        1,
		From:      "Cologne",
		To:        "Berlin",
		Departure: dep,
		Arrival:   dep.Add(d),
	}
}

func ridesWithExperience(labels ...domain.Experience) []domain.Ride {
	rides := make([]domain.Ride, len(labels))
	for i, l := range labels {
		rides[i] = domain.Ride{ID: int64(i + 1), Experience: l}
	}
	return rides
}

// ---- Duration --------------------------------------------------------------

func TestDuration(t *testing.T) {
	trip := tripFixture(3 * time.Hour)

	assert.Equal(t, trip.Arrival.Sub(trip.Departure), stats.Duration(trip))
}

func TestDuration_ArrivalBeforeDeparture(t *testing.T) {
	trip := tripFixture(-time.Hour)

	// Bad data is surfaced, not corrected.
	assert.Equal(t, -time.Hour, stats.Duration(trip))
}

// ---- Kmh / AverageSpeed ----------------------------------------------------

func TestKmh(t *testing.T) {
	trip := tripFixture(3 * time.Hour)
	trip.Distance = ptr(50_000)

	got, ok := stats.Kmh(trip)

	require.True(t, ok)
	assert.Equal(t, 16, got)
}

func TestKmh_NoDistance(t *testing.T) {
	_, ok := stats.Kmh(tripFixture(3 * time.Hour))

	assert.False(t, ok)
}

func TestKmh_ZeroDuration(t *testing.T) {
	trip := tripFixture(0)
	trip.Distance = ptr(1000)

	_, ok := stats.Kmh(trip)

	assert.False(t, ok)
}

func TestAverageSpeed(t *testing.T) {
	trip := tripFixture(time.Hour)
	trip.Distance = ptr(5000)

	got, ok := stats.AverageSpeed(trip)

	require.True(t, ok)
	assert.Equal(t, "5 kmh", got)
}

func TestAverageSpeed_NoDistance(t *testing.T) {
	_, ok := stats.AverageSpeed(tripFixture(time.Hour))

	assert.False(t, ok)
}

// ---- GmapsDifference -------------------------------------------------------

func TestGmapsDifference_Slower(t *testing.T) {
	trip := tripFixture(3 * time.Hour)
	trip.GmapsDuration = ptr(int64(2 * 3600))

	got, ok := stats.GmapsDifference(trip)

	require.True(t, ok)
	assert.Equal(t, int64(3600), got)
}

func TestGmapsDifference_Faster(t *testing.T) {
	trip := tripFixture(3 * time.Hour)
	trip.GmapsDuration = ptr(int64(4 * 3600))

	got, ok := stats.GmapsDifference(trip)

	require.True(t, ok)
	assert.Equal(t, int64(-3600), got)
}

func TestGmapsDifference_NoEstimate(t *testing.T) {
	_, ok := stats.GmapsDifference(tripFixture(3 * time.Hour))

	assert.False(t, ok)
}

// ---- Hitchability ----------------------------------------------------------

func TestHitchability(t *testing.T) {
	trip := tripFixture(10 * time.Hour)
	trip.GmapsDuration = ptr(int64(9 * 3600))

	got, ok := stats.Hitchability(trip)

	require.True(t, ok)
	assert.Equal(t, 1.11, got)
}

func TestHitchability_NoEstimate(t *testing.T) {
	_, ok := stats.Hitchability(tripFixture(10 * time.Hour))

	assert.False(t, ok)
}

func TestHitchability_ZeroEstimate(t *testing.T) {
	trip := tripFixture(10 * time.Hour)
	trip.GmapsDuration = ptr(int64(0))

	_, ok := stats.Hitchability(trip)

	assert.False(t, ok)
}

// ---- TotalWaitingTime ------------------------------------------------------

func TestTotalWaitingTime(t *testing.T) {
	rides := []domain.Ride{{WaitingTime: ptr(5)}, {WaitingTime: ptr(6)}}

	got, ok := stats.TotalWaitingTime(rides)

	require.True(t, ok)
	assert.Equal(t, "11 minutes", got)
}

func TestTotalWaitingTime_NotLogged(t *testing.T) {
	_, ok := stats.TotalWaitingTime([]domain.Ride{{WaitingTime: nil}})

	assert.False(t, ok)
}

func TestTotalWaitingTime_OneMissingVoidsTheTotal(t *testing.T) {
	rides := []domain.Ride{{WaitingTime: ptr(5)}, {WaitingTime: nil}, {WaitingTime: ptr(6)}}

	_, ok := stats.TotalWaitingMinutes(rides)

	assert.False(t, ok)
}

func TestTotalWaitingTime_NoRides(t *testing.T) {
	_, ok := stats.TotalWaitingTime(nil)

	assert.False(t, ok)
}

func TestTotalWaitingMinutes_ZeroIsDefined(t *testing.T) {
	got, ok := stats.TotalWaitingMinutes([]domain.Ride{{WaitingTime: ptr(0)}})

	require.True(t, ok)
	assert.Equal(t, 0, got)
}

// ---- OverallExperience -----------------------------------------------------

func TestOverallExperience(t *testing.T) {
	tests := []struct {
		name   string
		labels []domain.Experience
		want   domain.Experience
	}{
		{"only good", []domain.Experience{domain.Good}, domain.Good},
		{"neutral", []domain.Experience{domain.Good, domain.Neutral}, domain.Neutral},
		{"bad", []domain.Experience{domain.Good, domain.Neutral, domain.Bad}, domain.Bad},
		{"bad and very good", []domain.Experience{domain.VeryGood, domain.Bad}, domain.Bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := stats.OverallExperience(ridesWithExperience(tt.labels...))

			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverallExperience_IgnoresUnratedRides(t *testing.T) {
	got, ok, err := stats.OverallExperience(ridesWithExperience("", domain.Good, ""))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Good, got)
}

func TestOverallExperience_NoneRecorded(t *testing.T) {
	_, ok, err := stats.OverallExperience(ridesWithExperience("", ""))

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOverallExperience_UnknownLabel(t *testing.T) {
	_, _, err := stats.OverallExperience(ridesWithExperience(domain.Good, "fantastic"))

	assert.ErrorIs(t, err, domain.ErrUnknownExperience)
}

// ---- Age -------------------------------------------------------------------

func TestAge(t *testing.T) {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		departure time.Time
		want      int
	}{
		{"day before birthday", time.Date(2010, 6, 14, 23, 0, 0, 0, time.UTC), 19},
		{"on birthday", time.Date(2010, 6, 15, 8, 0, 0, 0, time.UTC), 20},
		{"earlier month", time.Date(2010, 2, 20, 8, 0, 0, 0, time.UTC), 19},
		{"later month", time.Date(2010, 9, 1, 8, 0, 0, 0, time.UTC), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := domain.Trip{Departure: tt.departure, User: domain.User{DateOfBirth: &dob}}

			got, ok := stats.Age(trip)

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAge_TwentyYearsAgoBornTripOneYearAndAHalfAgo(t *testing.T) {
	now := time.Now().UTC()
	dob := now.AddDate(-20, 0, 0)
	trip := domain.Trip{
		Departure: now.AddDate(-1, 0, -200),
		User:      domain.User{DateOfBirth: &dob},
	}

	got, ok := stats.Age(trip)

	require.True(t, ok)
	assert.Equal(t, 18, got)
}

func TestAge_ComparesUTCDates(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*3600)
	newYork := time.FixedZone("EDT", -4*3600)
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		departure time.Time
		dob       time.Time
		want      int
	}{
		// 01:00 CEST on the 15th is still the 14th in UTC.
		{"east of UTC before midnight UTC", time.Date(2010, 6, 15, 1, 0, 0, 0, berlin), dob, 19},
		// 22:00 EDT on the 14th is already the 15th in UTC.
		{"west of UTC after midnight UTC", time.Date(2010, 6, 14, 22, 0, 0, 0, newYork), dob, 20},
		// The same birth date viewed from a zone west of UTC reads as the 14th.
		{"date of birth in local zone", time.Date(2010, 6, 14, 12, 0, 0, 0, time.UTC), dob.In(newYork), 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := domain.Trip{Departure: tt.departure, User: domain.User{DateOfBirth: &tt.dob}}

			got, ok := stats.Age(trip)

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAge_NoDateOfBirth(t *testing.T) {
	_, ok := stats.Age(tripFixture(time.Hour))

	assert.False(t, ok)
}

// ---- Summarize -------------------------------------------------------------

func TestSummarize(t *testing.T) {
	trip := tripFixture(10 * time.Hour)
	trip.Distance = ptr(500_000)
	trip.GmapsDuration = ptr(int64(9 * 3600))
	trip.Rides = []domain.Ride{
		{ID: 1, Experience: domain.VeryGood, WaitingTime: ptr(15)},
		{ID: 2, Experience: domain.Neutral, WaitingTime: ptr(45)},
	}

	got, err := stats.Summarize(trip)

	require.NoError(t, err)
	assert.Equal(t, int64(36000), got.DurationSeconds)
	require.NotNil(t, got.Kmh)
	assert.Equal(t, 50, *got.Kmh)
	require.NotNil(t, got.AverageSpeed)
	assert.Equal(t, "50 kmh", *got.AverageSpeed)
	require.NotNil(t, got.GmapsDifference)
	assert.Equal(t, int64(3600), *got.GmapsDifference)
	require.NotNil(t, got.Hitchability)
	assert.Equal(t, 1.11, *got.Hitchability)
	require.NotNil(t, got.TotalWaitingTime)
	assert.Equal(t, "60 minutes", *got.TotalWaitingTime)
	require.NotNil(t, got.OverallExperience)
	assert.Equal(t, domain.Neutral, *got.OverallExperience)
	assert.Nil(t, got.Age, "no date of birth recorded")
}

func TestSummarize_BareTrip(t *testing.T) {
	got, err := stats.Summarize(tripFixture(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, domain.TripStats{DurationSeconds: 3600}, got)
}

func TestSummarize_UnknownLabelKeepsOtherMetrics(t *testing.T) {
	trip := tripFixture(time.Hour)
	trip.Distance = ptr(60_000)
	trip.Rides = ridesWithExperience("superb")

	got, err := stats.Summarize(trip)

	assert.ErrorIs(t, err, domain.ErrUnknownExperience)
	assert.Nil(t, got.OverallExperience)
	assert.Equal(t, int64(3600), got.DurationSeconds)
	require.NotNil(t, got.Kmh)
	assert.Equal(t, 60, *got.Kmh)
}
