// Package domain contains the core data types of the hitchhiking log.
// Values here are loaded by the repo layer and treated as read-only by the
// stats engine.
package domain

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the hitchhiker who logged a trip.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DateOfBirth *time.Time `json:"-"`
}

// Trip is a journey from one place to another made of one or more rides.
// Distance is in meters and GmapsDuration in seconds; both are nil when the
// routing estimate was never fetched.
type Trip struct {
	ID             int64
	From           string
	To             string
	FromCity       string
	ToCity         string
	Departure      time.Time
	Arrival        time.Time
	Distance       *int
	GmapsDuration  *int64
	TravellingWith []string
	User           User

	Rides            []Ride
	CountryDistances []CountryDistance
}

// Ride is a single hitchhiking leg within a trip.
type Ride struct {
	ID          int64
	TripID      int64
	Experience  Experience
	WaitingTime *int // minutes
	Vehicle     string
}

// CountryDistance records how far a trip went through one country.
type CountryDistance struct {
	TripID      int64
	Country     string
	CountryCode string
	Distance    int // meters
}

// Param returns the URL slug of the trip, e.g. "123-cologne-to-berlin".
// The short city names are preferred when both are set.
func (t Trip) Param() string {
	from, to := t.From, t.To
	if t.FromCity != "" && t.ToCity != "" {
		from, to = t.FromCity, t.ToCity
	}
	return strconv.FormatInt(t.ID, 10) + "-" + parameterize(from) + "-to-" + parameterize(to)
}

// parameterize query-escapes s and collapses every run of characters other
// than ASCII letters and digits into a single "-".
func parameterize(s string) string {
	escaped := strings.ToLower(url.QueryEscape(s))

	var b strings.Builder
	dash := false
	for _, r := range escaped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
