package domain

import (
	"strconv"
	"strings"
	"time"
)

// Person is someone who gave the hitchhiker a ride.
type Person struct {
	Name       string
	Occupation string
}

// String joins the known details about the person.
func (p *Person) String() string {
	if p == nil {
		return ""
	}
	return joinNonEmpty([]string{p.Name, p.Occupation})
}

// Hitchhike is a story written about a single ride of a trip.
// WaitingTime is in minutes, Duration in hours.
type Hitchhike struct {
	ID          int64
	TripID      int64
	Title       string
	Story       string
	Mission     string
	WaitingTime *int
	Duration    *float64
	Person      *Person

	// Loaded from the owning trip for display.
	From      string
	To        string
	Departure *time.Time
	Distance  *int
	Username  string
}

// String summarises the hitchhike, e.g.
// "Through the Alps, Anna, waiting time: 20 minutes, duration of ride: 2.5 hours".
func (h Hitchhike) String() string {
	parts := []string{h.Title, h.Person.String()}
	if h.WaitingTime != nil {
		parts = append(parts, "waiting time: "+strconv.Itoa(*h.WaitingTime)+" minutes")
	}
	if h.Duration != nil {
		parts = append(parts, "duration of ride: "+strconv.FormatFloat(*h.Duration, 'f', -1, 64)+" hours")
	}
	return joinNonEmpty(parts)
}

// IsEmpty reports whether nothing beyond the title has been written down.
func (h Hitchhike) IsEmpty() bool {
	return h.Mission == "" && h.WaitingTime == nil && h.Duration == nil && h.Person.String() == ""
}

// HitchhikeDetail is a hitchhike together with the ids of its neighbours in
// id order, wrapping around at both ends.
type HitchhikeDetail struct {
	Hitchhike Hitchhike
	Next      int64
	Prev      int64
}

func joinNonEmpty(parts []string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
