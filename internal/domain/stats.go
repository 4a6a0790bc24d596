package domain

// TripStats holds the metrics derived from a trip and its rides.
// A nil field means the metric could not be computed from the recorded data
// and should simply not be displayed.
type TripStats struct {
	DurationSeconds   int64       `json:"duration_seconds"`
	Kmh               *int        `json:"kmh,omitempty"`
	AverageSpeed      *string     `json:"average_speed,omitempty"`
	GmapsDifference   *int64      `json:"gmaps_difference,omitempty"`
	Hitchability      *float64    `json:"hitchability,omitempty"`
	TotalWaitingTime  *string     `json:"total_waiting_time,omitempty"`
	OverallExperience *Experience `json:"overall_experience,omitempty"`
	Age               *int        `json:"age,omitempty"`
}

// TripView pairs a trip with its derived metrics.
type TripView struct {
	Trip  Trip
	Stats TripStats
}

// CountryValues maps an ISO country code to a count or ratio.
type CountryValues map[string]float64

// CountryReport is the cross-trip summary consumed by the country map chart:
// category name -> country code -> value. Codes with a zero value are absent.
type CountryReport map[string]CountryValues
