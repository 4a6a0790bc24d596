package domain

import "fmt"

// Experience is the qualitative rating of a single ride.
// The zero value means no experience was recorded.
type Experience string

const (
	VeryBad  Experience = "very bad"
	Bad      Experience = "bad"
	Neutral  Experience = "neutral"
	Good     Experience = "good"
	VeryGood Experience = "very good"
)

// Experiences lists every label ordered worst to best. The index of a label
// is its rank.
var Experiences = []Experience{VeryBad, Bad, Neutral, Good, VeryGood}

// ParseExperience converts a stored label into an Experience.
// The empty string yields the zero value (not recorded).
func ParseExperience(s string) (Experience, error) {
	if s == "" {
		return "", nil
	}
	e := Experience(s)
	if _, err := e.Rank(); err != nil {
		return "", err
	}
	return e, nil
}

// Recorded reports whether a label has been set.
func (e Experience) Recorded() bool {
	return e != ""
}

// Rank returns the position of e on the scale, 0 (very bad) to 4 (very good).
func (e Experience) Rank() (int, error) {
	for i, label := range Experiences {
		if label == e {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownExperience, string(e))
}

// WorstOf returns the label with the lowest rank.
// Callers must guard against empty input; it fails with ErrEmptyCollection.
func WorstOf(labels ...Experience) (Experience, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("domain.WorstOf: %w", ErrEmptyCollection)
	}

	worst, worstRank := Experience(""), len(Experiences)
	for _, l := range labels {
		r, err := l.Rank()
		if err != nil {
			return "", fmt.Errorf("domain.WorstOf: %w", err)
		}
		if r < worstRank {
			worst, worstRank = l, r
		}
	}
	return worst, nil
}
