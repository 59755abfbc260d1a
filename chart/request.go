package chart

import (
	"strings"
	"time"
)

// Wire formats for the date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Request is the canonical chart request: who, when and where. Instances
// are immutable once validated; the same four literal fields drive the
// cache key, so cosmetic differences in case or whitespace are distinct
// requests.
type Request struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Place string `json:"place"`
}

// Validate checks the request. Fields are checked for presence in a fixed
// order (name, date, time, place) and the first missing one is reported;
// date and time must then parse into a valid wall-clock instant.
func (r Request) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"date", r.Date},
		{"time", r.Time},
		{"place", r.Place},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}

	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
	}
	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		return &ValidationError{Field: "time", Reason: "want HH:MM"}
	}
	return nil
}

// LocalClock returns the request's wall-clock instant in the given
// location. The zone decides the actual UTC offset, DST included.
func (r Request) LocalClock(loc *time.Location) (time.Time, error) {
	t, err := time.Parse(DateLayout+" "+TimeLayout, r.Date+" "+r.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// KeyFields returns the four literal fields in digest order. The cache
// keyer hashes exactly these, unnormalized.
func (r Request) KeyFields() []string {
	return []string{r.Name, r.Date, r.Time, r.Place}
}
