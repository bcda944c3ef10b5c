package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Accepted input layouts, tried in order. Browser date and datetime-local
// inputs produce the last two.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DateTime is a request timestamp that accepts RFC3339 as well as the plain
// date and datetime forms produced by HTML inputs.
type DateTime struct {
	time.Time
	// DateOnly reports that the input carried no time of day.
	DateOnly bool
}

// UnmarshalJSON parses a JSON string in any accepted layout.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the timestamp as RFC3339.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339Nano))
}

// OptionalDateTime tells an absent field apart from an explicit null. Set
// is true whenever the key was present; Value is nil for null.
type OptionalDateTime struct {
	Set   bool
	Value *DateTime
}

func (o *OptionalDateTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var d DateTime
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// ParseDateTime parses s using the accepted layouts. Values without a zone
// are interpreted as UTC.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return DateTime{Time: t.UTC(), DateOnly: layout == "2006-01-02"}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date %q", s)
}

// DateRange bounds a report by creation time. Nil bounds are open; both ends
// are inclusive.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange builds a DateRange from the startDate and endDate query
// values. A date-only end value covers that whole day.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(start) != "" {
		d, err := ParseDateTime(start)
		if err != nil {
			return r, fmt.Errorf("startDate: %w", err)
		}
		r.From = &d.Time
	}
	if strings.TrimSpace(end) != "" {
		d, err := ParseDateTime(end)
		if err != nil {
			return r, fmt.Errorf("endDate: %w", err)
		}
		t := d.Time
		if d.DateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, fmt.Errorf("endDate must not be before startDate")
	}
	return r, nil
}
