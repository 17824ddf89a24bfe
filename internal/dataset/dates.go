package dataset

import (
	"fmt"
	"strings"
	"time"

	"fi-dashboard/internal/domain"
)

// dateLayouts are tried in order when reading observation_date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
}

// ParseYear returns the calendar year of a date or date-string value.
func ParseYear(value string) (int, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), nil
		}
	}
	return 0, fmt.Errorf("no known layout matches %q", s)
}

// DeriveYears annotates each record with the year of its observation_date.
// A single unparsable date fails the whole derivation with
// *domain.DateParseError; nothing is coerced to a sentinel year.
func DeriveYears(records []domain.Record) ([]domain.Observation, error) {
	out := make([]domain.Observation, 0, len(records))
	for _, rec := range records {
		year, err := ParseYear(rec.ObservationDate)
		if err != nil {
			return nil, domain.ErrDateParse(rec.Line, rec.ObservationDate, err)
		}
		out = append(out, domain.Observation{Record: rec, Year: year})
	}
	return out, nil
}

// DeriveObservations decodes an observations partition and derives years.
func DeriveObservations(partition *domain.Dataset) (domain.ObservationSet, error) {
	records, err := DecodeRecords(partition)
	if err != nil {
		return domain.ObservationSet{}, err
	}
	obs, err := DeriveYears(records)
	if err != nil {
		return domain.ObservationSet{}, err
	}
	return domain.ObservationSet{Fingerprint: partition.Fingerprint, Observations: obs}, nil
}
