package domain

// RecordType is the discriminator of a row in the unified dataset.
type RecordType string

// Known record types.
const (
	RecordObservation RecordType = "observation"
	RecordEvent       RecordType = "event"
	RecordImpactLink  RecordType = "impact_link"
	RecordTarget      RecordType = "target"
)

// RecordTypes returns the known record types in canonical order.
func RecordTypes() []RecordType {
	return []RecordType{RecordObservation, RecordEvent, RecordImpactLink, RecordTarget}
}

// ParseRecordType matches s exactly against the known record types.
func ParseRecordType(s string) (RecordType, bool) {
	switch RecordType(s) {
	case RecordObservation, RecordEvent, RecordImpactLink, RecordTarget:
		return RecordType(s), true
	}
	return "", false
}

// PartitionKey returns the partition a record type is routed to.
func (t RecordType) PartitionKey() PartitionKey {
	switch t {
	case RecordObservation:
		return PartitionObservations
	case RecordEvent:
		return PartitionEvents
	case RecordImpactLink:
		return PartitionImpactLinks
	case RecordTarget:
		return PartitionTargets
	}
	return ""
}

// Column names of the unified dataset.
const (
	ColRecordType      = "record_type"
	ColIndicator       = "indicator"
	ColIndicatorCode   = "indicator_code"
	ColObservationDate = "observation_date"
	ColValueNumeric    = "value_numeric"
	ColConfidence      = "confidence"
)

// RequiredColumns lists the columns every unified dataset must carry.
var RequiredColumns = []string{
	ColRecordType,
	ColIndicator,
	ColIndicatorCode,
	ColObservationDate,
	ColValueNumeric,
	ColConfidence,
}

// Record is the typed view of one unified-dataset row.
type Record struct {
	Line            int               `json:"line"`
	RecordType      string            `json:"record_type"`
	Indicator       *string           `json:"indicator"`
	IndicatorCode   string            `json:"indicator_code"`
	ObservationDate string            `json:"observation_date"`
	ValueNumeric    *float64          `json:"value_numeric"`
	Confidence      string            `json:"confidence"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// Type returns the parsed record type; ok is false for unrecognised values.
func (r Record) Type() (RecordType, bool) {
	return ParseRecordType(r.RecordType)
}

// IndicatorLabel returns the indicator label or "" when null.
func (r Record) IndicatorLabel() string {
	if r.Indicator == nil {
		return ""
	}
	return *r.Indicator
}

// Observation is an observation record with its calendar year derived from
// ObservationDate.
type Observation struct {
	Record
	Year int `json:"year"`
}

// ObservationSet is the year-annotated observations partition of one loaded
// dataset. Fingerprint identifies the source file contents.
type ObservationSet struct {
	Fingerprint  string
	Observations []Observation
}

// YearSummary aggregates the numeric observations of one indicator in one
// year. Rows with a null value_numeric are counted in Count only.
type YearSummary struct {
	Indicator string  `json:"indicator"`
	Year      int     `json:"year"`
	Count     int     `json:"count"`
	Valued    int     `json:"valued"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
}
