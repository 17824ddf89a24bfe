package domain

// PartitionKey names one of the four views of a partitioned dataset.
type PartitionKey string

// Partition keys, one per known record type.
const (
	PartitionObservations PartitionKey = "observations"
	PartitionEvents       PartitionKey = "events"
	PartitionImpactLinks  PartitionKey = "impact_links"
	PartitionTargets      PartitionKey = "targets"
)

// PartitionKeys returns the four keys in canonical order.
func PartitionKeys() []PartitionKey {
	return []PartitionKey{PartitionObservations, PartitionEvents, PartitionImpactLinks, PartitionTargets}
}

// PartitionedView holds the four disjoint record-type views of a dataset.
// Rows whose record_type is not one of the known values appear in no
// partition; they are counted in Dropped and DroppedTypes.
type PartitionedView struct {
	Observations *Dataset
	Events       *Dataset
	ImpactLinks  *Dataset
	Targets      *Dataset

	Dropped      int
	DroppedTypes map[string]int
}

// Get returns the partition for key, or nil for an unknown key.
func (v PartitionedView) Get(key PartitionKey) *Dataset {
	switch key {
	case PartitionObservations:
		return v.Observations
	case PartitionEvents:
		return v.Events
	case PartitionImpactLinks:
		return v.ImpactLinks
	case PartitionTargets:
		return v.Targets
	}
	return nil
}

// PartitionCounts reports row counts per partition.
type PartitionCounts struct {
	Observations int            `json:"observations"`
	Events       int            `json:"events"`
	ImpactLinks  int            `json:"impact_links"`
	Targets      int            `json:"targets"`
	Dropped      int            `json:"dropped"`
	DroppedTypes map[string]int `json:"dropped_types,omitempty"`
}

// Counts returns the number of rows in each partition.
func (v PartitionedView) Counts() PartitionCounts {
	dropped := make(map[string]int, len(v.DroppedTypes))
	for k, n := range v.DroppedTypes {
		dropped[k] = n
	}
	return PartitionCounts{
		Observations: v.Observations.Len(),
		Events:       v.Events.Len(),
		ImpactLinks:  v.ImpactLinks.Len(),
		Targets:      v.Targets.Len(),
		Dropped:      v.Dropped,
		DroppedTypes: dropped,
	}
}

// Total returns the number of partitioned (kept) rows.
func (c PartitionCounts) Total() int {
	return c.Observations + c.Events + c.ImpactLinks + c.Targets
}
