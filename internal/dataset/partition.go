package dataset

import "fi-dashboard/internal/domain"

// SplitByRecordType partitions ds into its four record-type views. Each view
// is an independent copy in source order. Rows with an unrecognised
// record_type land in no view and are tallied in Dropped and DroppedTypes.
// The caller is expected to have validated the schema.
func SplitByRecordType(ds *domain.Dataset) domain.PartitionedView {
	idx := ds.ColumnIndex(domain.ColRecordType)
	recordType := func(r domain.Row) string {
		if idx < 0 || idx >= len(r.Values) {
			return ""
		}
		return r.Values[idx]
	}

	byType := func(t domain.RecordType) *domain.Dataset {
		return ds.Filter(func(r domain.Row) bool {
			return recordType(r) == string(t)
		})
	}

	view := domain.PartitionedView{
		Observations: byType(domain.RecordObservation),
		Events:       byType(domain.RecordEvent),
		ImpactLinks:  byType(domain.RecordImpactLink),
		Targets:      byType(domain.RecordTarget),
		DroppedTypes: make(map[string]int),
	}

	for _, r := range ds.Rows {
		rt := recordType(r)
		if _, ok := domain.ParseRecordType(rt); !ok {
			view.Dropped++
			view.DroppedTypes[rt]++
		}
	}
	return view
}
