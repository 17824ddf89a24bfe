package dataset

import "fi-dashboard/internal/domain"

// ValidateSchema checks that every column in required is present in ds.
// A nil required list means domain.RequiredColumns. All missing columns are
// reported at once, in the order of required.
func ValidateSchema(ds *domain.Dataset, required []string) error {
	if required == nil {
		required = domain.RequiredColumns
	}

	present := make(map[string]bool, len(ds.Columns))
	for _, c := range ds.Columns {
		present[c] = true
	}

	var missing []string
	for _, c := range required {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return domain.ErrSchema(ds.Source, missing)
	}
	return nil
}
