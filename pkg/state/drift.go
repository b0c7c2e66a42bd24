package state

import "sort"

// DriftReport lists the places where the registry and the model disagree.
// The editor keeps both collections independently, so drift is possible and
// is reported rather than repaired.
type DriftReport struct {
	// Missing holds parameter ids with no model entry.
	Missing []int `json:"missing,omitempty"`
	// Orphaned holds model entry ids with no parameter.
	Orphaned []int `json:"orphaned,omitempty"`
	// DuplicateIDs holds parameter ids used more than once.
	DuplicateIDs []int `json:"duplicateIds,omitempty"`
}

// Empty reports whether the snapshot is in sync.
func (r DriftReport) Empty() bool {
	return len(r.Missing) == 0 && len(r.Orphaned) == 0 && len(r.DuplicateIDs) == 0
}

// Drift inspects st without modifying it.
func Drift(st State) DriftReport {
	params := make(map[int]int, len(st.Registry))
	for _, param := range st.Registry {
		params[param.ID]++
	}
	entries := make(map[int]struct{}, len(st.Model.ParamValues))
	for _, entry := range st.Model.ParamValues {
		entries[entry.ParamID] = struct{}{}
	}

	var report DriftReport
	for id, count := range params {
		if _, ok := entries[id]; !ok {
			report.Missing = append(report.Missing, id)
		}
		if count > 1 {
			report.DuplicateIDs = append(report.DuplicateIDs, id)
		}
	}
	for id := range entries {
		if _, ok := params[id]; !ok {
			report.Orphaned = append(report.Orphaned, id)
		}
	}
	sort.Ints(report.Missing)
	sort.Ints(report.Orphaned)
	sort.Ints(report.DuplicateIDs)
	return report
}
