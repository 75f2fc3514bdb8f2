package models

// DependencyReport lists human-readable descriptions of dependents found
// for one entity instance. Produced fresh per delete attempt.
type DependencyReport struct {
	Hard []string `json:"hard"`
	Soft []string `json:"soft"`
}

// Empty reports whether the entity has no dependents at all.
func (r DependencyReport) Empty() bool {
	return len(r.Hard) == 0 && len(r.Soft) == 0
}

// DeleteRequest carries the cascade flags of a delete call. ForceCascade
// implies Cascade; it never unlocks hard dependents.
type DeleteRequest struct {
	Cascade      bool `json:"cascade"`
	ForceCascade bool `json:"force_cascade"`
}

// CascadeAllowed reports whether soft dependents may be removed.
func (r DeleteRequest) CascadeAllowed() bool {
	return r.Cascade || r.ForceCascade
}

// DeleteResult reports a committed delete: a snapshot of the removed row's
// identifying fields plus per-table counts of cascaded rows.
type DeleteResult struct {
	Deleted map[string]any   `json:"deleted"`
	Stats   map[string]int64 `json:"stats,omitempty"`
	// RemovedObjectKeys lists media blobs whose rows were deleted in the
	// transaction; the caller cleans them up after commit.
	RemovedObjectKeys []string `json:"-"`
}
