package model

// ImportMode selects how externally supplied records are reconciled with
// the store.
type ImportMode string

const (
	// ImportModeMerge overwrites-or-inserts by identifier: candidates win on
	// conflict and re-importing the same file is idempotent.
	ImportModeMerge ImportMode = "merge"
	// ImportModeStore creates a brand-new record per candidate. It never
	// deduplicates: importing the same file twice duplicates every record.
	// The asymmetry with merge mode is deliberate and surfaced to callers.
	ImportModeStore ImportMode = "store"
)

// ImportResult summarizes a completed import.
type ImportResult struct {
	Mode     ImportMode
	Imported int
}
