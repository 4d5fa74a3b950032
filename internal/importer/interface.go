package importer

// Importer applies batches of incoming score lines against the roster.
type Importer interface {
	// Apply writes a batch in a single transaction. Lines for unknown
	// participants or with invalid pin counts are skipped and reported on
	// the Result; only storage failures abort the batch.
	Apply(updates []ScoreUpdate) (*Result, error)
}
