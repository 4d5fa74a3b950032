package pairing

import (
	"database/sql"
	"sync"
)

// store handles all database operations for doubles pairings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Conflict describes a partner edit that would silently overwrite another
// bowler's reciprocal link. It is returned to the caller so the edit can be
// confirmed explicitly, never surfaced as a generic failure.
type Conflict struct {
	PartnerPid         string `json:"partner_pid"`
	PartnerName        string `json:"partner_name"`
	CurrentPartnerPid  string `json:"current_partner_pid"`
	CurrentPartnerName string `json:"current_partner_name"`
}

// pairingRow mirrors one doubles_pairs record.
type pairingRow struct {
	did         int
	pid         string
	partnerPid  sql.NullString
	partnerName sql.NullString
}
