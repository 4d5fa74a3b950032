package pairing

// PairingStore maintains the reciprocal doubles-partner relationship between
// two independently addressable bowler records.
type PairingStore interface {
	// CheckPartnerConflict reports whether pointing requesterPid at targetPid
	// would overwrite an existing reciprocal link. It returns nil when the
	// target has no pairing row, no partner reference, or already references
	// the requester.
	CheckPartnerConflict(targetPid, requesterPid string) (*Conflict, error)
	// LinkPartners points both bowlers' pairing rows at each other inside a
	// single transaction. A conflict on the target side is returned without
	// writing unless override is set; on override the old link is broken and
	// both affected bowlers receive audit entries.
	LinkPartners(ownerPid, targetPid string, override bool) (*Conflict, error)
	// ClearPartner sets the bowler's own partner reference to an
	// authoritative null and detaches the reciprocal side.
	ClearPartner(pid string) error
	// RemoveFromTeam clears the bowler's team assignment and cascades:
	// every pairing row they own is deleted and every reference to them from
	// another bowler's row is nulled.
	RemoveFromTeam(pid string) error
}
