package pairing

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new PairingStore.
func New(db *sql.DB) PairingStore {
	return &store{
		db: db,
	}
}

// queryer is satisfied by both *sql.DB and *sql.Tx so the read helpers can
// run inside or outside a transaction.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *store) CheckPartnerConflict(targetPid, requesterPid string) (*Conflict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return checkPartnerConflict(s.db, targetPid, requesterPid)
}

func checkPartnerConflict(q queryer, targetPid, requesterPid string) (*Conflict, error) {
	row, err := pairingFor(q, targetPid)
	if err != nil {
		return nil, err
	}
	// No row, no partner reference, or already reciprocal: nothing to warn about.
	if row == nil || !row.partnerPid.Valid || row.partnerPid.String == requesterPid {
		return nil, nil
	}

	targetName, err := bowlerName(q, targetPid)
	if err != nil {
		return nil, err
	}
	currentName := row.partnerName.String
	if currentName == "" {
		if currentName, err = bowlerName(q, row.partnerPid.String); err != nil {
			return nil, err
		}
	}
	return &Conflict{
		PartnerPid:         targetPid,
		PartnerName:        targetName,
		CurrentPartnerPid:  row.partnerPid.String,
		CurrentPartnerName: currentName,
	}, nil
}

func (s *store) LinkPartners(ownerPid, targetPid string, override bool) (*Conflict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	ownerDid, err := bowlerDid(tx, ownerPid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if ownerDid == nil {
		// A pairing cannot be created for someone without a doubles id.
		log.Warn("Bowler has no doubles id, skipping pairing", "pid", ownerPid)
		tx.Rollback()
		return nil, nil
	}

	conflict, err := checkPartnerConflict(tx, targetPid, ownerPid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if conflict != nil && !override {
		tx.Rollback()
		return conflict, nil
	}

	if err := upsertReciprocalPartner(tx, ownerPid, targetPid); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := upsertReciprocalPartner(tx, targetPid, ownerPid); err != nil {
		tx.Rollback()
		return nil, err
	}

	if conflict != nil {
		// The old link was broken on override: leave a trail for both sides.
		if err := audit(tx, targetPid, "partner_overridden", fmt.Sprintf("partner changed from %s to %s", conflict.CurrentPartnerPid, ownerPid)); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := audit(tx, conflict.CurrentPartnerPid, "partner_unlinked", fmt.Sprintf("partner %s re-paired with %s", targetPid, ownerPid)); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Linked doubles partners", "owner", ownerPid, "partner", targetPid, "override", conflict != nil)
	return nil, nil
}

// upsertReciprocalPartner points pid's own pairing row at partnerPid. Bowlers
// without a doubles id are skipped entirely. If pid's row currently points at
// a third bowler, that bowler's own reference is cleared first so the old
// link never survives one-directionally.
func upsertReciprocalPartner(q queryer, pid, partnerPid string) error {
	did, err := bowlerDid(q, pid)
	if err != nil {
		return err
	}
	if did == nil {
		log.Debug("No doubles id, skipping reciprocal write", "pid", pid)
		return nil
	}

	row, err := pairingFor(q, pid)
	if err != nil {
		return err
	}
	if row != nil && row.partnerPid.Valid && row.partnerPid.String != partnerPid {
		if err := clearPartnerRef(q, row.partnerPid.String); err != nil {
			return err
		}
	}

	if err := reconcilePairing(q, pid, *did); err != nil {
		return err
	}

	partnerName, err := bowlerName(q, partnerPid)
	if err != nil {
		return err
	}
	_, err = q.Exec(`
		INSERT INTO doubles_pairs (did, pid, partner_pid, partner_name, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(did, pid) DO UPDATE SET
			partner_pid = excluded.partner_pid,
			partner_name = excluded.partner_name,
			updated_at = excluded.updated_at;
	`, *did, pid, partnerPid, partnerName, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert pairing for %s: %w", pid, err)
	}
	return nil
}

// reconcilePairing deletes any pairing rows pid owns under a different
// doubles id, leftovers from a prior team or doubles change. It runs before
// every pairing write so at most one live row per pid ever exists.
func reconcilePairing(q queryer, pid string, did int) error {
	res, err := q.Exec("DELETE FROM doubles_pairs WHERE pid = ? AND did != ?", pid, did)
	if err != nil {
		return fmt.Errorf("failed to reconcile pairing rows for %s: %w", pid, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Info("Cleaned up stale pairing rows", "pid", pid, "count", n)
	}
	return nil
}

func (s *store) ClearPartner(pid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	// The explicit null is authoritative: the row stays, the reference and
	// the stale name snapshot go.
	if err := clearPartnerRef(tx, pid); err != nil {
		tx.Rollback()
		return err
	}
	if err := clearReferencesTo(tx, pid); err != nil {
		tx.Rollback()
		return err
	}
	if err := audit(tx, pid, "partner_cleared", ""); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) RemoveFromTeam(pid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM doubles_pairs WHERE pid = ?", pid); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete pairing rows for %s: %w", pid, err)
	}
	if err := clearReferencesTo(tx, pid); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("UPDATE bowlers SET team_id = NULL, did = NULL WHERE pid = ?", pid); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear team assignment for %s: %w", pid, err)
	}
	if err := audit(tx, pid, "team_removed", ""); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Removed bowler from team", "pid", pid)
	return nil
}

// clearPartnerRef nulls pid's own partner reference and name snapshot.
func clearPartnerRef(q queryer, pid string) error {
	_, err := q.Exec(`
		UPDATE doubles_pairs SET partner_pid = NULL, partner_name = NULL, updated_at = ?
		WHERE pid = ?`, time.Now().Unix(), pid)
	if err != nil {
		return fmt.Errorf("failed to clear partner reference for %s: %w", pid, err)
	}
	return nil
}

// clearReferencesTo nulls every other bowler's reference to pid.
func clearReferencesTo(q queryer, pid string) error {
	_, err := q.Exec(`
		UPDATE doubles_pairs SET partner_pid = NULL, partner_name = NULL, updated_at = ?
		WHERE partner_pid = ?`, time.Now().Unix(), pid)
	if err != nil {
		return fmt.Errorf("failed to clear references to %s: %w", pid, err)
	}
	return nil
}

func pairingFor(q queryer, pid string) (*pairingRow, error) {
	var row pairingRow
	err := q.QueryRow(`
		SELECT did, pid, partner_pid, partner_name FROM doubles_pairs
		WHERE pid = ? ORDER BY updated_at DESC LIMIT 1`, pid).
		Scan(&row.did, &row.pid, &row.partnerPid, &row.partnerName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pairing row for %s: %w", pid, err)
	}
	return &row, nil
}

// bowlerDid resolves a bowler's doubles id. Unknown bowlers and bowlers
// without a doubles id both come back nil.
func bowlerDid(q queryer, pid string) (*int, error) {
	var did sql.NullInt64
	err := q.QueryRow("SELECT did FROM bowlers WHERE pid = ?", pid).Scan(&did)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doubles id for %s: %w", pid, err)
	}
	if !did.Valid {
		return nil, nil
	}
	n := int(did.Int64)
	return &n, nil
}

func bowlerName(q queryer, pid string) (string, error) {
	var first, last, nickname string
	err := q.QueryRow("SELECT first_name, last_name, nickname FROM bowlers WHERE pid = ?", pid).
		Scan(&first, &last, &nickname)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve name for %s: %w", pid, err)
	}
	if nickname != "" {
		first = nickname
	}
	if last == "" {
		return first, nil
	}
	return first + " " + last, nil
}

func audit(q queryer, pid, action, detail string) error {
	_, err := q.Exec(`
		INSERT INTO audit_log (id, pid, action, detail, created_at)
		VALUES (?, ?, ?, ?, ?)`, uuid.NewString(), pid, action, detail, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write audit entry for %s: %w", pid, err)
	}
	return nil
}
