package notifier

import (
	"github.com/lanetalk/tenpin/internal/importer"
	"github.com/lanetalk/tenpin/internal/pairing"
	"github.com/lanetalk/tenpin/internal/standings"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For published standings
	SendStandings(tournament string, s standings.Standings, dryRun bool) error
	// For doubles pairing conflicts that needed an override decision
	SendPairingConflict(pid string, conflict *pairing.Conflict, dryRun bool) error
	// For applied import batches
	SendImportSummary(result *importer.Result, dryRun bool) error
}
