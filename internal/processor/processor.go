package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lanetalk/tenpin/internal/importer"
	"github.com/lanetalk/tenpin/internal/metrics"
	"github.com/lanetalk/tenpin/internal/pairing"
	"github.com/lanetalk/tenpin/internal/pubsub"
	"github.com/lanetalk/tenpin/internal/standings"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, tournament string) *Processor {
	return &Processor{
		store:      store,
		pubsub:     pubsub,
		notifier:   notifier,
		metrics:    metrics,
		tournament: tournament,
	}
}

// PublishStandings loads the current score rows, builds all three boards and
// pushes them out through the notifier and the event bus.
func (p *Processor) PublishStandings(dryRun bool) (standings.Standings, error) {
	log.Info("Publishing standings...", "tournament", p.tournament, "dry_run", dryRun)
	startTime := time.Now()

	rows, err := p.store.AllScoreRows()
	if err != nil {
		log.Error("Failed to load score rows", "error", err)
		return standings.Standings{}, fmt.Errorf("failed to load score rows: %w", err)
	}

	st := standings.BuildScoreStandings(rows)
	p.metrics.IncStandingsBuilds()

	if err := p.notifier.SendStandings(p.tournament, st, dryRun); err != nil {
		log.Error("Failed to send standings notification", "error", err)
	}
	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventStandingsUpdated, st); err != nil {
			log.Error("Failed to publish standings event", "error", err)
		}
	}

	duration := time.Since(startTime).Seconds()
	p.metrics.ObservePublishDuration(duration)
	log.Info("Standings published",
		"teams", len(st.Team),
		"pairs", len(st.Doubles),
		"singles", len(st.Singles),
		"duration_s", duration)
	return st, nil
}

// ReportPairingConflict fans a detected conflict out to the channel and the
// event bus. The pairing itself stays untouched.
func (p *Processor) ReportPairingConflict(pid string, conflict *pairing.Conflict, dryRun bool) {
	p.metrics.IncPairingConflicts()
	if err := p.notifier.SendPairingConflict(pid, conflict, dryRun); err != nil {
		log.Error("Failed to send pairing conflict notification", "error", err, "pid", pid)
	}
	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventPairingConflict, conflict); err != nil {
			log.Error("Failed to publish pairing conflict event", "error", err, "pid", pid)
		}
	}
}

// ReportImport announces an applied batch.
func (p *Processor) ReportImport(result *importer.Result, dryRun bool) {
	p.metrics.IncImportsApplied()
	if err := p.notifier.SendImportSummary(result, dryRun); err != nil {
		log.Error("Failed to send import summary", "error", err, "batch_id", result.BatchID)
	}
	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventImportCompleted, result); err != nil {
			log.Error("Failed to publish import event", "error", err, "batch_id", result.BatchID)
		}
	}
}
