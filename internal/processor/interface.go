package processor

import (
	"github.com/lanetalk/tenpin/internal/notifier"
	"github.com/lanetalk/tenpin/internal/standings"
)

// Store defines the database operations required by the processor.
type Store interface {
	AllScoreRows() (standings.ScoreRows, error)
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
