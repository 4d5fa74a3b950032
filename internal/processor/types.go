package processor

import (
	"github.com/lanetalk/tenpin/internal/metrics"
	"github.com/lanetalk/tenpin/internal/pubsub"
)

// Processor handles the business logic of building and publishing standings.
type Processor struct {
	store      Store
	pubsub     pubsub.PubSubClient
	notifier   Notifier
	metrics    metrics.Metrics
	tournament string
}
