package http

import (
	"net/http"

	"github.com/lanetalk/tenpin/internal/config"
	"github.com/lanetalk/tenpin/internal/importer"
	"github.com/lanetalk/tenpin/internal/metrics"
	"github.com/lanetalk/tenpin/internal/notifier"
	"github.com/lanetalk/tenpin/internal/pairing"
	"github.com/lanetalk/tenpin/internal/processor"
	"github.com/lanetalk/tenpin/internal/pubsub"
	"github.com/lanetalk/tenpin/internal/roster"
)

type Server struct {
	Store          roster.RosterStore
	Pairing        pairing.PairingStore
	Importer       importer.Importer
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
