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

func NewServer(store roster.RosterStore, pairingStore pairing.PairingStore, imp importer.Importer, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Pairing:        pairingStore,
		Importer:       imp,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/scratch-masters", Chain(s.ScratchMastersHandler(), paramsMiddleware))
	s.Router.Handle("/optional-events", Chain(s.OptionalEventsHandler(), paramsMiddleware))
	s.Router.Handle("/bowler", Chain(s.BowlerHandler(), paramsMiddleware))
	s.Router.Handle("/pairing/link", Chain(s.LinkPartnersHandler(), paramsMiddleware))
	s.Router.Handle("/pairing/clear", Chain(s.ClearPartnerHandler(), paramsMiddleware))
	s.Router.Handle("/team/remove", Chain(s.RemoveFromTeamHandler(), paramsMiddleware))
	s.Router.Handle("/import", Chain(s.ImportHandler(), paramsMiddleware))
	s.Router.Handle("/publish", Chain(s.PublishHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
