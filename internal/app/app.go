package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/statsfeed/external/statscom"
	"github.com/riskibarqy/statsfeed/internal/config"
	"github.com/riskibarqy/statsfeed/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/statsfeed/internal/platform/id"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
	"github.com/riskibarqy/statsfeed/internal/usecase"
)

// NewEventService wires the stats.com client and sport adapters behind the event use-case.
// Both the HTTP server and the fetch command build their service here.
func NewEventService(cfg config.Config, logger *logging.Logger) *usecase.EventService {
	if logger == nil {
		logger = logging.Default()
	}

	client := statscom.NewClient(statscom.ClientConfig{
		APIHost: cfg.StatsAPIHost,
		APIKey:  cfg.StatsAPIKey,
		Secret:  cfg.StatsSecret,
		Timeout: cfg.StatsTimeout,
		Logger:  logger.Named("statscom"),
	})
	registry := statscom.NewRegistry(
		statscom.NewSoccerAdapter(statscom.AdapterConfig{EventsPath: cfg.StatsEPLEventsPath}),
		statscom.NewFootballAdapter(statscom.AdapterConfig{EventsPath: cfg.StatsNFLEventsPath}),
	)

	return usecase.NewEventService(statscom.NewService(client, registry), usecase.EventServiceConfig{
		Workers:     cfg.LookupWorkers,
		MaxBatchIDs: cfg.LookupMaxIDs,
		Logger:      logger,
	})
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	eventSvc := NewEventService(cfg, logger)
	handler := httpapi.NewHandler(eventSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, idgen.NewUUIDGenerator())

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
