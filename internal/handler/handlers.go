// Package handler assembles the transport handlers of the restaurant server.
package handler

import (
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/handler/http"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/metrics"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, m, cfg, logger),
	}, nil
}
