package http

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/metrics"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/service"
)

// tokenCookieName is the cookie carrying the identity credential.
const tokenCookieName = "token"

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// cookie attributes of the token cookie
	secureCookie bool
	sameSite     http.SameSite

	cors cors.Options

	// requestTimeout bounds the context of every request; zero disables it
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. In production the token cookie is
// sent cross-site over HTTPS only; elsewhere it is a strict same-site cookie.
func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		metrics:        m,
		secureCookie:   false,
		sameSite:       http.SameSiteStrictMode,
		cors:           newCORSOptions(cfg.Server.AllowedOrigins),
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
	if cfg.App.IsProduction() {
		h.secureCookie = true
		h.sameSite = http.SameSiteNoneMode
	}

	logger.Info().
		Bool("secure_cookie", h.secureCookie).
		Strs("allowed_origins", h.cors.AllowedOrigins).
		Msg("http handler created")
	return h
}
