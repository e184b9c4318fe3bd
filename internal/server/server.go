package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/workers"
)

// shutdownTimeout bounds draining of in-flight requests and closing of
// resources after a stop signal.
const shutdownTimeout = 15 * time.Second

// closer is a resource released after the HTTP server and the workers stop.
type closer struct {
	name  string
	close func(ctx context.Context) error
}

// Option configures the server.
type Option func(*server)

// WithWorkers runs w next to the HTTP server. The workers are stopped and
// awaited before any closer runs.
func WithWorkers(w *workers.Workers) Option {
	return func(s *server) {
		s.workers = w
	}
}

// WithCloser registers a resource released on shutdown. Closers run in
// registration order.
func WithCloser(name string, fn func(ctx context.Context) error) Option {
	return func(s *server) {
		s.closers = append(s.closers, closer{name: name, close: fn})
	}
}

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	closers    []closer

	// cancel stops the workers
	cancel context.CancelFunc

	logger *logger.Logger
}

func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger, opts ...Option) (Server, error) {
	logger.Info().Msg("creating new server...")
	if handler == nil {
		return nil, errNoHandler
	}
	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	s := &server{
		httpServer: newHTTPServer(handler, cfg, logger),
		cancel:     func() {},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// Shutdown drains the HTTP server, stops the workers and releases the
// registered resources.
func (s *server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.httpServer.shutdown(ctx)

	s.cancel()
	if s.workers != nil {
		s.workers.Wait()
	}

	for _, c := range s.closers {
		if err := c.close(ctx); err != nil {
			s.logger.Err(err).Str("resource", c.name).Msg("error closing resource")
			continue
		}
		s.logger.Info().Str("resource", c.name).Msg("resource closed")
	}
}

// run serves until ctx is done or the listener fails, then shuts down.
func (s *server) run(ctx context.Context) error {
	workersCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	if s.workers != nil {
		s.logger.Info().Msg("Launching workers")
		s.workers.Run(workersCtx)
	}

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Msg("Launching HTTP server")
		listenErr <- s.httpServer.listen()
	}()

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err = <-listenErr:
	}

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}
