package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/handler"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer assembles the transport servers enabled by cfg. At least one
// listen address must be configured or errNoTransportConfigured is returned.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" {
		s.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}

	if s.httpServer == nil {
		return nil, errNoTransportConfigured
	}

	return s, nil
}

// RunServer launches the HTTP listener and blocks until a termination
// signal arrives, then shuts everything down gracefully.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	stopped := make(chan struct{})
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(stopped)
	}()

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-stopped
	s.logger.Info().Msg("server shut down gracefully")
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}
