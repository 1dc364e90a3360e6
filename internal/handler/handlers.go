package handler

import (
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/handler/http"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, version string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, version, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
