package service

import (
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/token"
)

// Services aggregates every service the transport layer depends on.
type Services struct {
	Account AccountService
}

// NewServices wires the account service to its collaborators. The token
// service is constructed here because its missing-secret check belongs to
// startup: a deployment without a signing key must not come up.
func NewServices(identities store.IdentityRepository, queue TokenDeliveryQueue, cfg config.App, log *logger.Logger) (*Services, error) {
	log.Info().Msg("creating new services...")

	tokens, err := token.NewService(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Account: NewAccountService(identities, tokens, queue, cfg, log),
	}, nil
}
