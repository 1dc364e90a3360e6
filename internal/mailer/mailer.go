// Package mailer delivers purpose tokens to account holders through an
// outbound webhook. Email transport and templating are external
// collaborators; this package only hands them the token payload.
package mailer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

//go:generate mockgen -source=mailer.go -destination=../mock/mailer_mock.go -package=mock

// defaultTimeout bounds a delivery attempt when the deployment does not
// configure one.
const defaultTimeout = 10 * time.Second

// Mailer hands a purpose-token delivery to the external mail collaborator.
type Mailer interface {
	Send(ctx context.Context, delivery models.TokenDelivery) error
}

// webhookMailer POSTs deliveries to the configured endpoint as JSON.
type webhookMailer struct {
	client   *resty.Client
	endpoint string
	logger   *logger.Logger
}

// NewWebhookMailer constructs a [Mailer] that POSTs to cfg.WebhookURL.
func NewWebhookMailer(cfg config.Mailer, log *logger.Logger) Mailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &webhookMailer{
		client:   client,
		endpoint: cfg.WebhookURL,
		logger:   log,
	}
}

// Send implements [Mailer]. The token itself is part of the payload; the
// log entry only records email and purpose.
func (m *webhookMailer) Send(ctx context.Context, delivery models.TokenDelivery) error {
	log := logger.FromContext(ctx)

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(delivery).
		Post(m.endpoint)
	if err != nil {
		log.Err(err).
			Str("email", delivery.Email).
			Str("purpose", string(delivery.Purpose)).
			Msg("token delivery failed")
		return fmt.Errorf("posting token delivery: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		log.Error().
			Int("status", resp.StatusCode()).
			Str("email", delivery.Email).
			Str("purpose", string(delivery.Purpose)).
			Msg("token delivery rejected")
		return fmt.Errorf("token delivery rejected with status %d", resp.StatusCode())
	}

	return nil
}

// nopMailer logs and drops deliveries. Used when no webhook is configured,
// typically in development.
type nopMailer struct {
	logger *logger.Logger
}

// NewNop returns a [Mailer] that drops every delivery after logging it.
func NewNop(log *logger.Logger) Mailer {
	return &nopMailer{logger: log}
}

// Send implements [Mailer].
func (m *nopMailer) Send(_ context.Context, delivery models.TokenDelivery) error {
	m.logger.Info().
		Str("email", delivery.Email).
		Str("purpose", string(delivery.Purpose)).
		Msg("mailer not configured; dropping token delivery")
	return nil
}
