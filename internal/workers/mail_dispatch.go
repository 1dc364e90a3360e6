package workers

import (
	"context"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/mailer"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// queueSize bounds the number of pending deliveries. Enqueue drops on
// overflow rather than block a request on the mail collaborator.
const queueSize = 256

// MailDispatcher accepts token deliveries from request handlers and pushes
// them to the [mailer.Mailer] on a background goroutine, keeping the slow
// outbound call off the request path.
type MailDispatcher struct {
	mailer mailer.Mailer
	queue  chan models.TokenDelivery
	logger *logger.Logger
}

// NewMailDispatcher constructs a [MailDispatcher] wired to the given mailer.
func NewMailDispatcher(m mailer.Mailer, log *logger.Logger) *MailDispatcher {
	return &MailDispatcher{
		mailer: m,
		queue:  make(chan models.TokenDelivery, queueSize),
		logger: log,
	}
}

// Enqueue hands a delivery to the dispatcher. It never blocks: when the
// queue is full the delivery is dropped and logged, and the user can
// re-request the token.
func (d *MailDispatcher) Enqueue(delivery models.TokenDelivery) {
	select {
	case d.queue <- delivery:
	default:
		d.logger.Warn().
			Str("email", delivery.Email).
			Str("purpose", string(delivery.Purpose)).
			Msg("mail dispatch queue full; dropping delivery")
	}
}

// Run implements [Worker]. It drains the queue until Close is called and
// the queue is empty.
func (d *MailDispatcher) Run() {
	go func() {
		for delivery := range d.queue {
			if err := d.mailer.Send(context.Background(), delivery); err != nil {
				d.logger.Err(err).
					Str("email", delivery.Email).
					Str("purpose", string(delivery.Purpose)).
					Msg("background token delivery failed")
			}
		}
	}()
}

// Close stops accepting deliveries; the background goroutine exits after
// draining what was already queued.
func (d *MailDispatcher) Close() {
	close(d.queue)
}
