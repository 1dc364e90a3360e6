package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// recordingMailer captures every delivery it receives.
type recordingMailer struct {
	mu         sync.Mutex
	deliveries []models.TokenDelivery
	done       chan struct{}
	want       int
}

func newRecordingMailer(want int) *recordingMailer {
	return &recordingMailer{done: make(chan struct{}), want: want}
}

func (m *recordingMailer) Send(_ context.Context, delivery models.TokenDelivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deliveries = append(m.deliveries, delivery)
	if len(m.deliveries) == m.want {
		close(m.done)
	}
	return nil
}

func (m *recordingMailer) sent() []models.TokenDelivery {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.TokenDelivery(nil), m.deliveries...)
}

func TestMailDispatcher_DeliversInBackground(t *testing.T) {
	// Arrange
	m := newRecordingMailer(2)
	dispatcher := NewMailDispatcher(m, logger.Nop())
	dispatcher.Run()
	defer dispatcher.Close()

	first := models.TokenDelivery{Email: "a@example.com", Purpose: models.PurposeEmailVerify, Token: "t1"}
	second := models.TokenDelivery{Email: "b@example.com", Purpose: models.PurposePasswordReset, Token: "t2"}

	// Act
	dispatcher.Enqueue(first)
	dispatcher.Enqueue(second)

	// Assert
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("deliveries were not dispatched in time")
	}

	require.Len(t, m.sent(), 2)
	assert.Equal(t, first, m.sent()[0])
	assert.Equal(t, second, m.sent()[1])
}

// TestMailDispatcher_EnqueueNeverBlocks checks that a full queue drops the
// delivery instead of stalling the caller. The dispatcher is not running,
// so nothing drains the queue.
func TestMailDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Arrange
	dispatcher := NewMailDispatcher(newRecordingMailer(0), logger.Nop())

	// Act
	finished := make(chan struct{})
	go func() {
		for i := 0; i < queueSize+10; i++ {
			dispatcher.Enqueue(models.TokenDelivery{Email: "a@example.com"})
		}
		close(finished)
	}()

	// Assert
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

// TestMailDispatcher_CloseDrains checks that deliveries queued before Close
// still reach the mailer.
func TestMailDispatcher_CloseDrains(t *testing.T) {
	// Arrange
	m := newRecordingMailer(3)
	dispatcher := NewMailDispatcher(m, logger.Nop())

	for i := 0; i < 3; i++ {
		dispatcher.Enqueue(models.TokenDelivery{Email: "a@example.com", Token: "t"})
	}

	// Act
	dispatcher.Run()
	dispatcher.Close()

	// Assert
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued deliveries were not drained after Close")
	}
	assert.Len(t, m.sent(), 3)
}

func TestWorkers_RunsAll(t *testing.T) {
	// Arrange
	var ran []string
	ws := NewWorkers(logger.Nop(),
		workerFunc(func() { ran = append(ran, "first") }),
		workerFunc(func() { ran = append(ran, "second") }),
	)

	// Act
	ws.Run()

	// Assert
	assert.Equal(t, []string{"first", "second"}, ran)
}

type workerFunc func()

func (f workerFunc) Run() { f() }
