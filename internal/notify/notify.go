// Package notify raises desktop notifications for connection changes.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

const appName = "PeerLearn"

// Notifier reports realtime connection drops and recoveries.
type Notifier struct {
	enabled bool
	logger  *zap.Logger
	send    func(title, body string) error

	mu   sync.Mutex
	last *bool
}

// New returns a notifier. When enabled is false Connection is a no-op.
func New(enabled bool, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		enabled: enabled,
		logger:  logger,
		send: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}
}

// Connection notifies when connected differs from the last reported state.
// The first report after startup only records the state unless it is a drop.
func (n *Notifier) Connection(connected bool) {
	if !n.enabled {
		return
	}

	n.mu.Lock()
	prev := n.last
	n.last = &connected
	n.mu.Unlock()

	if prev != nil && *prev == connected {
		return
	}
	if prev == nil && connected {
		return
	}

	body := "Realtime connection lost. Reconnecting…"
	if connected {
		body = "Realtime connection restored."
	}
	if err := n.send(appName, body); err != nil {
		n.logger.Debug("desktop notification failed", zap.Error(err))
	}
}
