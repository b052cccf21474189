package web

import (
	"log/slog"

	"github.com/leapstack-labs/greeter/internal/web/notifier"
)

// Broadcaster is a greet.Display that raises an alert in every browser
// connected to the updates stream. Browsers that are not connected when
// the greeting is published never see it.
type Broadcaster struct {
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewBroadcaster creates a broadcaster publishing to n.
func NewBroadcaster(n *notifier.Notifier, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{notifier: n, logger: logger}
}

// Display publishes text as a greeting event.
func (b *Broadcaster) Display(text string) {
	listeners := b.notifier.Count()
	ev := b.notifier.Publish(notifier.KindGreeting, text)
	if listeners == 0 {
		b.logger.Warn("greeting published with no connected browsers", "id", ev.ID)
		return
	}
	b.logger.Debug("greeting published", "id", ev.ID, "listeners", listeners)
}
