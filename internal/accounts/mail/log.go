package mail

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// LogSender writes messages to the log instead of sending them. Development
// only: the text body, including any verification link, is logged.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return deliveryErr(err)
	}

	slogx.FromContext(ctx).Info("mail not sent (log mode)",
		slog.String("to", m.To),
		slog.String("subject", m.Subject),
		slog.String("text", m.Text),
	)
	return nil
}

// Outbox keeps messages in memory. Tests read verification links from it.
type Outbox struct {
	mu   sync.Mutex
	msgs []Message

	// Err, when set, is returned (wrapped in ErrDelivery) instead of
	// accepting the message.
	Err error
}

func (o *Outbox) Send(_ context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return deliveryErr(err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.Err != nil {
		return deliveryErr(o.Err)
	}
	o.msgs = append(o.msgs, m)
	return nil
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.msgs...)
}

// Last returns the most recent message.
func (o *Outbox) Last() (Message, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.msgs) == 0 {
		return Message{}, false
	}
	return o.msgs[len(o.msgs)-1], true
}
