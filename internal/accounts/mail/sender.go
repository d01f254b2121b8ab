// Package mail delivers account emails. Every failure to hand a message to
// the transport is reported as ErrDelivery so callers never mistake an
// unsent verification email for a sent one.
package mail

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrDelivery   = errors.New("mail: delivery failed")
	ErrIncomplete = errors.New("mail: incomplete message")
)

// Message is one outbound email. HTML is optional; the rest are required.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Validate checks the required fields are present.
func (m Message) Validate() error {
	switch {
	case m.From == "":
		return fmt.Errorf("%w: missing from", ErrIncomplete)
	case m.To == "":
		return fmt.Errorf("%w: missing to", ErrIncomplete)
	case m.Subject == "":
		return fmt.Errorf("%w: missing subject", ErrIncomplete)
	case m.Text == "":
		return fmt.Errorf("%w: missing text body", ErrIncomplete)
	}
	return nil
}

// Sender dispatches one message. Implementations must return an error
// wrapping ErrDelivery when the message was not accepted.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

func deliveryErr(err error) error {
	return fmt.Errorf("%w: %w", ErrDelivery, err)
}
