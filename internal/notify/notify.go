// Package notify is the outbound messaging gateway. The catalog and
// reminder services never call it; only the message endpoints of the
// orchestration layer do, and they must supply a context with a deadline.
package notify

import (
	"context"
	"fmt"
)

// Channel selects the delivery transport.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// ValidChannel reports whether ch is a supported delivery channel.
func ValidChannel(ch Channel) bool {
	return ch == ChannelSMS || ch == ChannelWhatsApp
}

// Sender delivers a message body to a destination over a channel and
// returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, channel Channel, to, body string) (string, error)
}

// DeliveryErrorKind separates failures the operator must fix from failures
// a caller may retry.
type DeliveryErrorKind string

const (
	// DeliveryConfig is a missing or rejected sender identity. Retrying
	// cannot help until configuration changes.
	DeliveryConfig DeliveryErrorKind = "config"
	// DeliveryTransport is a transient transport failure, retry-eligible.
	DeliveryTransport DeliveryErrorKind = "transport"
)

// DeliveryError is a failed send attempt.
type DeliveryError struct {
	Kind    DeliveryErrorKind
	Message string
	cause   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed (%s): %s", e.Kind, e.Message)
}

func (e *DeliveryError) Unwrap() error {
	return e.cause
}

// Retryable reports whether a later retry of the same send can succeed.
func (e *DeliveryError) Retryable() bool {
	return e.Kind == DeliveryTransport
}
