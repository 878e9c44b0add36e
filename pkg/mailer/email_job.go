package mailer

import "context"

// EmailJob is the JSON payload placed on the email queue. The worker renders
// Template with Data and sends the result through the mail transport.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"` // "reset_password", "order_confirmation"
	Data     map[string]any `json:"data,omitempty"`
}

// Queue publishes email jobs. Satisfied by helpers.RabbitPublisher.
type Queue interface {
	PublishJSON(ctx context.Context, body any) error
}
