package models

import "time"

// Email delivery statuses
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// EmailLog records one outbound email attempt
type EmailLog struct {
	ID           int       `json:"id"`
	DocumentID   *int      `json:"document_id"`
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	ProviderID   string    `json:"provider_id"` // message id returned by the provider
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}
