package models

import "time"

// Payment account statuses (mirrors Razorpay linked account states)
const (
	PaymentAccountStatusCreated   = "created"
	PaymentAccountStatusActivated = "activated"
	PaymentAccountStatusSuspended = "suspended"
)

// PaymentAccount links a user to their provisioned Razorpay account
type PaymentAccount struct {
	ID                int        `json:"id"`
	UserID            int        `json:"user_id"`
	ProviderAccountID string     `json:"provider_account_id"`
	Status            string     `json:"status"`
	LastCheckedAt     *time.Time `json:"last_checked_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ProvisionAccountRequest represents the request to provision a payment account
type ProvisionAccountRequest struct {
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// PaymentAccountStatusResponse is returned by the status check endpoint
type PaymentAccountStatusResponse struct {
	ProviderAccountID string `json:"provider_account_id"`
	Status            string `json:"status"`
	Provisioned       bool   `json:"provisioned"`
}
