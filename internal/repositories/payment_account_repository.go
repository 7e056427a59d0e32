package repositories

import (
	"context"

	"paydocs-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentAccountRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentAccountRepository(db *pgxpool.Pool) *PaymentAccountRepository {
	return &PaymentAccountRepository{DB: db}
}

func (r *PaymentAccountRepository) Create(ctx context.Context, a *models.PaymentAccount) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO payment_accounts(user_id, provider_account_id, status)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		a.UserID, a.ProviderAccountID, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// GetByUser retrieves the payment account linked to a user
func (r *PaymentAccountRepository) GetByUser(ctx context.Context, userID int) (*models.PaymentAccount, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, user_id, provider_account_id, status, last_checked_at, created_at, updated_at
         FROM payment_accounts WHERE user_id=$1`, userID)

	var a models.PaymentAccount
	err := row.Scan(&a.ID, &a.UserID, &a.ProviderAccountID, &a.Status,
		&a.LastCheckedAt, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

// GetByProviderAccountID looks an account up by the provider's id (webhooks)
func (r *PaymentAccountRepository) GetByProviderAccountID(ctx context.Context, providerAccountID string) (*models.PaymentAccount, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, user_id, provider_account_id, status, last_checked_at, created_at, updated_at
         FROM payment_accounts WHERE provider_account_id=$1`, providerAccountID)

	var a models.PaymentAccount
	err := row.Scan(&a.ID, &a.UserID, &a.ProviderAccountID, &a.Status,
		&a.LastCheckedAt, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

// UpdateStatus records the latest provider-reported status and check time
func (r *PaymentAccountRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE payment_accounts
         SET status=$1, last_checked_at=CURRENT_TIMESTAMP, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`,
		status, id)
	return err
}
