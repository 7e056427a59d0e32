package repositories

import (
	"context"

	"paydocs-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EmailLogRepository struct {
	DB *pgxpool.Pool
}

func NewEmailLogRepository(db *pgxpool.Pool) *EmailLogRepository {
	return &EmailLogRepository{DB: db}
}

func (r *EmailLogRepository) Create(ctx context.Context, l *models.EmailLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO email_logs(document_id, recipient, subject, status, provider_id, error_message)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		l.DocumentID, l.Recipient, l.Subject, l.Status, l.ProviderID, l.ErrorMessage,
	).Scan(&l.ID, &l.CreatedAt)
}

// UpdateStatus records the delivery outcome reported by the provider
func (r *EmailLogRepository) UpdateStatus(ctx context.Context, id int, status, providerID, errorMessage string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE email_logs SET status=$1, provider_id=$2, error_message=$3 WHERE id=$4`,
		status, providerID, errorMessage, id)
	return err
}

// ListByDocument returns the delivery history of one document, newest first
func (r *EmailLogRepository) ListByDocument(ctx context.Context, documentID int) ([]*models.EmailLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, document_id, recipient, subject, status, provider_id, error_message, created_at
         FROM email_logs WHERE document_id=$1 ORDER BY created_at DESC`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.EmailLog
	for rows.Next() {
		var l models.EmailLog
		err := rows.Scan(&l.ID, &l.DocumentID, &l.Recipient, &l.Subject,
			&l.Status, &l.ProviderID, &l.ErrorMessage, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
