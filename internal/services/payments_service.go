package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	razorpay "github.com/razorpay/razorpay-go"

	"paydocs-backend/internal/models"
	"paydocs-backend/internal/repositories"
)

// PaymentsService provisions Razorpay linked accounts for users and keeps
// their status in sync via polling and webhooks.
type PaymentsService struct {
	AccountRepo   *repositories.PaymentAccountRepository
	client        *razorpay.Client
	webhookSecret string
}

func NewPaymentsService(keyID, keySecret, webhookSecret string, accountRepo *repositories.PaymentAccountRepository) *PaymentsService {
	var client *razorpay.Client
	if keyID != "" && keySecret != "" {
		client = razorpay.NewClient(keyID, keySecret)
	}
	return &PaymentsService{
		AccountRepo:   accountRepo,
		client:        client,
		webhookSecret: webhookSecret,
	}
}

// ProvisionAccount creates a linked account at the provider and stores the
// mapping. A user gets at most one account; repeat calls return the
// existing one.
func (s *PaymentsService) ProvisionAccount(ctx context.Context, user *models.User, req *models.ProvisionAccountRequest) (*models.PaymentAccount, error) {
	if existing, err := s.AccountRepo.GetByUser(ctx, user.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if s.client == nil {
		return nil, errors.New("payment provider not configured")
	}
	if req.BusinessName == "" {
		return nil, errors.New("business_name is required")
	}
	email := req.Email
	if email == "" {
		email = user.Email
	}

	accountData := map[string]interface{}{
		"type":                "route",
		"email":               email,
		"phone":               req.Phone,
		"legal_business_name": req.BusinessName,
		"business_type":       "individual",
		"reference_id":        fmt.Sprintf("user_%d", user.ID),
	}

	created, err := s.client.Account.Create(accountData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider account: %w", err)
	}

	accountID, _ := created["id"].(string)
	if accountID == "" {
		return nil, errors.New("provider returned no account id")
	}
	status, _ := created["status"].(string)
	if status == "" {
		status = models.PaymentAccountStatusCreated
	}

	account := &models.PaymentAccount{
		UserID:            user.ID,
		ProviderAccountID: accountID,
		Status:            status,
	}
	if err := s.AccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// AccountStatus fetches the live status from the provider, persists it,
// and returns the current state. Users without an account get a
// not-provisioned response, not an error.
func (s *PaymentsService) AccountStatus(ctx context.Context, userID int) (*models.PaymentAccountStatusResponse, error) {
	account, err := s.AccountRepo.GetByUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.PaymentAccountStatusResponse{Provisioned: false}, nil
	}
	if err != nil {
		return nil, err
	}

	if s.client != nil {
		fetched, err := s.client.Account.Fetch(account.ProviderAccountID, nil, nil)
		if err != nil {
			// Provider unreachable: serve the last known status
			log.Printf("[Payments] failed to fetch account %s: %v", account.ProviderAccountID, err)
		} else if status, ok := fetched["status"].(string); ok && status != "" && status != account.Status {
			if err := s.AccountRepo.UpdateStatus(ctx, account.ID, status); err != nil {
				return nil, err
			}
			account.Status = status
		}
	}

	return &models.PaymentAccountStatusResponse{
		ProviderAccountID: account.ProviderAccountID,
		Status:            account.Status,
		Provisioned:       true,
	}, nil
}

// VerifyWebhookSignature verifies the webhook signature
func (s *PaymentsService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true // Skip verification if not configured
	}

	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// ProcessWebhook processes Razorpay account webhook events
func (s *PaymentsService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	switch event {
	case "account.activated":
		return s.handleAccountStatus(ctx, payload, models.PaymentAccountStatusActivated)
	case "account.suspended":
		return s.handleAccountStatus(ctx, payload, models.PaymentAccountStatusSuspended)
	default:
		log.Printf("[Payments] Unhandled webhook event: %s", event)
		return nil
	}
}

func (s *PaymentsService) handleAccountStatus(ctx context.Context, payload map[string]interface{}, status string) error {
	accountEntity, ok := payload["account"].(map[string]interface{})
	if !ok {
		accountEntity = payload
	}
	entity, ok := accountEntity["entity"].(map[string]interface{})
	if !ok {
		entity = accountEntity
	}

	accountID, _ := entity["id"].(string)
	if accountID == "" {
		return fmt.Errorf("missing account id in webhook")
	}

	account, err := s.AccountRepo.GetByProviderAccountID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("unknown provider account %s: %w", accountID, err)
	}
	return s.AccountRepo.UpdateStatus(ctx, account.ID, status)
}
