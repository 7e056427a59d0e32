package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"paydocs-backend/internal/models"
)

const defaultAPIBaseURL = "https://api.resend.com"

// Provider is an interface for sending transactional email
type Provider interface {
	Send(msg *Message) error
	SetLogRepository(repo EmailLogRepo)
}

// EmailLogRepo interface for delivery logging. A pending row is created
// before the provider call and updated with the outcome afterwards, so a
// crash mid-send still leaves a trace.
type EmailLogRepo interface {
	Create(ctx context.Context, log *models.EmailLog) error
	UpdateStatus(ctx context.Context, id int, status, providerID, errorMessage string) error
}

// Attachment is a file attached to an outbound message
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Message is one outbound email
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
	DocumentID  *int // for the delivery log, may be nil
}

// ResendService implements Provider for the Resend HTTP API
type ResendService struct {
	APIKey  string
	From    string
	BaseURL string
	Client  *http.Client
	LogRepo EmailLogRepo
}

// NewResendService creates a new Resend email service
func NewResendService(apiKey, from string) *ResendService {
	return &ResendService{
		APIKey:  apiKey,
		From:    from,
		BaseURL: defaultAPIBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetLogRepository sets the email log repository
func (s *ResendService) SetLogRepository(repo EmailLogRepo) {
	s.LogRepo = repo
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

type resendRequest struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send posts the message to the provider and logs the outcome
func (s *ResendService) Send(msg *Message) error {
	emailLog := &models.EmailLog{
		DocumentID: msg.DocumentID,
		Recipient:  msg.To,
		Subject:    msg.Subject,
		Status:     models.EmailStatusPending,
	}
	s.createLog(emailLog)

	payload := resendRequest{
		From:    s.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		s.recordOutcome(emailLog, models.EmailStatusFailed, "", err.Error())
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequest("POST", s.BaseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		s.recordOutcome(emailLog, models.EmailStatusFailed, "", err.Error())
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		s.recordOutcome(emailLog, models.EmailStatusFailed, "", err.Error())
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		s.recordOutcome(emailLog, models.EmailStatusFailed, "",
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)))
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp resendResponse
	json.Unmarshal(body, &apiResp)

	s.recordOutcome(emailLog, models.EmailStatusSent, apiResp.ID, "")
	return nil
}

// createLog inserts the pending delivery row; best-effort
func (s *ResendService) createLog(emailLog *models.EmailLog) {
	if s.LogRepo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.LogRepo.Create(ctx, emailLog); err != nil {
		log.Printf("[Email] failed to create delivery log: %v", err)
	}
}

// recordOutcome updates the delivery row with the final status; best-effort
func (s *ResendService) recordOutcome(emailLog *models.EmailLog, status, providerID, errorMessage string) {
	if s.LogRepo == nil || emailLog.ID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.LogRepo.UpdateStatus(ctx, emailLog.ID, status, providerID, errorMessage); err != nil {
		log.Printf("[Email] failed to record delivery outcome: %v", err)
	}
}

// MockEmailService is a mock implementation for testing (prints to console)
type MockEmailService struct {
	LogRepo EmailLogRepo
	Sent    []*Message
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SetLogRepository sets the email log repository
func (s *MockEmailService) SetLogRepository(repo EmailLogRepo) {
	s.LogRepo = repo
}

// Send records the message and logs it as sent
func (s *MockEmailService) Send(msg *Message) error {
	s.Sent = append(s.Sent, msg)
	fmt.Printf("\n========== MOCK EMAIL ==========\n")
	fmt.Printf("To: %s\n", msg.To)
	fmt.Printf("Subject: %s\n", msg.Subject)
	fmt.Printf("Attachments: %d\n", len(msg.Attachments))
	fmt.Printf("================================\n\n")

	if s.LogRepo != nil {
		emailLog := &models.EmailLog{
			DocumentID: msg.DocumentID,
			Recipient:  msg.To,
			Subject:    msg.Subject,
			Status:     models.EmailStatusSent,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.LogRepo.Create(ctx, emailLog)
		}()
	}

	return nil
}
