package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydocs-backend/internal/models"
)

type logUpdate struct {
	id                              int
	status, providerID, errMessage string
}

type fakeLogRepo struct {
	created []*models.EmailLog
	updates []logUpdate
}

func (r *fakeLogRepo) Create(ctx context.Context, l *models.EmailLog) error {
	l.ID = len(r.created) + 1
	r.created = append(r.created, l)
	return nil
}

func (r *fakeLogRepo) UpdateStatus(ctx context.Context, id int, status, providerID, errorMessage string) error {
	r.updates = append(r.updates, logUpdate{id, status, providerID, errorMessage})
	return nil
}

func TestResendServiceSend(t *testing.T) {
	var got resendRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"id": "msg_123"})
	}))
	defer srv.Close()

	s := NewResendService("rk_test", "billing@acme.test")
	s.BaseURL = srv.URL

	err := s.Send(&Message{
		To:      "jane@example.com",
		Subject: "Invoice INV-001 from Acme Co",
		HTML:    "<p>Please find your invoice attached.</p>",
		Attachments: []Attachment{
			{Filename: "Invoice-INV-001.pdf", Content: []byte("%PDF-fake"), ContentType: "application/pdf"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer rk_test", gotAuth)
	assert.Equal(t, "billing@acme.test", got.From)
	assert.Equal(t, []string{"jane@example.com"}, got.To)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "Invoice-INV-001.pdf", got.Attachments[0].Filename)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-fake")), got.Attachments[0].Content)
}

func TestResendServiceAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewResendService("bad-key", "billing@acme.test")
	s.BaseURL = srv.URL

	err := s.Send(&Message{To: "jane@example.com", Subject: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestResendServiceDeliveryLog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "msg_456"})
	}))
	defer srv.Close()

	repo := &fakeLogRepo{}
	s := NewResendService("rk_test", "billing@acme.test")
	s.BaseURL = srv.URL
	s.SetLogRepository(repo)

	require.NoError(t, s.Send(&Message{To: "jane@example.com", Subject: "hello"}))

	// Pending row created before the call, outcome recorded after.
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.EmailStatusPending, repo.created[0].Status)
	assert.Equal(t, "jane@example.com", repo.created[0].Recipient)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, repo.created[0].ID, repo.updates[0].id)
	assert.Equal(t, models.EmailStatusSent, repo.updates[0].status)
	assert.Equal(t, "msg_456", repo.updates[0].providerID)
}

func TestResendServiceDeliveryLogFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := &fakeLogRepo{}
	s := NewResendService("rk_test", "billing@acme.test")
	s.BaseURL = srv.URL
	s.SetLogRepository(repo)

	require.Error(t, s.Send(&Message{To: "jane@example.com", Subject: "hello"}))

	require.Len(t, repo.updates, 1)
	assert.Equal(t, models.EmailStatusFailed, repo.updates[0].status)
	assert.Contains(t, repo.updates[0].errMessage, "429")
}

func TestMockEmailServiceRecords(t *testing.T) {
	s := NewMockEmailService()
	require.NoError(t, s.Send(&Message{To: "a@b.c", Subject: "hello"}))
	require.Len(t, s.Sent, 1)
	assert.Equal(t, "a@b.c", s.Sent[0].To)
}
