package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	s := NewPaymentsService("", "", "whsec_test", nil)
	body := []byte(`{"event":"account.activated"}`)

	assert.True(t, s.VerifyWebhookSignature(body, sign("whsec_test", body)))
	assert.False(t, s.VerifyWebhookSignature(body, sign("wrong-secret", body)))
	assert.False(t, s.VerifyWebhookSignature(body, "garbage"))
}

func TestVerifyWebhookSignatureUnconfigured(t *testing.T) {
	s := NewPaymentsService("", "", "", nil)
	// No secret configured: verification is skipped
	assert.True(t, s.VerifyWebhookSignature([]byte("anything"), "whatever"))
}
