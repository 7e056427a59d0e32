package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"paydocs-backend/internal/models"
)

func TestChangePasswordRequiresBothFields(t *testing.T) {
	s := NewUserService(nil, nil)

	err := s.ChangePassword(context.Background(), 1, &models.ChangePasswordRequest{NewPassword: "hunter2"})
	assert.EqualError(t, err, "current and new password are required")

	err = s.ChangePassword(context.Background(), 1, &models.ChangePasswordRequest{CurrentPassword: "hunter2"})
	assert.EqualError(t, err, "current and new password are required")
}
