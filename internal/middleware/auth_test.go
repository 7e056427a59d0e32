package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, 7)
	ctx = context.WithValue(ctx, EmailKey, "admin@acme.test")
	ctx = context.WithValue(ctx, RoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	m := &AuthMiddleware{}
	called := false
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole("admin"))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsMember(t *testing.T) {
	m := &AuthMiddleware{}
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a member")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole("member"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleWithoutContext(t *testing.T) {
	m := &AuthMiddleware{}
	handler := m.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a role in context")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContextGetters(t *testing.T) {
	req := requestWithRole("member")

	userID, ok := GetUserIDFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, 7, userID)

	email, ok := GetEmailFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, "admin@acme.test", email)

	role, ok := GetRoleFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, "member", role)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
