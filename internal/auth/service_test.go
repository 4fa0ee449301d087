package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService("test-secret", string(hash))
}

func TestLogin(t *testing.T) {
	s := newTestService(t, "hunter2")
	ctx := context.Background()

	res, err := s.Login(ctx, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())

	subject, err := s.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, AdminSubject, subject)

	_, err = s.Login(ctx, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Disabled(t *testing.T) {
	s := NewService("test-secret", "")
	_, err := s.Login(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestValidateToken(t *testing.T) {
	s := newTestService(t, "pw")

	other := NewService("other-secret", "")
	foreign, err := other.issueToken(AdminSubject, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = s.ValidateToken(foreign)
	assert.Error(t, err)

	expired, err := s.issueToken(AdminSubject, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = s.ValidateToken(expired)
	assert.Error(t, err)

	_, err = s.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestService(t, "pw")
	token, err := s.issueToken(AdminSubject, time.Now().Add(time.Hour))
	require.NoError(t, err)

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SubjectFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/exports", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, AdminSubject, seen)
}

func TestLoginHandler(t *testing.T) {
	h := NewHandler(newTestService(t, "pw"))

	tests := []struct {
		body   string
		status int
	}{
		{`{"password": "pw"}`, http.StatusOK},
		{`{"password": "bad"}`, http.StatusUnauthorized},
		{`{"password": ""}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(tt.body)))
		assert.Equal(t, tt.status, rec.Code, tt.body)
	}

	disabled := NewHandler(NewService("s", ""))
	rec := httptest.NewRecorder()
	disabled.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"password": "pw"}`)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
