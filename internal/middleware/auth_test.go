package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asoniya/travel-planner/backend/internal/middleware"
)

// mockVerifier is a test double for middleware.TokenVerifier.
type mockVerifier struct {
	verify func(token string) (uuid.UUID, error)
}

func (m *mockVerifier) Verify(token string) (uuid.UUID, error) { return m.verify(token) }

var _ middleware.TokenVerifier = (*mockVerifier)(nil)

func TestRequireAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	verifier := &mockVerifier{
		verify: func(token string) (uuid.UUID, error) {
			assert.Equal(t, "good-token", token)
			return userID, nil
		},
	}

	var gotID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = middleware.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trip/summary", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	middleware.RequireAuth(verifier)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	verifier := &mockVerifier{
		verify: func(string) (uuid.UUID, error) {
			t.Fatal("verifier must not be called without a bearer header")
			return uuid.Nil, nil
		},
	}
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trip/summary", nil)
	rec := httptest.NewRecorder()

	middleware.RequireAuth(verifier)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t,
		`{"error":{"code":"unauthenticated","message":"missing bearer token"}}`,
		rec.Body.String())
}

func TestRequireAuth_NonBearerScheme(t *testing.T) {
	verifier := &mockVerifier{
		verify: func(string) (uuid.UUID, error) {
			t.Fatal("verifier must not be called for a non-bearer header")
			return uuid.Nil, nil
		},
	}
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trip/summary", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	middleware.RequireAuth(verifier)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	verifier := &mockVerifier{
		verify: func(string) (uuid.UUID, error) {
			return uuid.Nil, errors.New("bad signature")
		},
	}
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trip/summary", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	middleware.RequireAuth(verifier)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t,
		`{"error":{"code":"unauthenticated","message":"invalid or expired token"}}`,
		rec.Body.String())
}

func TestUserID_AbsentFromBareContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.UserID(req.Context())

	assert.False(t, ok)
}
