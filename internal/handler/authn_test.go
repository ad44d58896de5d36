package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asoniya/travel-planner/backend/internal/domain"
	"github.com/asoniya/travel-planner/backend/internal/service"
)

// ---- POST /api/signup ------------------------------------------------------

func TestSignup_OK(t *testing.T) {
	userID := uuid.New()
	users := &mockUserServicer{
		signup: func(_ context.Context, in service.SignupInput) (domain.User, error) {
			assert.Equal(t, "selam", in.Username)
			assert.Equal(t, "selam@example.com", in.Email)
			return domain.User{ID: userID, Username: in.Username}, nil
		},
	}
	tokens := &mockTokenIssuer{
		issue: func(id uuid.UUID) (string, error) {
			assert.Equal(t, userID, id)
			return "fresh-token", nil
		},
	}
	h := newRouter(deps{users: users, tokens: tokens}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/api/signup",
		`{"username":"selam","email":"selam@example.com","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "fresh-token", body.Token)
}

func TestSignup_MissingFields(t *testing.T) {
	users := &mockUserServicer{
		signup: func(_ context.Context, _ service.SignupInput) (domain.User, error) {
			return domain.User{}, domain.ErrValidation
		},
	}
	h := newRouter(deps{users: users}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/api/signup", `{"username":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	users := &mockUserServicer{
		signup: func(_ context.Context, _ service.SignupInput) (domain.User, error) {
			return domain.User{}, domain.ErrConflict
		},
	}
	h := newRouter(deps{users: users}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/api/signup",
		`{"username":"selam","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body.Error.Code)
}

// ---- POST /api/login -------------------------------------------------------

func TestLogin_OK(t *testing.T) {
	userID := uuid.New()
	users := &mockUserServicer{
		authenticate: func(_ context.Context, username, password string) (domain.User, error) {
			assert.Equal(t, "selam", username)
			assert.Equal(t, "hunter2hunter2", password)
			return domain.User{ID: userID}, nil
		},
	}
	h := newRouter(deps{users: users}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/api/login",
		`{"username":"selam","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test-token")
}

func TestLogin_BadCredentials(t *testing.T) {
	users := &mockUserServicer{
		authenticate: func(_ context.Context, _, _ string) (domain.User, error) {
			return domain.User{}, domain.ErrUnauthenticated
		},
	}
	h := newRouter(deps{users: users}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/api/login",
		`{"username":"selam","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- POST /api/logout ------------------------------------------------------

func TestLogout_AlwaysSucceeds(t *testing.T) {
	h := newRouter(deps{}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/api/logout", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","message":"Logout successful."}`, rec.Body.String())
}
