package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ischaojie/soulapi/config"
	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/interface/middleware"
	"github.com/ischaojie/soulapi/pkg/helpers"
	"github.com/ischaojie/soulapi/pkg/validation"
)

// asUser injects the user into the context the way RequireAuth would.
func asUser(repo *memUsers, id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := repo.GetByID(c.Request.Context(), id)
		if err == nil {
			c.Set(middleware.CtxUserKey, u)
		}
		c.Next()
	}
}

func testUserSetup(t *testing.T) (*gin.Engine, *application.AuthService, *memUsers) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	repo := newMemUsers()
	logger := logrus.New()
	jwt := helpers.NewJWTManager("test-secret", time.Hour, 30*time.Minute)
	cfg := &config.Config{AppName: "soulapi", UsersOpenRegistration: true}
	svc := application.NewAuthService(repo, jwt, nil, logger, cfg)
	h := NewUserHandler(svc, logger)

	r := gin.New()
	r.GET("/users/me", asUser(repo, 1), h.Me)
	r.PUT("/users/me", asUser(repo, 1), h.UpdateMe)
	r.POST("/users/confirm-password", asUser(repo, 1), h.ConfirmPassword)
	r.POST("/users", h.Create)
	r.GET("/users", h.List)
	r.PUT("/users/:uid", h.Update)
	return r, svc, repo
}

func TestMeEndpoint(t *testing.T) {
	r, svc, _ := testUserSetup(t)
	_, err := svc.Register(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "hashed_password")
}

func TestUpdateMeEndpoint(t *testing.T) {
	r, svc, repo := testUserSetup(t)
	_, err := svc.Register(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)

	w := doRequest(r, http.MethodPut, "/users/me", `{"full_name":"Alice B","password":"newsecret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice B")

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	ok, err := helpers.VerifyPassword("newsecret", stored.HashedPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmPasswordEndpoint(t *testing.T) {
	r, svc, _ := testUserSetup(t)
	_, err := svc.Register(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "bob@example.com", "secret2", "Bob")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		token, _, err := svc.JWT.GenerateConfirmToken("alice@example.com")
		require.NoError(t, err)

		w := doRequest(r, http.MethodPost, "/users/confirm-password", `{"token":"`+token+`","password":"changed1"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Password reset successfully")
	})

	t.Run("foreign token", func(t *testing.T) {
		// Route authenticates as Alice; token was minted for Bob.
		token, _, err := svc.JWT.GenerateConfirmToken("bob@example.com")
		require.NoError(t, err)

		w := doRequest(r, http.MethodPost, "/users/confirm-password", `{"token":"`+token+`","password":"changed1"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "mismatched identity")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/users/confirm-password", `{"token":"garbage","password":"changed1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminCreateUser(t *testing.T) {
	r, _, repo := testUserSetup(t)

	w := doRequest(r, http.MethodPost, "/users", `{"email":"new@example.com","password":"secret1","full_name":"New","is_superuser":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp.Data["is_confirmed"])
	assert.Equal(t, true, resp.Data["is_superuser"])

	stored, err := repo.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsConfirmed)

	w = doRequest(r, http.MethodPost, "/users", `{"email":"new@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists")
}

func TestAdminUpdateUser(t *testing.T) {
	r, svc, _ := testUserSetup(t)
	_, err := svc.Register(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)

	w := doRequest(r, http.MethodPut, "/users/1", `{"is_active":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp.Data["is_active"])

	w = doRequest(r, http.MethodPut, "/users/99", `{"is_active":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPut, "/users/abc", `{"is_active":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserListPagination(t *testing.T) {
	r, svc, _ := testUserSetup(t)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := svc.Register(context.Background(), email, "secret1", "")
		require.NoError(t, err)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}

	w := doRequest(r, http.MethodGet, "/users?skip=1&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "b@x.com", resp.Data[0]["email"])

	// Out-of-range params fall back to defaults.
	w = doRequest(r, http.MethodGet, "/users?skip=-5&limit=5000", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
}
