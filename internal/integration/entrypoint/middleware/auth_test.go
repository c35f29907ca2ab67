package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
)

type fakeTokenService struct {
	userID uuid.UUID
}

func (f *fakeTokenService) GenerateAccessToken(_ context.Context, _ uuid.UUID, _ string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "valid" {
		return nil, errors.New("invalid token")
	}
	return &adapter.TokenClaims{
		UserID:    f.userID,
		Email:     "user@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func newAuthRouter(tokens adapter.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return router
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	router := newAuthRouter(&fakeTokenService{})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"rejected token", "Bearer expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthenticateStoresUserID(t *testing.T) {
	userID := uuid.New()
	router := newAuthRouter(&fakeTokenService{userID: userID})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != userID.String() {
		t.Errorf("expected user ID %s from context, got %s", userID, rec.Body.String())
	}
}

func TestGetUserIDFromContextWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := GetUserIDFromContext(c); ok {
		t.Error("expected no user ID on an unauthenticated context")
	}
}
