package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
	"github.com/brokerdash/backend/internal/integration/adapters"
	"github.com/brokerdash/backend/internal/integration/entrypoint/dto"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[uuid.UUID]*entity.UserContext
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.UserContext, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) FindByTeam(context.Context, uuid.UUID) ([]*entity.UserContext, error) {
	return nil, nil
}

func (r *stubUserRepo) FindTeamLeaders(context.Context) ([]*entity.UserContext, error) {
	return nil, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	token, err := adapters.SignAccessToken(testSecret, userID, "user@example.com", ttl)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	advisor := &entity.UserContext{UserID: uuid.New(), TeamID: uuid.New(), Role: entity.RoleAdvisor}
	roleless := &entity.UserContext{UserID: uuid.New(), TeamID: uuid.New(), Role: "viewer"}
	repo := &stubUserRepo{users: map[uuid.UUID]*entity.UserContext{
		advisor.UserID:  advisor,
		roleless.UserID: roleless,
	}}
	m := NewAuthMiddleware(adapters.NewTokenService(testSecret), repo)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:           "not a bearer token",
			header:         "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:           "garbage token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:           "expired token",
			header:         "Bearer " + signToken(t, advisor.UserID, -time.Minute),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(domainerror.ErrCodeExpiredToken),
		},
		{
			name:           "unknown user",
			header:         "Bearer " + signToken(t, uuid.New(), time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(domainerror.ErrCodeUserNotFound),
		},
		{
			name:           "user without a dashboard role",
			header:         "Bearer " + signToken(t, roleless.UserID, time.Hour),
			expectedStatus: http.StatusForbidden,
			expectedCode:   string(domainerror.ErrCodeInvalidRole),
		},
		{
			name:           "valid advisor",
			header:         "Bearer " + signToken(t, advisor.UserID, time.Hour),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/", m.Authenticate(), func(c *gin.Context) {
				user, ok := GetUserContext(c)
				if !ok || user.UserID != advisor.UserID {
					t.Errorf("expected advisor in context, got %+v", user)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedCode == "" {
				return
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, body.Code)
			}
		})
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	t.Run("rejects requests past the burst", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 2, true)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }

		engine := gin.New()
		engine.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 3)
		for i := range codes {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			codes[i] = rec.Code
		}

		expected := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
		for i := range expected {
			if codes[i] != expected[i] {
				t.Errorf("request %d: expected %d, got %d", i+1, expected[i], codes[i])
			}
		}

		// one token refills per second
		now = now.Add(time.Second)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected refill to allow a request, got %d", rec.Code)
		}
	})

	t.Run("disabled limiter lets everything through", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 1, false)
		engine := gin.New()
		engine.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
			}
		}
	})
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 10, true)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(idleTimeout / 2)
	rl.allow("10.0.0.2")

	now = now.Add(idleTimeout/2 + time.Second)
	rl.Cleanup()

	if _, ok := rl.clients["10.0.0.1"]; ok {
		t.Error("expected idle client to be removed")
	}
	if _, ok := rl.clients["10.0.0.2"]; !ok {
		t.Error("expected recent client to be kept")
	}
}
