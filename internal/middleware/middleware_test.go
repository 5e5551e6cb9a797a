package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-attendance/internal/domain"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-length-123"

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id":     c.GetString("user_id"),
				"employee_id": c.GetString("employee_id"),
				"role":        c.GetString("role"),
			})
		})
		return r
	}

	t.Run("valid token populates context", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":     "u-1",
			"employee_id": "e-1",
			"role":        "manager",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"u-1","employee_id":"e-1","role":"manager"}`, w.Body.String())
	})

	t.Run("cookie token is accepted", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u-1", "role": "employee"})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing token", header: "", message: "token not found"},
		{name: "garbage token", header: "Bearer not-a-jwt", message: "invalid token"},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"user_id": "u-1",
				"role":    "employee",
				"exp":     time.Now().Add(-time.Minute).Unix(),
			}),
			message: "token expired",
		},
		{
			name:    "missing role",
			header:  "Bearer " + signToken(t, jwt.MapClaims{"user_id": "u-1"}),
			message: "token is missing required claims",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			newRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			env := decode(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
			assert.Equal(t, tt.message, env.Error.Message)
		})
	}
}

type fakeRBAC struct {
	enforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(role string, svc middleware.RBACService) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/leaves/:id/decision",
			func(c *gin.Context) {
				if role != "" {
					c.Set("role", role)
				}
			},
			middleware.RBACAuthorize(svc, "leave", "approve"),
			func(c *gin.Context) { c.Status(http.StatusNoContent) },
		)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/decision", nil))
		return w
	}

	allowManagers := &fakeRBAC{enforceFn: func(req domain.EnforceRequest) (bool, error) {
		assert.Equal(t, "leave", req.Resource)
		assert.Equal(t, "approve", req.Action)
		return req.Role == "manager", nil
	}}

	assert.Equal(t, http.StatusNoContent, serve("manager", allowManagers).Code)

	w := serve("employee", allowManagers)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, w).Error.Code)

	assert.Equal(t, http.StatusUnauthorized, serve("", allowManagers).Code)

	broken := &fakeRBAC{enforceFn: func(domain.EnforceRequest) (bool, error) {
		return false, errors.New("policy unavailable")
	}}
	assert.Equal(t, http.StatusInternalServerError, serve("manager", broken).Code)
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RateLimitByIP(0.001, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitByUser_SkipsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", middleware.RateLimitByUser(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const cacheKey = "idemp:/leaves:u-1:k-1"

	newRouter := func(mw gin.HandlerFunc, calls *int) *gin.Engine {
		r := gin.New()
		r.POST("/leaves",
			func(c *gin.Context) { c.Set("user_id_validated", "u-1") },
			mw,
			func(c *gin.Context) {
				*calls++
				c.JSON(http.StatusCreated, gin.H{"ok": true, "data": gin.H{"id": "l-1"}})
			},
		)
		return r
	}
	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request runs and is cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.CustomMatch(func(expected, actual []interface{}) error {
			if len(actual) < 3 || !strings.Contains(fmt.Sprintf("%s", actual[2]), `"status":201`) {
				return fmt.Errorf("unexpected cached payload %v", actual)
			}
			return nil
		}).ExpectSet(cacheKey, "", 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		calls := 0
		w := post(newRouter(middleware.Idempotency(rdb), &calls))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retry replays cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true,"data":{"id":"l-1"}}}`)

		calls := 0
		w := post(newRouter(middleware.Idempotency(rdb), &calls))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(middleware.IdempotencyReplayed))
		assert.JSONEq(t, `{"ok":true,"data":{"id":"l-1"}}`, w.Body.String())
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		calls := 0
		w := post(newRouter(middleware.Idempotency(rdb), &calls))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := newRouter(middleware.Idempotency(rdb), &calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
