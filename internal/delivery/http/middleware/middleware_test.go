package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]*auth.Claims

func (s stubVerifier) Verify(token string) (*auth.Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

var verifier = stubVerifier{
	"seeker":  {Role: domain.RoleJobSeeker, RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}},
	"company": {Role: domain.RoleCompany, CompanyID: 3, RegisteredClaims: jwt.RegisteredClaims{Subject: "11"}},
	"nonnum":  {Role: domain.RoleJobSeeker, RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}},
}

func identityEcho(c *gin.Context) {
	c.JSON(http.StatusOK, Identity(c))
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/required", AuthMiddleware(verifier), identityEcho)
	r.GET("/optional", OptionalAuthMiddleware(verifier), identityEcho)
	r.GET("/company", AuthMiddleware(verifier), RequireRole(domain.RoleCompany), identityEcho)

	t.Run("Should reject missing tokens on required routes", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/required", "").Code)
	})

	t.Run("Should reject non numeric subjects", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/required", "nonnum").Code)
	})

	t.Run("Should expose the company identity", func(t *testing.T) {
		w := do(r, http.MethodGet, "/required", "company")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":11,"company_id":3,"role":"company"}`, w.Body.String())
	})

	t.Run("Should let anonymous callers through optional routes", func(t *testing.T) {
		w := do(r, http.MethodGet, "/optional", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	})

	t.Run("Should still reject a bad token on optional routes", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/optional", "forged").Code)
	})

	t.Run("Should enforce roles", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/company", "seeker").Code)
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/company", "company").Code)
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(apperror.DuplicateApplication("You have already applied to this job"))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
	})

	w := do(r, http.MethodGet, "/conflict", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"duplicate_application"`)
	assert.Contains(t, w.Body.String(), `"request_id":"`+w.Header().Get("X-Request-ID")+`"`)

	w = do(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
	assert.Contains(t, w.Body.String(), `"kind":"storage"`)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(response.RequestIDKey)) })

	w := do(r, http.MethodGet, "/", "")
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())
}

func TestRateLimiterInMemory(t *testing.T) {
	limiter := NewRateLimiter(nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/apply", func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), int64(7))
	}, limiter.Middleware(ApplyRateLimitConfig(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/apply", "").Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/apply", "").Code)
	w := do(r, http.MethodPost, "/apply", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/apply", "").Code)

	now = now.Add(2 * time.Minute)
	limiter.Sweep()
	_, ok := limiter.store.Load("rl:apply:7")
	assert.False(t, ok)
}

func TestRateLimiterSweepsRedisFallback(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer client.Close()

	limiter := NewRateLimiter(client)
	r := gin.New()
	r.GET("/", limiter.Middleware(GlobalRateLimitConfig(5, 20*time.Millisecond)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
	_, ok := limiter.store.Load("rl:ip:192.0.2.1")
	require.True(t, ok, "failed redis calls should count in memory")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go limiter.RunSweeper(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok := limiter.store.Load("rl:ip:192.0.2.1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://jobs.example.com"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://jobs.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://jobs.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
