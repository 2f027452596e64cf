package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"career-portal-backend/config"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	t.Run("Should reuse a well-formed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-12345-def")
		w := serve(r, req)
		assert.Equal(t, "abc-12345-def", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "abc-12345-def", w.Body.String())
	})

	t.Run("Should replace a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "<script>")
		w := serve(r, req)
		assert.NotEqual(t, "<script>", w.Header().Get("X-Request-ID"))
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should answer preflight for an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := serve(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should refuse preflight for other origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := serve(r, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) { c.Error(apperror.Conflict("Skill already exists")) })
	r.GET("/boom", func(c *gin.Context) { c.Error(errors.New("pq: connection refused")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Skill already exists")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{AuthJWTSecret: "secret"}
	r := gin.New()
	r.Use(AuthMiddleware(nil, cfg))
	r.GET("/", func(c *gin.Context) {
		cu, ok := domain.CurrentUserFrom(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, cu.UID+"|"+cu.Email)
	})

	sign := func(claims jwt.MapClaims, key string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}

	t.Run("Should accept a bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+sign(jwt.MapClaims{"sub": "u1", "email": "a@b.co"}, "secret"))
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1|a@b.co", w.Body.String())
	})

	t.Run("Should read the cookie and the user_id claim", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: sign(jwt.MapClaims{"user_id": "u2"}, "secret")})
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u2|", w.Body.String())
	})

	t.Run("Should reject expired tokens", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+sign(jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		}, "secret"))
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("Should reject tokens without a subject", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+sign(jwt.MapClaims{"email": "a@b.co"}, "secret"))
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("Should reject subjects that are not a plain id", func(t *testing.T) {
		for _, sub := range []string{"victim/profile/details", "../victim", "u1 ", "u1.json"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+sign(jwt.MapClaims{"sub": sub}, "secret"))
			assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code, sub)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: sign(jwt.MapClaims{"user_id": "victim/resumes/r1"}, "secret")})
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("Should check audience and issuer when configured", func(t *testing.T) {
		pinned := gin.New()
		pinned.Use(AuthMiddleware(nil, &config.Config{
			AuthJWTSecret: "secret",
			AuthAudience:  "career-portal",
			AuthIssuer:    "https://auth.example.com",
		}))
		pinned.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		cases := []struct {
			name   string
			claims jwt.MapClaims
			want   int
		}{
			{"matching", jwt.MapClaims{"sub": "u1", "aud": "career-portal", "iss": "https://auth.example.com"}, http.StatusOK},
			{"audience list", jwt.MapClaims{"sub": "u1", "aud": []string{"other", "career-portal"}, "iss": "https://auth.example.com"}, http.StatusOK},
			{"wrong audience", jwt.MapClaims{"sub": "u1", "aud": "other-project", "iss": "https://auth.example.com"}, http.StatusUnauthorized},
			{"no audience", jwt.MapClaims{"sub": "u1", "iss": "https://auth.example.com"}, http.StatusUnauthorized},
			{"wrong issuer", jwt.MapClaims{"sub": "u1", "aud": "career-portal", "iss": "https://evil.example.com"}, http.StatusUnauthorized},
		}
		for _, tc := range cases {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+sign(tc.claims, "secret"))
			assert.Equal(t, tc.want, serve(pinned, req).Code, tc.name)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(GlobalRateLimitConfig(2, time.Minute, nil)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLocalLimiter(t *testing.T) {
	l := newLocalLimiter(RateLimitConfig{Limit: 1, Window: time.Minute})
	now := time.Now()

	ok, _ := l.allow("a", now)
	assert.True(t, ok)
	ok, retry := l.allow("a", now)
	assert.False(t, ok)
	assert.InDelta(t, time.Minute.Seconds(), retry.Seconds(), 1)

	ok, _ = l.allow("b", now)
	assert.True(t, ok, "keys are independent")

	ok, _ = l.allow("a", now.Add(time.Minute))
	assert.True(t, ok, "bucket refills after the window")

	l.sweep(now.Add(time.Hour), time.Minute)
	assert.Empty(t, l.limiters)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := serve(r, req)
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "no-store, private", w.Header().Get("Cache-Control"))
}
