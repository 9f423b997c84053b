package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"skillup/api/internal/models"
)

type verifierFunc func(ctx context.Context, token string) *models.Session

func (f verifierFunc) VerifySession(ctx context.Context, token string) *models.Session {
	return f(ctx, token)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func sessions(known map[string]models.Session) SessionVerifier {
	return verifierFunc(func(_ context.Context, token string) *models.Session {
		s, ok := known[token]
		if !ok {
			return nil
		}
		return &s
	})
}

func newRouter(v SessionVerifier, guards ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery(zerolog.Nop()), Session(v))
	handlers := append(guards, func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			c.JSON(http.StatusOK, gin.H{"user_id": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID})
	})
	r.GET("/t", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	if token != "" {
		req.Header.Set(SessionHeader, token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionIsOptional(t *testing.T) {
	r := newRouter(sessions(map[string]models.Session{"good": {UserID: "user_1"}}))

	rec := do(r, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":null}`, rec.Body.String())

	rec = do(r, "bogus")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":null}`, rec.Body.String())

	rec = do(r, "good")
	assert.JSONEq(t, `{"user_id":"user_1"}`, rec.Body.String())
}

func TestRequireSession(t *testing.T) {
	r := newRouter(sessions(map[string]models.Session{"good": {UserID: "user_1"}}), RequireSession())

	rec := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = do(r, "stale")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, "good")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter(sessions(map[string]models.Session{
		"learner": {UserID: "user_1"},
		"admin":   {UserID: "user_2", IsAdmin: true},
	}), RequireAdmin())

	for _, token := range []string{"", "learner", "unknown"} {
		rec := do(r, token)
		assert.Equal(t, http.StatusForbidden, rec.Code, token)
		assert.JSONEq(t, `{"error":"Unauthorized - Admin only"}`, rec.Body.String())
	}

	rec := do(r, "admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"user_2"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	r := newRouter(sessions(nil))

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", 200))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	generated := rec.Header().Get(requestIDHeader)
	assert.Len(t, generated, 36)

	assert.False(t, usableRequestID("has space"))
	assert.True(t, usableRequestID("ok_id"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zerolog.Nop()))
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_server_error"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"any by default", nil, "https://app.example", "https://app.example"},
		{"wildcard", []string{"*"}, "https://app.example", "https://app.example"},
		{"listed", []string{"https://app.example"}, "https://app.example", "https://app.example"},
		{"unlisted", []string{"https://app.example"}, "https://evil.example", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tc.allowed))
			r.GET("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/t", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), SessionHeader)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS(nil))
	r.POST("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/t", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
