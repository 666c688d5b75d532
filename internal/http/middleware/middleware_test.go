package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

func newEngine(mw ...gin.HandlerFunc) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	logger.Silence()

	var seen uuid.UUID
	r := gin.New()
	r.Use(mw...)
	r.GET("/items/:id", func(c *gin.Context) {
		if id, ok := UserID(c); ok {
			seen = id
		}
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenManager("middleware-secret", time.Hour)
	r, seen := newEngine(AuthMiddleware(tokens))
	userID := uuid.New()
	token, err := tokens.GenerateAccess(userID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items/"+uuid.NewString(), nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	assert.Equal(t, userID, *seen)
}

func TestQueryTokenAuth(t *testing.T) {
	tokens := service.NewTokenManager("middleware-secret", time.Hour)
	r, _ := newEngine(QueryTokenAuth(tokens))
	token, err := tokens.GenerateAccess(uuid.New())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/x?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUUIDValidator(t *testing.T) {
	r, _ := newEngine(UUIDValidator("id"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/not-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	r, _ := newEngine(CORSMiddleware([]string{"http://localhost:3000"}))

	req := httptest.NewRequest(http.MethodGet, "/items/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/items/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/items/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Silence()
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
}
