package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

// ContextUserIDKey — ключ gin.Context с id аутентифицированного пользователя.
const ContextUserIDKey = "userID"

// AuthMiddleware проверяет JWT access токен из заголовка Authorization.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "требуется авторизация")
			c.Abort()
			return
		}

		authenticate(c, tokens, strings.TrimPrefix(auth, "Bearer "))
	}
}

// QueryTokenAuth проверяет токен из параметра ?token=. Используется для WebSocket.
func QueryTokenAuth(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("token")
		if raw == "" {
			response.Unauthorized(c, "access токен обязателен")
			c.Abort()
			return
		}

		authenticate(c, tokens, raw)
	}
}

func authenticate(c *gin.Context, tokens *service.TokenManager, raw string) {
	userID, err := tokens.ParseAccess(raw)
	if err != nil || userID == uuid.Nil {
		response.Unauthorized(c, "токен невалиден")
		c.Abort()
		return
	}

	c.Set(ContextUserIDKey, userID)
	c.Next()
}

// UserID возвращает id пользователя, установленный AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
