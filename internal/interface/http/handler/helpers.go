package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

// requireUser возвращает id текущего пользователя или отвечает 401.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID разбирает UUID из параметра пути или отвечает 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ValidationFailed(c, "некорректный идентификатор", map[string]any{name: c.Param(name)})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON связывает тело запроса и отвечает 400 с деталями по полям при ошибке.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.ValidationFailed(c, "некорректные данные запроса", validation.FieldErrors(err))
		return false
	}
	return true
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
