package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
)

// UUIDValidator проверяет, что параметр пути является валидным UUID.
// Использование: router.GET("/skills/:id", UUIDValidator("id"), handler.GetSkill)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(paramName)); err != nil {
			response.ValidationFailed(c, "параметр "+paramName+" должен быть валидным UUID", map[string]any{
				paramName: c.Param(paramName),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
