package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// RateLimitMiddleware ограничивает частоту запросов. Ключ — id пользователя,
// если запрос аутентифицирован, иначе IP клиента.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 30
	}
	if period <= 0 {
		period = time.Minute
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: period,
		Limit:  limit,
	})

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := UserID(c); ok {
			key = "user:" + userID.String()
		}

		lctx, err := instance.Get(c.Request.Context(), key)
		if err != nil {
			response.Error(c, apperror.Wrap(err, apperror.ErrCodeInternal, "ошибка ограничителя запросов"))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Success: false,
				Error: &response.ErrorInfo{
					Code:    "RATE_LIMITED",
					Message: "слишком много запросов, попробуйте позже",
				},
			})
			return
		}

		c.Next()
	}
}
