package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// ErrorHandler перехватывает panic и ошибки, добавленные через c.Error, и отвечает
// единым конвертом. Внутренние детали клиенту не отдаются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithFields(logrus.Fields{
					"panic":  r,
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("panic in handler")

				if !c.Writer.Written() {
					response.Error(c, apperror.Wrap(fmt.Errorf("%v", r), apperror.ErrCodeInternal, "внутренняя ошибка сервера"))
				}
				c.Abort()
			}
		}()

		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("request error")

		response.Error(c, err)
	}
}
