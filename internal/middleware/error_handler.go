package middleware

import (
	"errors"
	apiError "lexdraft/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Execute the handler first

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var apiErr *apiError.APIError
		if !errors.As(err, &apiErr) {
			// raw error we didn't wrap
			apiErr = apiError.Internal(err)
		}

		entry := logger.WithFields(logrus.Fields{
			"status": apiErr.Status,
			"method": c.Request.Method,
			"path":   c.FullPath(),
		})
		if apiErr.Status >= 500 {
			entry.WithError(apiErr.Internal).Error(apiErr.Message)
		} else {
			entry.WithError(apiErr.Internal).Info(apiErr.Message)
		}

		c.AbortWithStatusJSON(apiErr.Status, apiErr)
	}
}
