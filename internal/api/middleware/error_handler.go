package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "videomind/internal/api/errors"
	apperrors "videomind/internal/app/errors"
)

// ErrorHandler converts errors attached to the gin context into a
// structured APIError response. Handlers report failures with
// c.Error(err) and return; this middleware writes the body.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		apiErr := toAPIError(err)
		apiErr.RequestID = GetRequestID(c)

		if apiErr.Kind == apierrors.KindInternal {
			logger.Error("request failed",
				slog.String("request_id", apiErr.RequestID),
				slog.String("error", err.Error()))
		}

		c.AbortWithStatusJSON(apiErr.HTTPStatus(), gin.H{"error": apiErr})
	}
}

// Recovery returns a recovery middleware that responds with a
// structured error body instead of gin's default plain text.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			slog.String("request_id", GetRequestID(c)),
			slog.Any("panic", recovered))
		apiErr := apierrors.NewInternalError("internal server error")
		apiErr.RequestID = GetRequestID(c)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apiErr})
	})
}

func toAPIError(err error) *apierrors.APIError {
	if apiErr, ok := err.(*apierrors.APIError); ok {
		return apiErr
	}

	switch {
	case errors.Is(err, apperrors.ErrJobNotFound):
		return apierrors.NewNotFoundError("job")
	case errors.Is(err, apperrors.ErrJobNotCompleted):
		return apierrors.NewBadRequestError(err.Error())
	case errors.Is(err, apperrors.ErrMissingURL), errors.Is(err, apperrors.ErrInvalidOptions):
		return apierrors.NewBadRequestError(err.Error())
	case errors.Is(err, apperrors.ErrQueueFull), errors.Is(err, apperrors.ErrPoolNotRunning):
		return apierrors.NewServiceUnavailableError("analysis queue is full, try again later")
	case errors.Is(err, apperrors.ErrUnsupportedSource):
		return apierrors.NewBadRequestError(err.Error())
	default:
		return apierrors.NewInternalError("internal server error")
	}
}
