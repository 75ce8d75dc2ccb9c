package handler

import (
	"errors"

	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/internal/upstream"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service error kinds to HTTP statuses. fallback is the
// message used when err carries none of its own.
func respondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	msg := service.Message(err, fallback)

	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrChallengeFailed):
		utils.BadRequestResponse(c, msg, nil)
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, msg)
	case errors.Is(err, service.ErrNotFound):
		utils.NotFoundResponse(c, msg)
	case errors.Is(err, service.ErrAlreadyPaid):
		utils.ConflictResponse(c, msg)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		utils.ServiceUnavailableResponse(c, msg)
	case errors.As(err, &apiErr):
		utils.BadGatewayResponse(c, msg, nil)
	default:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
		utils.InternalServerErrorResponse(c, fallback, err)
	}
}
