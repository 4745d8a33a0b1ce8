package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/httputil"
	"github.com/hfappmaker/worktime/internal/metrics"
	"github.com/hfappmaker/worktime/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeConflict        = "conflict"
	ErrCodeValidationError = "validation_error"
	ErrCodeAuditFailed     = "audit_failed"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondGuardError maps the data-access error taxonomy onto HTTP. Ownership
// violations read as 403 rather than 404: the row's existence is already
// implied by the denial, hiding it would add nothing.
func respondGuardError(c *gin.Context, log *logrus.Logger, err error, action string) {
	switch {
	case errors.Is(err, models.ErrOwnershipMismatch),
		errors.Is(err, models.ErrUnauthorizedUpdate),
		errors.Is(err, models.ErrUnauthorizedDelete),
		errors.Is(err, models.ErrUnauthorizedRead):
		respondError(c, http.StatusForbidden, ErrCodeForbidden, "operation not permitted on this record")

	case errors.Is(err, models.ErrMissingOwnerFilter):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "list queries must be scoped to an owner")

	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "record not found")

	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, "record already exists")

	case errors.Is(err, models.ErrAuditFailed):
		// The mutation itself succeeded; surface the unattributable write.
		log.WithError(err).WithField("action", action).Error("mutation stood but audit write failed")
		respondError(c, http.StatusInternalServerError, ErrCodeAuditFailed, "operation completed but could not be audited")

	default:
		log.WithError(err).Error(action)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
