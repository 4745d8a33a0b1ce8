package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

// AuditHandler serves the audit trail endpoints.
type AuditHandler struct {
	svc           AuditQueryService
	retentionDays int
	log           *logrus.Logger
}

// NewAuditHandler creates an AuditHandler with the given service and logger.
func NewAuditHandler(svc AuditQueryService, retentionDays int, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, retentionDays: retentionDays, log: log}
}

// Query handles GET /api/v1/audit — the caller's own trail, newest first.
func (h *AuditHandler) Query(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	opts := models.AuditQueryOpts{
		TableName: c.Query("table"),
		RecordID:  c.Query("record_id"),
		Action:    c.Query("action"),
		Limit:     parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:    parseOffset(c.DefaultQuery("offset", "0")),
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "since must be RFC 3339")

			return
		}
		opts.Since = &t
	}

	entries, hasMore, err := h.svc.QueryOwnAudit(c.Request.Context(), p.ID, opts)
	if err != nil {
		respondGuardError(c, h.log, err, "querying audit trail")

		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "has_more": hasMore})
}

// Purge handles DELETE /api/v1/audit — runs the retention purge on demand.
func (h *AuditHandler) Purge(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	deleted, err := h.svc.PurgeOldEntries(c.Request.Context(), h.retentionDays)
	if err != nil {
		respondGuardError(c, h.log, err, "purging audit trail")

		return
	}

	h.log.WithFields(logrus.Fields{"user_id": p.ID, "deleted": deleted}).Info("audit purge requested")

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
