package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

// EmailTemplateHandler serves email template CRUD and render endpoints.
type EmailTemplateHandler struct {
	svc EmailTemplateService
	log *logrus.Logger
}

// NewEmailTemplateHandler creates an EmailTemplateHandler with the given service and logger.
func NewEmailTemplateHandler(svc EmailTemplateService, log *logrus.Logger) *EmailTemplateHandler {
	return &EmailTemplateHandler{svc: svc, log: log}
}

// List handles GET /api/v1/email-templates.
func (h *EmailTemplateHandler) List(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	templates, err := h.svc.ListEmailTemplates(c.Request.Context(), p.ID)
	if err != nil {
		respondGuardError(c, h.log, err, "listing email templates")

		return
	}

	c.JSON(http.StatusOK, gin.H{"email_templates": templates})
}

// Get handles GET /api/v1/email-templates/:id.
func (h *EmailTemplateHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	tmpl, err := h.svc.GetEmailTemplate(c.Request.Context(), id)
	if err != nil {
		respondGuardError(c, h.log, err, "getting email template")

		return
	}

	c.JSON(http.StatusOK, tmpl)
}

// Create handles POST /api/v1/email-templates.
func (h *EmailTemplateHandler) Create(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	var req models.EmailTemplate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if req.UserID == "" {
		req.UserID = p.ID
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	tmpl, err := h.svc.CreateEmailTemplate(c.Request.Context(), &req)
	if err != nil {
		respondGuardError(c, h.log, err, "creating email template")

		return
	}

	c.JSON(http.StatusCreated, tmpl)
}

// Update handles PATCH /api/v1/email-templates/:id.
func (h *EmailTemplateHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch models.EmailTemplatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := patch.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	tmpl, err := h.svc.UpdateEmailTemplate(c.Request.Context(), id, patch)
	if err != nil {
		respondGuardError(c, h.log, err, "updating email template")

		return
	}

	c.JSON(http.StatusOK, tmpl)
}

// Delete handles DELETE /api/v1/email-templates/:id.
func (h *EmailTemplateHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	if _, err := h.svc.DeleteEmailTemplate(c.Request.Context(), id); err != nil {
		respondGuardError(c, h.log, err, "deleting email template")

		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// renderRequest is the payload for template rendering.
type renderRequest struct {
	ContractID string `json:"contract_id"`
}

// Render handles POST /api/v1/email-templates/:id/render. It expands the
// template's placeholders against a contract and its client.
func (h *EmailTemplateHandler) Render(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if req.ContractID == "" {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "contract_id is required")

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	rendered, err := h.svc.Render(c.Request.Context(), id, req.ContractID)
	if err != nil {
		respondGuardError(c, h.log, err, "rendering email template")

		return
	}

	c.JSON(http.StatusOK, rendered)
}
