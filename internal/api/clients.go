package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

// ClientHandler serves client CRUD endpoints.
type ClientHandler struct {
	svc ClientService
	log *logrus.Logger
}

// NewClientHandler creates a ClientHandler with the given service and logger.
func NewClientHandler(svc ClientService, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{svc: svc, log: log}
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	clients, err := h.svc.ListClients(c.Request.Context(), p.ID)
	if err != nil {
		respondGuardError(c, h.log, err, "listing clients")

		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	client, err := h.svc.GetClient(c.Request.Context(), id)
	if err != nil {
		respondGuardError(c, h.log, err, "getting client")

		return
	}

	c.JSON(http.StatusOK, client)
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	var req models.Client
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	// An absent owner defaults to the caller; a mismatched one is denied below.
	if req.UserID == "" {
		req.UserID = p.ID
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), &req)
	if err != nil {
		respondGuardError(c, h.log, err, "creating client")

		return
	}

	c.JSON(http.StatusCreated, client)
}

// Update handles PATCH /api/v1/clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch models.ClientPatch
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

	client, err := h.svc.UpdateClient(c.Request.Context(), id, patch)
	if err != nil {
		respondGuardError(c, h.log, err, "updating client")

		return
	}

	c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /api/v1/clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	if _, err := h.svc.DeleteClient(c.Request.Context(), id); err != nil {
		respondGuardError(c, h.log, err, "deleting client")

		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
