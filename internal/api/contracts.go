package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

// ContractHandler serves contract CRUD endpoints.
type ContractHandler struct {
	svc ContractService
	log *logrus.Logger
}

// NewContractHandler creates a ContractHandler with the given service and logger.
func NewContractHandler(svc ContractService, log *logrus.Logger) *ContractHandler {
	return &ContractHandler{svc: svc, log: log}
}

// List handles GET /api/v1/contracts. An optional client_id query param
// narrows the list to one client.
func (h *ContractHandler) List(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	contracts, err := h.svc.ListContracts(c.Request.Context(), p.ID, c.Query("client_id"))
	if err != nil {
		respondGuardError(c, h.log, err, "listing contracts")

		return
	}

	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// Get handles GET /api/v1/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	contract, err := h.svc.GetContract(c.Request.Context(), id)
	if err != nil {
		respondGuardError(c, h.log, err, "getting contract")

		return
	}

	c.JSON(http.StatusOK, contract)
}

// Create handles POST /api/v1/contracts.
func (h *ContractHandler) Create(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	var req models.Contract
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

	contract, err := h.svc.CreateContract(c.Request.Context(), &req)
	if err != nil {
		respondGuardError(c, h.log, err, "creating contract")

		return
	}

	c.JSON(http.StatusCreated, contract)
}

// Update handles PATCH /api/v1/contracts/:id.
func (h *ContractHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch models.ContractPatch
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

	contract, err := h.svc.UpdateContract(c.Request.Context(), id, patch)
	if err != nil {
		respondGuardError(c, h.log, err, "updating contract")

		return
	}

	c.JSON(http.StatusOK, contract)
}

// Delete handles DELETE /api/v1/contracts/:id.
func (h *ContractHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	if _, err := h.svc.DeleteContract(c.Request.Context(), id); err != nil {
		respondGuardError(c, h.log, err, "deleting contract")

		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
