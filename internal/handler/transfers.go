package handler

import (
	"net/http"

	"github.com/mikoypft/lztmeat/internal/apierror"
	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/middleware"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransfersHandler struct{ svc service.TransferService }

func NewTransfersHandler(svc service.TransferService) *TransfersHandler {
	return &TransfersHandler{svc: svc}
}

// Request godoc
// @Summary      Request a stock transfer
// @Description  Opens a transfer in "pending". Stock moves only when the transfer completes.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RequestTransferRequest true "Transfer detail"
// @Success      201  {object} dto.TransferResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/transfers [post]
func (h *TransfersHandler) Request(c *gin.Context) {
	var req dto.RequestTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Request(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SetStatus godoc
// @Summary      Advance a transfer
// @Description  Drives the transfer state machine. Completing moves stock between locations atomically; insufficient source stock leaves the transfer in-transit.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "Transfer UUID"
// @Param        body body dto.SetTransferStatusRequest true "Target status"
// @Success      200  {object} dto.TransferResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/transfers/{id}/status [patch]
func (h *TransfersHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SetTransferStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one transfer.
func (h *TransfersHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List transfers
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Param        status     query string false "pending | in-transit | completed | cancelled | rejected | all"
// @Param        product_id query string false "Product UUID"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.TransferListResponse
// @Router       /v1/transfers [get]
func (h *TransfersHandler) List(c *gin.Context) {
	var filter dto.TransferFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list transfers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
