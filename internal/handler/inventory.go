package handler

import (
	"net/http"

	"github.com/mikoypft/lztmeat/internal/apierror"
	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Get godoc
// @Summary      Current inventory
// @Description  Returns per-(product, location) quantities, optionally filtered by location. Served from a versioned Redis snapshot when fresh.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        location_id query string false "Location UUID"
// @Success      200  {array} dto.InventoryRecordResponse
// @Router       /v1/inventory [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	var filter dto.InventoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.GetInventory(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary      Manual stock adjustment
// @Description  Applies a signed correction to one (product, location) pair. Negative deltas fail when they would drive stock below zero.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdjustStockRequest true "Adjustment detail"
// @Success      200  {object} dto.InventoryRecordResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movements godoc
// @Summary      Stock movement history
// @Description  Paginated, filterable audit trail of every ledger mutation.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  query string false "Product UUID"
// @Param        location_id query string false "Location UUID"
// @Param        kind        query string false "Movement kind"
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.MovementListResponse
// @Router       /v1/inventory/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
