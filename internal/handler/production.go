package handler

import (
	"net/http"

	"github.com/mikoypft/lztmeat/internal/apierror"
	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductionHandler struct{ svc service.ProductionService }

func NewProductionHandler(svc service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// Record godoc
// @Summary      Record a production batch
// @Description  Opens a batch in "in-progress" and consumes its initial ingredients. Stock is credited only on completion.
// @Tags         production
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordProductionRequest true "Batch detail"
// @Success      201  {object} dto.ProductionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/production [post]
func (h *ProductionHandler) Record(c *gin.Context) {
	var req dto.RecordProductionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SetStatus godoc
// @Summary      Advance a batch
// @Description  Moves the batch through in-progress → quality-check → completed. Completion credits the facility with the actual weight when reported.
// @Tags         production
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                         true "Batch UUID"
// @Param        body body dto.SetProductionStatusRequest true "Target status"
// @Success      200  {object} dto.ProductionResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/production/{id}/status [patch]
func (h *ProductionHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SetProductionStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one batch with its ingredient usage.
func (h *ProductionHandler) Get(c *gin.Context) {
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
// @Summary      List production batches
// @Tags         production
// @Produce      json
// @Security     BearerAuth
// @Param        status     query string false "in-progress | quality-check | completed | all"
// @Param        product_id query string false "Product UUID"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.ProductionListResponse
// @Router       /v1/production [get]
func (h *ProductionHandler) List(c *gin.Context) {
	var filter dto.ProductionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list production records"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a batch
// @Description  Undoes the batch: reverses the facility credit when it was applied and returns consumed ingredients to stock.
// @Tags         production
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Batch UUID"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/production/{id} [delete]
func (h *ProductionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
