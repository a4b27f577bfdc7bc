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

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Checkout godoc
// @Summary      Register a sale
// @Description  Prices the cart, debits store stock atomically and records the sale. Any line with insufficient stock rolls the whole sale back.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckoutRequest true "Cart detail"
// @Success      201  {object} dto.SaleResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Reverse godoc
// @Summary      Reverse a sale
// @Description  Credits every sold line back to the store. A sale can be reversed at most once.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Sale UUID"
// @Param        body body dto.ReverseSaleRequest true "Reversal reason"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales/{id} [delete]
func (h *SalesHandler) Reverse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ReverseSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ReverseSale(c.Request.Context(), id, req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ApplyReseco godoc
// @Summary      Apply a reseco deduction
// @Description  Records a manual cash deduction against a completed sale. Does not touch stock.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string            true "Sale UUID"
// @Param        body body dto.ResecoRequest true "Deduction amount"
// @Success      200  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales/{id}/reseco [patch]
func (h *SalesHandler) ApplyReseco(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ResecoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyReseco(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List sales
// @Description  Returns a paginated list filtered by date, store and status. Defaults to today's completed sales.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        date        query string false "YYYY-MM-DD (default: today)"
// @Param        status      query string false "completed | reversed | all"
// @Param        location_id query string false "Store UUID"
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.SaleListResponse
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
