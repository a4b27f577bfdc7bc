package handler

import (
	"net/http"

	"github.com/mikoypft/lztmeat/internal/apierror"
	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/gin-gonic/gin"
)

type DiscountsHandler struct{ svc service.DiscountService }

func NewDiscountsHandler(svc service.DiscountService) *DiscountsHandler {
	return &DiscountsHandler{svc: svc}
}

// Get godoc
// @Summary      Wholesale discount settings
// @Tags         discounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DiscountSettingsResponse
// @Router       /v1/discounts [get]
func (h *DiscountsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load discount settings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Replace wholesale discount settings
// @Description  Takes effect on the next checkout; in-flight quotes keep the policy they read.
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpdateDiscountSettingsRequest true "New policy"
// @Success      200  {object} dto.DiscountSettingsResponse
// @Router       /v1/discounts [put]
func (h *DiscountsHandler) Update(c *gin.Context) {
	var req dto.UpdateDiscountSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
